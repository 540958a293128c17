package java

import "strings"

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// SplitQualifiedName separates the package of a dotted type name from the
// type path inside it. The first segment starting with an upper case
// letter starts the type path:
//
//	org.eclipse.jetty.client.Authentication.HeaderInfo
//	-> "org.eclipse.jetty.client", "Authentication.HeaderInfo"
//
// Without any upper case segment the last segment is the type.
func SplitQualifiedName(name string) (pkg, typePath string) {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if startsUpper(part) {
			return strings.Join(parts[:i], "."), strings.Join(parts[i:], ".")
		}
	}
	if len(parts) > 1 {
		return strings.Join(parts[:len(parts)-1], "."), parts[len(parts)-1]
	}
	return "", name
}

// IsNestedReference reports whether a name as written in source looks like
// a reference to a nested type: "Outer.Inner" rather than "pkg.Type".
func IsNestedReference(name string) bool {
	return strings.Contains(name, ".") && startsUpper(name)
}

// SimpleName returns the last segment of a dotted name.
func SimpleName(name string) string {
	return name[strings.LastIndexByte(name, '.')+1:]
}
