// Package classfile reads the declaration level of JVM class files: names,
// access flags, super types, members and their generic signatures. Method
// bodies and annotations are skipped.
package classfile

import "strings"

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  AccessFlags
	Name         string // internal name, "java/util/Map$Entry"
	SuperName    string
	Interfaces   []string
	Signature    string
	Fields       []Member
	Methods      []Member
	InnerClasses []InnerClass
}

// Member is a field or a method.
type Member struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Signature   string
	Exceptions  []string
}

// InnerClass is one entry of the InnerClasses attribute.
type InnerClass struct {
	Inner       string
	Outer       string
	SimpleName  string
	AccessFlags AccessFlags
}

func (m Member) IsConstructor() bool { return m.Name == "<init>" }
func (m Member) IsInitializer() bool { return m.Name == "<clinit>" }

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool { return cf.AccessFlags.IsAnnotation() }
func (cf *ClassFile) IsEnum() bool       { return cf.AccessFlags.IsEnum() }
func (cf *ClassFile) IsModule() bool     { return cf.AccessFlags.IsModule() }

// OuterClass returns the internal name of the class declaring cf, or "" for
// top-level classes.
func (cf *ClassFile) OuterClass() string {
	for _, ic := range cf.InnerClasses {
		if ic.Inner == cf.Name {
			return ic.Outer
		}
	}
	return ""
}

// IsAnonymousOrLocal reports whether cf is a class without a usable name.
func (cf *ClassFile) IsAnonymousOrLocal() bool {
	for _, ic := range cf.InnerClasses {
		if ic.Inner == cf.Name {
			return ic.Outer == "" || ic.SimpleName == ""
		}
	}
	return false
}

// InnerAccessFlags returns the flags recorded for cf in its InnerClasses
// attribute; they carry static and the source visibility of member types.
func (cf *ClassFile) InnerAccessFlags() (AccessFlags, bool) {
	for _, ic := range cf.InnerClasses {
		if ic.Inner == cf.Name {
			return ic.AccessFlags, true
		}
	}
	return 0, false
}

// ToDotted turns an internal name into a dotted source-like name, using
// '.' for nesting as well.
func ToDotted(internal string) string {
	return strings.NewReplacer("/", ".", "$", ".").Replace(internal)
}
