package java

import "strings"

// Type signatures follow the JVM encoding with '.' as the name separator:
//
//	[        one array dimension
//	BCDFIJSZ primitive types, V void
//	L...;    resolved (qualified) type
//	Q...;    unresolved source name
//	T...;    type variable
//	*        unbounded wildcard, +S upper bound, -S lower bound
//
// Class-like signatures may carry type arguments: "Qjava.util.List<QString;>;".

type SignatureKind string

const (
	SignatureBase         SignatureKind = "base"
	SignatureVoid         SignatureKind = "void"
	SignatureArray        SignatureKind = "array"
	SignatureClass        SignatureKind = "class"
	SignatureUnresolved   SignatureKind = "unresolved"
	SignatureTypeVariable SignatureKind = "type-variable"
	SignatureWildcard     SignatureKind = "wildcard"
)

const (
	SigVoid     = "V"
	SigWildcard = "*"
)

var primitiveNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

var primitiveCodes = func() map[string]string {
	m := make(map[string]string, len(primitiveNames))
	for code, name := range primitiveNames {
		m[name] = string(code)
	}
	return m
}()

func Kind(sig string) SignatureKind {
	if sig == "" {
		return ""
	}
	switch sig[0] {
	case '[':
		return SignatureArray
	case '*', '+', '-':
		return SignatureWildcard
	case 'L':
		return SignatureClass
	case 'Q':
		return SignatureUnresolved
	case 'T':
		return SignatureTypeVariable
	case 'V':
		return SignatureVoid
	}
	if _, ok := primitiveNames[sig[0]]; ok && len(sig) == 1 {
		return SignatureBase
	}
	return ""
}

func ArrayCount(sig string) int {
	n := 0
	for n < len(sig) && sig[n] == '[' {
		n++
	}
	return n
}

// ElementType strips every array dimension from sig.
func ElementType(sig string) string {
	return sig[ArrayCount(sig):]
}

// WildcardBound splits a wildcard signature into its marker ('*', '+' or
// '-') and its bound. Non-wildcard signatures return marker 0.
func WildcardBound(sig string) (byte, string) {
	if sig == "" {
		return 0, sig
	}
	switch sig[0] {
	case '*':
		return '*', ""
	case '+', '-':
		return sig[0], sig[1:]
	}
	return 0, sig
}

// TypeArguments returns the type argument signatures of the outermost
// class-like type in sig.
func TypeArguments(sig string) []string {
	s := ElementType(sig)
	if _, bound := WildcardBound(s); bound != s {
		s = ElementType(bound)
	}
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return nil
	}
	var args []string
	i := open + 1
	for i < len(s) && s[i] != '>' {
		end := scanSignature(s, i)
		if end <= i {
			break
		}
		args = append(args, s[i:end])
		i = end
	}
	return args
}

// scanSignature returns the index just past the signature starting at i.
func scanSignature(s string, i int) int {
	for i < len(s) && s[i] == '[' {
		i++
	}
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '*':
		return i + 1
	case '+', '-':
		return scanSignature(s, i+1)
	case 'L', 'Q', 'T':
		depth := 0
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '<':
				depth++
			case '>':
				depth--
			case ';':
				if depth == 0 {
					return j + 1
				}
			}
		}
		return len(s)
	}
	return i + 1
}

// Erasure removes every type argument list from sig.
func Erasure(sig string) string {
	if strings.IndexByte(sig, '<') < 0 {
		return sig
	}
	var sb strings.Builder
	depth := 0
	for i := 0; i < len(sig); i++ {
		switch c := sig[i]; c {
		case '<':
			depth++
		case '>':
			depth--
		default:
			if depth == 0 {
				sb.WriteByte(c)
			}
		}
	}
	return sb.String()
}

// SignatureName returns the plain type name of sig without array
// dimensions, type arguments or wildcard markers. Primitives map to their
// keyword ("I" is "int").
func SignatureName(sig string) string {
	s := ElementType(sig)
	marker, bound := WildcardBound(s)
	switch marker {
	case '*':
		return "?"
	case '+', '-':
		s = ElementType(bound)
	}
	s = Erasure(s)
	if s == "" {
		return ""
	}
	switch s[0] {
	case 'L', 'Q', 'T':
		return strings.TrimSuffix(s[1:], ";")
	}
	if name, ok := primitiveNames[s[0]]; ok && len(s) == 1 {
		return name
	}
	return s
}

// PrimitiveSignature returns the signature of a primitive keyword or void.
func PrimitiveSignature(name string) (string, bool) {
	code, ok := primitiveCodes[name]
	return code, ok
}

// ClassSignature builds an L (resolved) or Q (unresolved) signature.
func ClassSignature(name string, resolved bool, args ...string) string {
	var sb strings.Builder
	if resolved {
		sb.WriteByte('L')
	} else {
		sb.WriteByte('Q')
	}
	sb.WriteString(name)
	if len(args) > 0 {
		sb.WriteByte('<')
		for _, a := range args {
			sb.WriteString(a)
		}
		sb.WriteByte('>')
	}
	sb.WriteByte(';')
	return sb.String()
}

func TypeVariableSignature(name string) string {
	return "T" + name + ";"
}

func ArraySignature(elem string, dims int) string {
	return strings.Repeat("[", dims) + elem
}

// SignatureString renders sig the way it would be written in Java source.
func SignatureString(sig string) string {
	dims := ArrayCount(sig)
	s := ElementType(sig)
	var sb strings.Builder
	switch marker, bound := WildcardBound(s); marker {
	case '*':
		sb.WriteByte('?')
	case '+':
		sb.WriteString("? extends ")
		sb.WriteString(SignatureString(bound))
	case '-':
		sb.WriteString("? super ")
		sb.WriteString(SignatureString(bound))
	default:
		sb.WriteString(SignatureName(s))
		if args := TypeArguments(s); len(args) > 0 {
			sb.WriteByte('<')
			for i, a := range args {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(SignatureString(a))
			}
			sb.WriteByte('>')
		}
	}
	for i := 0; i < dims; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}
