package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type TypeKind string

const (
	TypeKindClass      TypeKind = "class"
	TypeKindInterface  TypeKind = "interface"
	TypeKindEnum       TypeKind = "enum"
	TypeKindRecord     TypeKind = "record"
	TypeKindAnnotation TypeKind = "annotation"
)

type ImportKind string

const (
	ImportSingle   ImportKind = "single"
	ImportOnDemand ImportKind = "on-demand"
)

// Import is one import declaration. Name never carries the trailing ".*"
// of an on-demand import.
type Import struct {
	Name     string
	Kind     ImportKind
	IsStatic bool
}

// CompilationUnit is one parsed source file.
type CompilationUnit struct {
	Path    string
	Package string
	Imports []Import
	Types   []*TypeDecl
}

// AllTypes returns every type declared in the unit, outer types before the
// types nested in them.
func (u *CompilationUnit) AllTypes() []*TypeDecl {
	var out []*TypeDecl
	var walk func(t *TypeDecl)
	walk = func(t *TypeDecl) {
		out = append(out, t)
		for _, m := range t.Members {
			walk(m)
		}
	}
	for _, t := range u.Types {
		walk(t)
	}
	return out
}

type TypeParameterDecl struct {
	Name   string
	Bounds []string // signatures
}

// TypeDecl is a class, interface, enum or record declaration. Every type
// occurrence it holds is a signature (see signature.go).
type TypeDecl struct {
	Name           string
	Package        string
	Kind           TypeKind
	Visibility     Visibility
	IsAbstract     bool
	IsFinal        bool
	IsStatic       bool
	SuperClass     string
	Interfaces     []string
	TypeParameters []TypeParameterDecl
	Fields         []FieldDecl
	Methods        []MethodDecl
	EnumConstants  []string
	Members        []*TypeDecl

	// Binary is set for declarations read from the classpath.
	Binary    bool
	Enclosing *TypeDecl
	Unit      *CompilationUnit
}

// TypeName is the name of t relative to its package, with '$' between
// nesting levels.
func (t *TypeDecl) TypeName() string {
	if t.Enclosing == nil {
		return t.Name
	}
	return t.Enclosing.TypeName() + "$" + t.Name
}

// QualifiedName is the dotted source name of t.
func (t *TypeDecl) QualifiedName() string {
	name := strings.ReplaceAll(t.TypeName(), "$", ".")
	if t.Package == "" {
		return name
	}
	return t.Package + "." + name
}

func (t *TypeDecl) Member(name string) *TypeDecl {
	for _, m := range t.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (t *TypeDecl) IsClassLike() bool {
	return t.Kind == TypeKindClass || t.Kind == TypeKindRecord
}

type FieldDecl struct {
	Name           string
	Type           string
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsEnumConstant bool
}

type ParameterDecl struct {
	Name string
	Type string
}

type MethodDecl struct {
	Name           string
	ReturnType     string
	Parameters     []ParameterDecl
	Exceptions     []string
	TypeParameters []TypeParameterDecl
	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	IsConstructor  bool
	IsVarargs      bool
}

// IsMainMethod reports whether m is a program entry point:
// public static void main(String[]).
func (m MethodDecl) IsMainMethod() bool {
	if m.Name != "main" || !m.IsStatic || m.Visibility != VisibilityPublic {
		return false
	}
	if m.ReturnType != SigVoid || len(m.Parameters) != 1 {
		return false
	}
	p := m.Parameters[0].Type
	if ArrayCount(p) != 1 {
		return false
	}
	name := SignatureName(p)
	return name == "String" || name == "java.lang.String"
}
