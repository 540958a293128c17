package model

import "strings"

type TypeKind string

const (
	TypeKindClass     TypeKind = "class"
	TypeKindInterface TypeKind = "interface"
	TypeKindEnum      TypeKind = "enum"
)

// Type is an extracted class, interface or enum. Identity is the full name.
//
// The class-only fields (IsAbstract, ExtendsThrowable, SuperClass) and the
// enum-only Constants are left zero for the other kinds.
type Type struct {
	element
	Kind             TypeKind
	OuterTypeName    string
	SuperInterfaces  []*DataType
	TypeParameters   []*TypeParameter
	IsAbstract       bool
	ExtendsThrowable bool
	SuperClass       *DataType
	Constants        []string

	packageName string
	typeName    string
	fullName    string
	isInner     bool
	fields      []*Field
	methods     []*Method
}

// NewType creates a type of the given kind living in pkg. typeName is the
// name inside the package; nested types use '$' between the outer and the
// inner names ("Outer$Inner").
func NewType(kind TypeKind, pkg, typeName string) *Type {
	dotted := strings.ReplaceAll(typeName, "$", ".")
	simple := dotted
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		simple = dotted[i+1:]
	}
	full := dotted
	if pkg != "" {
		full = pkg + "." + dotted
	}
	return &Type{
		element:     element{name: simple},
		Kind:        kind,
		packageName: pkg,
		typeName:    dotted,
		fullName:    full,
		isInner:     strings.Contains(typeName, "$"),
	}
}

func (t *Type) FullName() string    { return t.fullName }
func (t *Type) PackageName() string { return t.packageName }

// TypeName is the dotted name of the type relative to its package.
func (t *Type) TypeName() string { return t.typeName }

func (t *Type) IsInner() bool     { return t.isInner }
func (t *Type) IsClass() bool     { return t.Kind == TypeKindClass }
func (t *Type) IsInterface() bool { return t.Kind == TypeKindInterface }
func (t *Type) IsEnum() bool      { return t.Kind == TypeKindEnum }

func (t *Type) Fields() []*Field   { return t.fields }
func (t *Type) Methods() []*Method { return t.methods }

func (t *Type) AddField(f *Field) {
	f.parent = t
	t.fields = append(t.fields, f)
}

func (t *Type) AddMethod(m *Method) {
	m.parent = t
	t.methods = append(t.methods, m)
}

// Field returns the first field named identifier.
func (t *Type) Field(identifier string) *Field {
	for _, f := range t.fields {
		if f.Identifier == identifier {
			return f
		}
	}
	return nil
}

func (t *Type) TypeParameter(name string) *TypeParameter {
	for _, p := range t.TypeParameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}
