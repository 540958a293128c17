package model

// Element is implemented by every node of the intermediate model.
//
// Containers own their children; the parent pointer a child keeps is only
// used to compute qualified names.
type Element interface {
	Name() string
	FullName() string
	Selected() bool
	SetSelected(selected bool)
	Parent() Element
}

type element struct {
	name       string
	parent     Element
	deselected bool
}

func (e *element) Name() string              { return e.name }
func (e *element) Parent() Element           { return e.parent }
func (e *element) Selected() bool            { return !e.deselected }
func (e *element) SetSelected(selected bool) { e.deselected = !selected }

type Modifier string

const (
	ModifierNone      Modifier = "package"
	ModifierPublic    Modifier = "public"
	ModifierPrivate   Modifier = "private"
	ModifierProtected Modifier = "protected"
)

type MethodKind string

const (
	MethodNormal      MethodKind = "normal"
	MethodConstructor MethodKind = "constructor"
	MethodAccessor    MethodKind = "accessor"
	MethodMutator     MethodKind = "mutator"
	MethodMain        MethodKind = "main"
)

// TypeParameter is a generic parameter declared by a type or a method.
type TypeParameter struct {
	Name   string
	Bounds []*DataType
}

// Variable is the payload shared by fields and parameters.
type Variable struct {
	Identifier string
	DataType   *DataType
}

type Parameter struct {
	Variable
}

type Field struct {
	element
	Variable
	Modifier Modifier
	IsStatic bool
	IsFinal  bool
}

func NewField(identifier string, dataType *DataType) *Field {
	return &Field{
		element:  element{name: identifier},
		Variable: Variable{Identifier: identifier, DataType: dataType},
		Modifier: ModifierNone,
	}
}

func (f *Field) FullName() string { return memberName(f.parent, f.name) }

type Method struct {
	element
	ReturnType     *DataType
	Parameters     []*Parameter
	ThrownTypes    []*DataType
	TypeParameters []*TypeParameter
	Modifier       Modifier
	IsStatic       bool
	IsAbstract     bool
	Kind           MethodKind
}

func NewMethod(name string) *Method {
	return &Method{element: element{name: name}, Modifier: ModifierNone, Kind: MethodNormal}
}

func (m *Method) FullName() string { return memberName(m.parent, m.name) }

func memberName(owner Element, name string) string {
	if owner == nil {
		return name
	}
	return owner.FullName() + "." + name
}
