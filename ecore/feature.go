package ecore

import "strings"

// Unbounded is the upper bound of a many-valued feature.
const Unbounded = -1

type FeatureKind string

const (
	FeatureAttribute FeatureKind = "attribute"
	FeatureReference FeatureKind = "reference"
)

// EStructuralFeature is an attribute or a reference of an EClass.
type EStructuralFeature struct {
	Name         string
	Kind         FeatureKind
	EGenericType *EGenericType
	LowerBound   int
	UpperBound   int
	Changeable   bool
	Containment  bool

	container *EClass
}

func NewAttribute(name string, typ *EGenericType) *EStructuralFeature {
	return &EStructuralFeature{Name: name, Kind: FeatureAttribute, EGenericType: typ, UpperBound: 1, Changeable: true}
}

func NewReference(name string, typ *EGenericType) *EStructuralFeature {
	return &EStructuralFeature{Name: name, Kind: FeatureReference, EGenericType: typ, UpperBound: 1, Changeable: true}
}

func (f *EStructuralFeature) EContainingClass() *EClass { return f.container }
func (f *EStructuralFeature) IsMany() bool              { return f.UpperBound == Unbounded || f.UpperBound > 1 }

// EType is the classifier of the feature's generic type, nil for features
// typed by a type parameter.
func (f *EStructuralFeature) EType() EClassifier {
	if f.EGenericType == nil {
		return nil
	}
	return f.EGenericType.EClassifier
}

type EParameter struct {
	Name         string
	EGenericType *EGenericType
}

// EOperation is an operation of an EClass. EGenericType is nil for
// operations without a return value.
type EOperation struct {
	Name               string
	ETypeParameters    []*ETypeParameter
	EGenericType       *EGenericType
	EParameters        []*EParameter
	EGenericExceptions []*EGenericType

	container *EClass
}

func NewOperation(name string) *EOperation {
	return &EOperation{Name: name}
}

func (op *EOperation) EContainingClass() *EClass { return op.container }

func (op *EOperation) ETypeParameter(name string) *ETypeParameter {
	for _, p := range op.ETypeParameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

type ETypeParameter struct {
	Name    string
	EBounds []*EGenericType
}

// EGenericType is a use of a classifier with type arguments, a use of a
// type parameter, or a wildcard when both are nil.
type EGenericType struct {
	EClassifier    EClassifier
	ETypeParameter *ETypeParameter
	ETypeArguments []*EGenericType
	EUpperBound    *EGenericType
	ELowerBound    *EGenericType
}

func ClassifierType(c EClassifier, args ...*EGenericType) *EGenericType {
	return &EGenericType{EClassifier: c, ETypeArguments: args}
}

func TypeParameterType(p *ETypeParameter) *EGenericType {
	return &EGenericType{ETypeParameter: p}
}

func Wildcard() *EGenericType { return &EGenericType{} }

func (g *EGenericType) IsWildcard() bool {
	return g.EClassifier == nil && g.ETypeParameter == nil
}

func (g *EGenericType) String() string {
	var sb strings.Builder
	g.write(&sb)
	return sb.String()
}

func (g *EGenericType) write(sb *strings.Builder) {
	switch {
	case g.ETypeParameter != nil:
		sb.WriteString(g.ETypeParameter.Name)
	case g.EClassifier != nil:
		sb.WriteString(g.EClassifier.Name())
	default:
		sb.WriteByte('?')
		if g.EUpperBound != nil {
			sb.WriteString(" extends ")
			g.EUpperBound.write(sb)
		} else if g.ELowerBound != nil {
			sb.WriteString(" super ")
			g.ELowerBound.write(sb)
		}
	}
	if len(g.ETypeArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range g.ETypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			arg.write(sb)
		}
		sb.WriteByte('>')
	}
}
