// Package ecore holds the target metamodel graph: packages of classes,
// interfaces, enums and data types with their features and operations.
package ecore

import (
	"sort"
	"strings"
)

// ClassifierKind tags every classifier with its variant.
type ClassifierKind string

const (
	KindClass     ClassifierKind = "class"
	KindInterface ClassifierKind = "interface"
	KindEnum      ClassifierKind = "enum"
	KindDataType  ClassifierKind = "datatype"
)

// EClassifier is implemented by *EClass, *EEnum and *EDataType only.
type EClassifier interface {
	Name() string
	Kind() ClassifierKind
	EPackage() *EPackage
	InstanceClassName() string
	ETypeParameter(name string) *ETypeParameter

	setPackage(p *EPackage)
}

type classifier struct {
	name              string
	instanceClassName string
	pkg               *EPackage

	ETypeParameters []*ETypeParameter
}

func (c *classifier) Name() string              { return c.name }
func (c *classifier) EPackage() *EPackage       { return c.pkg }
func (c *classifier) InstanceClassName() string { return c.instanceClassName }
func (c *classifier) setPackage(p *EPackage)    { c.pkg = p }

func (c *classifier) ETypeParameter(name string) *ETypeParameter {
	for _, p := range c.ETypeParameters {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// QualifiedName joins the names of the packages containing c and the name
// of c with dots.
func QualifiedName(c EClassifier) string {
	if c.EPackage() == nil {
		return c.Name()
	}
	return c.EPackage().QualifiedName() + "." + c.Name()
}

// IsReferenceType reports whether features of type c are references
// rather than attributes.
func IsReferenceType(c EClassifier) bool {
	k := c.Kind()
	return k == KindClass || k == KindInterface
}

// EClass is a generated class or interface.
type EClass struct {
	classifier
	Abstract  bool
	Interface bool

	EGenericSuperTypes  []*EGenericType
	EStructuralFeatures []*EStructuralFeature
	EOperations         []*EOperation
}

func NewClass(name string) *EClass {
	return &EClass{classifier: classifier{name: name}}
}

// NewInterface returns an EClass that is both abstract and an interface.
func NewInterface(name string) *EClass {
	return &EClass{classifier: classifier{name: name}, Abstract: true, Interface: true}
}

func (c *EClass) Kind() ClassifierKind {
	if c.Interface {
		return KindInterface
	}
	return KindClass
}

// ESuperTypes returns the classifiers of the generic super types.
func (c *EClass) ESuperTypes() []*EClass {
	var out []*EClass
	for _, g := range c.EGenericSuperTypes {
		if super, ok := g.EClassifier.(*EClass); ok {
			out = append(out, super)
		}
	}
	return out
}

func (c *EClass) AddSuperType(g *EGenericType) {
	c.EGenericSuperTypes = append(c.EGenericSuperTypes, g)
}

func (c *EClass) AddFeature(f *EStructuralFeature) {
	f.container = c
	c.EStructuralFeatures = append(c.EStructuralFeatures, f)
}

func (c *EClass) AddOperation(op *EOperation) {
	op.container = c
	c.EOperations = append(c.EOperations, op)
}

func (c *EClass) Feature(name string) *EStructuralFeature {
	for _, f := range c.EStructuralFeatures {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (c *EClass) EAttributes() []*EStructuralFeature { return c.featuresOf(FeatureAttribute) }
func (c *EClass) EReferences() []*EStructuralFeature { return c.featuresOf(FeatureReference) }

func (c *EClass) featuresOf(kind FeatureKind) []*EStructuralFeature {
	var out []*EStructuralFeature
	for _, f := range c.EStructuralFeatures {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// Operation returns the first operation named name.
func (c *EClass) Operation(name string) *EOperation {
	for _, op := range c.EOperations {
		if op.Name == name {
			return op
		}
	}
	return nil
}

type EEnumLiteral struct {
	Name    string
	Value   int
	Literal string
}

type EEnum struct {
	classifier
	ELiterals []*EEnumLiteral
}

func NewEnum(name string) *EEnum {
	return &EEnum{classifier: classifier{name: name}}
}

func (e *EEnum) Kind() ClassifierKind { return KindEnum }

// AddLiteral appends a literal whose value is its position.
func (e *EEnum) AddLiteral(name string) *EEnumLiteral {
	l := &EEnumLiteral{Name: name, Value: len(e.ELiterals), Literal: name}
	e.ELiterals = append(e.ELiterals, l)
	return l
}

func (e *EEnum) Literal(name string) *EEnumLiteral {
	for _, l := range e.ELiterals {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// EDataType is a classifier backed by a Java type that is not generated.
type EDataType struct {
	classifier
	Serializable bool
}

func NewDataType(name, instanceClassName string) *EDataType {
	return &EDataType{
		classifier:   classifier{name: name, instanceClassName: instanceClassName},
		Serializable: true,
	}
}

func (d *EDataType) Kind() ClassifierKind { return KindDataType }

// EPackage is a node of the package tree.
type EPackage struct {
	Name     string
	NsURI    string
	NsPrefix string

	ESubpackages []*EPackage
	EClassifiers []EClassifier

	super *EPackage
}

func NewPackage(name, nsURI string) *EPackage {
	return &EPackage{Name: name, NsURI: nsURI, NsPrefix: name}
}

func (p *EPackage) ESuperPackage() *EPackage { return p.super }

// QualifiedName joins the package names from the root down to p.
func (p *EPackage) QualifiedName() string {
	if p.super == nil {
		return p.Name
	}
	return p.super.QualifiedName() + "." + p.Name
}

func (p *EPackage) AddSubpackage(sub *EPackage) {
	sub.super = p
	p.ESubpackages = append(p.ESubpackages, sub)
}

func (p *EPackage) Subpackage(name string) *EPackage {
	for _, sub := range p.ESubpackages {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (p *EPackage) AddClassifier(c EClassifier) {
	c.setPackage(p)
	p.EClassifiers = append(p.EClassifiers, c)
}

func (p *EPackage) Classifier(name string) EClassifier {
	for _, c := range p.EClassifiers {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Walk visits p and every package below it, parents first.
func (p *EPackage) Walk(fn func(p *EPackage)) {
	fn(p)
	for _, sub := range p.ESubpackages {
		sub.Walk(fn)
	}
}

// Sort orders subpackages and classifiers of p and every package below
// it by name, ignoring case.
func (p *EPackage) Sort() {
	p.Walk(func(p *EPackage) {
		sort.SliceStable(p.ESubpackages, func(i, j int) bool {
			return lessFold(p.ESubpackages[i].Name, p.ESubpackages[j].Name)
		})
		sort.SliceStable(p.EClassifiers, func(i, j int) bool {
			return lessFold(p.EClassifiers[i].Name(), p.EClassifiers[j].Name())
		})
	})
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
