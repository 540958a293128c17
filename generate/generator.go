// Package generate maps an intermediate model onto an ecore package tree.
package generate

import (
	"errors"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ecorify/config"
	"github.com/dhamidi/ecorify/ecore"
	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/model"
)

var log = commonlog.GetLogger("ecorify.generate")

var ErrNoRootPackage = errors.New("model has no root package")

const objectType = "java.lang.Object"

// shell is a classifier whose members are not generated yet.
type shell struct {
	t     *model.Type
	class *ecore.EClass
}

// Generator runs one generation over one model. Classifiers are generated
// at most once per full name.
type Generator struct {
	cfg    config.Config
	model  *model.Model
	policy *Policy

	root      *ecore.EPackage
	packages  *Hierarchy
	dataTypes *Hierarchy

	classifiers map[string]ecore.EClassifier
	pending     []*shell
}

func New(cfg config.Config, m *model.Model) *Generator {
	name := cfg.DefaultPackageName
	root := ecore.NewPackage(name, "http://"+name)
	return &Generator{
		cfg:         cfg,
		model:       m,
		policy:      NewPolicy(cfg),
		root:        root,
		packages:    NewHierarchy(root),
		classifiers: map[string]ecore.EClassifier{},
	}
}

func (g *Generator) Report() Report { return g.policy.Report() }

// Generate builds the package tree: shells for every generatable type
// first, then their members, then the optional root classifier. Packages
// are created when a classifier is placed in them, unless empty packages
// are extracted. The tree is sorted before it is returned.
func (g *Generator) Generate() (*ecore.EPackage, error) {
	if g.model == nil || g.model.Root() == nil {
		return nil, ErrNoRootPackage
	}

	g.generatePackage(g.model.Root(), true)

	for i := 0; i < len(g.pending); i++ {
		g.complete(g.pending[i])
	}
	g.pending = nil

	g.generateRootClassifier()
	g.root.Sort()

	report := g.policy.Report()
	log.Infof("generated %d classifiers, %s", len(g.classifiers), report)
	return g.root, nil
}

func (g *Generator) generatePackage(p *model.Package, isRoot bool) {
	if !isRoot {
		if !g.policy.AllowsPackage(p) {
			return
		}
		if g.cfg.ExtractEmptyPackages {
			g.packages.Package(p.FullName())
		}
	}
	for _, t := range p.Types() {
		if g.policy.AllowsType(t) {
			g.GenerateClassifier(t)
		}
	}
	for _, sub := range p.Subpackages() {
		g.generatePackage(sub, false)
	}
}

// generatable reports whether t is a model type that the policy allows,
// together with every package it lives in.
func (g *Generator) generatable(t *model.Type) bool {
	if !g.model.IsModelType(t.FullName()) || !g.policy.AllowsType(t) {
		return false
	}
	segments := splitPath(t.PackageName())
	for i := range segments {
		pkg := g.model.Package(strings.Join(segments[:i+1], "."))
		if pkg == nil || !g.policy.AllowsPackage(pkg) {
			return false
		}
	}
	return true
}

// GenerateClassifier returns the classifier of t, creating its shell on
// first use. Class and interface members are added by the completion
// pass of Generate.
func (g *Generator) GenerateClassifier(t *model.Type) ecore.EClassifier {
	if c, ok := g.classifiers[t.FullName()]; ok {
		return c
	}

	if t.IsEnum() {
		e := ecore.NewEnum(t.Name())
		g.classifiers[t.FullName()] = e
		g.place(t, e)
		for _, constant := range t.Constants {
			e.AddLiteral(constant)
		}
		e.ETypeParameters = declareTypeParameters(t.TypeParameters)
		g.resolveBounds(e.ETypeParameters, t.TypeParameters, g.scopeOf(t, e))
		return e
	}

	var c *ecore.EClass
	if t.IsInterface() {
		c = ecore.NewInterface(t.Name())
	} else {
		c = ecore.NewClass(t.Name())
		c.Abstract = t.IsAbstract
	}
	g.classifiers[t.FullName()] = c
	g.place(t, c)

	c.ETypeParameters = declareTypeParameters(t.TypeParameters)
	sc := g.scopeOf(t, c)
	g.resolveBounds(c.ETypeParameters, t.TypeParameters, sc)

	for _, dt := range t.SuperInterfaces {
		if super := g.superType(t, dt, sc); super != nil {
			c.AddSuperType(super)
		}
	}
	if t.IsClass() && t.SuperClass != nil {
		if super := g.superType(t, t.SuperClass, sc); super != nil {
			c.EGenericSuperTypes = append([]*ecore.EGenericType{super}, c.EGenericSuperTypes...)
		}
	}

	g.pending = append(g.pending, &shell{t: t, class: c})
	return c
}

// place adds the classifier of t to the package of t. Nested types go
// into packages named after their enclosing types.
func (g *Generator) place(t *model.Type, c ecore.EClassifier) {
	if !t.IsInner() {
		g.packages.Add(c, splitPath(t.PackageName()))
		return
	}
	outer := splitPath(t.TypeName())
	outer = outer[:len(outer)-1]
	for i := range outer {
		outer[i] += g.cfg.NestedTypePackageSuffix
	}
	NewHierarchy(g.packages.Package(t.PackageName())).Add(c, outer)
}

// superType maps a super type reference of t. Object and references that
// are not generated classes or interfaces yield nil.
func (g *Generator) superType(t *model.Type, dt *model.DataType, sc typeScope) *ecore.EGenericType {
	if dt.FullName == objectType {
		return nil
	}
	var target *ecore.EClass
	if st := g.model.Type(dt.FullName); st != nil && g.generatable(st) {
		target, _ = g.GenerateClassifier(st).(*ecore.EClass)
	}
	if target == nil {
		log.Warningf("%s: super type %s is not generated, skipping", t.FullName(), dt.FullName)
		return nil
	}
	super := ecore.ClassifierType(target)
	g.bindArguments(super, target, dt, sc)
	return super
}

// bindArguments attaches the generic arguments of dt when the classifier
// declares as many type parameters.
func (g *Generator) bindArguments(gt *ecore.EGenericType, c ecore.EClassifier, dt *model.DataType, sc typeScope) {
	if !dt.IsGeneric() || c == nil {
		return
	}
	if len(dt.GenericArguments) != len(typeParametersOf(c)) {
		return
	}
	for _, arg := range dt.GenericArguments {
		gt.ETypeArguments = append(gt.ETypeArguments, g.genericType(arg, sc))
	}
}

func typeParametersOf(c ecore.EClassifier) []*ecore.ETypeParameter {
	switch c := c.(type) {
	case *ecore.EClass:
		return c.ETypeParameters
	case *ecore.EEnum:
		return c.ETypeParameters
	case *ecore.EDataType:
		return c.ETypeParameters
	}
	return nil
}

// declareTypeParameters creates the parameters without bounds. Owners
// attach them before any bound or super type is resolved.
func declareTypeParameters(tps []*model.TypeParameter) []*ecore.ETypeParameter {
	if len(tps) == 0 {
		return nil
	}
	params := make([]*ecore.ETypeParameter, len(tps))
	for i, tp := range tps {
		params[i] = &ecore.ETypeParameter{Name: tp.Name}
	}
	return params
}

func (g *Generator) resolveBounds(params []*ecore.ETypeParameter, tps []*model.TypeParameter, sc typeScope) {
	for i, tp := range tps {
		for _, bound := range tp.Bounds {
			params[i].EBounds = append(params[i].EBounds, g.genericType(bound, sc))
		}
	}
}

// genericType maps a data type occurrence. Type parameters in scope win
// over classifiers of the same name.
func (g *Generator) genericType(dt *model.DataType, sc typeScope) *ecore.EGenericType {
	switch dt.Wildcard {
	case model.WildcardUnbound:
		return ecore.Wildcard()
	case model.WildcardUpperBound:
		return &ecore.EGenericType{EUpperBound: g.genericType(withoutWildcard(dt), sc)}
	case model.WildcardLowerBound:
		return &ecore.EGenericType{ELowerBound: g.genericType(withoutWildcard(dt), sc)}
	}
	if dt.IsArray() {
		return ecore.ClassifierType(g.arrayDataType(dt))
	}
	if p := sc.lookup(dt.FullName); p != nil {
		return ecore.TypeParameterType(p)
	}
	if sc.erased[dt.FullName] {
		return ecore.ClassifierType(ecore.EJavaObject)
	}
	c := g.classifierFor(dt.FullName)
	gt := ecore.ClassifierType(c)
	g.bindArguments(gt, c, dt, sc)
	return gt
}

func withoutWildcard(dt *model.DataType) *model.DataType {
	c := *dt
	c.Wildcard = model.WildcardNone
	return &c
}

// classifierFor maps a full name to a built-in data type, a generated
// classifier or a data type standing in for a type that is not generated.
func (g *Generator) classifierFor(name string) ecore.EClassifier {
	if d, ok := ecore.Builtin(name); ok {
		return d
	}
	if c, ok := g.classifiers[name]; ok {
		return c
	}
	if t := g.model.Type(name); t != nil && g.generatable(t) {
		return g.GenerateClassifier(t)
	}
	if g.model.IsPseudoExternal(name) {
		log.Debugf("nested type %s is referenced but not generated", name)
	}
	return g.dataType(name)
}

func (g *Generator) dataTypeHierarchy() *Hierarchy {
	if g.dataTypes == nil {
		g.dataTypes = NewHierarchy(g.packages.Package(g.cfg.DataTypePackageName))
	}
	return g.dataTypes
}

// dataType returns the data type for a Java name, placed below the data
// type package by its package and enclosing type names.
func (g *Generator) dataType(name string) *ecore.EDataType {
	return g.namedDataType(name, name, "")
}

// arrayDataType returns the data type for an array outside a many-valued
// feature, named after its element type.
func (g *Generator) arrayDataType(dt *model.DataType) *ecore.EDataType {
	dims := strings.Repeat("[]", dt.ArrayDimension)
	return g.namedDataType(dt.FullName+dims, dt.FullName, strings.Repeat("Array", dt.ArrayDimension))
}

func (g *Generator) namedDataType(instanceClassName, javaName, suffix string) *ecore.EDataType {
	if c, ok := g.classifiers[instanceClassName]; ok {
		if d, ok := c.(*ecore.EDataType); ok {
			return d
		}
	}
	pkg, typePath := java.SplitQualifiedName(javaName)
	segments := append(splitPath(pkg), splitPath(typePath)...)
	d := ecore.NewDataType(segments[len(segments)-1]+suffix, instanceClassName)
	g.dataTypeHierarchy().Add(d, segments[:len(segments)-1])
	g.classifiers[instanceClassName] = d
	log.Debugf("data type %s for %s", ecore.QualifiedName(d), instanceClassName)
	return d
}

// generateRootClassifier adds the root container or the dummy class to
// the root package.
func (g *Generator) generateRootClassifier() {
	switch {
	case g.cfg.GenerateRootContainer:
		if g.cfg.GenerateDummyClass {
			log.Warning("both a root container and a dummy class are configured, generating the root container only")
		}
		container := ecore.NewClass(g.cfg.RootContainerName)
		contents := ecore.NewReference("contents", ecore.ClassifierType(ecore.EObject))
		contents.UpperBound = ecore.Unbounded
		contents.Containment = true
		container.AddFeature(contents)
		g.addRootClassifier(container)
	case g.cfg.GenerateDummyClass:
		g.addRootClassifier(ecore.NewClass(g.cfg.DummyClassName))
	}
}

func (g *Generator) addRootClassifier(c *ecore.EClass) {
	if existing := g.root.Classifier(c.Name()); existing != nil {
		log.Warningf("root package already has a classifier named %s, skipping", c.Name())
		return
	}
	g.root.AddClassifier(c)
}
