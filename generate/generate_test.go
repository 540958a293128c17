package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ecorify/config"
	"github.com/dhamidi/ecorify/ecore"
	"github.com/dhamidi/ecorify/model"
)

func newModel(t *testing.T, types ...*model.Type) *model.Model {
	t.Helper()
	m := model.New()
	require.NoError(t, m.AddPackage(model.NewPackage("")))
	for _, typ := range types {
		if typ.PackageName() != "" {
			segments := strings.Split(typ.PackageName(), ".")
			for i := range segments {
				name := strings.Join(segments[:i+1], ".")
				if m.Package(name) == nil {
					require.NoError(t, m.AddPackage(model.NewPackage(name)))
				}
			}
		}
		require.NoError(t, m.AddType(typ))
	}
	m.Sort()
	return m
}

func generate(t *testing.T, cfg config.Config, m *model.Model) (*ecore.EPackage, *Generator) {
	t.Helper()
	g := New(cfg, m)
	root, err := g.Generate()
	require.NoError(t, err)
	return root, g
}

func named(name string, args ...*model.DataType) *model.DataType {
	return &model.DataType{FullName: name, GenericArguments: args}
}

func class(t *testing.T, root *ecore.EPackage, path ...string) *ecore.EClass {
	t.Helper()
	pkg := root
	for _, segment := range path[:len(path)-1] {
		pkg = pkg.Subpackage(segment)
		require.NotNil(t, pkg, segment)
	}
	c, ok := pkg.Classifier(path[len(path)-1]).(*ecore.EClass)
	require.True(t, ok, "%v is not a class", path)
	return c
}

func TestGenerateSimpleClass(t *testing.T) {
	m := newModel(t, model.NewType(model.TypeKindClass, "", "Order"))
	root, _ := generate(t, config.Default(), m)

	assert.Equal(t, "model", root.Name)
	require.Len(t, root.EClassifiers, 1)
	order := class(t, root, "Order")
	assert.False(t, order.Abstract)
	assert.False(t, order.Interface)
	assert.Empty(t, root.ESubpackages)
}

func TestGenerateRequiresRootPackage(t *testing.T) {
	_, err := New(config.Default(), model.New()).Generate()
	assert.ErrorIs(t, err, ErrNoRootPackage)
}

func TestAbstractAndInterfaceMapping(t *testing.T) {
	abstract := model.NewType(model.TypeKindClass, "shop", "Base")
	abstract.IsAbstract = true
	iface := model.NewType(model.TypeKindInterface, "shop", "Priced")
	root, _ := generate(t, config.Default(), newModel(t, abstract, iface))

	base := class(t, root, "shop", "Base")
	assert.True(t, base.Abstract)
	assert.False(t, base.Interface)

	priced := class(t, root, "shop", "Priced")
	assert.True(t, priced.Abstract)
	assert.True(t, priced.Interface)
}

func TestClassifierMemoization(t *testing.T) {
	order := model.NewType(model.TypeKindClass, "", "Order")
	g := New(config.Default(), newModel(t, order))

	first := g.GenerateClassifier(order)
	second := g.GenerateClassifier(order)
	assert.Same(t, first, second)
	assert.Len(t, g.pending, 1)
	assert.Len(t, g.root.EClassifiers, 1)
}

func TestEnumLiterals(t *testing.T) {
	count := model.NewType(model.TypeKindEnum, "", "Count")
	count.Constants = []string{"ONE", "TWO", "THREE"}
	root, _ := generate(t, config.Default(), newModel(t, count))

	enum, ok := root.Classifier("Count").(*ecore.EEnum)
	require.True(t, ok)
	require.Len(t, enum.ELiterals, 3)
	for i, name := range count.Constants {
		l := enum.Literal(name)
		require.NotNil(t, l, name)
		assert.Equal(t, i, l.Value)
	}
}

func TestPrivateFieldPolicy(t *testing.T) {
	newOrder := func() *model.Model {
		order := model.NewType(model.TypeKindClass, "", "Order")
		secret := model.NewField("secret", named("java.lang.String"))
		secret.Modifier = model.ModifierPrivate
		order.AddField(secret)
		return newModel(t, order)
	}

	cfg := config.Default()
	cfg.ExtractPrivateAttributes = false
	root, g := generate(t, cfg, newOrder())
	assert.Nil(t, class(t, root, "Order").Feature("secret"))
	assert.Equal(t, Report{KindField: 1}, g.Report())

	cfg.ExtractPrivateAttributes = true
	root, g = generate(t, cfg, newOrder())
	assert.NotNil(t, class(t, root, "Order").Feature("secret"))
	assert.Zero(t, g.Report().Total())
}

func TestDeselectedFieldIsExcluded(t *testing.T) {
	order := model.NewType(model.TypeKindClass, "", "Order")
	note := model.NewField("note", named("java.lang.String"))
	note.SetSelected(false)
	order.AddField(note)

	root, _ := generate(t, config.Default(), newModel(t, order))
	assert.Empty(t, class(t, root, "Order").EStructuralFeatures)
}

func TestFieldShapes(t *testing.T) {
	line := model.NewType(model.TypeKindClass, "shop", "Line")
	status := model.NewType(model.TypeKindEnum, "shop", "Status")
	order := model.NewType(model.TypeKindClass, "shop", "Order")
	order.AddField(model.NewField("lines", named("java.util.List", named("shop.Line"))))
	order.AddField(model.NewField("tags", named("java.util.Set", &model.DataType{FullName: "java.lang.String", Wildcard: model.WildcardUpperBound})))
	order.AddField(model.NewField("names", &model.DataType{FullName: "java.lang.String", ArrayDimension: 1}))
	order.AddField(model.NewField("grid", &model.DataType{FullName: "int", ArrayDimension: 2}))
	order.AddField(model.NewField("status", named("shop.Status")))
	order.AddField(model.NewField("index", named("java.util.Map", named("java.lang.String"), named("shop.Line"))))
	first := model.NewField("first", named("shop.Line"))
	first.IsFinal = true
	order.AddField(first)

	root, _ := generate(t, config.Default(), newModel(t, line, status, order))
	c := class(t, root, "shop", "Order")
	lineClass := class(t, root, "shop", "Line")

	lines := c.Feature("lines")
	require.NotNil(t, lines)
	assert.Equal(t, ecore.FeatureReference, lines.Kind)
	assert.Equal(t, ecore.Unbounded, lines.UpperBound)
	assert.Equal(t, ecore.EClassifier(lineClass), lines.EType())

	tags := c.Feature("tags")
	require.NotNil(t, tags)
	assert.Equal(t, ecore.FeatureAttribute, tags.Kind)
	assert.True(t, tags.IsMany())
	assert.Equal(t, ecore.EClassifier(ecore.EString), tags.EType())

	names := c.Feature("names")
	require.NotNil(t, names)
	assert.True(t, names.IsMany())
	assert.Equal(t, ecore.EClassifier(ecore.EString), names.EType())

	grid := c.Feature("grid")
	require.NotNil(t, grid)
	assert.False(t, grid.IsMany())
	assert.Equal(t, "intArrayArray", grid.EType().Name())
	assert.Equal(t, "int[][]", grid.EType().InstanceClassName())

	statusFeature := c.Feature("status")
	require.NotNil(t, statusFeature)
	assert.Equal(t, ecore.FeatureAttribute, statusFeature.Kind)
	assert.Equal(t, ecore.KindEnum, statusFeature.EType().Kind())

	index := c.Feature("index")
	require.NotNil(t, index)
	assert.Equal(t, ecore.FeatureAttribute, index.Kind)
	assert.False(t, index.IsMany())
	assert.Empty(t, index.EGenericType.ETypeArguments)
	assert.Equal(t, "java.util.Map", index.EType().InstanceClassName())
	assert.Equal(t, "model.datatypes.java.util", index.EType().EPackage().QualifiedName())

	assert.True(t, lines.Changeable)
	assert.False(t, c.Feature("first").Changeable)
}

func TestMultiplicitiesDisabled(t *testing.T) {
	line := model.NewType(model.TypeKindClass, "", "Line")
	order := model.NewType(model.TypeKindClass, "", "Order")
	order.AddField(model.NewField("lines", named("java.util.List", named("Line"))))

	cfg := config.Default()
	cfg.AllowMultiplicities = false
	root, _ := generate(t, cfg, newModel(t, line, order))

	lines := class(t, root, "Order").Feature("lines")
	require.NotNil(t, lines)
	assert.Equal(t, ecore.FeatureAttribute, lines.Kind)
	assert.False(t, lines.IsMany())
	assert.Equal(t, "List", lines.EType().Name())
}

func TestSuperTypesAndGenericBinding(t *testing.T) {
	box := model.NewType(model.TypeKindClass, "", "Box")
	box.TypeParameters = []*model.TypeParameter{{Name: "T"}}
	priced := model.NewType(model.TypeKindInterface, "", "Priced")
	intBox := model.NewType(model.TypeKindClass, "", "IntBox")
	intBox.SuperClass = named("Box", named("java.lang.Integer"))
	intBox.SuperInterfaces = []*model.DataType{
		named("Priced"),
		named("java.lang.Comparable", named("IntBox")),
	}
	plain := model.NewType(model.TypeKindClass, "", "Plain")
	plain.SuperClass = named("java.lang.Object")

	root, _ := generate(t, config.Default(), newModel(t, box, priced, intBox, plain))

	c := class(t, root, "IntBox")
	require.Len(t, c.EGenericSuperTypes, 2)
	super := c.EGenericSuperTypes[0]
	assert.Equal(t, ecore.EClassifier(class(t, root, "Box")), super.EClassifier)
	require.Len(t, super.ETypeArguments, 1)
	assert.Equal(t, ecore.EClassifier(ecore.EIntegerObject), super.ETypeArguments[0].EClassifier)
	assert.Equal(t, []*ecore.EClass{class(t, root, "Box"), class(t, root, "Priced")}, c.ESuperTypes())

	assert.Empty(t, class(t, root, "Plain").EGenericSuperTypes)
}

func TestTypeParameterFeatures(t *testing.T) {
	item := model.NewType(model.TypeKindClass, "", "Item")
	holder := model.NewType(model.TypeKindClass, "", "Holder")
	holder.TypeParameters = []*model.TypeParameter{
		{Name: "T", Bounds: []*model.DataType{named("Item")}},
		{Name: "V"},
	}
	holder.AddField(model.NewField("item", named("T")))
	holder.AddField(model.NewField("value", named("V")))

	first := model.NewMethod("first")
	first.Modifier = model.ModifierPublic
	first.TypeParameters = []*model.TypeParameter{{Name: "E"}}
	first.ReturnType = named("E")
	first.Parameters = []*model.Parameter{
		{Variable: model.Variable{Identifier: "fallback", DataType: named("T")}},
	}
	first.ThrownTypes = []*model.DataType{named("java.io.IOException")}
	holder.AddMethod(first)

	root, _ := generate(t, config.Default(), newModel(t, item, holder))
	c := class(t, root, "Holder")
	require.Len(t, c.ETypeParameters, 2)
	require.Len(t, c.ETypeParameters[0].EBounds, 1)
	assert.Equal(t, ecore.EClassifier(class(t, root, "Item")), c.ETypeParameters[0].EBounds[0].EClassifier)

	itemFeature := c.Feature("item")
	require.NotNil(t, itemFeature)
	assert.Equal(t, ecore.FeatureReference, itemFeature.Kind)
	assert.Same(t, c.ETypeParameters[0], itemFeature.EGenericType.ETypeParameter)

	value := c.Feature("value")
	require.NotNil(t, value)
	assert.Equal(t, ecore.FeatureAttribute, value.Kind)

	op := c.Operation("first")
	require.NotNil(t, op)
	require.Len(t, op.ETypeParameters, 1)
	assert.Same(t, op.ETypeParameters[0], op.EGenericType.ETypeParameter)
	require.Len(t, op.EParameters, 1)
	assert.Same(t, c.ETypeParameters[0], op.EParameters[0].EGenericType.ETypeParameter)
	require.Len(t, op.EGenericExceptions, 1)
	assert.Equal(t, "IOException", op.EGenericExceptions[0].EClassifier.Name())
}

func TestMethodPolicy(t *testing.T) {
	order := model.NewType(model.TypeKindClass, "", "Order")
	ctor := model.NewMethod("Order")
	ctor.Kind = model.MethodConstructor
	order.AddMethod(ctor)
	helper := model.NewMethod("helper")
	helper.IsStatic = true
	order.AddMethod(helper)
	hidden := model.NewMethod("hidden")
	hidden.Modifier = model.ModifierPrivate
	order.AddMethod(hidden)
	total := model.NewMethod("total")
	total.Modifier = model.ModifierPublic
	total.ReturnType = named("double")
	order.AddMethod(total)

	root, g := generate(t, config.Default(), newModel(t, order))
	c := class(t, root, "Order")
	require.Len(t, c.EOperations, 1)
	assert.Equal(t, "total", c.EOperations[0].Name)
	assert.Equal(t, ecore.EClassifier(ecore.EDouble), c.EOperations[0].EGenericType.EClassifier)
	assert.Equal(t, Report{KindMethod: 3}, g.Report())
}

func TestNestedTypes(t *testing.T) {
	newShop := func() *model.Model {
		customer := model.NewType(model.TypeKindClass, "shop", "Customer")
		address := model.NewType(model.TypeKindClass, "shop", "Customer$Address")
		address.OuterTypeName = "shop.Customer"
		customer.AddField(model.NewField("address", named("shop.Customer.Address")))
		m := newModel(t, customer, address)
		m.MarkPseudoExternal("shop.Customer.Address")
		return m
	}

	cfg := config.Default()
	cfg.NestedTypePackageSuffix = "_"
	root, _ := generate(t, cfg, newShop())
	address := class(t, root, "shop", "Customer_", "Address")
	assert.Equal(t, "http://model/shop/Customer_", address.EPackage().NsURI)
	ref := class(t, root, "shop", "Customer").Feature("address")
	require.NotNil(t, ref)
	assert.Equal(t, ecore.FeatureReference, ref.Kind)

	cfg.ExtractNestedTypes = false
	root, g := generate(t, cfg, newShop())
	assert.Nil(t, root.Subpackage("shop").Subpackage("Customer_"))
	attr := class(t, root, "shop", "Customer").Feature("address")
	require.NotNil(t, attr)
	assert.Equal(t, ecore.FeatureAttribute, attr.Kind)
	assert.Equal(t, "model.datatypes.shop.Customer.Address", ecore.QualifiedName(attr.EType()))
	assert.Equal(t, Report{KindType: 1}, g.Report())
}

func TestPackagePolicy(t *testing.T) {
	order := model.NewType(model.TypeKindClass, "shop", "Order")
	m := newModel(t, order)
	require.NoError(t, m.AddPackage(model.NewPackage("empty")))

	root, _ := generate(t, config.Default(), m)
	assert.Nil(t, root.Subpackage("empty"))
	assert.NotNil(t, root.Subpackage("shop"))

	cfg := config.Default()
	cfg.ExtractEmptyPackages = true
	root, _ = generate(t, cfg, m)
	require.NotNil(t, root.Subpackage("empty"))
	assert.Equal(t, "http://model/empty", root.Subpackage("empty").NsURI)

	m.Package("shop").SetSelected(false)
	root, g := generate(t, cfg, m)
	assert.Nil(t, root.Subpackage("shop"))
	assert.Equal(t, 1, g.Report()[KindPackage])
}

func TestRootClassifiers(t *testing.T) {
	cfg := config.Default()
	cfg.GenerateDummyClass = true
	root, _ := generate(t, cfg, newModel(t))
	assert.NotNil(t, root.Classifier("Dummy"))

	cfg.GenerateRootContainer = true
	root, _ = generate(t, cfg, newModel(t))
	assert.Nil(t, root.Classifier("Dummy"))
	container := class(t, root, "Root")
	require.Len(t, container.EStructuralFeatures, 1)
	contents := container.EStructuralFeatures[0]
	assert.True(t, contents.Containment)
	assert.Equal(t, ecore.Unbounded, contents.UpperBound)
	assert.Equal(t, ecore.EClassifier(ecore.EObject), contents.EType())
}

func TestGeneratedTreeIsSorted(t *testing.T) {
	m := newModel(t,
		model.NewType(model.TypeKindClass, "", "zeta"),
		model.NewType(model.TypeKindClass, "", "Alpha"),
		model.NewType(model.TypeKindClass, "", "beta"),
	)
	root, _ := generate(t, config.Default(), m)
	var names []string
	for _, c := range root.EClassifiers {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Alpha", "beta", "zeta"}, names)
}

func TestCyclicGenericBindings(t *testing.T) {
	a := model.NewType(model.TypeKindClass, "", "A")
	a.TypeParameters = []*model.TypeParameter{{Name: "T", Bounds: []*model.DataType{named("B", named("T"))}}}
	b := model.NewType(model.TypeKindClass, "", "B")
	b.TypeParameters = []*model.TypeParameter{{Name: "U"}}
	b.SuperClass = named("A", named("B", named("U")))
	base := model.NewType(model.TypeKindClass, "", "Base")
	base.TypeParameters = []*model.TypeParameter{{Name: "S", Bounds: []*model.DataType{named("Base", named("S"))}}}

	root, _ := generate(t, config.Default(), newModel(t, a, b, base))
	classA, classB := class(t, root, "A"), class(t, root, "B")

	bound := classA.ETypeParameters[0].EBounds[0]
	assert.Equal(t, ecore.EClassifier(classB), bound.EClassifier)
	require.Len(t, bound.ETypeArguments, 1)
	assert.Same(t, classA.ETypeParameters[0], bound.ETypeArguments[0].ETypeParameter)

	require.Len(t, classB.EGenericSuperTypes, 1)
	super := classB.EGenericSuperTypes[0]
	assert.Equal(t, ecore.EClassifier(classA), super.EClassifier)
	require.Len(t, super.ETypeArguments, 1)
	arg := super.ETypeArguments[0]
	assert.Equal(t, ecore.EClassifier(classB), arg.EClassifier)
	require.Len(t, arg.ETypeArguments, 1)
	assert.Same(t, classB.ETypeParameters[0], arg.ETypeArguments[0].ETypeParameter)

	classBase := class(t, root, "Base")
	selfBound := classBase.ETypeParameters[0].EBounds[0]
	assert.Equal(t, ecore.EClassifier(classBase), selfBound.EClassifier)
	require.Len(t, selfBound.ETypeArguments, 1)
	assert.Same(t, classBase.ETypeParameters[0], selfBound.ETypeArguments[0].ETypeParameter)
}

func TestEnclosingTypeParameters(t *testing.T) {
	newBox := func() *model.Model {
		box := model.NewType(model.TypeKindClass, "", "Box")
		box.TypeParameters = []*model.TypeParameter{{Name: "T"}}
		node := model.NewType(model.TypeKindClass, "", "Box$Node")
		node.OuterTypeName = "Box"
		node.AddField(model.NewField("value", named("T")))
		get := model.NewMethod("get")
		get.Modifier = model.ModifierPublic
		get.ReturnType = named("T")
		node.AddMethod(get)
		return newModel(t, box, node)
	}

	root, _ := generate(t, config.Default(), newBox())
	box := class(t, root, "Box")
	node := class(t, root, "Box", "Node")
	value := node.Feature("value")
	require.NotNil(t, value)
	assert.Same(t, box.ETypeParameters[0], value.EGenericType.ETypeParameter)
	require.NotNil(t, node.Operation("get"))
	assert.Same(t, box.ETypeParameters[0], node.Operation("get").EGenericType.ETypeParameter)
	assert.Nil(t, root.Subpackage("datatypes"))

	m := newBox()
	m.Type("Box").SetSelected(false)
	root, _ = generate(t, config.Default(), m)
	assert.Nil(t, root.Classifier("Box"))
	value = class(t, root, "Box", "Node").Feature("value")
	require.NotNil(t, value)
	assert.Equal(t, ecore.FeatureAttribute, value.Kind)
	assert.Equal(t, ecore.EClassifier(ecore.EJavaObject), value.EType())
}

func TestPackageWithoutGeneratedTypes(t *testing.T) {
	hidden := model.NewType(model.TypeKindClass, "shop", "Hidden")
	hidden.SetSelected(false)
	m := newModel(t, hidden)

	root, g := generate(t, config.Default(), m)
	assert.Nil(t, root.Subpackage("shop"))
	assert.Equal(t, Report{KindType: 1}, g.Report())

	cfg := config.Default()
	cfg.ExtractEmptyPackages = true
	root, _ = generate(t, cfg, m)
	require.NotNil(t, root.Subpackage("shop"))
	assert.Empty(t, root.Subpackage("shop").EClassifiers)
}
