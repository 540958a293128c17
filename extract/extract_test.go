package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/model"
)

func newWorkspace(t *testing.T, sources map[string]string) *java.Workspace {
	t.Helper()
	p, err := java.NewSourceParser()
	require.NoError(t, err)
	defer p.Close()

	w := java.NewWorkspace(nil)
	for path, src := range sources {
		unit, err := p.Parse(path, []byte(src))
		require.NoError(t, err)
		w.AddUnit(unit)
	}
	return w
}

func extract(t *testing.T, platform java.Platform) *model.Model {
	t.Helper()
	m, err := New(platform).Extract()
	require.NoError(t, err)
	return m
}

var shopSources = map[string]string{
	"main/model/Customer.java": `package main.model;

import java.util.List;
import java.util.Map;

public class Customer {
    private String name;
    private boolean active;
    protected static final int LIMIT = 3;
    public List<Order> orders;
    Map<String, ? extends Number>[] totals;

    public Customer(String name) {}
    public String getName() { return name; }
    public String getName(int width) { return name; }
    public boolean isActive() { return active; }
    public void setName(String name) {}
    public void setName() {}
    public static void main(String[] args) {}
    public <E extends Exception> void fail(E cause) throws E, InvalidOrder {}

    public static class Address {
        String street;
    }
}
`,
	"main/model/Order.java": `package main.model;

public abstract class Order<T extends Comparable<T>> implements Comparable<Order<T>> {
    Customer.Address shipTo;
    Missing.Thing unknown;
    public abstract T total();
}

enum Status { ONE, TWO, THREE }

interface Priced { double price(); }
`,
	"main/model/InvalidOrder.java": `package main.model;
public class InvalidOrder extends RuntimeException {}
`,
	"Main.java": `public class Main {}`,
}

func TestExtractPackages(t *testing.T) {
	m := extract(t, newWorkspace(t, shopSources))

	root := m.Root()
	require.NotNil(t, root)
	assert.True(t, root.IsRoot())
	require.Len(t, root.Subpackages(), 1)
	main := root.Subpackages()[0]
	assert.Equal(t, "main", main.FullName())
	assert.Empty(t, main.Types())
	require.Len(t, main.Subpackages(), 1)
	assert.Equal(t, "main.model", main.Subpackages()[0].FullName())

	require.Len(t, root.Types(), 1)
	assert.Equal(t, "Main", root.Types()[0].FullName())

	var names []string
	for _, typ := range m.Types() {
		names = append(names, typ.FullName())
	}
	assert.Equal(t, []string{
		"Main",
		"main.model.Customer",
		"main.model.Customer.Address",
		"main.model.InvalidOrder",
		"main.model.Order",
		"main.model.Priced",
		"main.model.Status",
	}, names)
}

func TestExtractClass(t *testing.T) {
	m := extract(t, newWorkspace(t, shopSources))

	order := m.Type("main.model.Order")
	require.NotNil(t, order)
	assert.True(t, order.IsClass())
	assert.True(t, order.IsAbstract)
	assert.False(t, order.ExtendsThrowable)
	assert.Nil(t, order.SuperClass)

	require.Len(t, order.TypeParameters, 1)
	tp := order.TypeParameters[0]
	assert.Equal(t, "T", tp.Name)
	require.Len(t, tp.Bounds, 1)
	assert.Equal(t, "java.lang.Comparable<T>", tp.Bounds[0].String())

	require.Len(t, order.SuperInterfaces, 1)
	assert.Equal(t, "java.lang.Comparable<main.model.Order<T>>", order.SuperInterfaces[0].String())

	invalid := m.Type("main.model.InvalidOrder")
	require.NotNil(t, invalid)
	assert.True(t, invalid.ExtendsThrowable)
	require.NotNil(t, invalid.SuperClass)
	assert.Equal(t, "java.lang.RuntimeException", invalid.SuperClass.FullName)
}

func TestExtractInnerAndEnum(t *testing.T) {
	m := extract(t, newWorkspace(t, shopSources))

	address := m.Type("main.model.Customer.Address")
	require.NotNil(t, address)
	assert.True(t, address.IsInner())
	assert.Equal(t, "main.model.Customer", address.OuterTypeName)
	assert.Equal(t, "Customer.Address", address.TypeName())

	status := m.Type("main.model.Status")
	require.NotNil(t, status)
	assert.True(t, status.IsEnum())
	assert.Equal(t, []string{"ONE", "TWO", "THREE"}, status.Constants)
	assert.Empty(t, status.Fields())

	priced := m.Type("main.model.Priced")
	require.NotNil(t, priced)
	assert.True(t, priced.IsInterface())
	require.Len(t, priced.Methods(), 1)
	assert.True(t, priced.Methods()[0].IsAbstract)
}

func TestExtractFields(t *testing.T) {
	m := extract(t, newWorkspace(t, shopSources))
	customer := m.Type("main.model.Customer")
	require.NotNil(t, customer)

	name := customer.Field("name")
	require.NotNil(t, name)
	assert.Equal(t, model.ModifierPrivate, name.Modifier)
	assert.Equal(t, "java.lang.String", name.DataType.FullName)
	assert.Equal(t, "main.model.Customer.name", name.FullName())

	limit := customer.Field("LIMIT")
	require.NotNil(t, limit)
	assert.Equal(t, model.ModifierProtected, limit.Modifier)
	assert.True(t, limit.IsStatic)
	assert.True(t, limit.IsFinal)
	assert.Equal(t, "int", limit.DataType.FullName)

	orders := customer.Field("orders")
	require.NotNil(t, orders)
	assert.Equal(t, "java.util.List", orders.DataType.FullName)
	require.Len(t, orders.DataType.GenericArguments, 1)
	assert.Equal(t, "main.model.Order", orders.DataType.GenericArguments[0].FullName)

	totals := customer.Field("totals")
	require.NotNil(t, totals)
	assert.Equal(t, model.ModifierNone, totals.Modifier)
	assert.Equal(t, 1, totals.DataType.ArrayDimension)
	require.Len(t, totals.DataType.GenericArguments, 2)
	number := totals.DataType.GenericArguments[1]
	assert.Equal(t, model.WildcardUpperBound, number.Wildcard)
	assert.Equal(t, "java.lang.Number", number.FullName)
}

func TestExtractMethodKinds(t *testing.T) {
	m := extract(t, newWorkspace(t, shopSources))
	customer := m.Type("main.model.Customer")
	require.NotNil(t, customer)

	var kinds []model.MethodKind
	for _, method := range customer.Methods() {
		kinds = append(kinds, method.Kind)
	}
	assert.Equal(t, []model.MethodKind{
		model.MethodConstructor,
		model.MethodAccessor,
		model.MethodNormal,
		model.MethodAccessor,
		model.MethodMutator,
		model.MethodNormal,
		model.MethodMain,
		model.MethodNormal,
	}, kinds)

	ctor := customer.Methods()[0]
	assert.Nil(t, ctor.ReturnType)
	require.Len(t, ctor.Parameters, 1)
	assert.Equal(t, "name", ctor.Parameters[0].Identifier)

	setName := customer.Methods()[4]
	assert.Nil(t, setName.ReturnType)

	fail := customer.Methods()[7]
	require.Len(t, fail.TypeParameters, 1)
	assert.Equal(t, "E", fail.TypeParameters[0].Name)
	assert.Equal(t, "E", fail.Parameters[0].DataType.FullName)
	require.Len(t, fail.ThrownTypes, 2)
	assert.Equal(t, "E", fail.ThrownTypes[0].FullName)
	assert.Equal(t, "main.model.InvalidOrder", fail.ThrownTypes[1].FullName)

	// the heuristic does not touch the field list
	assert.Len(t, customer.Fields(), 5)
}

func TestUnresolvableNestedReferenceKeepsRawName(t *testing.T) {
	e := New(newWorkspace(t, shopSources))
	m, err := e.Extract()
	require.NoError(t, err)

	order := m.Type("main.model.Order")
	require.NotNil(t, order)
	unknown := order.Field("unknown")
	require.NotNil(t, unknown)
	assert.Equal(t, "Missing.Thing", unknown.DataType.FullName)
	assert.Equal(t, 1, e.Misses())

	shipTo := order.Field("shipTo")
	require.NotNil(t, shipTo)
	assert.Equal(t, "main.model.Customer.Address", shipTo.DataType.FullName)
}

func TestPseudoExternalInnerTypes(t *testing.T) {
	m := extract(t, newWorkspace(t, shopSources))

	assert.True(t, m.IsPseudoExternal("main.model.Customer.Address"))
	assert.False(t, m.IsPseudoExternal("main.model.Order"))
	assert.True(t, m.IsModelType("main.model.Customer.Address"))
	assert.False(t, m.IsExternal("main.model.Customer.Address"))
}

// layered finds types in lib when the primary workspace does not have
// them, standing in for a classpath.
type layered struct {
	*java.Workspace
	lib *java.Workspace
}

func (l layered) FindType(name string) (*java.TypeDecl, error) {
	if decl, err := l.Workspace.FindType(name); decl != nil || err != nil {
		return decl, err
	}
	return l.lib.FindType(name)
}

func TestExtractExternalTypes(t *testing.T) {
	app := newWorkspace(t, map[string]string{
		"app/Service.java": `package app;
import lib.Base;
public class Service {
    Base base;
}
`,
	})
	lib := newWorkspace(t, map[string]string{
		"lib/Base.java": `package lib;
public class Base {
    Helper helper;
}
class Helper {}
`,
	})

	e := New(layered{Workspace: app, lib: lib})
	m, err := e.Extract()
	require.NoError(t, err)

	assert.True(t, m.IsExternal("lib.Base"))
	assert.False(t, m.IsModelType("lib.Base"))
	base := m.Type("lib.Base")
	require.NotNil(t, base)
	require.Len(t, base.Fields(), 1)

	// names seen while extracting external types are not followed
	assert.False(t, m.Contains("lib.Helper"))
	assert.Contains(t, e.SeenNames(), "lib.Helper")
	assert.Equal(t, []*model.Type{base}, m.Externals())
}

// unresolving never resolves a name, so only the manual strategies apply.
type unresolving struct {
	*java.Workspace
}

func (unresolving) ResolveType(*java.TypeDecl, string) (string, bool, error) {
	return "", false, nil
}

func TestManualResolution(t *testing.T) {
	w := newWorkspace(t, map[string]string{
		"p/A.java": `package p;
import q.Holder;
public class A {
    class B { class C {} }
    Weird.C viaEnclosing;
    Holder.Deep viaImport;
    Other.Thing missing;
}
`,
		"q/Holder.java": `package q;
public class Holder { public static class Deep {} }
`,
	})

	e := New(unresolving{w})
	a, err := w.FindType("p.A")
	require.NoError(t, err)

	tests := []struct {
		sig  string
		want string
	}{
		{"QWeird.C;", "p.A.B.C"},
		{"QHolder.Deep;", "q.Holder.Deep"},
		{"QOther.Thing;", "Other.Thing"},
		{"QUnknown;", "Unknown"},
		{"[[I", "int"},
		{"Ljava.util.List<Ljava.lang.String;>;", "java.util.List"},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			dt, err := e.ResolveSignature(tt.sig, a)
			require.NoError(t, err)
			require.NotNil(t, dt)
			assert.Equal(t, tt.want, dt.FullName)
		})
	}
	assert.Equal(t, 2, e.Misses())
}

func TestResolveSignatureShapes(t *testing.T) {
	e := New(newWorkspace(t, nil))

	dt, err := e.ResolveSignature("V", nil)
	require.NoError(t, err)
	assert.Nil(t, dt)

	dt, err = e.ResolveSignature("[[I", nil)
	require.NoError(t, err)
	assert.Equal(t, "int[][]", dt.String())
	assert.Empty(t, e.SeenNames())

	dt, err = e.ResolveSignature("QMap<QString;*;>;", nil)
	require.NoError(t, err)
	assert.Equal(t, "Map", dt.FullName)
	require.Len(t, dt.GenericArguments, 2)
	assert.Equal(t, "java.lang.String", dt.GenericArguments[0].FullName)
	assert.Equal(t, model.WildcardUnbound, dt.GenericArguments[1].Wildcard)

	dt, err = e.ResolveSignature("-[QString;", nil)
	require.NoError(t, err)
	assert.Equal(t, model.WildcardLowerBound, dt.Wildcard)
	assert.Equal(t, 1, dt.ArrayDimension)

	assert.Equal(t, []string{"Map", "java.lang.String"}, e.SeenNames())
}

type failing struct {
	*java.Workspace
}

var errBroken = errors.New("broken symbol table")

func (failing) SuperTypes(*java.TypeDecl) ([]string, error) { return nil, errBroken }

func TestPlatformErrorsAbortExtraction(t *testing.T) {
	w := newWorkspace(t, map[string]string{"p/A.java": "package p; class A {}"})

	_, err := New(failing{w}).Extract()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "extract type p.A")
}
