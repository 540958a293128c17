package generate

import (
	"github.com/dhamidi/ecorify/ecore"
	"github.com/dhamidi/ecorify/model"
)

// collectionTypes are unwrapped into many-valued features when
// multiplicities are allowed.
var collectionTypes = map[string]bool{
	"java.lang.Iterable":                        true,
	"java.util.Collection":                      true,
	"java.util.List":                            true,
	"java.util.ArrayList":                       true,
	"java.util.LinkedList":                      true,
	"java.util.Vector":                          true,
	"java.util.Set":                             true,
	"java.util.HashSet":                         true,
	"java.util.LinkedHashSet":                   true,
	"java.util.SortedSet":                       true,
	"java.util.NavigableSet":                    true,
	"java.util.TreeSet":                         true,
	"java.util.Queue":                           true,
	"java.util.Deque":                           true,
	"java.util.ArrayDeque":                      true,
	"java.util.PriorityQueue":                   true,
	"java.util.concurrent.CopyOnWriteArrayList": true,
}

// complete adds the features and operations of a class or interface shell.
func (g *Generator) complete(s *shell) {
	g.addFields(s.t, s.class)
	g.addOperations(s.t, s.class)
}

func (g *Generator) addFields(t *model.Type, c *ecore.EClass) {
	sc := g.scopeOf(t, c)
	for _, f := range t.Fields() {
		if !g.policy.AllowsField(f) {
			continue
		}
		c.AddFeature(g.feature(f, sc))
	}
}

func (g *Generator) feature(f *model.Field, sc typeScope) *ecore.EStructuralFeature {
	dt, many := g.unwrap(f.DataType)
	gt := g.genericType(dt, sc)

	var feature *ecore.EStructuralFeature
	if isReference(gt) {
		feature = ecore.NewReference(f.Identifier, gt)
	} else {
		feature = ecore.NewAttribute(f.Identifier, gt)
	}
	if many {
		feature.UpperBound = ecore.Unbounded
	}
	if f.IsFinal && g.cfg.RespectFinalAsUnchangeable {
		feature.Changeable = false
	}
	return feature
}

// unwrap returns the element type of a collection or one-dimensional array
// when multiplicities are allowed. Wildcard elements are replaced by their
// bound.
func (g *Generator) unwrap(dt *model.DataType) (*model.DataType, bool) {
	if !g.cfg.AllowMultiplicities {
		return dt, false
	}
	switch {
	case !dt.IsArray() && collectionTypes[dt.FullName] && len(dt.GenericArguments) == 1:
		elem := dt.GenericArguments[0]
		if elem.Wildcard == model.WildcardUnbound {
			return &model.DataType{FullName: objectType}, true
		}
		return withoutWildcard(elem), true
	case dt.ArrayDimension == 1:
		return dt.ElementType(), true
	}
	return dt, false
}

// isReference reports whether a feature of type gt refers to generated
// classes or interfaces. Features typed by a type parameter follow the
// parameter's first bound.
func isReference(gt *ecore.EGenericType) bool {
	switch {
	case gt.EClassifier != nil:
		return ecore.IsReferenceType(gt.EClassifier)
	case gt.ETypeParameter != nil:
		bounds := gt.ETypeParameter.EBounds
		return len(bounds) > 0 && bounds[0].EClassifier != nil && ecore.IsReferenceType(bounds[0].EClassifier)
	}
	return false
}

func (g *Generator) addOperations(t *model.Type, c *ecore.EClass) {
	sc := g.scopeOf(t, c)
	for _, m := range t.Methods() {
		if !g.policy.AllowsMethod(m) {
			continue
		}
		c.AddOperation(g.operation(m, sc))
	}
}

func (g *Generator) operation(m *model.Method, owner typeScope) *ecore.EOperation {
	op := ecore.NewOperation(m.Name())
	op.ETypeParameters = declareTypeParameters(m.TypeParameters)
	sc := owner
	sc.inner = op
	g.resolveBounds(op.ETypeParameters, m.TypeParameters, sc)

	if m.ReturnType != nil {
		op.EGenericType = g.genericType(m.ReturnType, sc)
	}
	for _, p := range m.Parameters {
		op.EParameters = append(op.EParameters, &ecore.EParameter{
			Name:         p.Identifier,
			EGenericType: g.genericType(p.DataType, sc),
		})
	}
	for _, thrown := range m.ThrownTypes {
		op.EGenericExceptions = append(op.EGenericExceptions, g.genericType(thrown, sc))
	}
	return op
}
