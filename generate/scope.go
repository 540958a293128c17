package generate

import (
	"github.com/dhamidi/ecorify/ecore"
	"github.com/dhamidi/ecorify/model"
)

// typeScope resolves type parameter names against an operation first, its
// owning classifier second and the classifiers of the enclosing types last.
// Any of them may be nil.
type typeScope struct {
	inner     *ecore.EOperation
	outer     ecore.EClassifier
	enclosing []ecore.EClassifier

	// erased holds parameters of enclosing types that are not generated.
	erased map[string]bool
}

func (s typeScope) lookup(name string) *ecore.ETypeParameter {
	if s.inner != nil {
		if p := s.inner.ETypeParameter(name); p != nil {
			return p
		}
	}
	if s.outer != nil {
		if p := s.outer.ETypeParameter(name); p != nil {
			return p
		}
	}
	for _, c := range s.enclosing {
		if p := c.ETypeParameter(name); p != nil {
			return p
		}
	}
	return nil
}

// scopeOf returns the scope for the members of t, whose classifier is
// owner. Enclosing types are generated on demand.
func (g *Generator) scopeOf(t *model.Type, owner ecore.EClassifier) typeScope {
	sc := typeScope{outer: owner}
	for name := t.OuterTypeName; name != ""; {
		outer := g.model.Type(name)
		if outer == nil {
			break
		}
		if g.generatable(outer) {
			sc.enclosing = append(sc.enclosing, g.GenerateClassifier(outer))
		} else {
			for _, tp := range outer.TypeParameters {
				if sc.erased == nil {
					sc.erased = map[string]bool{}
				}
				sc.erased[tp.Name] = true
			}
		}
		name = outer.OuterTypeName
	}
	return sc
}
