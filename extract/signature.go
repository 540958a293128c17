package extract

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/model"
)

// scope is the lexical context a signature is resolved in: the declaring
// type and, inside a method, the method's own type parameters.
type scope struct {
	decl       *java.TypeDecl
	methodVars []java.TypeParameterDecl
}

func (s scope) isTypeVariable(name string) bool {
	for _, tp := range s.methodVars {
		if tp.Name == name {
			return true
		}
	}
	for c := s.decl; c != nil; c = c.Enclosing {
		for _, tp := range c.TypeParameters {
			if tp.Name == name {
				return true
			}
		}
	}
	return false
}

// ResolveSignature turns a type signature written in decl into a data type.
// Void yields nil. Names the platform cannot resolve fall back to
// the raw name; only platform failures are errors.
func (e *Extractor) ResolveSignature(sig string, decl *java.TypeDecl) (*model.DataType, error) {
	return e.resolve(sig, scope{decl: decl})
}

func (e *Extractor) resolve(sig string, sc scope) (*model.DataType, error) {
	if sig == "" || java.Kind(sig) == java.SignatureVoid {
		return nil, nil
	}
	dt := &model.DataType{ArrayDimension: java.ArrayCount(sig)}
	s := java.ElementType(sig)

	switch marker, bound := java.WildcardBound(s); marker {
	case '*':
		dt.Wildcard = model.WildcardUnbound
		dt.FullName = "java.lang.Object"
		return dt, nil
	case '+':
		dt.Wildcard = model.WildcardUpperBound
		s = bound
	case '-':
		dt.Wildcard = model.WildcardLowerBound
		s = bound
	}
	dt.ArrayDimension += java.ArrayCount(s)
	s = java.ElementType(s)
	name := java.SignatureName(s)

	switch java.Kind(s) {
	case java.SignatureBase:
		dt.FullName = name
		return dt, nil
	case java.SignatureTypeVariable:
		dt.FullName = name
	case java.SignatureClass:
		dt.FullName = name
		e.seen[name] = true
	case java.SignatureUnresolved:
		if sc.isTypeVariable(name) {
			dt.FullName = name
			break
		}
		qn, ok, err := e.platform.ResolveType(sc.decl, name)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		if !ok {
			if qn, err = e.resolveManually(name, sc.decl); err != nil {
				return nil, err
			}
		}
		dt.FullName = qn
		e.seen[qn] = true
	default:
		return nil, fmt.Errorf("malformed signature %q", sig)
	}

	for _, arg := range java.TypeArguments(s) {
		argType, err := e.resolve(arg, sc)
		if err != nil {
			return nil, err
		}
		if argType != nil {
			dt.GenericArguments = append(dt.GenericArguments, argType)
		}
	}
	return dt, nil
}

// resolveManually handles names the platform could not resolve. Nested
// references ("Outer.Inner") are looked up in the enclosing types of decl,
// then through the import whose last segment matches "Outer". Everything
// else keeps its raw name.
func (e *Extractor) resolveManually(name string, decl *java.TypeDecl) (string, error) {
	if java.IsNestedReference(name) {
		simple := java.SimpleName(name)
		for c := decl; c != nil; c = c.Enclosing {
			if nested := findNested(c, simple); nested != nil {
				return nested.QualifiedName(), nil
			}
		}

		if decl != nil && decl.Unit != nil {
			head, rest, _ := strings.Cut(name, ".")
			for _, imp := range decl.Unit.Imports {
				if imp.Kind != java.ImportSingle || java.SimpleName(imp.Name) != head {
					continue
				}
				candidate := imp.Name + "." + rest
				found, err := e.platform.FindType(candidate)
				if err != nil {
					return "", fmt.Errorf("find %s: %w", candidate, err)
				}
				if found != nil {
					return candidate, nil
				}
			}
		}
	}

	context := "<unknown>"
	if decl != nil {
		context = decl.QualifiedName()
	}
	if hint, ok := e.platform.Suggest(name); ok {
		log.Warningf("%s: cannot resolve type %s (did you mean %s?)", context, name, hint)
	} else {
		log.Warningf("%s: cannot resolve type %s", context, name)
	}
	e.misses++
	return name, nil
}

// findNested searches the types nested in t, at any depth, for a simple
// name.
func findNested(t *java.TypeDecl, simple string) *java.TypeDecl {
	for _, m := range t.Members {
		if m.Name == simple {
			return m
		}
		if found := findNested(m, simple); found != nil {
			return found
		}
	}
	return nil
}
