package extract

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/model"
)

const throwable = "java.lang.Throwable"

func typeKindOf(k java.TypeKind) model.TypeKind {
	switch k {
	case java.TypeKindInterface, java.TypeKindAnnotation:
		return model.TypeKindInterface
	case java.TypeKindEnum:
		return model.TypeKindEnum
	default:
		return model.TypeKindClass
	}
}

// ExtractType builds the intermediate type for a declaration, members
// included. Records become classes and annotation types interfaces.
func (e *Extractor) ExtractType(decl *java.TypeDecl) (*model.Type, error) {
	t := model.NewType(typeKindOf(decl.Kind), decl.Package, decl.TypeName())
	if decl.Enclosing != nil {
		t.OuterTypeName = decl.Enclosing.QualifiedName()
	}

	switch t.Kind {
	case model.TypeKindClass:
		t.IsAbstract = decl.IsAbstract
		supers, err := e.platform.SuperTypes(decl)
		if err != nil {
			return nil, err
		}
		t.ExtendsThrowable = slices.Contains(supers, throwable)
		if decl.SuperClass != "" {
			if t.SuperClass, err = e.ResolveSignature(decl.SuperClass, decl); err != nil {
				return nil, fmt.Errorf("super class: %w", err)
			}
		}
	case model.TypeKindEnum:
		t.Constants = append(t.Constants, decl.EnumConstants...)
	}

	params, err := e.resolveTypeParameters(decl.TypeParameters, scope{decl: decl})
	if err != nil {
		return nil, err
	}
	t.TypeParameters = params

	if err := e.ExtractFields(decl, t); err != nil {
		return nil, err
	}
	if err := e.ExtractMethods(decl, t); err != nil {
		return nil, err
	}

	for _, sig := range decl.Interfaces {
		dt, err := e.ResolveSignature(sig, decl)
		if err != nil {
			return nil, fmt.Errorf("super interface: %w", err)
		}
		t.SuperInterfaces = append(t.SuperInterfaces, dt)
	}
	return t, nil
}

func (e *Extractor) resolveTypeParameters(decls []java.TypeParameterDecl, sc scope) ([]*model.TypeParameter, error) {
	var out []*model.TypeParameter
	for _, tp := range decls {
		p := &model.TypeParameter{Name: tp.Name}
		for _, bound := range tp.Bounds {
			dt, err := e.resolve(bound, sc)
			if err != nil {
				return nil, fmt.Errorf("type parameter %s: %w", tp.Name, err)
			}
			p.Bounds = append(p.Bounds, dt)
		}
		out = append(out, p)
	}
	return out, nil
}

// ExtractExternalTypes makes one pass over the names seen so far. Inner
// model types are marked pseudo-external; names outside the model that the
// platform can find are extracted and added as external types. Names seen
// while extracting those are not followed.
func (e *Extractor) ExtractExternalTypes(m *model.Model) error {
	names := e.SeenNames()
	var pseudo, external int
	for _, name := range names {
		if m.IsModelType(name) {
			if m.Type(name).IsInner() && m.MarkPseudoExternal(name) {
				pseudo++
			}
			continue
		}
		if m.Contains(name) {
			continue
		}
		decl, err := e.platform.FindType(name)
		if err != nil {
			return fmt.Errorf("find %s: %w", name, err)
		}
		if decl == nil {
			log.Debugf("no declaration for external type %s", name)
			continue
		}
		t, err := e.ExtractType(decl)
		if err != nil {
			return fmt.Errorf("extract external type %s: %w", name, err)
		}
		if err := m.AddExternal(t); err != nil {
			log.Warningf("%s", err)
			continue
		}
		external++
	}
	log.Infof("extracted %d external types, %d pseudo-external types", external, pseudo)
	return nil
}

// SeenNames returns every qualified name recorded by signature resolution,
// sorted.
func (e *Extractor) SeenNames() []string {
	names := make([]string, 0, len(e.seen))
	for name := range e.seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
