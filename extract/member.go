package extract

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/model"
)

func modifierOf(v java.Visibility) model.Modifier {
	switch v {
	case java.VisibilityPublic:
		return model.ModifierPublic
	case java.VisibilityPrivate:
		return model.ModifierPrivate
	case java.VisibilityProtected:
		return model.ModifierProtected
	default:
		return model.ModifierNone
	}
}

// ExtractFields adds every declared field of decl to t. Enum constants are
// left to the type extractor.
func (e *Extractor) ExtractFields(decl *java.TypeDecl, t *model.Type) error {
	for _, fd := range decl.Fields {
		if fd.IsEnumConstant {
			continue
		}
		dt, err := e.ResolveSignature(fd.Type, decl)
		if err != nil {
			return fmt.Errorf("field %s: %w", fd.Name, err)
		}
		f := model.NewField(fd.Name, dt)
		f.Modifier = modifierOf(fd.Visibility)
		f.IsStatic = fd.IsStatic
		f.IsFinal = fd.IsFinal
		t.AddField(f)
	}
	return nil
}

// ExtractMethods adds every declared method and constructor of decl to t.
func (e *Extractor) ExtractMethods(decl *java.TypeDecl, t *model.Type) error {
	for i := range decl.Methods {
		md := &decl.Methods[i]
		m, err := e.extractMethod(decl, md)
		if err != nil {
			return fmt.Errorf("method %s: %w", md.Name, err)
		}
		t.AddMethod(m)
	}
	return nil
}

func (e *Extractor) extractMethod(decl *java.TypeDecl, md *java.MethodDecl) (*model.Method, error) {
	sc := scope{decl: decl, methodVars: md.TypeParameters}

	m := model.NewMethod(md.Name)
	m.Modifier = modifierOf(md.Visibility)
	m.IsStatic = md.IsStatic
	m.IsAbstract = md.IsAbstract

	params, err := e.resolveTypeParameters(md.TypeParameters, sc)
	if err != nil {
		return nil, err
	}
	m.TypeParameters = params

	if !md.IsConstructor {
		if m.ReturnType, err = e.resolve(md.ReturnType, sc); err != nil {
			return nil, err
		}
	}
	for _, pd := range md.Parameters {
		dt, err := e.resolve(pd.Type, sc)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", pd.Name, err)
		}
		m.Parameters = append(m.Parameters, &model.Parameter{
			Variable: model.Variable{Identifier: pd.Name, DataType: dt},
		})
	}
	for _, sig := range md.Exceptions {
		dt, err := e.resolve(sig, sc)
		if err != nil {
			return nil, err
		}
		if dt != nil {
			m.ThrownTypes = append(m.ThrownTypes, dt)
		}
	}

	m.Kind = methodKind(decl, md)
	return m, nil
}

// methodKind classifies a method by naming convention against the fields
// of its declaring type.
func methodKind(decl *java.TypeDecl, md *java.MethodDecl) model.MethodKind {
	if md.IsConstructor {
		return model.MethodConstructor
	}
	returnsVoid := md.ReturnType == "" || java.Kind(md.ReturnType) == java.SignatureVoid
	if len(md.Parameters) == 0 && !returnsVoid &&
		(namesField(decl, md.Name, "get") || namesField(decl, md.Name, "is")) {
		return model.MethodAccessor
	}
	if len(md.Parameters) == 1 && returnsVoid && namesField(decl, md.Name, "set") {
		return model.MethodMutator
	}
	if md.IsMainMethod() {
		return model.MethodMain
	}
	return model.MethodNormal
}

func namesField(decl *java.TypeDecl, name, prefix string) bool {
	if len(name) <= len(prefix) || !strings.EqualFold(name[:len(prefix)], prefix) {
		return false
	}
	rest := name[len(prefix):]
	for _, f := range decl.Fields {
		if !f.IsEnumConstant && strings.EqualFold(f.Name, rest) {
			return true
		}
	}
	return false
}
