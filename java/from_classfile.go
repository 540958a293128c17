package java

import (
	"strconv"
	"strings"

	"github.com/dhamidi/ecorify/classfile"
)

var jvmNames = strings.NewReplacer("/", ".", "$", ".")

// fromJVMSignature rewrites a class file signature or descriptor into the
// dotted signature form used by the source model.
func fromJVMSignature(sig string) string {
	return jvmNames.Replace(sig)
}

func visibilityFromAccessFlags(flags classfile.AccessFlags) Visibility {
	switch {
	case flags.IsPublic():
		return VisibilityPublic
	case flags.IsProtected():
		return VisibilityProtected
	case flags.IsPrivate():
		return VisibilityPrivate
	}
	return VisibilityPackage
}

func typeKindFromClassFile(cf *classfile.ClassFile) TypeKind {
	switch {
	case cf.IsAnnotation():
		return TypeKindAnnotation
	case cf.IsInterface():
		return TypeKindInterface
	case cf.IsEnum():
		return TypeKindEnum
	case cf.SuperName == "java/lang/Record":
		return TypeKindRecord
	}
	return TypeKindClass
}

func simpleNameOf(cf *classfile.ClassFile) string {
	for _, ic := range cf.InnerClasses {
		if ic.Inner == cf.Name && ic.SimpleName != "" {
			return ic.SimpleName
		}
	}
	name := cf.Name[strings.LastIndexByte(cf.Name, '/')+1:]
	if i := strings.LastIndexByte(name, '$'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// TypeDeclFromClassFile converts the declaration level of a class file.
// The enclosing declaration of a nested class is attached by the caller.
func TypeDeclFromClassFile(cf *classfile.ClassFile) (*TypeDecl, error) {
	pkg := ""
	if i := strings.LastIndexByte(cf.Name, '/'); i >= 0 {
		pkg = strings.ReplaceAll(cf.Name[:i], "/", ".")
	}
	flags := cf.AccessFlags
	if inner, ok := cf.InnerAccessFlags(); ok {
		flags = inner
	}
	t := &TypeDecl{
		Name:       simpleNameOf(cf),
		Package:    pkg,
		Kind:       typeKindFromClassFile(cf),
		Visibility: visibilityFromAccessFlags(flags),
		IsAbstract: flags.IsAbstract(),
		IsFinal:    flags.IsFinal(),
		IsStatic:   flags.IsStatic(),
		Binary:     true,
	}

	if cf.Signature != "" {
		cs, err := classfile.ParseClassSignature(cf.Signature)
		if err != nil {
			return nil, err
		}
		t.TypeParameters = typeParametersFromClassFile(cs.TypeParameters)
		t.SuperClass = fromJVMSignature(cs.SuperClass)
		for _, iface := range cs.Interfaces {
			t.Interfaces = append(t.Interfaces, fromJVMSignature(iface))
		}
	} else {
		if cf.SuperName != "" {
			t.SuperClass = ClassSignature(classfile.ToDotted(cf.SuperName), true)
		}
		for _, iface := range cf.Interfaces {
			t.Interfaces = append(t.Interfaces, ClassSignature(classfile.ToDotted(iface), true))
		}
	}
	if t.Kind == TypeKindInterface || t.Kind == TypeKindAnnotation {
		t.SuperClass = ""
	}

	for _, f := range cf.Fields {
		if f.AccessFlags.IsSynthetic() {
			continue
		}
		sig := f.Signature
		if sig == "" {
			sig = f.Descriptor
		}
		fd := FieldDecl{
			Name:           f.Name,
			Type:           fromJVMSignature(sig),
			Visibility:     visibilityFromAccessFlags(f.AccessFlags),
			IsStatic:       f.AccessFlags.IsStatic(),
			IsFinal:        f.AccessFlags.IsFinal(),
			IsEnumConstant: f.AccessFlags.IsEnum(),
		}
		if fd.IsEnumConstant {
			t.EnumConstants = append(t.EnumConstants, f.Name)
		}
		t.Fields = append(t.Fields, fd)
	}

	for _, m := range cf.Methods {
		if m.AccessFlags.IsSynthetic() || m.IsInitializer() {
			continue
		}
		md, err := methodDeclFromClassFile(t, m)
		if err != nil {
			return nil, err
		}
		t.Methods = append(t.Methods, md)
	}
	return t, nil
}

func methodDeclFromClassFile(t *TypeDecl, m classfile.Member) (MethodDecl, error) {
	sig := m.Signature
	if sig == "" {
		sig = m.Descriptor
	}
	ms, err := classfile.ParseMethodSignature(sig)
	if err != nil {
		return MethodDecl{}, err
	}
	md := MethodDecl{
		Name:           m.Name,
		ReturnType:     fromJVMSignature(ms.Return),
		TypeParameters: typeParametersFromClassFile(ms.TypeParameters),
		Visibility:     visibilityFromAccessFlags(m.AccessFlags),
		IsStatic:       m.AccessFlags.IsStatic(),
		IsAbstract:     m.AccessFlags.IsAbstract(),
		IsVarargs:      m.AccessFlags.IsVarargs(),
	}
	if m.IsConstructor() {
		md.Name = t.Name
		md.IsConstructor = true
	}
	for i, p := range ms.Parameters {
		md.Parameters = append(md.Parameters, ParameterDecl{
			Name: "arg" + strconv.Itoa(i),
			Type: fromJVMSignature(p),
		})
	}
	if len(ms.Throws) > 0 {
		for _, e := range ms.Throws {
			md.Exceptions = append(md.Exceptions, fromJVMSignature(e))
		}
	} else {
		for _, e := range m.Exceptions {
			md.Exceptions = append(md.Exceptions, ClassSignature(classfile.ToDotted(e), true))
		}
	}
	return md, nil
}

func typeParametersFromClassFile(tps []classfile.TypeParameter) []TypeParameterDecl {
	var out []TypeParameterDecl
	for _, tp := range tps {
		decl := TypeParameterDecl{Name: tp.Name}
		for _, b := range tp.Bounds {
			decl.Bounds = append(decl.Bounds, fromJVMSignature(b))
		}
		out = append(out, decl)
	}
	return out
}
