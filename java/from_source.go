package java

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

var log = commonlog.GetLogger("ecorify.java")

// SourceParser turns Java source files into compilation units. A parser is
// not safe for concurrent use; create one per goroutine.
type SourceParser struct {
	parser *sitter.Parser
}

func NewSourceParser() (*SourceParser, error) {
	parser := sitter.NewParser()
	if err := parser.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		parser.Close()
		return nil, fmt.Errorf("set java language: %w", err)
	}
	return &SourceParser{parser: parser}, nil
}

func (p *SourceParser) Close() {
	p.parser.Close()
}

// Parse builds the compilation unit of one source file. Syntax errors are
// tolerated: the declarations that could be recognized are returned.
func (p *SourceParser) Parse(path string, src []byte) (*CompilationUnit, error) {
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: no syntax tree", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		log.Warningf("%s: syntax errors, extracting what could be recognized", path)
	}

	b := &unitBuilder{src: src, unit: &CompilationUnit{Path: path}}
	b.compilationUnit(root)
	return b.unit, nil
}

// ParseSource is a convenience for parsing a single in-memory source.
func ParseSource(path string, src []byte) (*CompilationUnit, error) {
	p, err := NewSourceParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse(path, src)
}

type unitBuilder struct {
	src  []byte
	unit *CompilationUnit
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	count := n.NamedChildCount()
	out := make([]*sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func allChildren(n *sitter.Node) []*sitter.Node {
	count := n.ChildCount()
	out := make([]*sitter.Node, 0, count)
	for i := uint(0); i < count; i++ {
		out = append(out, n.Child(i))
	}
	return out
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for _, c := range allChildren(n) {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

func (b *unitBuilder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(b.src)
}

func (b *unitBuilder) compilationUnit(root *sitter.Node) {
	for _, child := range namedChildren(root) {
		switch child.Kind() {
		case "package_declaration":
			for _, c := range namedChildren(child) {
				if c.Kind() == "identifier" || c.Kind() == "scoped_identifier" {
					b.unit.Package = compactName(b.text(c))
				}
			}
		case "import_declaration":
			b.unit.Imports = append(b.unit.Imports, b.importDecl(child))
		default:
			if t := b.typeDecl(child, nil); t != nil {
				b.unit.Types = append(b.unit.Types, t)
			}
		}
	}
}

func compactName(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func (b *unitBuilder) importDecl(n *sitter.Node) Import {
	imp := Import{Kind: ImportSingle}
	for _, c := range allChildren(n) {
		switch c.Kind() {
		case "static":
			imp.IsStatic = true
		case "identifier", "scoped_identifier":
			imp.Name = compactName(b.text(c))
		case "asterisk":
			imp.Kind = ImportOnDemand
		}
	}
	return imp
}

// typeDecl returns nil for nodes that are not type declarations.
func (b *unitBuilder) typeDecl(n *sitter.Node, enclosing *TypeDecl) *TypeDecl {
	var kind TypeKind
	switch n.Kind() {
	case "class_declaration":
		kind = TypeKindClass
	case "interface_declaration":
		kind = TypeKindInterface
	case "enum_declaration":
		kind = TypeKindEnum
	case "record_declaration":
		kind = TypeKindRecord
	case "annotation_type_declaration":
		kind = TypeKindAnnotation
	default:
		return nil
	}

	t := &TypeDecl{
		Name:       b.text(n.ChildByFieldName("name")),
		Package:    b.unit.Package,
		Kind:       kind,
		Visibility: VisibilityPackage,
		Enclosing:  enclosing,
		Unit:       b.unit,
	}
	mods := b.modifiers(n)
	t.Visibility = mods.visibility
	t.IsAbstract = mods.isAbstract
	t.IsFinal = mods.isFinal
	t.IsStatic = mods.isStatic

	if enclosing != nil && enclosing.Kind == TypeKindInterface {
		if t.Visibility == VisibilityPackage {
			t.Visibility = VisibilityPublic
		}
		t.IsStatic = true
	}

	switch kind {
	case TypeKindInterface, TypeKindAnnotation:
		t.IsAbstract = true
		if ext := childOfKind(n, "extends_interfaces"); ext != nil {
			t.Interfaces = b.typeList(ext)
		}
	case TypeKindEnum, TypeKindRecord:
		t.IsFinal = true
		if enclosing != nil {
			t.IsStatic = true
		}
	}

	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		t.TypeParameters = b.typeParameters(tp)
	}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		if types := b.types(sc); len(types) > 0 {
			t.SuperClass = types[0]
		}
	}
	if si := n.ChildByFieldName("interfaces"); si != nil {
		t.Interfaces = append(t.Interfaces, b.typeList(si)...)
	}
	var components []ParameterDecl
	if kind == TypeKindRecord {
		if params := n.ChildByFieldName("parameters"); params != nil {
			components = b.parameters(params)
			b.recordFields(t, components)
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		b.body(t, body)
	}
	recordAccessors(t, components)
	return t
}

func (b *unitBuilder) body(t *TypeDecl, body *sitter.Node) {
	for _, c := range namedChildren(body) {
		switch c.Kind() {
		case "field_declaration", "constant_declaration":
			b.fieldDecl(t, c)
		case "method_declaration", "constructor_declaration", "annotation_type_element_declaration":
			t.Methods = append(t.Methods, b.methodDecl(t, c))
		case "enum_constant":
			t.EnumConstants = append(t.EnumConstants, b.text(c.ChildByFieldName("name")))
		case "enum_body_declarations":
			b.body(t, c)
		default:
			if member := b.typeDecl(c, t); member != nil {
				t.Members = append(t.Members, member)
			}
		}
	}
}

// recordFields adds the implicit private final fields of a record.
func (b *unitBuilder) recordFields(t *TypeDecl, components []ParameterDecl) {
	for _, p := range components {
		t.Fields = append(t.Fields, FieldDecl{
			Name:       p.Name,
			Type:       p.Type,
			Visibility: VisibilityPrivate,
			IsFinal:    true,
		})
	}
}

// recordAccessors adds the implicit accessor of every record component
// whose accessor is not declared in the body.
func recordAccessors(t *TypeDecl, components []ParameterDecl) {
	for _, p := range components {
		if t.hasAccessor(p.Name) {
			continue
		}
		t.Methods = append(t.Methods, MethodDecl{
			Name:       p.Name,
			ReturnType: p.Type,
			Visibility: VisibilityPublic,
		})
	}
}

func (t *TypeDecl) hasAccessor(name string) bool {
	for _, m := range t.Methods {
		if m.Name == name && len(m.Parameters) == 0 && !m.IsConstructor {
			return true
		}
	}
	return false
}

func (b *unitBuilder) fieldDecl(t *TypeDecl, n *sitter.Node) {
	mods := b.modifiers(n)
	if t.Kind == TypeKindInterface || t.Kind == TypeKindAnnotation {
		mods.visibility = VisibilityPublic
		mods.isStatic = true
		mods.isFinal = true
	}
	base := b.typeSignature(n.ChildByFieldName("type"))
	for _, c := range namedChildren(n) {
		if c.Kind() != "variable_declarator" {
			continue
		}
		sig := base
		if dims := c.ChildByFieldName("dimensions"); dims != nil {
			sig = ArraySignature(sig, countDimensions(dims))
		}
		t.Fields = append(t.Fields, FieldDecl{
			Name:       b.text(c.ChildByFieldName("name")),
			Type:       sig,
			Visibility: mods.visibility,
			IsStatic:   mods.isStatic,
			IsFinal:    mods.isFinal,
		})
	}
}

func (b *unitBuilder) methodDecl(t *TypeDecl, n *sitter.Node) MethodDecl {
	mods := b.modifiers(n)
	m := MethodDecl{
		Name:       b.text(n.ChildByFieldName("name")),
		Visibility: mods.visibility,
		IsStatic:   mods.isStatic,
		IsAbstract: mods.isAbstract,
	}
	if n.Kind() == "constructor_declaration" {
		m.IsConstructor = true
		m.ReturnType = SigVoid
	} else {
		m.ReturnType = b.typeSignature(n.ChildByFieldName("type"))
		if dims := n.ChildByFieldName("dimensions"); dims != nil {
			m.ReturnType = ArraySignature(m.ReturnType, countDimensions(dims))
		}
	}
	if t.Kind == TypeKindInterface || t.Kind == TypeKindAnnotation {
		if m.Visibility == VisibilityPackage {
			m.Visibility = VisibilityPublic
		}
		if n.ChildByFieldName("body") == nil && !m.IsStatic {
			m.IsAbstract = true
		}
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		m.TypeParameters = b.typeParameters(tp)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		m.Parameters = b.parameters(params)
		for _, c := range namedChildren(params) {
			if c.Kind() == "spread_parameter" {
				m.IsVarargs = true
			}
		}
	}
	if throws := childOfKind(n, "throws"); throws != nil {
		m.Exceptions = b.types(throws)
	}
	return m
}

func (b *unitBuilder) parameters(n *sitter.Node) []ParameterDecl {
	var params []ParameterDecl
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "formal_parameter":
			sig := b.typeSignature(c.ChildByFieldName("type"))
			if dims := c.ChildByFieldName("dimensions"); dims != nil {
				sig = ArraySignature(sig, countDimensions(dims))
			}
			params = append(params, ParameterDecl{Name: b.text(c.ChildByFieldName("name")), Type: sig})
		case "spread_parameter":
			var sig, name string
			for _, sc := range namedChildren(c) {
				switch sc.Kind() {
				case "modifiers":
				case "variable_declarator":
					name = b.text(sc.ChildByFieldName("name"))
				default:
					if sig == "" {
						sig = b.typeSignature(sc)
					}
				}
			}
			params = append(params, ParameterDecl{Name: name, Type: ArraySignature(sig, 1)})
		}
	}
	return params
}

func (b *unitBuilder) typeParameters(n *sitter.Node) []TypeParameterDecl {
	var out []TypeParameterDecl
	for _, c := range namedChildren(n) {
		if c.Kind() != "type_parameter" {
			continue
		}
		var tp TypeParameterDecl
		for _, pc := range namedChildren(c) {
			switch pc.Kind() {
			case "type_identifier", "identifier":
				tp.Name = b.text(pc)
			case "type_bound":
				tp.Bounds = b.types(pc)
			}
		}
		out = append(out, tp)
	}
	return out
}

// typeList reads the types of a super_interfaces, extends_interfaces or
// type_list node.
func (b *unitBuilder) typeList(n *sitter.Node) []string {
	if list := childOfKind(n, "type_list"); list != nil {
		return b.types(list)
	}
	return b.types(n)
}

// types returns the signature of every type node directly below n.
func (b *unitBuilder) types(n *sitter.Node) []string {
	var out []string
	for _, c := range namedChildren(n) {
		if sig := b.typeSignature(c); sig != "" {
			out = append(out, sig)
		}
	}
	return out
}

// typeSignature returns "" for nodes that do not denote a type.
func (b *unitBuilder) typeSignature(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "void_type":
		return SigVoid
	case "integral_type", "floating_point_type", "boolean_type":
		sig, _ := PrimitiveSignature(b.text(n))
		return sig
	case "type_identifier":
		return ClassSignature(b.text(n), false)
	case "scoped_type_identifier":
		return ClassSignature(b.scopedName(n), false)
	case "generic_type":
		var name string
		var args []string
		for _, c := range namedChildren(n) {
			switch c.Kind() {
			case "type_identifier":
				name = b.text(c)
			case "scoped_type_identifier":
				name = b.scopedName(c)
			case "type_arguments":
				args = b.types(c)
			}
		}
		return ClassSignature(name, false, args...)
	case "array_type":
		elem := b.typeSignature(n.ChildByFieldName("element"))
		return ArraySignature(elem, countDimensions(n.ChildByFieldName("dimensions")))
	case "annotated_type":
		children := namedChildren(n)
		for i := len(children) - 1; i >= 0; i-- {
			if sig := b.typeSignature(children[i]); sig != "" {
				return sig
			}
		}
	case "wildcard":
		var marker byte = '*'
		var bound string
		for _, c := range allChildren(n) {
			switch c.Kind() {
			case "extends":
				marker = '+'
			case "super":
				marker = '-'
			default:
				if c.IsNamed() {
					if sig := b.typeSignature(c); sig != "" {
						bound = sig
					}
				}
			}
		}
		if bound == "" {
			return SigWildcard
		}
		return string(marker) + bound
	}
	return ""
}

// scopedName flattens a qualified type name, dropping type arguments of
// the qualifying types ("Outer<T>.Inner" is "Outer.Inner").
func (b *unitBuilder) scopedName(n *sitter.Node) string {
	var parts []string
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "type_identifier":
			parts = append(parts, b.text(c))
		case "scoped_type_identifier":
			parts = append(parts, b.scopedName(c))
		case "generic_type":
			parts = append(parts, SignatureName(b.typeSignature(c)))
		}
	}
	return strings.Join(parts, ".")
}

func countDimensions(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	dims := 0
	for _, c := range allChildren(n) {
		if c.Kind() == "[" {
			dims++
		}
	}
	return dims
}

type modifiers struct {
	visibility Visibility
	isStatic   bool
	isFinal    bool
	isAbstract bool
}

func (b *unitBuilder) modifiers(n *sitter.Node) modifiers {
	mods := modifiers{visibility: VisibilityPackage}
	node := childOfKind(n, "modifiers")
	if node == nil {
		return mods
	}
	for _, c := range allChildren(node) {
		switch c.Kind() {
		case "public":
			mods.visibility = VisibilityPublic
		case "protected":
			mods.visibility = VisibilityProtected
		case "private":
			mods.visibility = VisibilityPrivate
		case "static":
			mods.isStatic = true
		case "final":
			mods.isFinal = true
		case "abstract":
			mods.isAbstract = true
		}
	}
	return mods
}
