package java

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Platform is the read-only view of a Java code base that extraction
// works against.
type Platform interface {
	// SourceUnits returns the scanned compilation units, sorted by path.
	SourceUnits() []*CompilationUnit

	// ResolveType resolves a type name as written in the source of ctx to
	// its qualified name. ok is false when the name cannot be resolved.
	ResolveType(ctx *TypeDecl, name string) (qualified string, ok bool, err error)

	// FindType returns the declaration of a qualified name, or nil when
	// neither the sources nor the classpath declare it.
	FindType(qualifiedName string) (*TypeDecl, error)

	// SuperTypes returns the qualified names of every transitive super
	// type of t.
	SuperTypes(t *TypeDecl) ([]string, error)

	// Suggest returns the known type name closest to name.
	Suggest(name string) (string, bool)
}

// Workspace is a Platform over parsed source units and a classpath.
type Workspace struct {
	units     []*CompilationUnit
	types     map[string]*TypeDecl
	packages  map[string]bool
	classpath *Classpath
}

var _ Platform = (*Workspace)(nil)

func NewWorkspace(classpath *Classpath) *Workspace {
	return &Workspace{
		types:     map[string]*TypeDecl{},
		packages:  map[string]bool{},
		classpath: classpath,
	}
}

// AddUnit registers a compilation unit and indexes all of its types,
// nested ones included, by qualified name.
func (w *Workspace) AddUnit(u *CompilationUnit) {
	w.units = append(w.units, u)
	w.packages[u.Package] = true
	for _, t := range u.AllTypes() {
		t.Unit = u
		qn := t.QualifiedName()
		if _, exists := w.types[qn]; exists {
			log.Warningf("%s: type %s is declared more than once", u.Path, qn)
			continue
		}
		w.types[qn] = t
	}
}

func (w *Workspace) SourceUnits() []*CompilationUnit {
	units := make([]*CompilationUnit, len(w.units))
	copy(units, w.units)
	sort.SliceStable(units, func(i, j int) bool { return units[i].Path < units[j].Path })
	return units
}

// Packages returns the names of every package with at least one unit.
func (w *Workspace) Packages() []string {
	names := make([]string, 0, len(w.packages))
	for p := range w.packages {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

func (w *Workspace) Classpath() *Classpath { return w.classpath }

func (w *Workspace) FindType(qualifiedName string) (*TypeDecl, error) {
	if t, ok := w.types[qualifiedName]; ok {
		return t, nil
	}
	return w.classpath.Find(qualifiedName)
}

// known reports whether a qualified name denotes a type in the sources,
// on the classpath or in the builtin JDK table.
func (w *Workspace) known(qualifiedName string) (bool, error) {
	if _, ok := w.types[qualifiedName]; ok {
		return true, nil
	}
	if isBuiltinType(qualifiedName) {
		return true, nil
	}
	t, err := w.classpath.Find(qualifiedName)
	return t != nil, err
}

func (w *Workspace) ResolveType(ctx *TypeDecl, name string) (string, bool, error) {
	if name == "" {
		return "", false, nil
	}
	if strings.Contains(name, ".") {
		return w.resolveDotted(ctx, name)
	}
	return w.resolveSimple(ctx, name)
}

func (w *Workspace) resolveDotted(ctx *TypeDecl, name string) (string, bool, error) {
	if ok, err := w.known(name); err != nil || ok {
		return name, ok, err
	}
	head, rest, _ := strings.Cut(name, ".")
	qualifiedHead, ok, err := w.resolveSimple(ctx, head)
	if err != nil || !ok {
		return "", false, err
	}
	candidate := qualifiedHead + "." + rest
	if ok, err := w.known(candidate); err != nil || !ok {
		return "", false, err
	}
	return candidate, true, nil
}

// resolveSimple follows the Java scoping rules for a simple type name.
func (w *Workspace) resolveSimple(ctx *TypeDecl, name string) (string, bool, error) {
	if ctx == nil {
		return w.resolveInPackage("", nil, name)
	}

	// type variables shadow every type
	for c := ctx; c != nil; c = c.Enclosing {
		for _, tp := range c.TypeParameters {
			if tp.Name == name {
				return "", false, nil
			}
		}
	}

	for c := ctx; c != nil; c = c.Enclosing {
		if c.Name == name {
			return c.QualifiedName(), true, nil
		}
		if m := c.Member(name); m != nil {
			return m.QualifiedName(), true, nil
		}
	}

	if ctx.Unit != nil {
		for _, t := range ctx.Unit.Types {
			if t.Name == name {
				return t.QualifiedName(), true, nil
			}
		}
	}

	var imports []Import
	if ctx.Unit != nil {
		imports = ctx.Unit.Imports
	}
	return w.resolveInPackage(ctx.Package, imports, name)
}

func (w *Workspace) resolveInPackage(pkg string, imports []Import, name string) (string, bool, error) {
	for _, imp := range imports {
		if imp.Kind != ImportSingle {
			continue
		}
		if imp.Name == name || strings.HasSuffix(imp.Name, "."+name) {
			return imp.Name, true, nil
		}
	}

	if ok, err := w.known(qualify(pkg, name)); err != nil || ok {
		return qualify(pkg, name), ok, err
	}

	for _, imp := range imports {
		if imp.Kind != ImportOnDemand {
			continue
		}
		candidate := imp.Name + "." + name
		if ok, err := w.known(candidate); err != nil || ok {
			return candidate, ok, err
		}
	}

	candidate := "java.lang." + name
	if ok, err := w.known(candidate); err != nil || ok {
		return candidate, ok, err
	}
	return "", false, nil
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// superTypeNames resolves the declared direct super types of t.
func (w *Workspace) superTypeNames(t *TypeDecl) ([]string, error) {
	sigs := append([]string{}, t.Interfaces...)
	if t.SuperClass != "" {
		sigs = append([]string{t.SuperClass}, sigs...)
	}
	var names []string
	for _, sig := range sigs {
		name := SignatureName(sig)
		if Kind(sig) == SignatureClass {
			names = append(names, name)
			continue
		}
		qn, ok, err := w.ResolveType(t, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Debugf("%s: super type %s is not resolvable", t.QualifiedName(), name)
			continue
		}
		names = append(names, qn)
	}
	switch t.Kind {
	case TypeKindEnum:
		names = append(names, "java.lang.Enum")
	case TypeKindRecord:
		names = append(names, "java.lang.Record")
	}
	return names, nil
}

func (w *Workspace) SuperTypes(t *TypeDecl) ([]string, error) {
	seen := map[string]bool{t.QualifiedName(): true}
	var out []string

	queue, err := w.superTypeNames(t)
	if err != nil {
		return nil, fmt.Errorf("super types of %s: %w", t.QualifiedName(), err)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)

		decl, err := w.FindType(name)
		if err != nil {
			return nil, fmt.Errorf("super types of %s: %w", t.QualifiedName(), err)
		}
		if decl == nil {
			queue = append(queue, builtinSuperTypes(name)...)
			continue
		}
		next, err := w.superTypeNames(decl)
		if err != nil {
			return nil, fmt.Errorf("super types of %s: %w", t.QualifiedName(), err)
		}
		queue = append(queue, next...)
	}
	return out, nil
}

// suggestThreshold is the minimum Jaro-Winkler similarity of a suggestion.
const suggestThreshold = 0.85

// Suggest compares the simple name of name against every source and
// builtin type.
func (w *Workspace) Suggest(name string) (string, bool) {
	simple := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		simple = name[i+1:]
	}
	candidates := make([]string, 0, len(w.types)+len(builtinTypes))
	for qn := range w.types {
		candidates = append(candidates, qn)
	}
	for qn := range builtinTypes {
		candidates = append(candidates, qn)
	}
	sort.Strings(candidates)

	best, bestScore := "", float32(0)
	for _, qn := range candidates {
		if qn == name {
			continue
		}
		candidate := qn[strings.LastIndexByte(qn, '.')+1:]
		score, err := edlib.StringsSimilarity(simple, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = qn, score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
