// Package model is the intermediate representation built by extraction and
// consumed by generation: a tree of packages owning types, plus flat indices
// of model and external types.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrMissingParentPackage = errors.New("missing parent package")
	ErrDuplicatePackage     = errors.New("duplicate package")
	ErrDuplicateType        = errors.New("duplicate type")
)

type Package struct {
	element
	fullName    string
	isRoot      bool
	subpackages []*Package
	types       []*Type
}

func NewPackage(fullName string) *Package {
	name := fullName
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		name = fullName[i+1:]
	}
	return &Package{element: element{name: name}, fullName: fullName}
}

func (p *Package) FullName() string        { return p.fullName }
func (p *Package) IsRoot() bool            { return p.isRoot }
func (p *Package) Subpackages() []*Package { return p.subpackages }
func (p *Package) Types() []*Type          { return p.types }

// IsEmpty reports whether p holds neither types nor subpackages.
func (p *Package) IsEmpty() bool {
	return len(p.types) == 0 && len(p.subpackages) == 0
}

func (p *Package) parentName() string {
	if i := strings.LastIndexByte(p.fullName, '.'); i >= 0 {
		return p.fullName[:i]
	}
	return ""
}

// Model owns the package tree. A full name is either a model type (extracted
// from the scanned sources) or an external type (found on demand), never
// both.
type Model struct {
	root      *Package
	packages  map[string]*Package
	types     map[string]*Type
	externals map[string]*Type

	// model types that must be treated as external when nested types are
	// not generated
	pseudoExternals map[string]bool
}

func New() *Model {
	return &Model{
		packages:        map[string]*Package{},
		types:           map[string]*Type{},
		externals:       map[string]*Type{},
		pseudoExternals: map[string]bool{},
	}
}

func (m *Model) Root() *Package { return m.root }

func (m *Model) Package(fullName string) *Package { return m.packages[fullName] }

// AddPackage makes the first package added the root. Every later package
// must have its parent (the full name up to the last '.') already present.
func (m *Model) AddPackage(p *Package) error {
	if _, exists := m.packages[p.fullName]; exists {
		return fmt.Errorf("add package %q: %w", p.fullName, ErrDuplicatePackage)
	}
	if m.root == nil {
		p.isRoot = true
		m.root = p
		m.packages[p.fullName] = p
		return nil
	}
	parent, ok := m.packages[p.parentName()]
	if !ok {
		return fmt.Errorf("add package %q: %w %q", p.fullName, ErrMissingParentPackage, p.parentName())
	}
	p.parent = parent
	parent.subpackages = append(parent.subpackages, p)
	m.packages[p.fullName] = p
	return nil
}

// AddType appends t to the package named by its package name and indexes
// it as a model type.
func (m *Model) AddType(t *Type) error {
	if m.Contains(t.fullName) {
		return fmt.Errorf("add type %q: %w", t.fullName, ErrDuplicateType)
	}
	pkg, ok := m.packages[t.packageName]
	if !ok {
		return fmt.Errorf("add type %q: %w %q", t.fullName, ErrMissingParentPackage, t.packageName)
	}
	t.parent = pkg
	pkg.types = append(pkg.types, t)
	m.types[t.fullName] = t
	return nil
}

// AddExternal indexes a type that is referenced by the model but not part
// of the scanned sources. External types do not belong to any package.
func (m *Model) AddExternal(t *Type) error {
	if m.Contains(t.fullName) {
		return fmt.Errorf("add external type %q: %w", t.fullName, ErrDuplicateType)
	}
	m.externals[t.fullName] = t
	return nil
}

// MarkPseudoExternal records that the model type name is also referenced
// from other types. It must already be an inner model type.
func (m *Model) MarkPseudoExternal(name string) bool {
	t, ok := m.types[name]
	if !ok || !t.isInner {
		return false
	}
	m.pseudoExternals[name] = true
	return true
}

func (m *Model) IsPseudoExternal(name string) bool { return m.pseudoExternals[name] }

func (m *Model) Contains(name string) bool {
	_, inModel := m.types[name]
	_, inExternal := m.externals[name]
	return inModel || inExternal
}

// Type looks name up in the model types first, then in the external types.
func (m *Model) Type(name string) *Type {
	if t, ok := m.types[name]; ok {
		return t
	}
	return m.externals[name]
}

func (m *Model) IsModelType(name string) bool {
	_, ok := m.types[name]
	return ok
}

func (m *Model) IsExternal(name string) bool {
	_, ok := m.externals[name]
	return ok
}

// Types returns every model type in package tree order.
func (m *Model) Types() []*Type {
	var out []*Type
	m.Walk(func(p *Package) {
		out = append(out, p.types...)
	})
	return out
}

// Externals returns the external types sorted by full name.
func (m *Model) Externals() []*Type {
	out := make([]*Type, 0, len(m.externals))
	for _, t := range m.externals {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].fullName < out[j].fullName })
	return out
}

// Walk visits every package depth-first, parents before children.
func (m *Model) Walk(fn func(p *Package)) {
	if m.root == nil {
		return
	}
	var walk func(p *Package)
	walk = func(p *Package) {
		fn(p)
		for _, sub := range p.subpackages {
			walk(sub)
		}
	}
	walk(m.root)
}

// Sort orders subpackages and types of every package by name, ignoring
// case.
func (m *Model) Sort() {
	m.Walk(func(p *Package) {
		sort.SliceStable(p.subpackages, func(i, j int) bool {
			return lessFold(p.subpackages[i].name, p.subpackages[j].name)
		})
		sort.SliceStable(p.types, func(i, j int) bool {
			return lessFold(p.types[i].typeName, p.types[j].typeName)
		})
	})
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
