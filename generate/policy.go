package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/ecorify/config"
	"github.com/dhamidi/ecorify/model"
)

type ElementKind string

const (
	KindPackage ElementKind = "package"
	KindType    ElementKind = "type"
	KindMethod  ElementKind = "method"
	KindField   ElementKind = "field"
)

// Report counts the elements the policy kept out of the metamodel, by
// kind.
type Report map[ElementKind]int

func (r Report) Total() int {
	var n int
	for _, count := range r {
		n += count
	}
	return n
}

func (r Report) String() string {
	if len(r) == 0 {
		return "nothing excluded"
	}
	kinds := make([]string, 0, len(r))
	for kind := range r {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		parts[i] = fmt.Sprintf("%s=%d", kind, r[ElementKind(kind)])
	}
	return "excluded " + strings.Join(parts, " ")
}

// Policy decides which elements of the intermediate model are generated.
// A rejected element is counted once, however often it is asked about.
type Policy struct {
	cfg      config.Config
	report   Report
	rejected map[model.Element]bool
}

func NewPolicy(cfg config.Config) *Policy {
	return &Policy{cfg: cfg, report: Report{}, rejected: map[model.Element]bool{}}
}

func (p *Policy) Report() Report { return p.report }

func (p *Policy) decide(e model.Element, kind ElementKind, allowed bool) bool {
	if !allowed && !p.rejected[e] {
		p.rejected[e] = true
		p.report[kind]++
		log.Debugf("excluding %s %s", kind, e.FullName())
	}
	return allowed
}

func (p *Policy) AllowsPackage(pkg *model.Package) bool {
	return p.decide(pkg, KindPackage,
		pkg.Selected() && (!pkg.IsEmpty() || p.cfg.ExtractEmptyPackages))
}

func (p *Policy) AllowsType(t *model.Type) bool {
	return p.decide(t, KindType,
		t.Selected() && (!t.IsInner() || p.cfg.ExtractNestedTypes))
}

func (p *Policy) AllowsMethod(m *model.Method) bool {
	return p.decide(m, KindMethod, m.Selected() &&
		(m.Kind != model.MethodConstructor || p.cfg.ExtractConstructors) &&
		(!m.IsAbstract || p.cfg.ExtractAbstractMethods) &&
		(!m.IsStatic || p.cfg.ExtractStaticMethods) &&
		(m.Modifier != model.ModifierProtected || p.cfg.ExtractProtectedMethods) &&
		(m.Modifier != model.ModifierPrivate || p.cfg.ExtractPrivateMethods))
}

func (p *Policy) AllowsField(f *model.Field) bool {
	return p.decide(f, KindField, f.Selected() &&
		(!f.IsStatic || p.cfg.ExtractStaticAttributes) &&
		(f.Modifier != model.ModifierPublic || p.cfg.ExtractPublicAttributes) &&
		(f.Modifier != model.ModifierProtected || p.cfg.ExtractProtectedAttributes) &&
		(f.Modifier != model.ModifierPrivate || p.cfg.ExtractPrivateAttributes))
}
