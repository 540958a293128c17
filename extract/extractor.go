// Package extract builds the intermediate model from the declarations a
// java.Platform reports.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/model"
)

var log = commonlog.GetLogger("ecorify.extract")

// Extractor runs one extraction. It keeps the set of type names seen while
// resolving signatures and must not be shared between runs.
type Extractor struct {
	platform java.Platform
	seen     map[string]bool
	misses   int
}

func New(platform java.Platform) *Extractor {
	return &Extractor{platform: platform, seen: map[string]bool{}}
}

// Misses is the number of type names that could not be resolved.
func (e *Extractor) Misses() int { return e.misses }

// Extract builds a sorted model holding every type of every source unit,
// followed by the external types they reference.
func (e *Extractor) Extract() (*model.Model, error) {
	m := model.New()
	if err := m.AddPackage(model.NewPackage("")); err != nil {
		return nil, err
	}

	units := e.platform.SourceUnits()
	for _, unit := range units {
		if err := addPackagePath(m, unit.Package); err != nil {
			return nil, fmt.Errorf("%s: %w", unit.Path, err)
		}
	}

	var count int
	for _, unit := range units {
		for _, decl := range unit.AllTypes() {
			t, err := e.ExtractType(decl)
			if err != nil {
				return nil, fmt.Errorf("extract type %s: %w", decl.QualifiedName(), err)
			}
			if err := m.AddType(t); err != nil {
				if errors.Is(err, model.ErrDuplicateType) {
					log.Warningf("%s: %s", unit.Path, err)
					continue
				}
				return nil, fmt.Errorf("%s: %w", unit.Path, err)
			}
			count++
		}
	}
	log.Infof("extracted %d types from %d compilation units", count, len(units))

	if err := e.ExtractExternalTypes(m); err != nil {
		return nil, err
	}
	if e.misses > 0 {
		log.Warningf("%d type references could not be resolved", e.misses)
	}
	m.Sort()
	return m, nil
}

// addPackagePath adds name and all of its missing ancestors, outermost
// first.
func addPackagePath(m *model.Model, name string) error {
	if name == "" {
		return nil
	}
	segments := strings.Split(name, ".")
	for i := range segments {
		prefix := strings.Join(segments[:i+1], ".")
		if m.Package(prefix) != nil {
			continue
		}
		if err := m.AddPackage(model.NewPackage(prefix)); err != nil {
			return err
		}
	}
	return nil
}
