// Package transform runs one extraction and generation over a platform.
package transform

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/ecorify/config"
	"github.com/dhamidi/ecorify/ecore"
	"github.com/dhamidi/ecorify/extract"
	"github.com/dhamidi/ecorify/generate"
	"github.com/dhamidi/ecorify/java"
	"github.com/dhamidi/ecorify/model"
)

var log = commonlog.GetLogger("ecorify.transform")

// Selector changes the selection of model elements between extraction and
// generation.
type Selector interface {
	Select(m *model.Model) error
}

type SelectorFunc func(m *model.Model) error

func (f SelectorFunc) Select(m *model.Model) error { return f(m) }

// Result is the generated package tree together with the model it was
// generated from.
type Result struct {
	Root   *ecore.EPackage
	Model  *model.Model
	Report generate.Report
}

// Run extracts a model from platform, applies the selectors in order and
// generates the metamodel.
func Run(cfg config.Config, platform java.Platform, selectors ...Selector) (*Result, error) {
	m, err := extract.New(platform).Extract()
	if err != nil {
		return nil, err
	}
	for _, s := range selectors {
		if err := s.Select(m); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
	}
	g := generate.New(cfg, m)
	root, err := g.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return &Result{Root: root, Model: m, Report: g.Report()}, nil
}

// DeselectMatching deselects packages and types whose full name matches one
// of the patterns. Names are matched as paths with '/' between segments, so
// "shop.*" matches the types of package shop and "shop.**" everything
// below it.
func DeselectMatching(patterns ...string) Selector {
	return SelectorFunc(func(m *model.Model) error {
		globs := make([]string, len(patterns))
		for i, pattern := range patterns {
			globs[i] = strings.ReplaceAll(pattern, ".", "/")
			if !doublestar.ValidatePattern(globs[i]) {
				return fmt.Errorf("invalid pattern %q", pattern)
			}
		}
		matches := func(name string) bool {
			path := strings.ReplaceAll(name, ".", "/")
			for _, glob := range globs {
				if ok, _ := doublestar.Match(glob, path); ok {
					return true
				}
			}
			return false
		}

		var count int
		m.Walk(func(p *model.Package) {
			if !p.IsRoot() && matches(p.FullName()) {
				p.SetSelected(false)
				count++
			}
			for _, t := range p.Types() {
				if matches(t.FullName()) {
					t.SetSelected(false)
					count++
				}
			}
		})
		log.Infof("deselected %d packages and types", count)
		return nil
	})
}
