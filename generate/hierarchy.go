package generate

import (
	"strings"

	"github.com/dhamidi/ecorify/ecore"
)

// Hierarchy places classifiers into a package tree below a fixed base
// package, creating the packages on the way.
type Hierarchy struct {
	base *ecore.EPackage
}

func NewHierarchy(base *ecore.EPackage) *Hierarchy {
	return &Hierarchy{base: base}
}

// Package returns the package reached by following the dotted path from
// the base. Missing packages are created with a namespace URI extending
// their parent's. The empty path is the base itself.
func (h *Hierarchy) Package(path string) *ecore.EPackage {
	return h.PackageOf(splitPath(path))
}

func (h *Hierarchy) PackageOf(segments []string) *ecore.EPackage {
	current := h.base
	for _, segment := range segments {
		next := current.Subpackage(segment)
		if next == nil {
			next = ecore.NewPackage(segment, current.NsURI+"/"+segment)
			current.AddSubpackage(next)
		}
		current = next
	}
	return current
}

// Add appends c to the package reached by following segments from the
// base.
func (h *Hierarchy) Add(c ecore.EClassifier, segments []string) {
	h.PackageOf(segments).AddClassifier(c)
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
