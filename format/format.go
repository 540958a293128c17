// Package format writes the intermediate model and the generated metamodel
// for the command line.
package format

import (
	"encoding"

	"github.com/dhamidi/ecorify/ecore"
	"github.com/dhamidi/ecorify/model"
)

type ModelEncoder interface {
	encoding.TextMarshaler
	Encode(m *model.Model) error
}

type MetamodelEncoder interface {
	encoding.TextMarshaler
	Encode(root *ecore.EPackage) error
}
