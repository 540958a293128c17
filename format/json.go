package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ecorify/ecore"
)

type JSONEncoder struct {
	w    io.Writer
	root *ecore.EPackage
}

var _ MetamodelEncoder = (*JSONEncoder)(nil)

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(root *ecore.EPackage) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildPackage(e.root), "", "  ")
}

type jsonPackage struct {
	Name        string           `json:"name"`
	NsURI       string           `json:"nsURI"`
	NsPrefix    string           `json:"nsPrefix"`
	Classifiers []jsonClassifier `json:"classifiers,omitempty"`
	Subpackages []jsonPackage    `json:"subpackages,omitempty"`
}

type jsonClassifier struct {
	Name              string              `json:"name"`
	Kind              string              `json:"kind"`
	InstanceClassName string              `json:"instanceClassName,omitempty"`
	Abstract          bool                `json:"abstract,omitempty"`
	TypeParameters    []jsonTypeParameter `json:"typeParameters,omitempty"`
	SuperTypes        []jsonGenericType   `json:"superTypes,omitempty"`
	Features          []jsonFeature       `json:"features,omitempty"`
	Operations        []jsonOperation     `json:"operations,omitempty"`
	Literals          []jsonLiteral       `json:"literals,omitempty"`
}

type jsonTypeParameter struct {
	Name   string            `json:"name"`
	Bounds []jsonGenericType `json:"bounds,omitempty"`
}

// jsonGenericType names classifiers by their qualified name.
type jsonGenericType struct {
	Classifier    string            `json:"classifier,omitempty"`
	TypeParameter string            `json:"typeParameter,omitempty"`
	Arguments     []jsonGenericType `json:"arguments,omitempty"`
	UpperBound    *jsonGenericType  `json:"upperBound,omitempty"`
	LowerBound    *jsonGenericType  `json:"lowerBound,omitempty"`
	Wildcard      bool              `json:"wildcard,omitempty"`
}

type jsonFeature struct {
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Type        jsonGenericType `json:"type"`
	LowerBound  int             `json:"lowerBound"`
	UpperBound  int             `json:"upperBound"`
	Changeable  bool            `json:"changeable"`
	Containment bool            `json:"containment,omitempty"`
}

type jsonOperation struct {
	Name           string              `json:"name"`
	TypeParameters []jsonTypeParameter `json:"typeParameters,omitempty"`
	ReturnType     *jsonGenericType    `json:"returnType,omitempty"`
	Parameters     []jsonParameter     `json:"parameters,omitempty"`
	Exceptions     []jsonGenericType   `json:"exceptions,omitempty"`
}

type jsonParameter struct {
	Name string          `json:"name"`
	Type jsonGenericType `json:"type"`
}

type jsonLiteral struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func buildPackage(p *ecore.EPackage) jsonPackage {
	data := jsonPackage{Name: p.Name, NsURI: p.NsURI, NsPrefix: p.NsPrefix}
	for _, c := range p.EClassifiers {
		data.Classifiers = append(data.Classifiers, buildClassifier(c))
	}
	for _, sub := range p.ESubpackages {
		data.Subpackages = append(data.Subpackages, buildPackage(sub))
	}
	return data
}

func buildClassifier(c ecore.EClassifier) jsonClassifier {
	data := jsonClassifier{
		Name:              c.Name(),
		Kind:              string(c.Kind()),
		InstanceClassName: c.InstanceClassName(),
	}
	switch c := c.(type) {
	case *ecore.EClass:
		data.Abstract = c.Abstract
		data.TypeParameters = buildTypeParameters(c.ETypeParameters)
		data.SuperTypes = buildGenericTypes(c.EGenericSuperTypes)
		for _, f := range c.EStructuralFeatures {
			data.Features = append(data.Features, jsonFeature{
				Name:        f.Name,
				Kind:        string(f.Kind),
				Type:        buildGenericType(f.EGenericType),
				LowerBound:  f.LowerBound,
				UpperBound:  f.UpperBound,
				Changeable:  f.Changeable,
				Containment: f.Containment,
			})
		}
		for _, op := range c.EOperations {
			data.Operations = append(data.Operations, buildOperation(op))
		}
	case *ecore.EEnum:
		data.TypeParameters = buildTypeParameters(c.ETypeParameters)
		for _, l := range c.ELiterals {
			data.Literals = append(data.Literals, jsonLiteral{Name: l.Name, Value: l.Value})
		}
	}
	return data
}

func buildOperation(op *ecore.EOperation) jsonOperation {
	data := jsonOperation{
		Name:           op.Name,
		TypeParameters: buildTypeParameters(op.ETypeParameters),
		Exceptions:     buildGenericTypes(op.EGenericExceptions),
	}
	if op.EGenericType != nil {
		rt := buildGenericType(op.EGenericType)
		data.ReturnType = &rt
	}
	for _, p := range op.EParameters {
		data.Parameters = append(data.Parameters, jsonParameter{Name: p.Name, Type: buildGenericType(p.EGenericType)})
	}
	return data
}

func buildTypeParameters(params []*ecore.ETypeParameter) []jsonTypeParameter {
	var result []jsonTypeParameter
	for _, p := range params {
		result = append(result, jsonTypeParameter{Name: p.Name, Bounds: buildGenericTypes(p.EBounds)})
	}
	return result
}

func buildGenericTypes(types []*ecore.EGenericType) []jsonGenericType {
	var result []jsonGenericType
	for _, g := range types {
		result = append(result, buildGenericType(g))
	}
	return result
}

func buildGenericType(g *ecore.EGenericType) jsonGenericType {
	data := jsonGenericType{Arguments: buildGenericTypes(g.ETypeArguments)}
	switch {
	case g.ETypeParameter != nil:
		data.TypeParameter = g.ETypeParameter.Name
	case g.EClassifier != nil:
		data.Classifier = ecore.QualifiedName(g.EClassifier)
	default:
		data.Wildcard = true
		if g.EUpperBound != nil {
			bound := buildGenericType(g.EUpperBound)
			data.UpperBound = &bound
		}
		if g.ELowerBound != nil {
			bound := buildGenericType(g.ELowerBound)
			data.LowerBound = &bound
		}
	}
	return data
}
