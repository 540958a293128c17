package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/ecorify/model"
)

// LineEncoder writes one tab separated line per package, type and member
// of an intermediate model. Empty columns are written as "-".
type LineEncoder struct {
	w     io.Writer
	model *model.Model
}

var _ ModelEncoder = (*LineEncoder)(nil)

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(m *model.Model) error {
	e.model = m
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	e.model.Walk(func(p *model.Package) {
		name := p.FullName()
		if p.IsRoot() {
			name = "(default)"
		}
		fmt.Fprintf(&sb, "package\t%s\t%s\n", name, selectedStr(p))
		for _, t := range p.Types() {
			writeType(&sb, "type", t)
		}
	})
	for _, t := range e.model.Externals() {
		writeType(&sb, "external", t)
	}
	return []byte(sb.String()), nil
}

func writeType(sb *strings.Builder, tag string, t *model.Type) {
	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\t%s\t%s\n",
		tag,
		t.Kind,
		t.FullName()+typeParametersStr(t.TypeParameters),
		superTypesStr(t),
		typeModifiersStr(t),
		selectedStr(t),
	)
	for _, f := range t.Fields() {
		fmt.Fprintf(sb, "field\t%s\t%s\t%s\t%s\n",
			f.Identifier,
			dataTypeStr(f.DataType),
			f.Modifier,
			fieldModifiersStr(f),
		)
	}
	for _, m := range t.Methods() {
		fmt.Fprintf(sb, "method\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Name()+typeParametersStr(m.TypeParameters),
			dataTypeStr(m.ReturnType),
			parametersStr(m.Parameters),
			m.Modifier,
			m.Kind,
			methodModifiersStr(m),
		)
	}
	if len(t.Constants) > 0 {
		fmt.Fprintf(sb, "constants\t%s\n", strings.Join(t.Constants, ","))
	}
}

func selectedStr(e model.Element) string {
	if e.Selected() {
		return "selected"
	}
	return "deselected"
}

func dataTypeStr(dt *model.DataType) string {
	if dt == nil {
		return "void"
	}
	return dt.String()
}

func typeParametersStr(params []*model.TypeParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
		if len(p.Bounds) > 0 {
			bounds := make([]string, len(p.Bounds))
			for j, b := range p.Bounds {
				bounds[j] = b.String()
			}
			parts[i] += " extends " + strings.Join(bounds, " & ")
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func superTypesStr(t *model.Type) string {
	var parts []string
	if t.SuperClass != nil {
		parts = append(parts, t.SuperClass.String())
	}
	for _, dt := range t.SuperInterfaces {
		parts = append(parts, dt.String())
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func typeModifiersStr(t *model.Type) string {
	var mods []string
	if t.IsAbstract {
		mods = append(mods, "abstract")
	}
	if t.IsInner() {
		mods = append(mods, "inner")
	}
	if t.ExtendsThrowable {
		mods = append(mods, "throwable")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func fieldModifiersStr(f *model.Field) string {
	var mods []string
	if f.IsStatic {
		mods = append(mods, "static")
	}
	if f.IsFinal {
		mods = append(mods, "final")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func methodModifiersStr(m *model.Method) string {
	var mods []string
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func parametersStr(params []*model.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	var parts []string
	for _, p := range params {
		parts = append(parts, dataTypeStr(p.DataType))
	}
	return strings.Join(parts, ",")
}
