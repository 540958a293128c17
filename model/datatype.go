package model

import "strings"

type WildcardKind string

const (
	WildcardNone       WildcardKind = ""
	WildcardUnbound    WildcardKind = "?"
	WildcardUpperBound WildcardKind = "? extends"
	WildcardLowerBound WildcardKind = "? super"
)

// DataType is one resolved (or best-effort) occurrence of a type. Only
// FullName takes part in lookups; dimension, arguments and wildcard kind are
// metadata of the occurrence.
type DataType struct {
	FullName         string
	ArrayDimension   int
	GenericArguments []*DataType
	Wildcard         WildcardKind
}

func (d *DataType) IsArray() bool   { return d.ArrayDimension > 0 }
func (d *DataType) IsGeneric() bool { return len(d.GenericArguments) > 0 }

// SimpleName is the last dotted segment of the full name.
func (d *DataType) SimpleName() string {
	if i := strings.LastIndexByte(d.FullName, '.'); i >= 0 {
		return d.FullName[i+1:]
	}
	return d.FullName
}

// ElementType returns a copy of d with one array dimension removed.
func (d *DataType) ElementType() *DataType {
	c := *d
	if c.ArrayDimension > 0 {
		c.ArrayDimension--
	}
	return &c
}

func (d *DataType) String() string {
	var sb strings.Builder
	switch d.Wildcard {
	case WildcardUnbound:
		return "?"
	case WildcardUpperBound, WildcardLowerBound:
		sb.WriteString(string(d.Wildcard))
		sb.WriteByte(' ')
	}
	sb.WriteString(d.FullName)
	if len(d.GenericArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range d.GenericArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteByte('>')
	}
	for i := 0; i < d.ArrayDimension; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}
