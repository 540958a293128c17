package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureHelpers(t *testing.T) {
	tests := []struct {
		sig      string
		kind     SignatureKind
		dims     int
		name     string
		args     []string
		erasure  string
		rendered string
	}{
		{"I", SignatureBase, 0, "int", nil, "I", "int"},
		{"V", SignatureVoid, 0, "void", nil, "V", "void"},
		{"[[QString;", SignatureArray, 2, "String", nil, "[[QString;", "String[][]"},
		{"Ljava.util.List<Ljava.lang.String;>;", SignatureClass, 0, "java.util.List", []string{"Ljava.lang.String;"}, "Ljava.util.List;", "java.util.List<java.lang.String>"},
		{"QMap<QString;+QNumber;>;", SignatureUnresolved, 0, "Map", []string{"QString;", "+QNumber;"}, "QMap;", "Map<String, ? extends Number>"},
		{"QList<*>;", SignatureUnresolved, 0, "List", []string{"*"}, "QList;", "List<?>"},
		{"TT;", SignatureTypeVariable, 0, "T", nil, "TT;", "T"},
		{"-QInteger;", SignatureWildcard, 0, "Integer", nil, "-QInteger;", "? super Integer"},
		{"QMap<QList<QA;>;QB;>;", SignatureUnresolved, 0, "Map", []string{"QList<QA;>;", "QB;"}, "QMap;", "Map<List<A>, B>"},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			assert.Equal(t, tt.kind, Kind(tt.sig))
			assert.Equal(t, tt.dims, ArrayCount(tt.sig))
			assert.Equal(t, tt.name, SignatureName(tt.sig))
			assert.Equal(t, tt.args, TypeArguments(tt.sig))
			assert.Equal(t, tt.erasure, Erasure(tt.sig))
			assert.Equal(t, tt.rendered, SignatureString(tt.sig))
		})
	}
}

func TestWildcardBound(t *testing.T) {
	marker, bound := WildcardBound("+QNumber;")
	assert.Equal(t, byte('+'), marker)
	assert.Equal(t, "QNumber;", bound)

	marker, _ = WildcardBound("*")
	assert.Equal(t, byte('*'), marker)

	marker, bound = WildcardBound("QNumber;")
	assert.Equal(t, byte(0), marker)
	assert.Equal(t, "QNumber;", bound)
}

func TestSignatureBuilders(t *testing.T) {
	assert.Equal(t, "QList<QString;>;", ClassSignature("List", false, ClassSignature("String", false)))
	assert.Equal(t, "Ljava.lang.Object;", ClassSignature("java.lang.Object", true))
	assert.Equal(t, "[[I", ArraySignature("I", 2))
	assert.Equal(t, "TE;", TypeVariableSignature("E"))

	sig, ok := PrimitiveSignature("boolean")
	assert.True(t, ok)
	assert.Equal(t, "Z", sig)
	_, ok = PrimitiveSignature("String")
	assert.False(t, ok)
}
