package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitQualifiedName(t *testing.T) {
	tests := []struct {
		name, pkg, typePath string
	}{
		{"org.eclipse.jetty.client.Authentication.HeaderInfo", "org.eclipse.jetty.client", "Authentication.HeaderInfo"},
		{"java.lang.String", "java.lang", "String"},
		{"Outer.Inner", "", "Outer.Inner"},
		{"lower.case.name", "lower.case", "name"},
		{"T", "", "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, typePath := SplitQualifiedName(tt.name)
			assert.Equal(t, tt.pkg, pkg)
			assert.Equal(t, tt.typePath, typePath)
		})
	}
}

func TestIsNestedReference(t *testing.T) {
	assert.True(t, IsNestedReference("Map.Entry"))
	assert.False(t, IsNestedReference("java.util.Map"))
	assert.False(t, IsNestedReference("Entry"))
}
