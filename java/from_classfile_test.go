package java

import (
	"testing"

	"github.com/dhamidi/ecorify/classfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeDeclFromClassFile(t *testing.T) {
	cf := &classfile.ClassFile{
		AccessFlags: classfile.AccPublic | classfile.AccAbstract,
		Name:        "shop/Order",
		SuperName:   "shop/Base",
		Interfaces:  []string{"java/lang/Comparable"},
		Signature:   "<T:Ljava/lang/Object;>Lshop/Base;Ljava/lang/Comparable<Lshop/Order;>;",
		Fields: []classfile.Member{
			{AccessFlags: classfile.AccPrivate, Name: "lines", Descriptor: "Ljava/util/List;", Signature: "Ljava/util/List<Lshop/Order$Line;>;"},
			{AccessFlags: classfile.AccSynthetic, Name: "this$0", Descriptor: "Lshop/Outer;"},
		},
		Methods: []classfile.Member{
			{AccessFlags: classfile.AccPublic, Name: "<init>", Descriptor: "(Ljava/lang/String;)V"},
			{AccessFlags: classfile.AccStatic, Name: "<clinit>", Descriptor: "()V"},
			{AccessFlags: classfile.AccPublic | classfile.AccAbstract, Name: "total", Descriptor: "()Ljava/lang/Object;", Signature: "()TT;", Exceptions: []string{"java/io/IOException"}},
		},
	}

	decl, err := TypeDeclFromClassFile(cf)
	require.NoError(t, err)

	assert.True(t, decl.Binary)
	assert.Equal(t, "Order", decl.Name)
	assert.Equal(t, "shop", decl.Package)
	assert.Equal(t, TypeKindClass, decl.Kind)
	assert.True(t, decl.IsAbstract)
	assert.Equal(t, "Lshop.Base;", decl.SuperClass)
	assert.Equal(t, []string{"Ljava.lang.Comparable<Lshop.Order;>;"}, decl.Interfaces)
	assert.Equal(t, []TypeParameterDecl{{Name: "T", Bounds: []string{"Ljava.lang.Object;"}}}, decl.TypeParameters)

	require.Len(t, decl.Fields, 1)
	assert.Equal(t, "Ljava.util.List<Lshop.Order.Line;>;", decl.Fields[0].Type)

	require.Len(t, decl.Methods, 2)
	assert.True(t, decl.Methods[0].IsConstructor)
	assert.Equal(t, "Order", decl.Methods[0].Name)
	assert.Equal(t, []ParameterDecl{{Name: "arg0", Type: "Ljava.lang.String;"}}, decl.Methods[0].Parameters)
	assert.Equal(t, "TT;", decl.Methods[1].ReturnType)
	assert.Equal(t, []string{"Ljava.io.IOException;"}, decl.Methods[1].Exceptions)
}

func TestTypeDeclFromClassFileEnum(t *testing.T) {
	cf := &classfile.ClassFile{
		AccessFlags: classfile.AccPublic | classfile.AccFinal | classfile.AccEnum,
		Name:        "shop/Order$State",
		SuperName:   "java/lang/Enum",
		Fields: []classfile.Member{
			{AccessFlags: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal | classfile.AccEnum, Name: "OPEN", Descriptor: "Lshop/Order$State;"},
			{AccessFlags: classfile.AccPublic | classfile.AccStatic | classfile.AccFinal | classfile.AccEnum, Name: "CLOSED", Descriptor: "Lshop/Order$State;"},
		},
		InnerClasses: []classfile.InnerClass{
			{Inner: "shop/Order$State", Outer: "shop/Order", SimpleName: "State", AccessFlags: classfile.AccPublic | classfile.AccStatic | classfile.AccEnum},
		},
	}

	decl, err := TypeDeclFromClassFile(cf)
	require.NoError(t, err)
	assert.Equal(t, TypeKindEnum, decl.Kind)
	assert.Equal(t, "State", decl.Name)
	assert.True(t, decl.IsStatic)
	assert.Equal(t, []string{"OPEN", "CLOSED"}, decl.EnumConstants)
}

func TestInternalCandidates(t *testing.T) {
	assert.Equal(t, []string{"java/util/Map/Entry", "java/util/Map$Entry", "java/util$Map$Entry", "java$util$Map$Entry"}, internalCandidates("java.util.Map.Entry"))
}

func TestClasspathWithoutEntries(t *testing.T) {
	cp := NewClasspath()
	decl, err := cp.Find("java.lang.String")
	require.NoError(t, err)
	assert.Nil(t, decl)
	require.NoError(t, cp.Close())
}
