package ecore

// EcoreNsURI is the namespace of the built-in classifiers.
const EcoreNsURI = "http://www.eclipse.org/emf/2002/Ecore"

// Ecore is the package of the built-in data types and EObject. It is
// shared and must not be modified.
var Ecore = NewPackage("ecore", EcoreNsURI)

var (
	EBoolean         = builtin("EBoolean", "boolean")
	EBooleanObject   = builtin("EBooleanObject", "java.lang.Boolean")
	EByte            = builtin("EByte", "byte")
	EByteObject      = builtin("EByteObject", "java.lang.Byte")
	EChar            = builtin("EChar", "char")
	ECharacterObject = builtin("ECharacterObject", "java.lang.Character")
	EDouble          = builtin("EDouble", "double")
	EDoubleObject    = builtin("EDoubleObject", "java.lang.Double")
	EFloat           = builtin("EFloat", "float")
	EFloatObject     = builtin("EFloatObject", "java.lang.Float")
	EInt             = builtin("EInt", "int")
	EIntegerObject   = builtin("EIntegerObject", "java.lang.Integer")
	ELong            = builtin("ELong", "long")
	ELongObject      = builtin("ELongObject", "java.lang.Long")
	EShort           = builtin("EShort", "short")
	EShortObject     = builtin("EShortObject", "java.lang.Short")
	EString          = builtin("EString", "java.lang.String")
	EJavaObject      = builtin("EJavaObject", "java.lang.Object")
	EJavaClass       = builtin("EJavaClass", "java.lang.Class")
	EBigDecimal      = builtin("EBigDecimal", "java.math.BigDecimal")
	EBigInteger      = builtin("EBigInteger", "java.math.BigInteger")
	EDate            = builtin("EDate", "java.util.Date")

	// EObject is the implicit super type of every class.
	EObject = func() *EClass {
		c := NewClass("EObject")
		Ecore.AddClassifier(c)
		return c
	}()
)

var builtinsByJavaName = map[string]*EDataType{}

func builtin(name, javaName string) *EDataType {
	d := NewDataType(name, javaName)
	Ecore.AddClassifier(d)
	builtinsByJavaName[javaName] = d
	return d
}

// Builtin returns the built-in data type for a Java primitive or well-known
// class name.
func Builtin(javaName string) (*EDataType, bool) {
	d, ok := builtinsByJavaName[javaName]
	return d, ok
}
