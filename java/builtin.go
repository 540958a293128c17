package java

// builtinTypes lists the JDK types known without a classpath, each with its
// direct super types. It lets java.lang names resolve and lets exception
// and collection hierarchies be walked when no JDK is on the classpath.
var builtinTypes = map[string][]string{
	// java.lang, implicitly imported
	"java.lang.Object":                        nil,
	"java.lang.String":                        {"java.lang.Object", "java.lang.CharSequence", "java.lang.Comparable", "java.io.Serializable"},
	"java.lang.CharSequence":                  nil,
	"java.lang.Comparable":                    nil,
	"java.lang.Iterable":                      nil,
	"java.lang.AutoCloseable":                 nil,
	"java.lang.Runnable":                      nil,
	"java.lang.Cloneable":                     nil,
	"java.lang.Number":                        {"java.lang.Object", "java.io.Serializable"},
	"java.lang.Integer":                       {"java.lang.Number", "java.lang.Comparable"},
	"java.lang.Long":                          {"java.lang.Number", "java.lang.Comparable"},
	"java.lang.Short":                         {"java.lang.Number", "java.lang.Comparable"},
	"java.lang.Byte":                          {"java.lang.Number", "java.lang.Comparable"},
	"java.lang.Double":                        {"java.lang.Number", "java.lang.Comparable"},
	"java.lang.Float":                         {"java.lang.Number", "java.lang.Comparable"},
	"java.lang.Boolean":                       {"java.lang.Object", "java.io.Serializable", "java.lang.Comparable"},
	"java.lang.Character":                     {"java.lang.Object", "java.io.Serializable", "java.lang.Comparable"},
	"java.lang.Void":                          {"java.lang.Object"},
	"java.lang.Class":                         {"java.lang.Object", "java.io.Serializable"},
	"java.lang.Enum":                          {"java.lang.Object", "java.lang.Comparable", "java.io.Serializable"},
	"java.lang.Record":                        {"java.lang.Object"},
	"java.lang.Thread":                        {"java.lang.Object", "java.lang.Runnable"},
	"java.lang.StringBuilder":                 {"java.lang.Object", "java.lang.CharSequence", "java.io.Serializable"},
	"java.lang.StringBuffer":                  {"java.lang.Object", "java.lang.CharSequence", "java.io.Serializable"},
	"java.lang.Math":                          {"java.lang.Object"},
	"java.lang.System":                        {"java.lang.Object"},
	"java.lang.Throwable":                     {"java.lang.Object", "java.io.Serializable"},
	"java.lang.Exception":                     {"java.lang.Throwable"},
	"java.lang.Error":                         {"java.lang.Throwable"},
	"java.lang.RuntimeException":              {"java.lang.Exception"},
	"java.lang.AssertionError":                {"java.lang.Error"},
	"java.lang.ArithmeticException":           {"java.lang.RuntimeException"},
	"java.lang.ClassCastException":            {"java.lang.RuntimeException"},
	"java.lang.CloneNotSupportedException":    {"java.lang.Exception"},
	"java.lang.IllegalArgumentException":      {"java.lang.RuntimeException"},
	"java.lang.IllegalStateException":         {"java.lang.RuntimeException"},
	"java.lang.IndexOutOfBoundsException":     {"java.lang.RuntimeException"},
	"java.lang.InterruptedException":          {"java.lang.Exception"},
	"java.lang.NullPointerException":          {"java.lang.RuntimeException"},
	"java.lang.NumberFormatException":         {"java.lang.IllegalArgumentException"},
	"java.lang.UnsupportedOperationException": {"java.lang.RuntimeException"},
	"java.lang.ReflectiveOperationException":  {"java.lang.Exception"},
	"java.lang.ClassNotFoundException":        {"java.lang.ReflectiveOperationException"},

	"java.io.Serializable":          nil,
	"java.io.Closeable":             {"java.lang.AutoCloseable"},
	"java.io.IOException":           {"java.lang.Exception"},
	"java.io.FileNotFoundException": {"java.io.IOException"},
	"java.io.UncheckedIOException":  {"java.lang.RuntimeException"},

	"java.util.Iterator":                        nil,
	"java.util.Collection":                      {"java.lang.Iterable"},
	"java.util.List":                            {"java.util.Collection"},
	"java.util.Set":                             {"java.util.Collection"},
	"java.util.SortedSet":                       {"java.util.Set"},
	"java.util.NavigableSet":                    {"java.util.SortedSet"},
	"java.util.Queue":                           {"java.util.Collection"},
	"java.util.Deque":                           {"java.util.Queue"},
	"java.util.AbstractCollection":              {"java.lang.Object", "java.util.Collection"},
	"java.util.AbstractList":                    {"java.util.AbstractCollection", "java.util.List"},
	"java.util.ArrayList":                       {"java.util.AbstractList", "java.util.List"},
	"java.util.LinkedList":                      {"java.util.AbstractList", "java.util.List", "java.util.Deque"},
	"java.util.Vector":                          {"java.util.AbstractList", "java.util.List"},
	"java.util.Stack":                           {"java.util.Vector"},
	"java.util.AbstractSet":                     {"java.util.AbstractCollection", "java.util.Set"},
	"java.util.HashSet":                         {"java.util.AbstractSet", "java.util.Set"},
	"java.util.LinkedHashSet":                   {"java.util.HashSet", "java.util.Set"},
	"java.util.TreeSet":                         {"java.util.AbstractSet", "java.util.NavigableSet"},
	"java.util.ArrayDeque":                      {"java.util.AbstractCollection", "java.util.Deque"},
	"java.util.PriorityQueue":                   {"java.util.AbstractCollection", "java.util.Queue"},
	"java.util.Map":                             nil,
	"java.util.SortedMap":                       {"java.util.Map"},
	"java.util.HashMap":                         {"java.lang.Object", "java.util.Map"},
	"java.util.LinkedHashMap":                   {"java.util.HashMap", "java.util.Map"},
	"java.util.TreeMap":                         {"java.lang.Object", "java.util.SortedMap"},
	"java.util.Map.Entry":                       nil,
	"java.util.Optional":                        {"java.lang.Object"},
	"java.util.Date":                            {"java.lang.Object", "java.io.Serializable", "java.lang.Comparable"},
	"java.util.UUID":                            {"java.lang.Object", "java.io.Serializable", "java.lang.Comparable"},
	"java.util.NoSuchElementException":          {"java.lang.RuntimeException"},
	"java.util.ConcurrentModificationException": {"java.lang.RuntimeException"},
}

func isBuiltinType(qualifiedName string) bool {
	_, ok := builtinTypes[qualifiedName]
	return ok
}

// builtinSuperTypes returns the direct super types of a builtin type.
func builtinSuperTypes(qualifiedName string) []string {
	return builtinTypes[qualifiedName]
}
