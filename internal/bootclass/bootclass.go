// SPDX-License-Identifier: MPL-2.0

// Package bootclass provides the base library: a fixed table of the Java
// runtime's foundational classes that every classpath loader can resolve
// regardless of its configured entries. The definitions are synthesized
// minimal class files, enough for nominal resolution of core types, so no
// JDK installation is consulted and nothing from the hosting process can
// leak into an analysis.
//
// The table is policy, not configuration: callers cannot add to it, and the
// loader's own implementation classes are deliberately absent.
package bootclass

import (
	"strings"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/bytelens/bytelens/pkg/classfile"
	"github.com/bytelens/bytelens/pkg/types"
)

// baseRelease is the Java release stamped into synthesized definitions.
const baseRelease = 11

// baseClassNames lists the classes the base library resolves, in dotted
// binary form. Grouped by package for maintainability; order is irrelevant.
var baseClassNames = []types.ClassName{
	// java.lang
	"java.lang.Object",
	"java.lang.Class",
	"java.lang.String",
	"java.lang.CharSequence",
	"java.lang.StringBuilder",
	"java.lang.StringBuffer",
	"java.lang.Comparable",
	"java.lang.Cloneable",
	"java.lang.Iterable",
	"java.lang.Runnable",
	"java.lang.Thread",
	"java.lang.ThreadLocal",
	"java.lang.AutoCloseable",
	"java.lang.Number",
	"java.lang.Boolean",
	"java.lang.Byte",
	"java.lang.Character",
	"java.lang.Short",
	"java.lang.Integer",
	"java.lang.Long",
	"java.lang.Float",
	"java.lang.Double",
	"java.lang.Void",
	"java.lang.Math",
	"java.lang.System",
	"java.lang.Enum",
	"java.lang.Throwable",
	"java.lang.Exception",
	"java.lang.RuntimeException",
	"java.lang.Error",
	"java.lang.ArithmeticException",
	"java.lang.ClassCastException",
	"java.lang.IllegalArgumentException",
	"java.lang.IllegalStateException",
	"java.lang.IndexOutOfBoundsException",
	"java.lang.NullPointerException",
	"java.lang.UnsupportedOperationException",
	"java.lang.Deprecated",
	"java.lang.Override",
	"java.lang.SuppressWarnings",
	"java.lang.SafeVarargs",
	"java.lang.FunctionalInterface",

	// java.lang.annotation
	"java.lang.annotation.Annotation",
	"java.lang.annotation.Documented",
	"java.lang.annotation.ElementType",
	"java.lang.annotation.Inherited",
	"java.lang.annotation.Retention",
	"java.lang.annotation.RetentionPolicy",
	"java.lang.annotation.Target",

	// java.util
	"java.util.Collection",
	"java.util.Collections",
	"java.util.List",
	"java.util.ArrayList",
	"java.util.LinkedList",
	"java.util.Map",
	"java.util.Map$Entry",
	"java.util.HashMap",
	"java.util.LinkedHashMap",
	"java.util.TreeMap",
	"java.util.Set",
	"java.util.HashSet",
	"java.util.LinkedHashSet",
	"java.util.TreeSet",
	"java.util.Queue",
	"java.util.Deque",
	"java.util.ArrayDeque",
	"java.util.Iterator",
	"java.util.Comparator",
	"java.util.Optional",
	"java.util.Objects",
	"java.util.Arrays",

	// java.util.function
	"java.util.function.Function",
	"java.util.function.BiFunction",
	"java.util.function.Consumer",
	"java.util.function.BiConsumer",
	"java.util.function.Supplier",
	"java.util.function.Predicate",
	"java.util.function.BiPredicate",
	"java.util.function.UnaryOperator",
	"java.util.function.BinaryOperator",

	// java.util.stream
	"java.util.stream.Stream",
	"java.util.stream.IntStream",
	"java.util.stream.LongStream",
	"java.util.stream.DoubleStream",
	"java.util.stream.Collectors",

	// java.io
	"java.io.Closeable",
	"java.io.Serializable",
	"java.io.InputStream",
	"java.io.OutputStream",
	"java.io.Reader",
	"java.io.Writer",
	"java.io.File",
	"java.io.IOException",
	"java.io.UncheckedIOException",
}

// table maps base class resource paths to their synthesized definitions.
// Built once on first use; Build cannot fail for the curated names.
var table = sync.OnceValue(func() map[types.ResourcePath][]byte {
	m := make(map[types.ResourcePath][]byte, len(baseClassNames))
	for _, name := range baseClassNames {
		data, err := classfile.Build(name, baseRelease)
		if err != nil {
			panic("bootclass: building " + string(name) + ": " + err.Error())
		}
		m[name.AsResourcePath()] = data
	}
	return m
})

// Contains reports whether path names a base library class definition.
func Contains(path types.ResourcePath) bool {
	_, ok := table()[path]
	return ok
}

// Bytes returns the synthesized definition for a base library class resource,
// or nil when the path is not in the table.
func Bytes(path types.ResourcePath) []byte {
	return table()[path]
}

// Count returns the number of classes the base library resolves.
func Count() int { return len(table()) }

// Names returns the class names in the table, sorted, for display purposes.
func Names() []types.ClassName {
	out := slices.Clone(baseClassNames)
	slices.SortFunc(out, func(a, b types.ClassName) int {
		return strings.Compare(string(a), string(b))
	})
	return out
}
