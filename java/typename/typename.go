// Package typename classifies and normalizes Java type name strings.
//
// Every function accepts arbitrary input. Malformed names degrade to
// "not primitive", "not array" and so on instead of failing.
package typename

import (
	"strings"
	"unicode"
)

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "Class": true, "ClassLoader": true, "System": true,
	"Throwable": true, "Exception": true, "RuntimeException": true, "Error": true,
	"Integer": true, "Long": true, "Short": true, "Byte": true, "Void": true,
	"Float": true, "Double": true, "Character": true, "Boolean": true,
	"Number": true, "Comparable": true, "CharSequence": true, "AutoCloseable": true,
	"Iterable": true, "Cloneable": true, "Runnable": true, "Appendable": true, "Readable": true,
	"Thread": true, "ThreadLocal": true, "InheritableThreadLocal": true, "ThreadGroup": true,
	"StringBuilder": true, "StringBuffer": true, "Process": true, "ProcessBuilder": true, "Runtime": true,
	"Math": true, "StrictMath": true, "Enum": true, "Record": true, "Package": true, "Module": true,
	"StackTraceElement": true, "StackWalker": true, "SecurityManager": true,
	"Override": true, "Deprecated": true, "SuppressWarnings": true,
	"FunctionalInterface": true, "SafeVarargs": true,

	"ArithmeticException": true, "ArrayIndexOutOfBoundsException": true, "ArrayStoreException": true,
	"ClassCastException": true, "ClassNotFoundException": true, "CloneNotSupportedException": true,
	"EnumConstantNotPresentException": true, "IllegalAccessException": true,
	"IllegalArgumentException": true, "IllegalMonitorStateException": true,
	"IllegalStateException": true, "IllegalThreadStateException": true,
	"IndexOutOfBoundsException": true, "InstantiationException": true,
	"InterruptedException": true, "NegativeArraySizeException": true,
	"NoSuchFieldException": true, "NoSuchMethodException": true, "NullPointerException": true,
	"NumberFormatException": true, "ReflectiveOperationException": true,
	"SecurityException": true, "StringIndexOutOfBoundsException": true,
	"TypeNotPresentException": true, "UnsupportedOperationException": true,

	"AbstractMethodError": true, "AssertionError": true, "BootstrapMethodError": true,
	"ClassCircularityError": true, "ClassFormatError": true, "ExceptionInInitializerError": true,
	"IllegalAccessError": true, "IncompatibleClassChangeError": true, "InstantiationError": true,
	"InternalError": true, "LinkageError": true, "NoClassDefFoundError": true,
	"NoSuchFieldError": true, "NoSuchMethodError": true, "OutOfMemoryError": true,
	"StackOverflowError": true, "ThreadDeath": true, "UnknownError": true,
	"UnsatisfiedLinkError": true, "UnsupportedClassVersionError": true,
	"VerifyError": true, "VirtualMachineError": true,
}

// IsPrimitive reports whether name is a primitive type keyword or void.
func IsPrimitive(name string) bool {
	return primitives[strings.TrimSpace(name)]
}

// IsArray reports whether name carries array brackets or a varargs ellipsis.
func IsArray(name string) bool {
	name = strings.TrimSpace(name)
	return strings.HasSuffix(name, "[]") || strings.HasSuffix(name, "...")
}

// IsGeneric reports whether name carries a type-argument list.
func IsGeneric(name string) bool {
	name = StripArray(name)
	return strings.Contains(name, "<") && strings.HasSuffix(name, ">")
}

// IsSimpleName reports whether name is a single Java identifier.
func IsSimpleName(name string) bool {
	return isIdentifier(name)
}

// IsQualified reports whether name has at least two dot-separated
// identifier segments. A trailing "*" segment marks an on-demand name and
// is accepted.
func IsQualified(name string) bool {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return false
	}
	for i, part := range parts {
		if part == "*" && i == len(parts)-1 {
			continue
		}
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

// StripArray removes every trailing "[]" pair and a trailing "...".
func StripArray(name string) string {
	name = strings.TrimSpace(name)
	for {
		switch {
		case strings.HasSuffix(name, "[]"):
			name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
		case strings.HasSuffix(name, "..."):
			name = strings.TrimSpace(strings.TrimSuffix(name, "..."))
		default:
			return name
		}
	}
}

// StripGenerics removes type arguments from name, keeping nested type
// segments that follow a parameterized owner ("Map<K, V>.Entry" becomes
// "Map.Entry"). Unbalanced brackets cut the name at the first "<".
func StripGenerics(name string) string {
	name = strings.TrimSpace(name)
	if !strings.Contains(name, "<") {
		return name
	}
	var b strings.Builder
	depth := 0
	for _, r := range name {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
			if depth < 0 {
				return strings.TrimSpace(name[:strings.Index(name, "<")])
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	if depth != 0 {
		return strings.TrimSpace(name[:strings.Index(name, "<")])
	}
	return strings.TrimSpace(b.String())
}

// Strip removes array and generic decoration, in that order.
func Strip(name string) string {
	return StripGenerics(StripArray(name))
}

// IsJavaLang reports whether name is implicitly visible through
// java.lang, either as a simple name or as java.lang.X.
func IsJavaLang(name string) bool {
	name = Strip(name)
	if rest, ok := strings.CutPrefix(name, "java.lang."); ok {
		return isIdentifier(rest)
	}
	return javaLangTypes[name]
}

// SimpleName returns the last dot-separated segment of name.
func SimpleName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Package returns everything before the last dot of name, or "" for a
// simple name.
func Package(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return ""
}

// AreEquivalent reports whether a and b can denote the same type: they are
// equal, or their simple names match and at most one of them is qualified.
func AreEquivalent(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if IsQualified(a) && IsQualified(b) {
		return false
	}
	return SimpleName(a) == SimpleName(b)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		case r > 0x7f && unicode.IsLetter(r):
		default:
			return false
		}
	}
	return true
}
