package source

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javasrc/java/typename"
)

// ResolveType returns the fully qualified name that name refers to when
// written inside el. Array and generic decoration is dropped from the
// result. A nil el resolves from the unit's first type.
//
// The lookup order is: primitives, types visible from el, java.lang unless
// an import shadows it, single-type imports, on-demand imports through the
// unit's registry, and finally the unit's own package.
func (u *Unit) ResolveType(el Element, name string) (string, error) {
	stripped := typename.Strip(name)
	if stripped == "" {
		return "", fmt.Errorf("%w: cannot resolve an empty type name", ErrInvalidArgument)
	}
	if typename.IsPrimitive(stripped) {
		return stripped, nil
	}
	if el == nil {
		el = u.defaultOwner()
	}

	if !typename.IsSimpleName(stripped) {
		return u.resolveQualified(el, stripped)
	}

	if t := u.visibleType(el, stripped); t != nil {
		return t.CanonicalName(), nil
	}
	if typename.IsJavaLang(stripped) && u.Import(stripped) == nil {
		return "java.lang." + stripped, nil
	}
	if imp := u.singleTypeImport(stripped); imp != nil {
		return imp.QualifiedName(), nil
	}
	if len(u.WildcardImports()) > 0 {
		resolved, err := u.Registry().Resolve(el, stripped)
		if err != nil {
			return "", err
		}
		if resolved != stripped {
			log.Debugf("resolved %s to %s through on-demand imports", stripped, resolved)
			return resolved, nil
		}
	}
	if pkg := u.Package(); pkg != "" {
		return pkg + "." + stripped, nil
	}
	return stripped, nil
}

// resolveQualified re-roots a dotted name whose first segment is a type
// known to the unit, as in Map.Entry with java.util.Map imported. Other
// dotted names are taken to be fully qualified already.
func (u *Unit) resolveQualified(el Element, name string) (string, error) {
	if !typename.IsQualified(name) {
		return "", fmt.Errorf("%w: illegal type name %q", ErrInvalidArgument, name)
	}
	first, rest, _ := strings.Cut(name, ".")
	if t := u.visibleType(el, first); t != nil {
		return t.CanonicalName() + "." + rest, nil
	}
	if imp := u.singleTypeImport(first); imp != nil {
		return imp.QualifiedName() + "." + rest, nil
	}
	return name, nil
}

func (u *Unit) singleTypeImport(simple string) *Import {
	for _, imp := range u.Imports() {
		if imp.IsWildcard() {
			continue
		}
		if typename.AreEquivalent(imp.QualifiedName(), simple) {
			return imp
		}
	}
	return nil
}

// visibleType finds a type called simple in scope at el: el itself, the
// types it encloses directly, its enclosing types and their members, and
// the unit's top-level types.
func (u *Unit) visibleType(el Element, simple string) *Type {
	var start *Type
	switch e := el.(type) {
	case *Type:
		start = e
	case nil:
	default:
		start = e.Enclosing()
	}
	for cur := start; cur != nil; cur = cur.parent {
		if cur.Name() == simple {
			return cur
		}
		if nested := cur.NestedType(simple); nested != nil {
			return nested
		}
	}
	return u.Type(simple)
}
