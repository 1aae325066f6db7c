package source

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/javasrc/java/syntax"
	"github.com/dhamidi/javasrc/java/typename"
)

// Type is a class, interface, enum, annotation type or record declaration.
type Type struct {
	annotated
	modified

	unit   *Unit
	node   *syntax.Node
	parent *Type
}

var _ Element = (*Type)(nil)

func newType(u *Unit, node *syntax.Node, parent *Type) *Type {
	t := &Type{unit: u, node: node, parent: parent}
	target := func() (*syntax.Node, error) { return modifiersOf(t.node) }
	t.annotated = annotated{self: t, target: target}
	t.modified = modified{target: target}
	return t
}

var typeKinds = map[syntax.NodeKind]ElementKind{
	syntax.KindClassDecl:      KindClass,
	syntax.KindInterfaceDecl:  KindInterface,
	syntax.KindEnumDecl:       KindEnum,
	syntax.KindAnnotationDecl: KindAnnotation,
	syntax.KindRecordDecl:     KindRecord,
}

func (t *Type) Kind() ElementKind {
	return typeKinds[t.node.Kind]
}

func (t *Type) Unit() *Unit {
	return t.unit
}

func (t *Type) Node() *syntax.Node {
	return t.node
}

func (t *Type) Enclosing() *Type {
	return t.parent
}

func (t *Type) Package() string {
	return t.unit.Package()
}

func (t *Type) Name() string {
	if id := t.node.FirstChildOfKind(syntax.KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

// SetName renames the type together with its constructors.
func (t *Type) SetName(name string) error {
	if !typename.IsSimpleName(name) {
		return fmt.Errorf("%w: illegal type name %q", ErrInvalidArgument, name)
	}
	old := t.Name()
	id := t.node.FirstChildOfKind(syntax.KindIdentifier)
	if id == nil {
		return fmt.Errorf("%w: %s", ErrInvalidState, unexpectedBody)
	}
	id.Token = &syntax.Token{Literal: name, Span: id.Span}

	if body := t.node.FirstChildOfKind(syntax.KindBlock); body != nil {
		for _, ctor := range body.ChildrenOfKind(syntax.KindConstructorDecl) {
			cid := ctor.FirstChildOfKind(syntax.KindIdentifier)
			if cid == nil || cid.TokenLiteral() != old {
				continue
			}
			cid.Token = &syntax.Token{Literal: name, Span: cid.Span}
			if ctor.Token != nil {
				ctor.Token = &syntax.Token{Literal: name, Span: ctor.Token.Span}
			}
		}
	}
	log.Debugf("renamed type %s to %s", old, name)
	return nil
}

// CanonicalName joins the enclosing type names with dots, as in
// "com.acme.Outer.Inner".
func (t *Type) CanonicalName() string {
	return canonicalName(t.Package(), t, ".")
}

// QualifiedName is the binary name, as in "com.acme.Outer$Inner". Local
// types are numbered per enclosing type and name, as in "Outer$1Local".
func (t *Type) QualifiedName() string {
	if t.parent == nil {
		return canonicalName(t.Package(), t, "$")
	}
	return t.parent.QualifiedName() + "$" + t.binarySuffix()
}

func (t *Type) binarySuffix() string {
	if !t.isLocal() {
		return t.Name()
	}
	n := 0
	for _, sibling := range t.parent.NestedTypes() {
		if sibling.isLocal() && sibling.Name() == t.Name() {
			n++
		}
		if sibling.node == t.node {
			break
		}
	}
	return strconv.Itoa(n) + t.Name()
}

// isLocal reports whether t is declared inside a member of its enclosing
// type rather than directly in its body.
func (t *Type) isLocal() bool {
	if t.parent == nil {
		return false
	}
	body := t.parent.body()
	return body == nil || body.IndexOf(t.node) < 0
}

func (t *Type) IsClass() bool      { return t.Kind() == KindClass }
func (t *Type) IsInterface() bool  { return t.Kind() == KindInterface }
func (t *Type) IsEnum() bool       { return t.Kind() == KindEnum }
func (t *Type) IsAnnotation() bool { return t.Kind() == KindAnnotation }
func (t *Type) IsRecord() bool     { return t.Kind() == KindRecord }

// NestedTypes returns the types declared directly inside t, including
// local types declared in its method bodies. Types nested further down are
// reported by the type that encloses them.
func (t *Type) NestedTypes() []*Type {
	var result []*Type
	t.node.Walk(func(n *syntax.Node) bool {
		if n == t.node {
			return true
		}
		if n.Kind.IsTypeDecl() {
			result = append(result, t.unit.typeFor(n, t))
			return false
		}
		return true
	})
	return result
}

// AllNestedTypes returns every type declared anywhere inside t, each once,
// in depth-first order.
func (t *Type) AllNestedTypes() []*Type {
	var result []*Type
	for _, nested := range t.NestedTypes() {
		result = append(result, nested)
		result = append(result, nested.AllNestedTypes()...)
	}
	return result
}

// NestedType returns the directly nested type called name, or nil.
func (t *Type) NestedType(name string) *Type {
	for _, nested := range t.NestedTypes() {
		if nested.Name() == name {
			return nested
		}
	}
	return nil
}

func (t *Type) body() *syntax.Node {
	return t.node.FirstChildOfKind(syntax.KindBlock)
}

// Members returns the fields, methods, constructors and initializers of t
// in source order. Nested types and enum constants are not members.
func (t *Type) Members() []*Member {
	body := t.body()
	if body == nil {
		return nil
	}
	var result []*Member
	for _, child := range body.Children {
		if child.Kind.IsMember() && child.Kind != syntax.KindEnumConstants {
			result = append(result, t.unit.memberFor(child, t))
		}
	}
	return result
}

func (t *Type) membersOfKind(kind ElementKind) []*Member {
	var result []*Member
	for _, m := range t.Members() {
		if m.Kind() == kind {
			result = append(result, m)
		}
	}
	return result
}

func (t *Type) Fields() []*Member       { return t.membersOfKind(KindField) }
func (t *Type) Methods() []*Member      { return t.membersOfKind(KindMethod) }
func (t *Type) Constructors() []*Member { return t.membersOfKind(KindConstructor) }

// Field returns the field declaring name. A declaration like "int a, b;"
// matches both a and b.
func (t *Type) Field(name string) *Member {
	for _, f := range t.Fields() {
		for _, n := range f.Names() {
			if n == name {
				return f
			}
		}
	}
	return nil
}

// Method returns the first method called name.
func (t *Type) Method(name string) *Member {
	for _, m := range t.Methods() {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// ResolveType resolves name as it would be seen from inside t.
func (t *Type) ResolveType(name string) (string, error) {
	return t.unit.ResolveType(t, name)
}

func (t *Type) Equal(other Element) bool {
	return sameElement(t, other)
}

func (t *Type) String() string {
	return t.Kind().String() + " " + t.CanonicalName()
}
