package source

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javasrc/java/syntax"
)

type ElementKind int

const (
	KindPackageInfo ElementKind = iota
	KindClass
	KindInterface
	KindEnum
	KindAnnotation
	KindRecord
	KindField
	KindMethod
	KindConstructor
	KindInitializer
)

var elementKindNames = map[ElementKind]string{
	KindPackageInfo: "package-info",
	KindClass:       "class",
	KindInterface:   "interface",
	KindEnum:        "enum",
	KindAnnotation:  "annotation",
	KindRecord:      "record",
	KindField:       "field",
	KindMethod:      "method",
	KindConstructor: "constructor",
	KindInitializer: "initializer",
}

func (k ElementKind) String() string {
	if name, ok := elementKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseElementKind maps a type keyword such as "class" or "interface" to its
// kind.
func ParseElementKind(s string) (ElementKind, error) {
	for kind, name := range elementKindNames {
		if name == s && kind >= KindClass && kind <= KindRecord {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown type kind %q", ErrInvalidArgument, s)
}

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(s)); v {
	case VisibilityPublic, VisibilityProtected, VisibilityPrivate, VisibilityPackage:
		return v, nil
	case "package-private", "default":
		return VisibilityPackage, nil
	}
	return "", fmt.Errorf("%w: unknown visibility %q", ErrInvalidArgument, s)
}

// Owner is anything annotations can be attached to.
type Owner interface {
	Unit() *Unit
	Node() *syntax.Node
	ResolveType(name string) (string, error)
}

// Element is a named declaration of a unit: its package-info or one of its
// types at any nesting depth.
type Element interface {
	Owner

	Kind() ElementKind
	Name() string
	// Enclosing returns the declaring type, nil for top-level elements.
	Enclosing() *Type
	Package() string
	CanonicalName() string
	QualifiedName() string
	NestedTypes() []*Type

	Visibility() Visibility
	SetVisibility(v Visibility) error

	Annotations() []*Annotation
	Annotation(typeName string) *Annotation
	HasAnnotation(typeName string) bool
	AddAnnotation(typeName string) (*Annotation, error)
	AddUnnamedAnnotation() (*Annotation, error)
	RemoveAnnotation(a *Annotation) error

	Equal(other Element) bool
}

// sameElement compares backing nodes and documents.
func sameElement(a, b Element) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Node() == b.Node() && a.Unit().Document() == b.Unit().Document()
}

// canonicalName joins the names of t and its enclosing types with sep and
// prefixes the package.
func canonicalName(pkg string, t *Type, sep string) string {
	var names []string
	for cur := t; cur != nil; cur = cur.parent {
		names = append(names, cur.Name())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	result := strings.Join(names, sep)
	if pkg != "" {
		result = pkg + "." + result
	}
	return result
}

// annotated implements the annotation operations of an owner whose
// annotations live in the node returned by target.
type annotated struct {
	self   Owner
	target func() (*syntax.Node, error)
}

func (a annotated) Annotations() []*Annotation {
	mods, ok := queryTarget(a.target)
	if !ok {
		return nil
	}
	return annotationsOf(a.self, mods)
}

func (a annotated) Annotation(typeName string) *Annotation {
	mods, ok := queryTarget(a.target)
	if !ok {
		return nil
	}
	return getAnnotation(a.self, mods, typeName)
}

func (a annotated) HasAnnotation(typeName string) bool {
	return a.Annotation(typeName) != nil
}

func (a annotated) AddAnnotation(typeName string) (*Annotation, error) {
	mods, err := a.target()
	if err != nil {
		return nil, err
	}
	return addAnnotation(a.self, mods, typeName)
}

func (a annotated) AddUnnamedAnnotation() (*Annotation, error) {
	mods, err := a.target()
	if err != nil {
		return nil, err
	}
	return addAnnotation(a.self, mods, "")
}

func (a annotated) RemoveAnnotation(ann *Annotation) error {
	mods, err := a.target()
	if err != nil {
		return err
	}
	_, err = removeAnnotation(a.self, mods, ann)
	return err
}

// modified implements visibility and modifier keywords for declarations
// with a modifier list.
type modified struct {
	target func() (*syntax.Node, error)
}

func (m modified) Visibility() Visibility {
	mods, ok := queryTarget(m.target)
	if !ok {
		return VisibilityPackage
	}
	return visibilityOf(mods)
}

// SetVisibility removes any visibility keyword and then applies v.
func (m modified) SetVisibility(v Visibility) error {
	mods, err := m.target()
	if err != nil {
		return err
	}
	if _, err := ParseVisibility(string(v)); err != nil {
		return err
	}
	clearVisibility(mods)
	if v == VisibilityPackage {
		return nil
	}
	return addModifier(mods, string(v))
}

func (m modified) IsPublic() bool         { return m.Visibility() == VisibilityPublic }
func (m modified) IsProtected() bool      { return m.Visibility() == VisibilityProtected }
func (m modified) IsPrivate() bool        { return m.Visibility() == VisibilityPrivate }
func (m modified) IsPackagePrivate() bool { return m.Visibility() == VisibilityPackage }

func (m modified) SetPublic() error         { return m.SetVisibility(VisibilityPublic) }
func (m modified) SetProtected() error      { return m.SetVisibility(VisibilityProtected) }
func (m modified) SetPrivate() error        { return m.SetVisibility(VisibilityPrivate) }
func (m modified) SetPackagePrivate() error { return m.SetVisibility(VisibilityPackage) }

func (m modified) HasModifier(keyword string) bool {
	mods, ok := queryTarget(m.target)
	if !ok {
		return false
	}
	return hasModifier(mods, keyword)
}

func (m modified) AddModifier(keyword string) error {
	mods, err := m.target()
	if err != nil {
		return err
	}
	return addModifier(mods, keyword)
}

func (m modified) RemoveModifier(keyword string) error {
	mods, err := m.target()
	if err != nil {
		return err
	}
	removeModifier(mods, keyword)
	return nil
}

func (m modified) setModifier(keyword string, on bool) error {
	if on {
		return m.AddModifier(keyword)
	}
	return m.RemoveModifier(keyword)
}

func (m modified) IsStatic() bool   { return m.HasModifier("static") }
func (m modified) IsFinal() bool    { return m.HasModifier("final") }
func (m modified) IsAbstract() bool { return m.HasModifier("abstract") }

func (m modified) SetStatic(on bool) error   { return m.setModifier("static", on) }
func (m modified) SetFinal(on bool) error    { return m.setModifier("final", on) }
func (m modified) SetAbstract(on bool) error { return m.setModifier("abstract", on) }

// queryTarget resolves the modifier list for a read-only query. Queries on
// declarations without one answer as if the list were empty.
func queryTarget(target func() (*syntax.Node, error)) (*syntax.Node, bool) {
	mods, err := target()
	if err != nil {
		log.Debugf("query: %s", err)
		return nil, false
	}
	return mods, true
}

// modifiersOf returns the modifier list of a declaration node.
func modifiersOf(node *syntax.Node) (*syntax.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, unexpectedBody)
	}
	mods := node.FirstChildOfKind(syntax.KindModifiers)
	if mods == nil {
		return nil, fmt.Errorf("%w: %s: %s has no modifiers", ErrInvalidState, unexpectedBody, node.Kind)
	}
	return mods, nil
}
