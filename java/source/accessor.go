package source

import (
	"fmt"

	"github.com/dhamidi/javasrc/java/syntax"
	"github.com/dhamidi/javasrc/java/typename"
)

// The functions in this file operate on the modifier list of any
// declaration. target must be a Modifiers node.

func checkTarget(target *syntax.Node) error {
	if target == nil || target.Kind != syntax.KindModifiers {
		return fmt.Errorf("%w: %s", ErrInvalidState, unexpectedBody)
	}
	return nil
}

func annotationsOf(owner Owner, target *syntax.Node) []*Annotation {
	if checkTarget(target) != nil {
		return nil
	}
	var result []*Annotation
	for _, child := range target.ChildrenOfKind(syntax.KindAnnotation) {
		result = append(result, owner.Unit().annotationFor(child, owner))
	}
	return result
}

// addAnnotation appends an annotation after the existing ones. A qualified
// type name is imported when needed and written by its simple name, unless
// another import already claims that simple name. An empty name adds an
// annotation without a type.
func addAnnotation(owner Owner, target *syntax.Node, typeName string) (*Annotation, error) {
	if err := checkTarget(target); err != nil {
		return nil, err
	}

	written := typeName
	if typeName != "" {
		var err error
		if written, err = annotationName(owner.Unit(), typeName); err != nil {
			return nil, err
		}
	}

	node := syntax.NewAnnotation(written)
	index := 0
	for i, child := range target.Children {
		if child.Kind == syntax.KindAnnotation {
			index = i + 1
		}
	}
	target.InsertChild(index, node)
	return owner.Unit().annotationFor(node, owner), nil
}

// annotationName decides how an annotation type is written, importing it
// if that lets it be referred to by simple name.
func annotationName(u *Unit, typeName string) (string, error) {
	if !typename.IsSimpleName(typeName) && !typename.IsQualified(typeName) {
		return "", fmt.Errorf("%w: illegal annotation type %q", ErrInvalidArgument, typeName)
	}
	if typename.IsSimpleName(typeName) {
		return typeName, nil
	}

	simple := typename.SimpleName(typeName)
	if typename.Package(typeName) == "java.lang" {
		return simple, nil
	}
	if existing := u.Import(typeName); existing != nil {
		return simple, nil
	}
	if existing := u.Import(simple); existing != nil {
		return typeName, nil
	}
	if !u.RequiresImport(typeName) {
		return simple, nil
	}
	if _, err := u.AddImport(typeName); err != nil {
		return "", err
	}
	return simple, nil
}

// getAnnotation finds an annotation by the name it is written with, its
// simple name, or the qualified name it resolves to.
func getAnnotation(owner Owner, target *syntax.Node, typeName string) *Annotation {
	for _, a := range annotationsOf(owner, target) {
		written := a.Name()
		if written == "" {
			continue
		}
		if written == typeName {
			return a
		}
		if typename.IsSimpleName(typeName) {
			if typename.SimpleName(written) == typeName {
				return a
			}
			continue
		}
		if typename.SimpleName(written) != typename.SimpleName(typeName) {
			continue
		}
		if q, err := a.QualifiedName(); err == nil && q == typeName {
			return a
		}
	}
	return nil
}

func hasAnnotation(owner Owner, target *syntax.Node, typeName string) bool {
	return getAnnotation(owner, target, typeName) != nil
}

// removeAnnotation detaches a from target and returns the owner. Removing
// an annotation that is not attached to target does nothing.
func removeAnnotation(owner Owner, target *syntax.Node, a *Annotation) (Owner, error) {
	if err := checkTarget(target); err != nil {
		return owner, err
	}
	if a == nil {
		return owner, nil
	}
	if target.RemoveChild(a.node) {
		delete(owner.Unit().annotations, a.node)
	}
	return owner, nil
}

var visibilityKeywords = []string{"public", "protected", "private"}

// keywordOrder is the conventional modifier order.
var keywordOrder = map[string]int{
	"public": 0, "protected": 0, "private": 0,
	"abstract": 1, "static": 2, "final": 3,
	"sealed": 4, "non-sealed": 4, "default": 5,
	"transient": 6, "volatile": 7, "synchronized": 8,
	"native": 9, "strictfp": 10,
}

func hasModifier(target *syntax.Node, keyword string) bool {
	if checkTarget(target) != nil {
		return false
	}
	for _, child := range target.ChildrenOfKind(syntax.KindIdentifier) {
		if child.TokenLiteral() == keyword {
			return true
		}
	}
	return false
}

// addModifier inserts keyword in conventional order. Adding a keyword that
// is present does nothing.
func addModifier(target *syntax.Node, keyword string) error {
	if err := checkTarget(target); err != nil {
		return err
	}
	rank, known := keywordOrder[keyword]
	if !known {
		return fmt.Errorf("%w: unknown modifier %q", ErrInvalidArgument, keyword)
	}
	if hasModifier(target, keyword) {
		return nil
	}
	for i, child := range target.Children {
		if child.Kind != syntax.KindIdentifier {
			continue
		}
		if other, ok := keywordOrder[child.TokenLiteral()]; ok && other > rank {
			target.InsertChild(i, syntax.NewIdentifier(keyword))
			return nil
		}
	}
	target.AddChild(syntax.NewIdentifier(keyword))
	return nil
}

func removeModifier(target *syntax.Node, keyword string) {
	if checkTarget(target) != nil {
		return
	}
	for _, child := range target.ChildrenOfKind(syntax.KindIdentifier) {
		if child.TokenLiteral() == keyword {
			target.RemoveChild(child)
		}
	}
}

// clearVisibility removes public, protected and private.
func clearVisibility(target *syntax.Node) {
	for _, keyword := range visibilityKeywords {
		removeModifier(target, keyword)
	}
}

func visibilityOf(target *syntax.Node) Visibility {
	for _, keyword := range visibilityKeywords {
		if hasModifier(target, keyword) {
			return Visibility(keyword)
		}
	}
	return VisibilityPackage
}
