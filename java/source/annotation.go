package source

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javasrc/java/syntax"
	"github.com/dhamidi/javasrc/java/typename"
)

// Annotation is an annotation attached to a type, member or package.
type Annotation struct {
	owner Owner
	node  *syntax.Node
}

func (a *Annotation) Owner() Owner {
	return a.owner
}

func (a *Annotation) Node() *syntax.Node {
	return a.node
}

// Name returns the annotation type as written, "" when it has none yet.
func (a *Annotation) Name() string {
	if q := a.node.FirstChildOfKind(syntax.KindQualifiedName); q != nil {
		return q.TokenLiteral()
	}
	return ""
}

func (a *Annotation) SimpleName() string {
	return typename.SimpleName(a.Name())
}

// QualifiedName resolves the annotation type in the context of its owner.
func (a *Annotation) QualifiedName() (string, error) {
	name := a.Name()
	if name == "" {
		return "", fmt.Errorf("%w: annotation has no type", ErrInvalidState)
	}
	return a.owner.ResolveType(name)
}

// SetName changes the annotation type. The name is written as given.
func (a *Annotation) SetName(name string) error {
	name = strings.TrimSpace(name)
	if !typename.IsSimpleName(name) && !typename.IsQualified(name) {
		return fmt.Errorf("%w: illegal annotation type %q", ErrInvalidArgument, name)
	}
	if q := a.node.FirstChildOfKind(syntax.KindQualifiedName); q != nil {
		q.Token = &syntax.Token{Literal: name, Span: q.Span}
		return nil
	}
	a.node.InsertChild(0, syntax.NewQualifiedName(name))
	return nil
}

// Arguments returns the text between the parentheses, "" for markers.
func (a *Annotation) Arguments() string {
	args := a.node.FirstChildOfKind(syntax.KindAnnotationArgs)
	if args == nil {
		return ""
	}
	lit := strings.TrimSpace(args.TokenLiteral())
	lit = strings.TrimPrefix(lit, "(")
	lit = strings.TrimSuffix(lit, ")")
	return strings.TrimSpace(lit)
}

// SetArguments replaces the argument list. An empty string turns the
// annotation into a marker.
func (a *Annotation) SetArguments(args string) {
	if existing := a.node.FirstChildOfKind(syntax.KindAnnotationArgs); existing != nil {
		a.node.RemoveChild(existing)
	}
	args = strings.TrimSpace(args)
	if args == "" {
		return
	}
	a.node.AddChild(&syntax.Node{
		Kind:  syntax.KindAnnotationArgs,
		Token: &syntax.Token{Literal: "(" + args + ")"},
	})
}

func (a *Annotation) IsMarker() bool {
	return a.node.FirstChildOfKind(syntax.KindAnnotationArgs) == nil
}

func (a *Annotation) String() string {
	if args := a.node.FirstChildOfKind(syntax.KindAnnotationArgs); args != nil {
		return "@" + a.Name() + args.TokenLiteral()
	}
	return "@" + a.Name()
}
