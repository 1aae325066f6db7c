package source

import (
	"strings"

	"github.com/dhamidi/javasrc/java/syntax"
)

// Member is a field, method, constructor or initializer of a type.
type Member struct {
	annotated
	modified

	owner *Type
	node  *syntax.Node
}

func newMember(owner *Type, node *syntax.Node) *Member {
	m := &Member{owner: owner, node: node}
	target := func() (*syntax.Node, error) { return modifiersOf(m.node) }
	m.annotated = annotated{self: m, target: target}
	m.modified = modified{target: target}
	return m
}

func (m *Member) Kind() ElementKind {
	switch m.node.Kind {
	case syntax.KindFieldDecl:
		return KindField
	case syntax.KindMethodDecl:
		return KindMethod
	case syntax.KindConstructorDecl:
		return KindConstructor
	}
	return KindInitializer
}

// Name returns the declared name. Initializers have none.
func (m *Member) Name() string {
	if id := m.node.FirstChildOfKind(syntax.KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

// Names returns every variable a field declaration declares.
func (m *Member) Names() []string {
	lit := m.node.TokenLiteral()
	if lit == "" {
		return nil
	}
	return strings.Split(lit, ",")
}

func (m *Member) Owner() *Type {
	return m.owner
}

func (m *Member) Unit() *Unit {
	return m.owner.Unit()
}

func (m *Member) Node() *syntax.Node {
	return m.node
}

func (m *Member) ResolveType(name string) (string, error) {
	return m.owner.ResolveType(name)
}

func (m *Member) String() string {
	if name := m.Name(); name != "" {
		return m.Kind().String() + " " + m.owner.CanonicalName() + "." + name
	}
	return m.Kind().String() + " in " + m.owner.CanonicalName()
}
