package syntax

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl

	// Members
	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindMember
	KindEnumConstants

	KindModifiers
	KindAnnotation
	KindAnnotationArgs
	KindQualifiedName
	KindIdentifier
	KindHeader
	KindBlock

	// Verbatim source
	KindText
	KindComment
)

var nodeKindNames = map[NodeKind]string{
	KindError:           "Error",
	KindCompilationUnit: "CompilationUnit",
	KindPackageDecl:     "PackageDecl",
	KindImportDecl:      "ImportDecl",
	KindClassDecl:       "ClassDecl",
	KindInterfaceDecl:   "InterfaceDecl",
	KindEnumDecl:        "EnumDecl",
	KindRecordDecl:      "RecordDecl",
	KindAnnotationDecl:  "AnnotationDecl",
	KindFieldDecl:       "FieldDecl",
	KindMethodDecl:      "MethodDecl",
	KindConstructorDecl: "ConstructorDecl",
	KindMember:          "Member",
	KindEnumConstants:   "EnumConstants",
	KindModifiers:       "Modifiers",
	KindAnnotation:      "Annotation",
	KindAnnotationArgs:  "AnnotationArgs",
	KindQualifiedName:   "QualifiedName",
	KindIdentifier:      "Identifier",
	KindHeader:          "Header",
	KindBlock:           "Block",
	KindText:            "Text",
	KindComment:         "Comment",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDecl reports whether k declares a class, interface, enum, record or
// annotation type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl, KindAnnotationDecl:
		return true
	}
	return false
}

// IsMember reports whether k is a declaration inside a type body that is not
// itself a type.
func (k NodeKind) IsMember() bool {
	switch k {
	case KindFieldDecl, KindMethodDecl, KindConstructorDecl, KindMember, KindEnumConstants:
		return true
	}
	return false
}

// Node is a mutable syntax tree node. Structural children are edited in place;
// Text children carry source that is reproduced verbatim.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token

	// BlankBefore records that the original source had an empty line
	// between this node and its previous sibling.
	BlankBefore bool
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// InsertChild inserts child at index i, clamping i to the valid range.
func (n *Node) InsertChild(i int, child *Node) {
	if child == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(n.Children) {
		n.Children = append(n.Children, child)
		return
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// RemoveChild detaches child by identity and reports whether it was found.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.IndexOf(child)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	return true
}

func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		lit := n.Token.Literal
		if n.Kind == KindText || n.Kind == KindComment || n.Kind == KindAnnotationArgs {
			lit = summarize(lit)
		}
		b.WriteString(" " + lit)
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}

func summarize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return "\"" + s + "\""
}

func NewIdentifier(name string) *Node {
	return &Node{Kind: KindIdentifier, Token: &Token{Literal: name}}
}

func NewQualifiedName(name string) *Node {
	return &Node{Kind: KindQualifiedName, Token: &Token{Literal: name}}
}

func NewModifiers() *Node {
	return &Node{Kind: KindModifiers}
}

// NewAnnotation returns an annotation node; an empty name yields an
// annotation the caller is expected to name before rendering.
func NewAnnotation(name string) *Node {
	n := &Node{Kind: KindAnnotation}
	if name != "" {
		n.AddChild(NewQualifiedName(name))
	}
	return n
}

// NewImportDecl builds an import of name. A name ending in ".*" becomes an
// on-demand import.
func NewImportDecl(name string, static bool) *Node {
	n := &Node{Kind: KindImportDecl}
	if static {
		n.AddChild(NewIdentifier("static"))
	}
	if base, ok := strings.CutSuffix(name, ".*"); ok {
		n.AddChild(NewQualifiedName(base))
		n.AddChild(NewIdentifier("*"))
		return n
	}
	n.AddChild(NewQualifiedName(name))
	return n
}

func NewPackageDecl(name string) *Node {
	n := &Node{Kind: KindPackageDecl}
	n.AddChild(NewModifiers())
	n.AddChild(NewQualifiedName(name))
	return n
}

// NewTypeDecl builds an empty public type declaration of the given kind.
func NewTypeDecl(kind NodeKind, name string) *Node {
	n := &Node{Kind: kind}
	mods := NewModifiers()
	mods.AddChild(NewIdentifier("public"))
	n.AddChild(mods)
	n.AddChild(NewIdentifier(name))
	if kind == KindRecordDecl {
		n.AddChild(&Node{Kind: KindHeader, Token: &Token{Literal: "()"}})
	}
	n.AddChild(&Node{Kind: KindBlock})
	return n
}
