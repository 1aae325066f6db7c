package syntax

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Tree is the result of parsing one compilation unit.
type Tree struct {
	Root     *Node
	Source   []byte
	Problems []Problem
}

// Problem is a syntax error reported by the parser. Parsing continues past
// problems; the affected source is kept as Text.
type Problem struct {
	Message string
	Pos     Position
}

func (p Problem) Error() string {
	return p.Pos.String() + ": " + p.Message
}

// Parse parses Java source into a mutable tree.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())

	ts, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer ts.Close()

	c := newConverter(src)
	root := ts.RootNode()
	unit := c.compilationUnit(root)
	c.collectProblems(root)

	return &Tree{Root: unit, Source: src, Problems: c.problems}, nil
}

type converter struct {
	src        []byte
	lineStarts []int
	problems   []Problem
}

func newConverter(src []byte) *converter {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &converter{src: src, lineStarts: starts}
}

func (c *converter) position(offset int) Position {
	line := sort.Search(len(c.lineStarts), func(i int) bool { return c.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Position{Offset: offset, Line: line + 1, Column: offset - c.lineStarts[line]}
}

func (c *converter) span(start, end uint32) Span {
	return Span{Start: c.position(int(start)), End: c.position(int(end))}
}

func (c *converter) spanOf(n *sitter.Node) Span {
	return c.span(n.StartByte(), n.EndByte())
}

func (c *converter) content(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

func (c *converter) token(n *sitter.Node) *Token {
	return &Token{Literal: c.content(n), Span: c.spanOf(n)}
}

func (c *converter) text(kind NodeKind, start, end uint32) *Node {
	sp := c.span(start, end)
	return &Node{Kind: kind, Span: sp, Token: &Token{Literal: string(c.src[start:end]), Span: sp}}
}

// appendChild adds child to parent, recording whether an empty line
// separated it from the previous sibling.
func (c *converter) appendChild(parent, child *Node) {
	if child == nil {
		return
	}
	if n := len(parent.Children); n > 0 {
		prev := parent.Children[n-1]
		if !prev.Span.IsZero() && !child.Span.IsZero() && prev.Span.End.Offset <= child.Span.Start.Offset {
			child.BlankBefore = hasBlankLine(string(c.src[prev.Span.End.Offset:child.Span.Start.Offset]))
		}
	}
	parent.AddChild(child)
}

func hasBlankLine(gap string) bool {
	lines := strings.Split(gap, "\n")
	for i := 1; i < len(lines)-1; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			return true
		}
	}
	return false
}

func children(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	result := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, n.Child(i))
	}
	return result
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, child := range children(n) {
		if child.Type() == typ {
			return child
		}
	}
	return nil
}

var typeDeclKinds = map[string]NodeKind{
	"class_declaration":           KindClassDecl,
	"interface_declaration":       KindInterfaceDecl,
	"enum_declaration":            KindEnumDecl,
	"record_declaration":          KindRecordDecl,
	"annotation_type_declaration": KindAnnotationDecl,
}

var memberKinds = map[string]NodeKind{
	"field_declaration":                   KindFieldDecl,
	"constant_declaration":                KindFieldDecl,
	"method_declaration":                  KindMethodDecl,
	"annotation_type_element_declaration": KindMethodDecl,
	"constructor_declaration":             KindConstructorDecl,
	"compact_constructor_declaration":     KindConstructorDecl,
}

func isComment(n *sitter.Node) bool {
	return n.Type() == "line_comment" || n.Type() == "block_comment"
}

func (c *converter) compilationUnit(n *sitter.Node) *Node {
	unit := &Node{Kind: KindCompilationUnit, Span: c.spanOf(n)}
	for _, child := range children(n) {
		switch {
		case child.Type() == "package_declaration":
			c.appendChild(unit, c.packageDecl(child))
		case child.Type() == "import_declaration":
			c.appendChild(unit, c.importDecl(child))
		case isComment(child):
			c.appendChild(unit, c.text(KindComment, child.StartByte(), child.EndByte()))
		case typeDeclKinds[child.Type()] != 0:
			if decl := c.typeDecl(child); decl != nil {
				c.appendChild(unit, decl)
				continue
			}
			c.appendChild(unit, c.text(KindText, child.StartByte(), child.EndByte()))
		case child.Type() == ";":
		default:
			c.appendChild(unit, c.text(KindText, child.StartByte(), child.EndByte()))
		}
	}
	return unit
}

func (c *converter) packageDecl(n *sitter.Node) *Node {
	decl := &Node{Kind: KindPackageDecl, Span: c.spanOf(n)}
	mods := &Node{Kind: KindModifiers}
	var name *Node
	for _, child := range children(n) {
		switch child.Type() {
		case "marker_annotation", "annotation":
			c.extendModifiers(mods, child)
			mods.AddChild(c.annotation(child))
		case "identifier", "scoped_identifier":
			name = &Node{Kind: KindQualifiedName, Span: c.spanOf(child), Token: c.token(child)}
		}
	}
	decl.AddChild(mods)
	decl.AddChild(name)
	return decl
}

func (c *converter) extendModifiers(mods *Node, child *sitter.Node) {
	sp := c.spanOf(child)
	if mods.Span.IsZero() {
		mods.Span = sp
		return
	}
	mods.Span.End = sp.End
}

func (c *converter) importDecl(n *sitter.Node) *Node {
	decl := &Node{Kind: KindImportDecl, Span: c.spanOf(n)}
	for _, child := range children(n) {
		switch child.Type() {
		case "static":
			decl.AddChild(&Node{Kind: KindIdentifier, Span: c.spanOf(child), Token: c.token(child)})
		case "identifier", "scoped_identifier":
			decl.AddChild(&Node{Kind: KindQualifiedName, Span: c.spanOf(child), Token: c.token(child)})
		case "asterisk":
			decl.AddChild(&Node{Kind: KindIdentifier, Span: c.spanOf(child), Token: &Token{Literal: "*", Span: c.spanOf(child)}})
		}
	}
	return decl
}

func (c *converter) annotation(n *sitter.Node) *Node {
	a := &Node{Kind: KindAnnotation, Span: c.spanOf(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		a.AddChild(&Node{Kind: KindQualifiedName, Span: c.spanOf(name), Token: c.token(name)})
	}
	if args := n.ChildByFieldName("arguments"); args != nil {
		a.AddChild(c.text(KindAnnotationArgs, args.StartByte(), args.EndByte()))
	}
	return a
}

func (c *converter) modifiers(n *sitter.Node) *Node {
	mods := &Node{Kind: KindModifiers}
	if n == nil {
		return mods
	}
	mods.Span = c.spanOf(n)
	for _, child := range children(n) {
		switch {
		case child.Type() == "marker_annotation" || child.Type() == "annotation":
			mods.AddChild(c.annotation(child))
		case isComment(child):
			mods.AddChild(c.text(KindComment, child.StartByte(), child.EndByte()))
		default:
			mods.AddChild(&Node{Kind: KindIdentifier, Span: c.spanOf(child), Token: c.token(child)})
		}
	}
	return mods
}

// typeDecl converts a type declaration, or returns nil when error recovery
// left it without a name or body.
func (c *converter) typeDecl(n *sitter.Node) *Node {
	kind := typeDeclKinds[n.Type()]
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil {
		return nil
	}

	decl := &Node{Kind: kind, Span: c.spanOf(n)}
	decl.AddChild(c.modifiers(childOfType(n, "modifiers")))
	decl.AddChild(&Node{Kind: KindIdentifier, Span: c.spanOf(name), Token: c.token(name)})

	if header := string(c.src[name.EndByte():body.StartByte()]); strings.TrimSpace(header) != "" {
		lit := strings.TrimSpace(header)
		if strings.TrimLeft(header, " \t\r\n") != header {
			lit = " " + lit
		}
		sp := c.span(name.EndByte(), body.StartByte())
		decl.AddChild(&Node{Kind: KindHeader, Span: sp, Token: &Token{Literal: lit, Span: sp}})
	}

	if kind == KindEnumDecl {
		decl.AddChild(c.enumBody(body))
	} else {
		decl.AddChild(c.body(body))
	}
	return decl
}

func (c *converter) body(n *sitter.Node) *Node {
	block := &Node{Kind: KindBlock, Span: c.spanOf(n)}
	for _, child := range children(n) {
		c.bodyDeclaration(block, child)
	}
	return block
}

func (c *converter) bodyDeclaration(block *Node, child *sitter.Node) {
	typ := child.Type()
	switch {
	case typ == "{" || typ == "}" || typ == ";":
	case isComment(child):
		c.appendChild(block, c.text(KindComment, child.StartByte(), child.EndByte()))
	case typeDeclKinds[typ] != 0:
		if decl := c.typeDecl(child); decl != nil {
			c.appendChild(block, decl)
			return
		}
		c.appendChild(block, c.member(KindMember, child))
	case memberKinds[typ] != 0:
		c.appendChild(block, c.member(memberKinds[typ], child))
	default:
		c.appendChild(block, c.member(KindMember, child))
	}
}

// enumBody keeps the constant list as one verbatim member, including the
// semicolon that separates it from the remaining declarations.
func (c *converter) enumBody(n *sitter.Node) *Node {
	block := &Node{Kind: KindBlock, Span: c.spanOf(n)}
	var (
		constants  *Node
		start, end uint32
		scope      []*sitter.Node
	)
	closeConstants := func() {
		if constants == nil {
			return
		}
		constants.Span = c.span(start, end)
		constants.Children = c.pieces(scope, start, end)
		constants = nil
	}
	open := func(child *sitter.Node) {
		if constants == nil {
			constants = &Node{Kind: KindEnumConstants, Span: c.span(child.StartByte(), child.EndByte())}
			start = child.StartByte()
			c.appendChild(block, constants)
		}
		end = child.EndByte()
		scope = append(scope, child)
	}

	for _, child := range children(n) {
		switch child.Type() {
		case "enum_constant":
			open(child)
		case ",":
			if constants != nil {
				end = child.EndByte()
			}
		case "enum_body_declarations":
			for _, decl := range children(child) {
				if decl.Type() == ";" {
					open(decl)
					closeConstants()
					continue
				}
				c.bodyDeclaration(block, decl)
			}
		case "{", "}":
		default:
			if constants != nil && isComment(child) {
				end = child.EndByte()
				continue
			}
			c.bodyDeclaration(block, child)
		}
	}
	closeConstants()
	return block
}

func (c *converter) member(kind NodeKind, n *sitter.Node) *Node {
	m := &Node{Kind: kind, Span: c.spanOf(n)}
	modsNode := childOfType(n, "modifiers")
	restStart := n.StartByte()
	if modsNode != nil {
		m.AddChild(c.modifiers(modsNode))
		restStart = c.skipSpace(modsNode.EndByte(), n.EndByte())
	} else if kind != KindMember {
		m.AddChild(c.modifiers(nil))
	}

	var names []string
	var nameNode *sitter.Node
	switch n.Type() {
	case "field_declaration", "constant_declaration":
		for _, child := range children(n) {
			if child.Type() != "variable_declarator" {
				continue
			}
			if name := child.ChildByFieldName("name"); name != nil {
				if nameNode == nil {
					nameNode = name
				}
				names = append(names, c.content(name))
			}
		}
	case "method_declaration", "annotation_type_element_declaration",
		"constructor_declaration", "compact_constructor_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			nameNode = name
			names = append(names, c.content(name))
		}
	}

	scope := []*sitter.Node{n}
	if nameNode == nil {
		for _, piece := range c.pieces(scope, restStart, n.EndByte()) {
			m.AddChild(piece)
		}
		return m
	}

	m.Token = &Token{Literal: strings.Join(names, ","), Span: c.spanOf(nameNode)}
	for _, piece := range c.pieces(scope, restStart, nameNode.StartByte()) {
		m.AddChild(piece)
	}
	m.AddChild(&Node{Kind: KindIdentifier, Span: c.spanOf(nameNode), Token: c.token(nameNode)})
	for _, piece := range c.pieces(scope, nameNode.EndByte(), n.EndByte()) {
		m.AddChild(piece)
	}
	return m
}

func (c *converter) skipSpace(from, limit uint32) uint32 {
	for from < limit {
		switch c.src[from] {
		case ' ', '\t', '\r', '\n':
			from++
		default:
			return from
		}
	}
	return from
}

// pieces splits [start, end) into verbatim Text and the type declarations
// found inside it, such as local and member classes of anonymous bodies.
// The search does not descend into a declaration once found.
func (c *converter) pieces(scope []*sitter.Node, start, end uint32) []*Node {
	var decls []*sitter.Node
	for _, root := range scope {
		c.findTypeDecls(root, &decls)
	}

	var result []*Node
	cursor := start
	for _, d := range decls {
		if d.StartByte() < cursor || d.EndByte() > end {
			continue
		}
		decl := c.typeDecl(d)
		if decl == nil {
			continue
		}
		if d.StartByte() > cursor {
			result = append(result, c.text(KindText, cursor, d.StartByte()))
		}
		result = append(result, decl)
		cursor = d.EndByte()
	}
	if cursor < end {
		result = append(result, c.text(KindText, cursor, end))
	}
	return result
}

func (c *converter) findTypeDecls(n *sitter.Node, out *[]*sitter.Node) {
	for _, child := range children(n) {
		if typeDeclKinds[child.Type()] != 0 {
			*out = append(*out, child)
			continue
		}
		c.findTypeDecls(child, out)
	}
}

func (c *converter) collectProblems(n *sitter.Node) {
	if n.IsMissing() {
		c.problems = append(c.problems, Problem{
			Message: "missing " + n.Type(),
			Pos:     c.position(int(n.StartByte())),
		})
		return
	}
	if n.Type() == "ERROR" {
		c.problems = append(c.problems, Problem{
			Message: "syntax error",
			Pos:     c.position(int(n.StartByte())),
		})
		return
	}
	if !n.HasError() {
		return
	}
	for _, child := range children(n) {
		c.collectProblems(child)
	}
}
