package format

import (
	"strings"

	"github.com/dhamidi/javasrc/java/syntax"
)

var typeKeywords = map[syntax.NodeKind]string{
	syntax.KindClassDecl:      "class",
	syntax.KindInterfaceDecl:  "interface",
	syntax.KindEnumDecl:       "enum",
	syntax.KindRecordDecl:     "record",
	syntax.KindAnnotationDecl: "@interface",
}

func (p *JavaPrettyPrinter) printPackageDecl(node *syntax.Node) {
	name := node.FirstChildOfKind(syntax.KindQualifiedName)
	if name == nil || name.TokenLiteral() == "" {
		p.fail("package declaration without a name")
		return
	}
	p.writeIndent()
	if mods := node.FirstChildOfKind(syntax.KindModifiers); mods != nil {
		p.printModifiers(mods, name)
	}
	p.writeIndent()
	p.write("package " + name.TokenLiteral() + ";")
}

func (p *JavaPrettyPrinter) printImportDecl(node *syntax.Node) {
	name := node.FirstChildOfKind(syntax.KindQualifiedName)
	if name == nil || name.TokenLiteral() == "" {
		p.fail("import declaration without a name")
		return
	}
	p.writeIndent()
	p.write("import ")
	for _, child := range node.ChildrenOfKind(syntax.KindIdentifier) {
		if child.TokenLiteral() == "static" {
			p.write("static ")
		}
	}
	p.write(name.TokenLiteral())
	for _, child := range node.ChildrenOfKind(syntax.KindIdentifier) {
		if child.TokenLiteral() == "*" {
			p.write(".*")
		}
	}
	p.write(";")
}

func (p *JavaPrettyPrinter) printTypeDecl(node *syntax.Node) {
	name := node.FirstChildOfKind(syntax.KindIdentifier)
	body := node.FirstChildOfKind(syntax.KindBlock)
	if name == nil || name.TokenLiteral() == "" {
		p.fail("%s without a name", node.Kind)
		return
	}
	if body == nil {
		p.fail("%s %s without a body", node.Kind, name.TokenLiteral())
		return
	}

	p.writeIndent()
	if mods := node.FirstChildOfKind(syntax.KindModifiers); mods != nil {
		p.printModifiers(mods, name)
	}
	p.writeIndent()
	p.write(typeKeywords[node.Kind] + " " + name.TokenLiteral())
	if header := node.FirstChildOfKind(syntax.KindHeader); header != nil {
		p.printRaw(header.TokenLiteral(), p.origIndent(header))
	}
	p.write(" ")
	p.printBody(body)
}

func (p *JavaPrettyPrinter) printBody(block *syntax.Node) {
	p.write("{")
	if len(block.Children) == 0 {
		if !block.Span.IsZero() && block.Span.Start.Line == block.Span.End.Line {
			p.write("}")
			return
		}
		p.newline()
		p.writeIndent()
		p.write("}")
		return
	}

	p.indent++
	var prev *syntax.Node
	for _, child := range block.Children {
		if prev == nil {
			p.newline()
		} else {
			p.separate(prev, child, !child.Span.IsZero() && child.BlankBefore)
		}
		p.printNode(child)
		prev = child
	}
	p.newline()
	p.indent--
	p.writeIndent()
	p.write("}")
}

// printMember renders a field, method, constructor or other body
// declaration: structural modifiers followed by verbatim source, with any
// type declarations embedded in it rendered structurally.
func (p *JavaPrettyPrinter) printMember(node *syntax.Node) {
	var rest []*syntax.Node
	var mods *syntax.Node
	for _, child := range node.Children {
		if child.Kind == syntax.KindModifiers && mods == nil {
			mods = child
			continue
		}
		rest = append(rest, child)
	}

	p.writeIndent()
	if mods != nil {
		var next *syntax.Node
		if len(rest) > 0 {
			next = rest[0]
		}
		p.printModifiers(mods, next)
	}

	base := p.origIndent(node)
	for _, child := range rest {
		switch {
		case child.Kind == syntax.KindText:
			p.printRaw(child.TokenLiteral(), base)
		case child.Kind == syntax.KindIdentifier:
			p.writeIndent()
			p.write(child.TokenLiteral())
		case child.Kind.IsTypeDecl():
			p.printEmbedded(child, base)
		default:
			p.fail("unexpected %s node in %s", child.Kind, node.Kind)
		}
	}
}

// printEmbedded renders a type declaration found inside verbatim member
// source, aligned with the text around it.
func (p *JavaPrettyPrinter) printEmbedded(decl *syntax.Node, base int) {
	savedPrefix, savedIndent := p.prefix, p.indent
	if p.atLineStart {
		extra := decl.Span.Start.Column - base
		if extra < 0 || decl.Span.IsZero() {
			extra = 0
		}
		p.prefix = p.currentIndent() + strings.Repeat(" ", extra)
	} else {
		p.prefix = leadingSpace(p.lineText)
	}
	p.indent = 0
	p.printTypeDecl(decl)
	p.prefix, p.indent = savedPrefix, savedIndent
}

// printModifiers writes annotations and keywords. An annotation stays on
// the line of whatever followed it in the source; new annotations get a
// line of their own.
func (p *JavaPrettyPrinter) printModifiers(mods *syntax.Node, next *syntax.Node) {
	for i, child := range mods.Children {
		follow := next
		if i+1 < len(mods.Children) {
			follow = mods.Children[i+1]
		}
		p.writeIndent()
		switch child.Kind {
		case syntax.KindAnnotation:
			p.printAnnotation(child)
			if sameLine(child, follow) {
				p.write(" ")
			} else {
				p.newline()
			}
		case syntax.KindComment:
			p.printComment(child)
			if strings.HasPrefix(child.TokenLiteral(), "//") {
				p.newline()
			} else {
				p.write(" ")
			}
		case syntax.KindIdentifier:
			p.write(child.TokenLiteral() + " ")
		default:
			p.fail("unexpected %s node in modifiers", child.Kind)
		}
	}
}

func (p *JavaPrettyPrinter) printAnnotation(node *syntax.Node) {
	name := node.FirstChildOfKind(syntax.KindQualifiedName)
	if name == nil || name.TokenLiteral() == "" {
		p.fail("annotation without a type name")
		return
	}
	p.write("@" + name.TokenLiteral())
	if args := node.FirstChildOfKind(syntax.KindAnnotationArgs); args != nil {
		p.printRaw(args.TokenLiteral(), p.origIndent(args))
	}
}

func sameLine(a, b *syntax.Node) bool {
	if a == nil || b == nil || a.Span.IsZero() || b.Span.IsZero() {
		return false
	}
	return a.Span.End.Line == b.Span.Start.Line
}
