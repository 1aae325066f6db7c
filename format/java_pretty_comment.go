package format

import (
	"github.com/dhamidi/javasrc/java/syntax"
)

func (p *JavaPrettyPrinter) printComment(node *syntax.Node) {
	p.writeIndent()
	p.printRaw(node.TokenLiteral(), p.origIndent(node))
}

// separate ends the line of prev before child is printed. A comment that
// trailed prev on the same source line stays there.
func (p *JavaPrettyPrinter) separate(prev, child *syntax.Node, blank bool) {
	if child.Kind == syntax.KindComment && sameLine(prev, child) {
		p.write(" ")
		return
	}
	p.newline()
	if blank {
		p.newline()
	}
}

type unitGroup int

const (
	groupPackage unitGroup = iota
	groupImport
	groupOther
)

func groupOf(node *syntax.Node) unitGroup {
	switch node.Kind {
	case syntax.KindPackageDecl:
		return groupPackage
	case syntax.KindImportDecl:
		return groupImport
	}
	return groupOther
}

// unitBlankLine decides whether an empty line separates two top-level
// nodes. Parsed nodes keep their original spacing; the package, import and
// type sections are always separated.
func (p *JavaPrettyPrinter) unitBlankLine(prev, child *syntax.Node) bool {
	crossesSection := groupOf(prev) != groupOf(child)
	if child.Span.IsZero() || prev.Span.IsZero() {
		return crossesSection || (!child.Span.IsZero() && child.BlankBefore)
	}
	if child.BlankBefore {
		return true
	}
	return crossesSection && prev.Kind != syntax.KindComment && child.Kind != syntax.KindComment
}
