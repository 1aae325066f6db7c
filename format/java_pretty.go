package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javasrc/java/syntax"
)

// ErrMalformed is returned when a tree cannot be rendered, for example an
// annotation that was never given a type name.
var ErrMalformed = errors.New("malformed syntax tree")

type JavaPrettyPrinter struct {
	w           io.Writer
	source      []byte
	indent      int
	indentStr   string
	prefix      string
	atLineStart bool
	lineText    string
	err         error
}

func NewJavaPrettyPrinter(w io.Writer) *JavaPrettyPrinter {
	return &JavaPrettyPrinter{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
}

// Print renders node. source is the buffer the tree was parsed from and is
// used to re-indent verbatim text; it may be nil for trees built in memory.
func (p *JavaPrettyPrinter) Print(node *syntax.Node, source []byte) error {
	p.source = source
	p.printNode(node)
	if node.Kind != syntax.KindCompilationUnit && !p.atLineStart {
		p.newline()
	}
	return p.err
}

func (p *JavaPrettyPrinter) printNode(node *syntax.Node) {
	switch {
	case node.Kind == syntax.KindCompilationUnit:
		p.printCompilationUnit(node)
	case node.Kind == syntax.KindPackageDecl:
		p.printPackageDecl(node)
	case node.Kind == syntax.KindImportDecl:
		p.printImportDecl(node)
	case node.Kind.IsTypeDecl():
		p.printTypeDecl(node)
	case node.Kind.IsMember():
		p.printMember(node)
	case node.Kind == syntax.KindComment:
		p.printComment(node)
	case node.Kind == syntax.KindText:
		p.printRaw(node.TokenLiteral(), p.origIndent(node))
	default:
		p.fail("unexpected %s node", node.Kind)
	}
}

func (p *JavaPrettyPrinter) printCompilationUnit(node *syntax.Node) {
	var prev *syntax.Node
	for _, child := range node.Children {
		if prev != nil {
			p.separate(prev, child, p.unitBlankLine(prev, child))
		}
		p.printNode(child)
		prev = child
	}
	if prev != nil {
		p.newline()
	}
}

func (p *JavaPrettyPrinter) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
	}
}

func (p *JavaPrettyPrinter) currentIndent() string {
	return p.prefix + strings.Repeat(p.indentStr, p.indent)
}

func (p *JavaPrettyPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	p.write(p.currentIndent())
	p.atLineStart = false
}

func (p *JavaPrettyPrinter) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	if _, err := p.w.Write([]byte(s)); err != nil {
		p.err = err
		return
	}
	if idx := strings.LastIndex(s, "\n"); idx >= 0 {
		p.lineText = s[idx+1:]
	} else {
		p.lineText += s
	}
}

func (p *JavaPrettyPrinter) newline() {
	p.write("\n")
	p.atLineStart = true
}

// printRaw writes verbatim source. Continuation lines lose origIndent
// columns of leading whitespace and gain the current indentation instead.
func (p *JavaPrettyPrinter) printRaw(text string, origIndent int) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.newline()
			line = stripIndent(line, origIndent)
			if strings.TrimSpace(line) == "" {
				continue
			}
		}
		if line == "" {
			continue
		}
		p.writeIndent()
		p.write(line)
	}
}

func stripIndent(line string, n int) string {
	i := 0
	for i < len(line) && i < n && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return strings.TrimRight(line[i:], "\r")
}

// origIndent returns the leading whitespace width of the source line on
// which node starts.
func (p *JavaPrettyPrinter) origIndent(node *syntax.Node) int {
	if node == nil || node.Span.IsZero() || p.source == nil {
		return 0
	}
	off := node.Span.Start.Offset
	if off > len(p.source) {
		return 0
	}
	start := bytes.LastIndexByte(p.source[:off], '\n') + 1
	n := 0
	for start+n < len(p.source) && (p.source[start+n] == ' ' || p.source[start+n] == '\t') {
		n++
	}
	return n
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// Source renders a tree to bytes.
func Source(root *syntax.Node, source []byte) ([]byte, error) {
	var buf bytes.Buffer
	pp := NewJavaPrettyPrinter(&buf)
	if err := pp.Print(root, source); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func PrettyPrintJava(source []byte) ([]byte, error) {
	tree, err := syntax.Parse(context.Background(), source)
	if err != nil {
		return nil, err
	}
	return Source(tree.Root, tree.Source)
}
