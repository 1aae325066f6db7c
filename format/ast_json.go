package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javasrc/java/syntax"
)

// ASTJSONEncoder dumps a syntax tree as JSON.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node *syntax.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *syntax.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Token    string         `json:"token,omitempty"`
	Blank    bool           `json:"blankBefore,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n *syntax.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind:  n.Kind.String(),
		Blank: n.BlankBefore,
	}

	if !n.Span.IsZero() {
		jn.Span = &astJSONSpan{
			Start: astJSONPosition{Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   astJSONPosition{Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}

	return jn
}
