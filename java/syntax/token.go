package syntax

import "fmt"

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (p Position) IsZero() bool {
	return p.Line == 0
}

type Span struct {
	Start Position
	End   Position
}

// IsZero reports whether the span was never assigned. Nodes created by edits
// carry a zero span.
func (s Span) IsZero() bool {
	return s.Start.IsZero()
}

// Contains reports whether offset falls within the span.
func (s Span) Contains(offset int) bool {
	return !s.IsZero() && offset >= s.Start.Offset && offset < s.End.Offset
}

type Token struct {
	Literal string
	Span    Span
}
