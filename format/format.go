package format

import (
	"encoding"
)

// Encoder writes a unit outline in some textual form.
type Encoder interface {
	encoding.TextMarshaler
	Encode(outline *Outline) error
}

// Outline is a flattened, read-only view of a compilation unit: its package,
// imports and type declarations with their members.
type Outline struct {
	Path    string
	Package string
	Imports []ImportModel
	Types   []TypeModel
}

type ImportModel struct {
	Name     string
	Static   bool
	Wildcard bool
}

type TypeModel struct {
	Kind          string
	Name          string
	CanonicalName string
	QualifiedName string
	Visibility    string
	Modifiers     []string
	Annotations   []string
	Members       []MemberModel
	Nested        []TypeModel
}

type MemberModel struct {
	Kind        string
	Name        string
	Visibility  string
	Modifiers   []string
	Annotations []string
}
