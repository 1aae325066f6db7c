package format

import (
	"encoding/json"
	"io"
)

type JSONEncoder struct {
	w       io.Writer
	outline *Outline
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(outline *Outline) error {
	e.outline = outline
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err = e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildUnitData(), "", "  ")
}

type jsonUnit struct {
	Path    string       `json:"path,omitempty"`
	Package string       `json:"package"`
	Imports []jsonImport `json:"imports,omitempty"`
	Types   []jsonType   `json:"types,omitempty"`
}

type jsonImport struct {
	Name     string `json:"name"`
	Static   bool   `json:"static,omitempty"`
	Wildcard bool   `json:"wildcard,omitempty"`
}

type jsonType struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	CanonicalName string       `json:"canonicalName"`
	QualifiedName string       `json:"qualifiedName"`
	Visibility    string       `json:"visibility"`
	Modifiers     []string     `json:"modifiers,omitempty"`
	Annotations   []string     `json:"annotations,omitempty"`
	Members       []jsonMember `json:"members,omitempty"`
	Nested        []jsonType   `json:"nested,omitempty"`
}

type jsonMember struct {
	Kind        string   `json:"kind"`
	Name        string   `json:"name,omitempty"`
	Visibility  string   `json:"visibility"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

func (e *JSONEncoder) buildUnitData() jsonUnit {
	o := e.outline
	data := jsonUnit{
		Path:    o.Path,
		Package: o.Package,
	}
	for _, imp := range o.Imports {
		data.Imports = append(data.Imports, jsonImport(imp))
	}
	for _, t := range o.Types {
		data.Types = append(data.Types, buildType(t))
	}
	return data
}

func buildType(t TypeModel) jsonType {
	data := jsonType{
		Kind:          t.Kind,
		Name:          t.Name,
		CanonicalName: t.CanonicalName,
		QualifiedName: t.QualifiedName,
		Visibility:    t.Visibility,
		Modifiers:     t.Modifiers,
		Annotations:   t.Annotations,
	}
	for _, m := range t.Members {
		data.Members = append(data.Members, jsonMember(m))
	}
	for _, nested := range t.Nested {
		data.Nested = append(data.Nested, buildType(nested))
	}
	return data
}
