package format

import (
	"fmt"
	"io"
	"strings"
)

// LineEncoder writes one tab-separated record per declaration:
//
//	package	com.example
//	import	java.util.List	-
//	class	com.example.Foo	com.example.Foo	public	final	@Deprecated
//	method	com.example.Foo	run	public	static	-
type LineEncoder struct {
	w       io.Writer
	outline *Outline
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(outline *Outline) error {
	e.outline = outline
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	o := e.outline

	if o.Package != "" {
		fmt.Fprintf(&sb, "package\t%s\n", o.Package)
	}
	for _, imp := range o.Imports {
		fmt.Fprintf(&sb, "import\t%s\t%s\n", imp.Name, importFlagsStr(imp))
	}
	for _, t := range o.Types {
		writeType(&sb, t)
	}

	return []byte(sb.String()), nil
}

func writeType(sb *strings.Builder, t TypeModel) {
	fmt.Fprintf(sb, "%s\t%s\t%s\t%s\t%s\t%s\n",
		t.Kind,
		t.CanonicalName,
		t.QualifiedName,
		t.Visibility,
		listStr(t.Modifiers),
		annotationsStr(t.Annotations),
	)
	for _, m := range t.Members {
		name := m.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(sb, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Kind,
			t.CanonicalName,
			name,
			m.Visibility,
			listStr(m.Modifiers),
			annotationsStr(m.Annotations),
		)
	}
	for _, nested := range t.Nested {
		writeType(sb, nested)
	}
}

func importFlagsStr(imp ImportModel) string {
	var flags []string
	if imp.Static {
		flags = append(flags, "static")
	}
	if imp.Wildcard {
		flags = append(flags, "wildcard")
	}
	return listStr(flags)
}

func annotationsStr(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = "@" + name
	}
	return strings.Join(parts, ",")
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}
