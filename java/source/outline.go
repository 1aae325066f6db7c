package source

import (
	"github.com/dhamidi/javasrc/format"
	"github.com/dhamidi/javasrc/java/syntax"
)

// Outline summarizes the unit for the encoders of package format.
func (u *Unit) Outline() *format.Outline {
	o := &format.Outline{
		Path:    u.path,
		Package: u.Package(),
	}
	for _, imp := range u.Imports() {
		name := imp.QualifiedName()
		o.Imports = append(o.Imports, format.ImportModel{
			Name:     name,
			Static:   imp.IsStatic(),
			Wildcard: imp.IsWildcard(),
		})
	}
	if info := u.PackageInfo(); info != nil {
		o.Types = append(o.Types, format.TypeModel{
			Kind:          info.Kind().String(),
			Name:          info.Name(),
			CanonicalName: info.CanonicalName(),
			QualifiedName: info.QualifiedName(),
			Visibility:    string(info.Visibility()),
			Annotations:   annotationNames(info.Annotations()),
		})
	}
	for _, t := range u.Types() {
		o.Types = append(o.Types, typeModel(t))
	}
	return o
}

func typeModel(t *Type) format.TypeModel {
	m := format.TypeModel{
		Kind:          t.Kind().String(),
		Name:          t.Name(),
		CanonicalName: t.CanonicalName(),
		QualifiedName: t.QualifiedName(),
		Visibility:    string(t.Visibility()),
		Modifiers:     keywords(t.node),
		Annotations:   annotationNames(t.Annotations()),
	}
	for _, member := range t.Members() {
		m.Members = append(m.Members, format.MemberModel{
			Kind:        member.Kind().String(),
			Name:        member.Name(),
			Visibility:  string(member.Visibility()),
			Modifiers:   keywords(member.node),
			Annotations: annotationNames(member.Annotations()),
		})
	}
	for _, nested := range t.NestedTypes() {
		m.Nested = append(m.Nested, typeModel(nested))
	}
	return m
}

// keywords lists the non-visibility modifier keywords of a declaration.
func keywords(node *syntax.Node) []string {
	mods, err := modifiersOf(node)
	if err != nil {
		return nil
	}
	var result []string
	for _, id := range mods.ChildrenOfKind(syntax.KindIdentifier) {
		switch lit := id.TokenLiteral(); lit {
		case "public", "protected", "private":
		default:
			result = append(result, lit)
		}
	}
	return result
}

func annotationNames(annotations []*Annotation) []string {
	var result []string
	for _, a := range annotations {
		result = append(result, a.Name())
	}
	return result
}
