package source

import (
	"fmt"
	"strings"

	"github.com/dhamidi/javasrc/java/syntax"
	"github.com/dhamidi/javasrc/java/typename"
)

// Import is one import declaration of a unit.
type Import struct {
	unit *Unit
	node *syntax.Node
}

func (u *Unit) importFor(node *syntax.Node) *Import {
	u.mu.Lock()
	defer u.mu.Unlock()
	if imp, ok := u.imports[node]; ok {
		return imp
	}
	imp := &Import{unit: u, node: node}
	u.imports[node] = imp
	return imp
}

func (i *Import) Unit() *Unit {
	return i.unit
}

func (i *Import) Node() *syntax.Node {
	return i.node
}

func (i *Import) base() string {
	if q := i.node.FirstChildOfKind(syntax.KindQualifiedName); q != nil {
		return q.TokenLiteral()
	}
	return ""
}

func (i *Import) hasIdentifier(lit string) bool {
	for _, id := range i.node.ChildrenOfKind(syntax.KindIdentifier) {
		if id.TokenLiteral() == lit {
			return true
		}
	}
	return false
}

// QualifiedName returns the imported name; on-demand imports keep their
// ".*" suffix.
func (i *Import) QualifiedName() string {
	if i.IsWildcard() {
		return i.base() + ".*"
	}
	return i.base()
}

// SimpleName returns the last segment of the imported name, "*" for
// on-demand imports.
func (i *Import) SimpleName() string {
	if i.IsWildcard() {
		return "*"
	}
	return typename.SimpleName(i.base())
}

// Package returns the imported name without its last segment. For an
// on-demand import that is the package it covers.
func (i *Import) Package() string {
	if i.IsWildcard() {
		return i.base()
	}
	return typename.Package(i.base())
}

func (i *Import) IsWildcard() bool {
	return i.hasIdentifier("*")
}

func (i *Import) IsStatic() bool {
	return i.hasIdentifier("static")
}

func (i *Import) SetStatic(static bool) *Import {
	switch {
	case static && !i.IsStatic():
		i.node.InsertChild(0, syntax.NewIdentifier("static"))
	case !static:
		for _, id := range i.node.ChildrenOfKind(syntax.KindIdentifier) {
			if id.TokenLiteral() == "static" {
				i.node.RemoveChild(id)
			}
		}
	}
	return i
}

// SetName changes what the import refers to. It fails when the new name is
// not importable or is already imported by another entry.
func (i *Import) SetName(name string) error {
	stripped, err := importableName(name)
	if err != nil {
		return err
	}
	for _, other := range i.unit.Imports() {
		if other != i && other.QualifiedName() == stripped {
			return fmt.Errorf("%w: %s is already imported", ErrInvalidArgument, stripped)
		}
	}
	fresh := syntax.NewImportDecl(stripped, i.IsStatic())
	i.node.Children = fresh.Children
	return nil
}

func (i *Import) String() string {
	var b strings.Builder
	b.WriteString("import ")
	if i.IsStatic() {
		b.WriteString("static ")
	}
	b.WriteString(i.QualifiedName())
	b.WriteString(";")
	return b.String()
}

// importableName strips decoration from name and checks that the result can
// appear in an import declaration.
func importableName(name string) (string, error) {
	stripped := typename.Strip(name)
	switch {
	case stripped == "":
		return "", fmt.Errorf("%w: cannot import an empty type name", ErrInvalidArgument)
	case typename.IsPrimitive(stripped):
		return "", fmt.Errorf("%w: cannot import primitive type %q", ErrInvalidArgument, stripped)
	case typename.IsSimpleName(stripped):
		return "", fmt.Errorf("%w: cannot import a type without a package: %q", ErrInvalidArgument, stripped)
	case !typename.IsQualified(stripped):
		return "", fmt.Errorf("%w: illegal type name %q", ErrInvalidArgument, name)
	}
	return stripped, nil
}

// Imports returns the import entries in source order.
func (u *Unit) Imports() []*Import {
	var result []*Import
	for _, child := range u.tree.Root.Children {
		if child.Kind == syntax.KindImportDecl {
			result = append(result, u.importFor(child))
		}
	}
	return result
}

// WildcardImports returns the on-demand import entries in source order.
func (u *Unit) WildcardImports() []*Import {
	var result []*Import
	for _, imp := range u.Imports() {
		if imp.IsWildcard() {
			result = append(result, imp)
		}
	}
	return result
}

// Import returns the entry whose qualified name is name, or failing that
// the first entry whose simple name is name. It returns nil when nothing
// matches.
func (u *Unit) Import(name string) *Import {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	imports := u.Imports()
	for _, imp := range imports {
		if imp.QualifiedName() == name {
			return imp
		}
	}
	for _, imp := range imports {
		if !imp.IsWildcard() && imp.SimpleName() == name {
			return imp
		}
	}
	return nil
}

// HasImport reports whether name, stripped of array and generic decoration,
// is covered by an entry.
func (u *Unit) HasImport(name string) bool {
	return u.Import(typename.Strip(name)) != nil
}

// AddImport imports name. Adding a name that is already imported returns
// the existing entry; a bare simple name is accepted only in that case.
func (u *Unit) AddImport(name string) (*Import, error) {
	return u.addImport(name, false)
}

// AddStaticImport adds a static import of a member or, with a ".*" suffix,
// of all static members of a type.
func (u *Unit) AddStaticImport(name string) (*Import, error) {
	return u.addImport(name, true)
}

func (u *Unit) addImport(name string, static bool) (*Import, error) {
	stripped := typename.Strip(name)
	if existing := u.Import(stripped); existing != nil {
		return existing, nil
	}
	stripped, err := importableName(name)
	if err != nil {
		return nil, err
	}

	node := syntax.NewImportDecl(stripped, static)
	u.insertImport(node)
	log.Debugf("added import %s", stripped)
	return u.importFor(node), nil
}

// AddImportFrom copies an entry, typically one of another unit.
func (u *Unit) AddImportFrom(imp *Import) (*Import, error) {
	if imp == nil {
		return nil, fmt.Errorf("%w: nil import", ErrInvalidArgument)
	}
	added, err := u.AddImport(imp.QualifiedName())
	if err != nil {
		return nil, err
	}
	return added.SetStatic(imp.IsStatic()), nil
}

// AddImportOf imports an element by its canonical name.
func (u *Unit) AddImportOf(el Element) (*Import, error) {
	if el == nil {
		return nil, fmt.Errorf("%w: nil element", ErrInvalidArgument)
	}
	return u.AddImport(el.CanonicalName())
}

func (u *Unit) insertImport(node *syntax.Node) {
	root := u.tree.Root
	if imports := root.ChildrenOfKind(syntax.KindImportDecl); len(imports) > 0 {
		root.InsertChild(root.IndexOf(imports[len(imports)-1])+1, node)
		return
	}
	if pkg := u.packageDecl(); pkg != nil {
		root.InsertChild(root.IndexOf(pkg)+1, node)
		return
	}
	root.InsertChild(leadIndex(root), node)
}

// RemoveImport detaches imp. Entries of other units and entries that were
// already removed are ignored.
func (u *Unit) RemoveImport(imp *Import) {
	if imp == nil || imp.unit != u {
		return
	}
	if u.tree.Root.RemoveChild(imp.node) {
		u.mu.Lock()
		delete(u.imports, imp.node)
		u.mu.Unlock()
		log.Debugf("removed import %s", imp.QualifiedName())
	}
}

// RemoveImportNamed removes the entry Import(name) finds and reports
// whether there was one.
func (u *Unit) RemoveImportNamed(name string) bool {
	imp := u.Import(name)
	if imp == nil {
		return false
	}
	u.RemoveImport(imp)
	return true
}

// RequiresImport reports whether referring to name by its simple name
// needs a new import: it is importable, not imported yet and not part of
// java.lang.
func (u *Unit) RequiresImport(name string) bool {
	stripped, err := importableName(name)
	if err != nil {
		return false
	}
	return !u.HasImport(stripped) && !typename.IsJavaLang(stripped)
}
