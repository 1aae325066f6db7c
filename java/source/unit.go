// Package source is an editable object model over Java compilation units.
//
// A Unit wraps a parsed syntax tree. Its imports, types, members and
// annotations are views onto tree nodes: edits go straight into the tree and
// show up when the unit is rendered again. Units may be read from several
// goroutines but are not safe for concurrent mutation.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javasrc/format"
	"github.com/dhamidi/javasrc/java/syntax"
	"github.com/dhamidi/javasrc/java/typename"
)

var log = commonlog.GetLogger("javasrc.source")

type Unit struct {
	tree     *syntax.Tree
	path     string
	registry *Registry

	// mu guards the element caches below.
	mu          sync.Mutex
	imports     map[*syntax.Node]*Import
	types       map[*syntax.Node]*Type
	members     map[*syntax.Node]*Member
	annotations map[*syntax.Node]*Annotation
	packageInfo *PackageInfo
}

type Option func(*Unit)

// WithPath records the file the unit was read from.
func WithPath(path string) Option {
	return func(u *Unit) {
		u.path = path
	}
}

// WithRegistry makes the unit resolve wildcard imports through r instead of
// the process-wide registry.
func WithRegistry(r *Registry) Option {
	return func(u *Unit) {
		u.registry = r
	}
}

// New wraps an already parsed tree.
func New(tree *syntax.Tree, opts ...Option) *Unit {
	u := &Unit{
		tree:        tree,
		imports:     make(map[*syntax.Node]*Import),
		types:       make(map[*syntax.Node]*Type),
		members:     make(map[*syntax.Node]*Member),
		annotations: make(map[*syntax.Node]*Annotation),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func Parse(ctx context.Context, src []byte, opts ...Option) (*Unit, error) {
	tree, err := syntax.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return New(tree, opts...), nil
}

func ParseFile(ctx context.Context, path string, opts ...Option) (*Unit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(ctx, src, append([]Option{WithPath(path)}, opts...)...)
}

var declKinds = map[ElementKind]syntax.NodeKind{
	KindClass:      syntax.KindClassDecl,
	KindInterface:  syntax.KindInterfaceDecl,
	KindEnum:       syntax.KindEnumDecl,
	KindAnnotation: syntax.KindAnnotationDecl,
	KindRecord:     syntax.KindRecordDecl,
}

// Create returns a unit holding a single empty public type.
func Create(kind ElementKind, name string, opts ...Option) (*Unit, error) {
	declKind, ok := declKinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: cannot create a unit for a %s", ErrInvalidArgument, kind)
	}
	if !typename.IsSimpleName(name) {
		return nil, fmt.Errorf("%w: illegal type name %q", ErrInvalidArgument, name)
	}
	root := &syntax.Node{Kind: syntax.KindCompilationUnit}
	root.AddChild(syntax.NewTypeDecl(declKind, name))
	return New(&syntax.Tree{Root: root}, opts...), nil
}

func (u *Unit) Root() *syntax.Node {
	return u.tree.Root
}

// Document returns the tree backing the unit. Elements of different
// documents never compare equal.
func (u *Unit) Document() *syntax.Tree {
	return u.tree
}

func (u *Unit) Path() string {
	return u.path
}

// Registry returns the wildcard resolver registry used by the unit.
func (u *Unit) Registry() *Registry {
	if u.registry != nil {
		return u.registry
	}
	return DefaultRegistry()
}

func (u *Unit) SyntaxErrors() []syntax.Problem {
	return u.tree.Problems
}

func (u *Unit) HasSyntaxErrors() bool {
	return len(u.tree.Problems) > 0
}

// Source renders the unit, including every edit made so far.
func (u *Unit) Source() ([]byte, error) {
	return format.Source(u.tree.Root, u.tree.Source)
}

func (u *Unit) String() string {
	out, err := u.Source()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(out)
}

func (u *Unit) packageDecl() *syntax.Node {
	return u.tree.Root.FirstChildOfKind(syntax.KindPackageDecl)
}

// Package returns the declared package, or "" for the default package.
func (u *Unit) Package() string {
	decl := u.packageDecl()
	if decl == nil {
		return ""
	}
	if name := decl.FirstChildOfKind(syntax.KindQualifiedName); name != nil {
		return name.TokenLiteral()
	}
	return ""
}

// SetPackage declares name as the unit's package. An empty name moves the
// unit to the default package.
func (u *Unit) SetPackage(name string) error {
	if name == "" {
		u.SetDefaultPackage()
		return nil
	}
	if !typename.IsSimpleName(name) && !(typename.IsQualified(name) && typename.SimpleName(name) != "*") {
		return fmt.Errorf("%w: illegal package name %q", ErrInvalidArgument, name)
	}

	decl := u.packageDecl()
	if decl == nil {
		u.tree.Root.InsertChild(leadIndex(u.tree.Root), syntax.NewPackageDecl(name))
		log.Debugf("declared package %s", name)
		return nil
	}
	if q := decl.FirstChildOfKind(syntax.KindQualifiedName); q != nil {
		q.Token = &syntax.Token{Literal: name, Span: q.Span}
	} else {
		decl.AddChild(syntax.NewQualifiedName(name))
	}
	log.Debugf("changed package to %s", name)
	return nil
}

// SetDefaultPackage removes the package declaration.
func (u *Unit) SetDefaultPackage() {
	if decl := u.packageDecl(); decl != nil {
		u.tree.Root.RemoveChild(decl)
		log.Debugf("moved unit to the default package")
	}
}

func (u *Unit) IsDefaultPackage() bool {
	return u.Package() == ""
}

// leadIndex is where a declaration belongs that precedes everything except
// leading comments. Comments directly attached to the first declaration
// stay with it.
func leadIndex(root *syntax.Node) int {
	i := 0
	for i < len(root.Children) && root.Children[i].Kind == syntax.KindComment {
		i++
	}
	if i == len(root.Children) {
		return i
	}
	for i > 0 && !root.Children[i].BlankBefore && root.Children[i-1].Kind == syntax.KindComment {
		i--
	}
	return i
}

// Types returns the top-level type declarations in source order.
func (u *Unit) Types() []*Type {
	var result []*Type
	for _, child := range u.tree.Root.Children {
		if child.Kind.IsTypeDecl() {
			result = append(result, u.typeFor(child, nil))
		}
	}
	return result
}

// Type returns the top-level type with the given simple name, or nil.
func (u *Unit) Type(name string) *Type {
	for _, t := range u.Types() {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// PackageInfo returns the package-info element of a unit that declares no
// types, or nil.
func (u *Unit) PackageInfo() *PackageInfo {
	hasTypes := false
	for _, child := range u.tree.Root.Children {
		if child.Kind.IsTypeDecl() {
			hasTypes = true
			break
		}
	}
	isInfoFile := filepath.Base(u.path) == "package-info.java"
	if hasTypes || (u.packageDecl() == nil && !isInfoFile) {
		return nil
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.packageInfo == nil {
		u.packageInfo = newPackageInfo(u)
	}
	return u.packageInfo
}

// Elements returns the package-info element, if any, followed by the
// top-level types.
func (u *Unit) Elements() []Element {
	var result []Element
	if info := u.PackageInfo(); info != nil {
		result = append(result, info)
	}
	for _, t := range u.Types() {
		result = append(result, t)
	}
	return result
}

// ElementAt returns the innermost type whose declaration covers offset.
func (u *Unit) ElementAt(offset int) *Type {
	var found *Type
	candidates := u.Types()
	for len(candidates) > 0 {
		var next []*Type
		for _, t := range candidates {
			if t.node.Span.Contains(offset) {
				found = t
				next = t.NestedTypes()
				break
			}
		}
		candidates = next
	}
	return found
}

// defaultOwner is the element used for unit-level resolution.
func (u *Unit) defaultOwner() Element {
	if types := u.Types(); len(types) > 0 {
		return types[0]
	}
	if info := u.PackageInfo(); info != nil {
		return info
	}
	return nil
}

func (u *Unit) typeFor(node *syntax.Node, parent *Type) *Type {
	u.mu.Lock()
	defer u.mu.Unlock()
	if t, ok := u.types[node]; ok {
		return t
	}
	t := newType(u, node, parent)
	u.types[node] = t
	return t
}

func (u *Unit) memberFor(node *syntax.Node, owner *Type) *Member {
	u.mu.Lock()
	defer u.mu.Unlock()
	if m, ok := u.members[node]; ok {
		return m
	}
	m := newMember(owner, node)
	u.members[node] = m
	return m
}

func (u *Unit) annotationFor(node *syntax.Node, owner Owner) *Annotation {
	u.mu.Lock()
	defer u.mu.Unlock()
	if a, ok := u.annotations[node]; ok {
		return a
	}
	a := &Annotation{owner: owner, node: node}
	u.annotations[node] = a
	return a
}
