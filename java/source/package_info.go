package source

import (
	"errors"
	"fmt"

	"github.com/dhamidi/javasrc/java/syntax"
)

// PackageInfo is the element of a package-info unit. Its annotations are
// those of the package declaration.
type PackageInfo struct {
	annotated

	unit *Unit
}

var _ Element = (*PackageInfo)(nil)

const packageInfoName = "package-info"

func newPackageInfo(u *Unit) *PackageInfo {
	p := &PackageInfo{unit: u}
	p.annotated = annotated{self: p, target: p.modifiers}
	return p
}

func (p *PackageInfo) modifiers() (*syntax.Node, error) {
	decl := p.unit.packageDecl()
	if decl == nil {
		return nil, fmt.Errorf("%w: %s: no package declaration", ErrInvalidState, unexpectedBody)
	}
	mods := decl.FirstChildOfKind(syntax.KindModifiers)
	if mods == nil {
		mods = syntax.NewModifiers()
		decl.InsertChild(0, mods)
	}
	return mods, nil
}

func (p *PackageInfo) Kind() ElementKind {
	return KindPackageInfo
}

func (p *PackageInfo) Name() string {
	return packageInfoName
}

// SetName always fails: the element is named after its file.
func (p *PackageInfo) SetName(string) error {
	return fmt.Errorf("cannot rename %s: %w", packageInfoName, errors.ErrUnsupported)
}

func (p *PackageInfo) Unit() *Unit {
	return p.unit
}

// Node returns the package declaration, nil if there is none.
func (p *PackageInfo) Node() *syntax.Node {
	return p.unit.packageDecl()
}

func (p *PackageInfo) Enclosing() *Type {
	return nil
}

func (p *PackageInfo) Package() string {
	return p.unit.Package()
}

func (p *PackageInfo) CanonicalName() string {
	if pkg := p.Package(); pkg != "" {
		return pkg + "." + packageInfoName
	}
	return packageInfoName
}

func (p *PackageInfo) QualifiedName() string {
	return p.CanonicalName()
}

func (p *PackageInfo) NestedTypes() []*Type {
	return nil
}

// Visibility is always package: packages carry no access modifiers.
func (p *PackageInfo) Visibility() Visibility {
	return VisibilityPackage
}

func (p *PackageInfo) SetVisibility(v Visibility) error {
	return fmt.Errorf("%w: a package declaration cannot be %s", ErrInvalidState, v)
}

func (p *PackageInfo) IsPublic() bool    { return false }
func (p *PackageInfo) SetPublic() error  { return p.SetVisibility(VisibilityPublic) }
func (p *PackageInfo) SetPrivate() error { return p.SetVisibility(VisibilityPrivate) }

func (p *PackageInfo) ResolveType(name string) (string, error) {
	return p.unit.ResolveType(p, name)
}

func (p *PackageInfo) Equal(other Element) bool {
	o, ok := other.(*PackageInfo)
	return ok && o.unit.Document() == p.unit.Document()
}

func (p *PackageInfo) String() string {
	return p.CanonicalName()
}
