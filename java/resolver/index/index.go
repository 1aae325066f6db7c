// Package index resolves on-demand imports against a list of the types each
// package declares.
//
// An index is usually loaded from YAML:
//
//	packages:
//	  java.util:
//	    - List
//	    - Map
package index

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javasrc/java/source"
	"github.com/dhamidi/javasrc/java/typename"
)

var log = commonlog.GetLogger("javasrc.resolver.index")

// Index maps package names to the simple names of their top-level types.
// It is safe for concurrent use.
type Index struct {
	mu       sync.RWMutex
	packages map[string]map[string]struct{}
}

var _ source.WildcardResolver = (*Index)(nil)

func New() *Index {
	return &Index{packages: make(map[string]map[string]struct{})}
}

type document struct {
	Packages map[string][]string `yaml:"packages"`
}

// Load reads an index in YAML form.
func Load(r io.Reader) (*Index, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	idx := New()
	for pkg, names := range doc.Packages {
		for _, name := range names {
			if err := idx.Add(pkg, name); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()
	idx, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("loaded index %s with %d packages", path, len(idx.Packages()))
	return idx, nil
}

// Add records that pkg declares the type simpleName.
func (i *Index) Add(pkg, simpleName string) error {
	if !typename.IsSimpleName(pkg) && !typename.IsQualified(pkg) {
		return fmt.Errorf("%w: illegal package name %q", source.ErrInvalidArgument, pkg)
	}
	if !typename.IsSimpleName(simpleName) {
		return fmt.Errorf("%w: illegal type name %q", source.ErrInvalidArgument, simpleName)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	names, ok := i.packages[pkg]
	if !ok {
		names = make(map[string]struct{})
		i.packages[pkg] = names
	}
	names[simpleName] = struct{}{}
	return nil
}

func (i *Index) Has(pkg, simpleName string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.packages[pkg][simpleName]
	return ok
}

// Packages returns the indexed package names in sorted order.
func (i *Index) Packages() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]string, 0, len(i.packages))
	for pkg := range i.packages {
		result = append(result, pkg)
	}
	sort.Strings(result)
	return result
}

// Types returns the simple names indexed for pkg in sorted order.
func (i *Index) Types(pkg string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	result := make([]string, 0, len(i.packages[pkg]))
	for name := range i.packages[pkg] {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of indexed types.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	n := 0
	for _, names := range i.packages {
		n += len(names)
	}
	return n
}

// Merge adds every entry of other to i.
func (i *Index) Merge(other *Index) {
	if other == nil || other == i {
		return
	}
	other.mu.RLock()
	defer other.mu.RUnlock()
	i.mu.Lock()
	defer i.mu.Unlock()
	for pkg, names := range other.packages {
		dst, ok := i.packages[pkg]
		if !ok {
			dst = make(map[string]struct{}, len(names))
			i.packages[pkg] = dst
		}
		for name := range names {
			dst[name] = struct{}{}
		}
	}
}

// Resolve looks simpleName up in the packages of the owner unit's on-demand
// imports, in import order.
func (i *Index) Resolve(owner source.Element, simpleName string) string {
	if owner == nil {
		return simpleName
	}
	for _, imp := range owner.Unit().WildcardImports() {
		if i.Has(imp.Package(), simpleName) {
			return imp.Package() + "." + simpleName
		}
	}
	return simpleName
}

// WriteTo writes the index in the form Load reads.
func (i *Index) WriteTo(w io.Writer) (int64, error) {
	doc := document{Packages: make(map[string][]string)}
	for _, pkg := range i.Packages() {
		doc.Packages[pkg] = i.Types(pkg)
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return 0, fmt.Errorf("encode index: %w", err)
	}
	n, err := w.Write(out)
	return int64(n), err
}

//go:embed jdk.yaml
var jdkYAML string

var (
	jdkOnce  sync.Once
	jdkIndex *Index
)

// JDK returns the index of common JDK packages shipped with the module.
func JDK() *Index {
	jdkOnce.Do(func() {
		idx, err := Load(strings.NewReader(jdkYAML))
		if err != nil {
			panic(fmt.Sprintf("embedded JDK index: %v", err))
		}
		jdkIndex = idx
	})
	return jdkIndex
}
