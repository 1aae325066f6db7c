package source

import (
	"fmt"
	"sync"

	"github.com/dhamidi/javasrc/java/typename"
)

// WildcardResolver maps a simple type name to a qualified one for a unit
// with on-demand imports. Returning simpleName unchanged means the resolver
// does not know the name.
type WildcardResolver interface {
	Resolve(owner Element, simpleName string) string
}

// WildcardResolverFunc adapts a function to WildcardResolver.
type WildcardResolverFunc func(owner Element, simpleName string) string

func (f WildcardResolverFunc) Resolve(owner Element, simpleName string) string {
	return f(owner, simpleName)
}

// Registry is an ordered, immutable list of wildcard resolvers.
type Registry struct {
	resolvers []WildcardResolver
}

// NewRegistry returns a registry trying resolvers in the given order.
func NewRegistry(resolvers ...WildcardResolver) *Registry {
	r := &Registry{}
	for _, res := range resolvers {
		if res != nil {
			r.resolvers = append(r.resolvers, res)
		}
	}
	return r
}

// With returns a registry that consults r's resolvers first and then extra.
func (r *Registry) With(extra ...WildcardResolver) *Registry {
	all := append([]WildcardResolver{}, r.Resolvers()...)
	return NewRegistry(append(all, extra...)...)
}

func (r *Registry) Resolvers() []WildcardResolver {
	if r == nil {
		return nil
	}
	return append([]WildcardResolver(nil), r.resolvers...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.resolvers)
}

// Resolve asks each resolver in turn and stops at the first qualified
// answer. It fails with ErrIllegalState when no resolver is registered.
func (r *Registry) Resolve(owner Element, simpleName string) (string, error) {
	if r.Len() == 0 {
		return "", fmt.Errorf("%w: no wildcard import resolver registered to resolve %q", ErrIllegalState, simpleName)
	}
	for _, res := range r.resolvers {
		result := res.Resolve(owner, simpleName)
		if result != simpleName && typename.IsQualified(result) {
			return result, nil
		}
	}
	return simpleName, nil
}

var (
	discoveredMu sync.Mutex
	discovered   []WildcardResolver

	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// RegisterWildcardResolver makes r available to DefaultRegistry. Resolver
// packages call it from init; registrations after the first use of
// DefaultRegistry are not seen by it.
func RegisterWildcardResolver(r WildcardResolver) {
	if r == nil {
		return
	}
	discoveredMu.Lock()
	defer discoveredMu.Unlock()
	discovered = append(discovered, r)
}

// RegisteredWildcardResolvers returns the resolvers registered so far, in
// registration order.
func RegisteredWildcardResolvers() []WildcardResolver {
	discoveredMu.Lock()
	defer discoveredMu.Unlock()
	return append([]WildcardResolver(nil), discovered...)
}

// DefaultRegistry returns the process-wide registry. It snapshots the
// registered resolvers on first call and keeps that list afterwards.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		discoveredMu.Lock()
		defer discoveredMu.Unlock()
		defaultRegistry = NewRegistry(discovered...)
		log.Debugf("wildcard resolver registry initialized with %d resolvers", len(defaultRegistry.resolvers))
	})
	return defaultRegistry
}

// InitDefaultRegistry installs r as the process-wide registry. It only has
// an effect before the first call to DefaultRegistry.
func InitDefaultRegistry(r *Registry) {
	defaultOnce.Do(func() {
		defaultRegistry = r
	})
}

// ResetDefaultRegistry forgets the snapshot and all registrations. It is
// meant for tests and is not safe for concurrent use.
func ResetDefaultRegistry() {
	discoveredMu.Lock()
	discovered = nil
	discoveredMu.Unlock()
	defaultOnce = sync.Once{}
	defaultRegistry = nil
}
