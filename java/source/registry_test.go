package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(answers map[string]string) WildcardResolver {
	return WildcardResolverFunc(func(_ Element, simpleName string) string {
		if q, ok := answers[simpleName]; ok {
			return q
		}
		return simpleName
	})
}

func TestRegistryResolveOrder(t *testing.T) {
	r := NewRegistry(
		fixed(map[string]string{"Foo": "NotQualified"}),
		nil,
		fixed(map[string]string{"Foo": "com.a.Foo"}),
		fixed(map[string]string{"Foo": "com.b.Foo", "Bar": "com.b.Bar"}),
	)
	assert.Equal(t, 3, r.Len())

	got, err := r.Resolve(nil, "Foo")
	require.NoError(t, err)
	assert.Equal(t, "com.a.Foo", got)

	got, err = r.Resolve(nil, "Bar")
	require.NoError(t, err)
	assert.Equal(t, "com.b.Bar", got)

	got, err = r.Resolve(nil, "Baz")
	require.NoError(t, err)
	assert.Equal(t, "Baz", got)
}

func TestEmptyRegistryIsIllegalState(t *testing.T) {
	_, err := NewRegistry().Resolve(nil, "Foo")
	assert.ErrorIs(t, err, ErrIllegalState)

	var r *Registry
	assert.Zero(t, r.Len())
	_, err = r.Resolve(nil, "Foo")
	assert.ErrorIs(t, err, ErrIllegalState)
}

func TestRegistryWith(t *testing.T) {
	base := NewRegistry(fixed(map[string]string{"Foo": "com.a.Foo"}))
	extended := base.With(fixed(map[string]string{"Bar": "com.b.Bar"}))

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, extended.Len())

	got, err := extended.Resolve(nil, "Bar")
	require.NoError(t, err)
	assert.Equal(t, "com.b.Bar", got)
}

func TestDefaultRegistrySnapshotsRegistrations(t *testing.T) {
	ResetDefaultRegistry()
	t.Cleanup(ResetDefaultRegistry)

	RegisterWildcardResolver(fixed(map[string]string{"List": "java.util.List"}))
	RegisterWildcardResolver(nil)

	r := DefaultRegistry()
	require.Equal(t, 1, r.Len())
	assert.Same(t, r, DefaultRegistry())

	RegisterWildcardResolver(fixed(map[string]string{"Map": "java.util.Map"}))
	assert.Equal(t, 1, DefaultRegistry().Len())

	u := parseUnit(t, "import java.util.*;\n\nclass Foo {}\n")
	got, err := u.ResolveType(nil, "List")
	require.NoError(t, err)
	assert.Equal(t, "java.util.List", got)
	assert.Same(t, r, u.Registry())
}

func TestRegisteredWildcardResolvers(t *testing.T) {
	ResetDefaultRegistry()
	t.Cleanup(ResetDefaultRegistry)

	assert.Empty(t, RegisteredWildcardResolvers())
	RegisterWildcardResolver(fixed(map[string]string{"List": "java.util.List"}))
	RegisterWildcardResolver(fixed(map[string]string{"List": "com.acme.List"}))

	registered := RegisteredWildcardResolvers()
	require.Len(t, registered, 2)
	assert.Equal(t, "java.util.List", registered[0].Resolve(nil, "List"))

	registered[0] = nil
	assert.Len(t, NewRegistry(RegisteredWildcardResolvers()...).Resolvers(), 2)
}

func TestInitDefaultRegistry(t *testing.T) {
	ResetDefaultRegistry()
	t.Cleanup(ResetDefaultRegistry)

	custom := NewRegistry(fixed(nil))
	InitDefaultRegistry(custom)
	assert.Same(t, custom, DefaultRegistry())

	InitDefaultRegistry(NewRegistry())
	assert.Same(t, custom, DefaultRegistry())
}
