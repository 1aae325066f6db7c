package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResolver struct {
	calls   int
	answers map[string]string
}

func (r *countingResolver) Resolve(owner Element, simpleName string) string {
	r.calls++
	if q, ok := r.answers[simpleName]; ok {
		return q
	}
	return simpleName
}

func TestResolveExplicitImportBeatsWildcard(t *testing.T) {
	counter := &countingResolver{answers: map[string]string{"Foo": "com.c.Foo"}}
	u := parseUnit(t, `package com.b;

import com.a.Foo;
import com.c.*;

class Widget {}
`, WithRegistry(NewRegistry(counter)))

	got, err := u.ResolveType(u.Type("Widget"), "Foo")
	require.NoError(t, err)
	assert.Equal(t, "com.a.Foo", got)
	assert.Zero(t, counter.calls)
}

func TestResolveFallsBackToPackage(t *testing.T) {
	u := parseUnit(t, "package com.b;\n\nclass Widget {}\n", WithRegistry(NewRegistry()))

	got, err := u.Type("Widget").ResolveType("Bar")
	require.NoError(t, err)
	assert.Equal(t, "com.b.Bar", got)

	u = parseUnit(t, "class Widget {}\n", WithRegistry(NewRegistry()))
	got, err = u.ResolveType(nil, "Bar")
	require.NoError(t, err)
	assert.Equal(t, "Bar", got)
}

func TestResolveWildcardWithoutResolvers(t *testing.T) {
	u := parseUnit(t, `package com.b;

import java.util.*;

class Widget {}
`, WithRegistry(NewRegistry()))

	_, err := u.ResolveType(nil, "Bar")
	assert.ErrorIs(t, err, ErrIllegalState)

	got, err := u.ResolveType(nil, "String")
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", got)
}

func TestResolveThroughWildcardResolvers(t *testing.T) {
	silent := &countingResolver{}
	knows := &countingResolver{answers: map[string]string{"List": "java.util.List"}}
	late := &countingResolver{answers: map[string]string{"List": "java.awt.List"}}
	u := parseUnit(t, `package com.b;

import java.util.*;

class Widget {}
`, WithRegistry(NewRegistry(silent, knows, late)))

	got, err := u.ResolveType(nil, "List<String>")
	require.NoError(t, err)
	assert.Equal(t, "java.util.List", got)
	assert.Equal(t, 1, silent.calls)
	assert.Equal(t, 1, knows.calls)
	assert.Zero(t, late.calls)

	got, err = u.ResolveType(nil, "Unknown")
	require.NoError(t, err)
	assert.Equal(t, "com.b.Unknown", got)
}

func TestResolveTable(t *testing.T) {
	u := parseUnit(t, `package com.b;

import java.util.List;
import java.util.Map;
import com.other.String;

class Outer {
    class Inner {
        class Deep {}
    }
}

class Sibling {}
`, WithRegistry(NewRegistry()))
	deep := u.Type("Outer").NestedType("Inner").NestedType("Deep")
	require.NotNil(t, deep)

	tests := []struct {
		name string
		want string
	}{
		{"int", "int"},
		{"int[]", "int"},
		{"void", "void"},
		{"List", "java.util.List"},
		{"List<Map<String, Integer>>[]", "java.util.List"},
		{"java.util.List", "java.util.List"},
		{"Map.Entry", "java.util.Map.Entry"},
		{"String", "com.other.String"},
		{"Integer", "java.lang.Integer"},
		{"Override", "java.lang.Override"},
		{"Inner", "com.b.Outer.Inner"},
		{"Deep", "com.b.Outer.Inner.Deep"},
		{"Outer", "com.b.Outer"},
		{"Sibling", "com.b.Sibling"},
		{"Inner.Deep", "com.b.Outer.Inner.Deep"},
		{"Nowhere", "com.b.Nowhere"},
		{"org.x.Thing", "org.x.Thing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deep.ResolveType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRejectsBadNames(t *testing.T) {
	u := parseUnit(t, "package com.b;\n\nclass Widget {}\n", WithRegistry(NewRegistry()))
	for _, name := range []string{"", "<>", "a..b"} {
		_, err := u.ResolveType(nil, name)
		assert.ErrorIs(t, err, ErrInvalidArgument, "name %q", name)
	}
}

func TestResolveFromMember(t *testing.T) {
	u := parseUnit(t, `package com.b;

import java.time.Instant;

class Widget {
    private Instant created;
}
`, WithRegistry(NewRegistry()))
	field := u.Type("Widget").Field("created")
	require.NotNil(t, field)

	got, err := field.ResolveType("Instant")
	require.NoError(t, err)
	assert.Equal(t, "java.time.Instant", got)
}

func TestResolveFromPackageInfo(t *testing.T) {
	u := parseUnit(t, "package com.b;\n", WithPath("package-info.java"), WithRegistry(NewRegistry()))
	info := u.PackageInfo()
	require.NotNil(t, info)

	got, err := info.ResolveType("Thing")
	require.NoError(t, err)
	assert.Equal(t, "com.b.Thing", got)
}
