package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importsSource = `package com.example;

import java.util.List;
import static java.util.Collections.emptyList;
import java.io.*;

public class Foo {
}
`

func importNames(u *Unit) []string {
	var names []string
	for _, imp := range u.Imports() {
		names = append(names, imp.QualifiedName())
	}
	return names
}

func TestImportAccessors(t *testing.T) {
	u := parseUnit(t, importsSource)
	imports := u.Imports()
	require.Len(t, imports, 3)

	assert.Equal(t, "java.util.List", imports[0].QualifiedName())
	assert.Equal(t, "List", imports[0].SimpleName())
	assert.Equal(t, "java.util", imports[0].Package())
	assert.False(t, imports[0].IsStatic())
	assert.False(t, imports[0].IsWildcard())

	assert.True(t, imports[1].IsStatic())
	assert.Equal(t, "emptyList", imports[1].SimpleName())

	assert.True(t, imports[2].IsWildcard())
	assert.Equal(t, "java.io.*", imports[2].QualifiedName())
	assert.Equal(t, "java.io", imports[2].Package())
	assert.Equal(t, "*", imports[2].SimpleName())
	assert.Equal(t, "import java.io.*;", imports[2].String())

	require.Len(t, u.WildcardImports(), 1)
	assert.Same(t, imports[2], u.WildcardImports()[0])
}

func TestImportLookup(t *testing.T) {
	u := parseUnit(t, importsSource)

	assert.Same(t, u.Imports()[0], u.Import("java.util.List"))
	assert.Same(t, u.Imports()[0], u.Import("List"))
	assert.Nil(t, u.Import("Map"))
	assert.Nil(t, u.Import(""))

	assert.True(t, u.HasImport("List"))
	assert.True(t, u.HasImport("java.util.List<String>[]"))
	assert.False(t, u.HasImport("java.util.Map"))
}

func TestAddImportIsIdempotent(t *testing.T) {
	u := parseUnit(t, importsSource)

	first, err := u.AddImport("java.util.Map")
	require.NoError(t, err)
	second, err := u.AddImport("java.util.Map")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, u.Imports(), 4)

	existing, err := u.AddImport("java.util.List<String>")
	require.NoError(t, err)
	assert.Same(t, u.Imports()[0], existing)
	assert.Len(t, u.Imports(), 4)
}

func TestAddImportRejectsUnimportableNames(t *testing.T) {
	u := parseUnit(t, importsSource)
	for _, name := range []string{"", "int", "Bar", "[]", "com..Foo"} {
		_, err := u.AddImport(name)
		assert.ErrorIs(t, err, ErrInvalidArgument, "name %q", name)
	}
	assert.Len(t, u.Imports(), 3)

	_, err := u.AddImport("Bar")
	assert.ErrorContains(t, err, "cannot import a type without a package")
}

func TestAddImportRendering(t *testing.T) {
	u := parseUnit(t, importsSource)
	_, err := u.AddImport("java.util.Map")
	require.NoError(t, err)

	assert.Equal(t, `package com.example;

import java.util.List;
import static java.util.Collections.emptyList;
import java.io.*;
import java.util.Map;

public class Foo {
}
`, render(t, u))
}

func TestAddImportWithoutExistingImports(t *testing.T) {
	u := parseUnit(t, "package com.example;\n\nclass Foo {}\n")
	_, err := u.AddImport("java.util.List")
	require.NoError(t, err)
	assert.Equal(t, "package com.example;\n\nimport java.util.List;\n\nclass Foo {}\n", render(t, u))

	u = parseUnit(t, "class Foo {}\n")
	_, err = u.AddImport("java.util.List")
	require.NoError(t, err)
	assert.Equal(t, "import java.util.List;\n\nclass Foo {}\n", render(t, u))
}

func TestAddThenRemoveImportRoundTrips(t *testing.T) {
	u := parseUnit(t, importsSource)
	before := importNames(u)
	text := render(t, u)
	assert.Equal(t, importsSource, text)

	imp, err := u.AddImport("java.util.Set")
	require.NoError(t, err)
	u.RemoveImport(imp)

	assert.Equal(t, before, importNames(u))
	assert.Equal(t, text, render(t, u))

	u.RemoveImport(imp)
	assert.Equal(t, before, importNames(u))
}

func TestImportUniqueness(t *testing.T) {
	u := parseUnit(t, importsSource)
	ops := []func(){
		func() { _, _ = u.AddImport("java.util.Map") },
		func() { _, _ = u.AddImport("java.util.List") },
		func() { u.RemoveImportNamed("java.util.Map") },
		func() { _, _ = u.AddImport("java.util.Map") },
		func() { _, _ = u.AddImport("java.util.Map") },
		func() { _, _ = u.AddStaticImport("org.junit.Assert.assertEquals") },
		func() { _, _ = u.AddImport("java.io.*") },
	}
	for _, op := range ops {
		op()
		seen := map[string]bool{}
		for _, name := range importNames(u) {
			assert.False(t, seen[name], "duplicate import %s", name)
			seen[name] = true
		}
	}
	assert.Equal(t, []string{
		"java.util.List",
		"java.util.Collections.emptyList",
		"java.io.*",
		"java.util.Map",
		"org.junit.Assert.assertEquals",
	}, importNames(u))
}

func TestAddImportFromOtherUnit(t *testing.T) {
	src := parseUnit(t, importsSource)
	dst := parseUnit(t, "package other;\n\nclass Bar {}\n")

	copied, err := dst.AddImportFrom(src.Imports()[1])
	require.NoError(t, err)
	assert.True(t, copied.IsStatic())
	assert.Equal(t, "java.util.Collections.emptyList", copied.QualifiedName())
	assert.Same(t, dst, copied.Unit())

	_, err = dst.AddImportFrom(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAddImportOfElement(t *testing.T) {
	src := parseUnit(t, "package com.acme;\n\nclass Outer {\n    class Inner {}\n}\n")
	dst := parseUnit(t, "package other;\n\nclass Bar {}\n")

	imp, err := dst.AddImportOf(src.Type("Outer").NestedType("Inner"))
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Outer.Inner", imp.QualifiedName())
}

func TestRemoveImportNamed(t *testing.T) {
	u := parseUnit(t, importsSource)
	assert.True(t, u.RemoveImportNamed("List"))
	assert.False(t, u.RemoveImportNamed("List"))
	assert.Equal(t, []string{"java.util.Collections.emptyList", "java.io.*"}, importNames(u))

	other := parseUnit(t, importsSource)
	u.RemoveImport(other.Imports()[0])
	assert.Len(t, u.Imports(), 2)
}

func TestImportSetNameAndStatic(t *testing.T) {
	u := parseUnit(t, importsSource)
	imp := u.Imports()[0]

	require.NoError(t, imp.SetName("java.util.ArrayList"))
	assert.Equal(t, "java.util.ArrayList", imp.QualifiedName())

	err := imp.SetName("java.io.*")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, imp.SetName("int"), ErrInvalidArgument)

	imp.SetStatic(true)
	assert.Equal(t, "import static java.util.ArrayList;", imp.String())
	imp.SetStatic(false)
	assert.Equal(t, "import java.util.ArrayList;", imp.String())
}

func TestRequiresImport(t *testing.T) {
	u := parseUnit(t, importsSource)

	assert.True(t, u.RequiresImport("java.util.Map"))
	assert.True(t, u.RequiresImport("java.util.Map<K, V>[]"))
	assert.False(t, u.RequiresImport("java.util.List"))
	assert.False(t, u.RequiresImport("java.lang.String"))
	assert.False(t, u.RequiresImport("int"))
	assert.False(t, u.RequiresImport("Map"))
	assert.False(t, u.RequiresImport(""))
}
