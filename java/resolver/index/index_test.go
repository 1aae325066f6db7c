package index

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javasrc/java/source"
)

const sampleIndex = `packages:
  com.acme.widgets:
    - Widget
    - Gadget
  com.acme.util:
    - Strings
`

func TestLoad(t *testing.T) {
	idx, err := Load(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	assert.Equal(t, []string{"com.acme.util", "com.acme.widgets"}, idx.Packages())
	assert.Equal(t, []string{"Gadget", "Widget"}, idx.Types("com.acme.widgets"))
	assert.True(t, idx.Has("com.acme.util", "Strings"))
	assert.False(t, idx.Has("com.acme.util", "Widget"))
	assert.Equal(t, 3, idx.Len())
}

func TestLoadRejectsBadEntries(t *testing.T) {
	_, err := Load(strings.NewReader("packages:\n  com.acme:\n    - not.simple\n"))
	assert.ErrorIs(t, err, source.ErrInvalidArgument)

	_, err = Load(strings.NewReader("packages: [unclosed"))
	assert.Error(t, err)

	idx, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, idx.Len())
}

func TestLoadFileAndWriteTo(t *testing.T) {
	idx, err := Load(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = idx.WriteTo(&buf)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "index.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, idx.Packages(), loaded.Packages())
	assert.Equal(t, idx.Len(), loaded.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMerge(t *testing.T) {
	a := New()
	require.NoError(t, a.Add("com.a", "One"))
	b := New()
	require.NoError(t, b.Add("com.a", "Two"))
	require.NoError(t, b.Add("com.b", "Three"))

	a.Merge(b)
	a.Merge(a)
	a.Merge(nil)
	assert.Equal(t, []string{"One", "Two"}, a.Types("com.a"))
	assert.True(t, a.Has("com.b", "Three"))
	assert.Equal(t, 1, len(b.Types("com.a")))
}

func TestResolveUsesWildcardImportOrder(t *testing.T) {
	idx := New()
	require.NoError(t, idx.Add("com.first", "Widget"))
	require.NoError(t, idx.Add("com.second", "Widget"))
	require.NoError(t, idx.Add("com.second", "Gadget"))

	u, err := source.Parse(context.Background(), []byte(`package app;

import com.second.*;
import com.first.*;

class Main {}
`), source.WithRegistry(source.NewRegistry(idx)))
	require.NoError(t, err)
	owner := u.Type("Main")

	assert.Equal(t, "com.second.Widget", idx.Resolve(owner, "Widget"))
	assert.Equal(t, "com.second.Gadget", idx.Resolve(owner, "Gadget"))
	assert.Equal(t, "Nothing", idx.Resolve(owner, "Nothing"))
	assert.Equal(t, "Widget", idx.Resolve(nil, "Widget"))

	resolved, err := u.ResolveType(owner, "Gadget[]")
	require.NoError(t, err)
	assert.Equal(t, "com.second.Gadget", resolved)
}

func TestJDK(t *testing.T) {
	jdk := JDK()
	assert.Same(t, jdk, JDK())
	assert.True(t, jdk.Has("java.util", "List"))
	assert.True(t, jdk.Has("java.util.function", "Function"))
	assert.True(t, jdk.Has("java.nio.file", "Path"))
	assert.False(t, jdk.Has("java.lang", "String"))
}
