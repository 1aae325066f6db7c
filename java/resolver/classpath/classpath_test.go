package classpath

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJar(t *testing.T, path string, names ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for _, name := range names {
		_, err := w.Create(name)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestLoadJar(t *testing.T) {
	dir := t.TempDir()
	jar := filepath.Join(dir, "widgets.jar")
	writeJar(t, jar,
		"META-INF/MANIFEST.MF",
		"META-INF/versions/11/com/acme/Widget.class",
		"com/acme/Widget.class",
		"com/acme/Widget$Part.class",
		"com/acme/package-info.class",
		"module-info.class",
		"Toplevel.class",
		"com/acme/util/Strings.class",
		"com/acme/readme.txt",
	)

	idx, err := Load(jar)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.acme", "com.acme.util"}, idx.Packages())
	assert.Equal(t, []string{"Widget"}, idx.Types("com.acme"))
	assert.True(t, idx.Has("com.acme.util", "Strings"))
}

func TestLoadDirectoryAndGlob(t *testing.T) {
	dir := t.TempDir()
	classes := filepath.Join(dir, "classes")
	touch(t, filepath.Join(classes, "org", "example", "App.class"))
	touch(t, filepath.Join(classes, "org", "example", "App$1.class"))
	touch(t, filepath.Join(classes, "org", "example", "App.java"))

	lib := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(lib, 0o755))
	writeJar(t, filepath.Join(lib, "a.jar"), "com/a/One.class")
	writeJar(t, filepath.Join(lib, "b.jar"), "com/b/Two.class")
	touch(t, filepath.Join(lib, "notes.txt"))

	idx, err := Load(classes, filepath.Join(lib, "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{"com.a", "com.b", "org.example"}, idx.Packages())
	assert.Equal(t, []string{"App"}, idx.Types("org.example"))
}

func TestLoadMissingEntry(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.jar"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSplit(t *testing.T) {
	cp := "a.jar" + string(filepath.ListSeparator) + " " + string(filepath.ListSeparator) + "classes"
	assert.Equal(t, []string{"a.jar", "classes"}, Split(cp))
	assert.Empty(t, Split(""))
}
