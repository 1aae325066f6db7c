package codebase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javasrc/java/source"
)

const mainSource = `package app;

import com.acme.*;
import java.util.*;

class Main {
    Widget widget;
    List<Widget> widgets;
    com.acme.Widget.Part part;
}
`

const widgetSource = `package com.acme;

public class Widget {
    public static class Part {
    }
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestCodebase(t *testing.T, extra ...source.WildcardResolver) (*Codebase, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app", "Main.java"), mainSource)
	writeFile(t, filepath.Join(dir, "com", "acme", "Widget.java"), widgetSource)
	c := New(dir, extra...)
	require.NoError(t, c.ScanAll(context.Background()))
	return c, dir
}

func TestScanAll(t *testing.T) {
	c, dir := newTestCodebase(t)
	writeFile(t, filepath.Join(dir, ".git", "Ignored.java"), "class Ignored {}\n")
	writeFile(t, filepath.Join(dir, "README.md"), "readme")
	require.NoError(t, c.ScanAll(context.Background()))

	assert.Equal(t, []string{
		filepath.Join(dir, "app", "Main.java"),
		filepath.Join(dir, "com", "acme", "Widget.java"),
	}, c.Files())

	u := c.Unit(filepath.Join(dir, "app", "Main.java"))
	require.NotNil(t, u)
	assert.Equal(t, "app", u.Package())
	assert.Nil(t, c.Unit(filepath.Join(dir, "Missing.java")))
}

func TestScanAllCanceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "A.java"), "class A {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, New(dir).ScanAll(ctx), context.Canceled)
}

func TestScanGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "main", "java", "a", "A.java"), "package a;\n\nclass A {}\n")
	writeFile(t, filepath.Join(dir, "src", "test", "java", "a", "ATest.java"), "package a;\n\nclass ATest {}\n")
	writeFile(t, filepath.Join(dir, "src", "main", "java", "a", "notes.txt"), "notes")

	c := New(dir)
	require.NoError(t, c.ScanGlobs(context.Background(), "src/main/**/*"))
	assert.Equal(t, []string{filepath.Join(dir, "src", "main", "java", "a", "A.java")}, c.Files())
}

func TestScanFileMissing(t *testing.T) {
	c := New(t.TempDir())
	assert.ErrorIs(t, c.ScanFile(filepath.Join(c.RootDir(), "Nope.java")), os.ErrNotExist)
}

func TestUpdateFileKeepsSyntaxErrors(t *testing.T) {
	c := New(t.TempDir())
	info := c.UpdateFile("Broken.java", []byte("class Broken { void m( }\n"))
	require.NoError(t, info.ParseErr)
	require.NotNil(t, info.Unit)
	assert.True(t, info.Unit.HasSyntaxErrors())
	assert.Same(t, info, c.File("Broken.java"))
}

func TestFindType(t *testing.T) {
	c, _ := newTestCodebase(t)

	widget := c.FindType("com.acme.Widget")
	require.NotNil(t, widget)
	assert.Equal(t, "Widget", widget.Name())

	part := c.FindType("com.acme.Widget.Part")
	require.NotNil(t, part)
	assert.Equal(t, "com.acme.Widget$Part", part.QualifiedName())

	assert.Nil(t, c.FindType("com.acme.Gadget"))
	assert.Nil(t, c.FindType("com.acme.WidgetPart"))
}

func TestFindTypeConcurrently(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	const files = 20
	for i := 0; i < files; i++ {
		src := fmt.Sprintf("package p;\n\nclass F%d {\n    class In {\n    }\n}\n", i)
		c.UpdateFile(filepath.Join(dir, fmt.Sprintf("F%d.java", i)), []byte(src))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("p.F%d.In", i)
			if found := c.FindType(name); assert.NotNil(t, found, name) {
				assert.Equal(t, name, found.CanonicalName())
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.UpdateFile(filepath.Join(dir, "Extra.java"), []byte("package p;\n\nclass Extra {\n}\n"))
	}()
	wg.Wait()

	assert.NotNil(t, c.FindType("p.Extra"))
}

func TestResolveAgainstCodebaseTypes(t *testing.T) {
	c, dir := newTestCodebase(t)
	u := c.Unit(filepath.Join(dir, "app", "Main.java"))
	require.NotNil(t, u)

	got, err := u.ResolveType(u.Type("Main"), "Widget")
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Widget", got)

	// Unknown to the codebase and no other resolver: package fallback.
	got, err = u.ResolveType(u.Type("Main"), "List")
	require.NoError(t, err)
	assert.Equal(t, "app.List", got)

	c.RemoveFile(filepath.Join(dir, "com", "acme", "Widget.java"))
	got, err = u.ResolveType(u.Type("Main"), "Widget")
	require.NoError(t, err)
	assert.Equal(t, "app.Widget", got)
}

func TestResolveFallsThroughToExtra(t *testing.T) {
	jdk := source.WildcardResolverFunc(func(owner source.Element, simple string) string {
		if simple == "List" {
			return "java.util.List"
		}
		return simple
	})
	c, dir := newTestCodebase(t, jdk)
	u := c.Unit(filepath.Join(dir, "app", "Main.java"))

	got, err := u.ResolveType(nil, "List")
	require.NoError(t, err)
	assert.Equal(t, "java.util.List", got)

	got, err = u.ResolveType(nil, "Widget")
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Widget", got)
}

func TestTypeAtPoint(t *testing.T) {
	c, dir := newTestCodebase(t)
	path := filepath.Join(dir, "app", "Main.java")

	tests := []struct {
		name      string
		line, col int
		want      string
	}{
		{"simple name", 7, 6, "com.acme.Widget"},
		{"start of name", 7, 4, "com.acme.Widget"},
		{"type argument", 8, 10, "com.acme.Widget"},
		{"qualified type", 9, 15, "com.acme.Widget"},
		{"qualified nested", 9, 21, "com.acme.Widget.Part"},
		{"whitespace", 7, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.TypeAtPoint(path, tt.line, tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := c.TypeAtPoint(path, 100, 0)
	assert.ErrorIs(t, err, source.ErrInvalidArgument)
	_, err = c.TypeAtPoint(path, 7, 200)
	assert.ErrorIs(t, err, source.ErrInvalidArgument)
	_, err = c.TypeAtPoint(filepath.Join(dir, "Unknown.java"), 1, 0)
	assert.ErrorIs(t, err, source.ErrInvalidArgument)
}

func TestNameAt(t *testing.T) {
	content := []byte("java.util.Map.Entry<K, V> e;")
	assert.Equal(t, "java", nameAt(content, 1))
	assert.Equal(t, "java.util.Map", nameAt(content, 11))
	assert.Equal(t, "java.util.Map.Entry", nameAt(content, 15))
	assert.Equal(t, "K", nameAt(content, 20))
	assert.Equal(t, "K", nameAt(content, 21))
	assert.Equal(t, "", nameAt(content, 22))
}

func TestFileWatcherHandle(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	w, err := NewFileWatcher(c)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	path := filepath.Join(dir, "A.java")
	writeFile(t, path, "class A {}\n")
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Create})
	require.NotNil(t, c.Unit(path))
	assert.Equal(t, "A", c.Unit(path).Types()[0].Name())

	writeFile(t, path, "class B {}\n")
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Write})
	assert.Equal(t, "B", c.Unit(path).Types()[0].Name())

	txt := filepath.Join(dir, "notes.txt")
	writeFile(t, txt, "notes")
	w.handle(fsnotify.Event{Name: txt, Op: fsnotify.Write})
	assert.Nil(t, c.File(txt))

	require.NoError(t, os.Remove(path))
	w.handle(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	assert.Empty(t, c.Files())
}

func TestFileWatcherRunStops(t *testing.T) {
	w, err := NewFileWatcher(New(t.TempDir()))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	require.NoError(t, w.Stop())
	<-done
}
