// Package classpath builds a package index from compiled classes.
package classpath

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javasrc/java/resolver/index"
)

var log = commonlog.GetLogger("javasrc.resolver.classpath")

// Load indexes the top-level classes found in the given entries. An entry
// is a jar or zip file, a directory of .class files, or a glob such as
// "lib/*.jar". Nested classes, module-info and package-info are skipped.
func Load(entries ...string) (*index.Index, error) {
	idx := index.New()
	for _, entry := range entries {
		paths := []string{entry}
		if strings.ContainsAny(entry, "*?[{") {
			matches, err := doublestar.FilepathGlob(entry)
			if err != nil {
				return nil, fmt.Errorf("expand %s: %w", entry, err)
			}
			paths = matches
		}
		for _, p := range paths {
			if err := loadEntry(idx, p); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

// Split splits a classpath string on the platform list separator.
func Split(classpath string) []string {
	var result []string
	for _, entry := range filepath.SplitList(classpath) {
		if entry = strings.TrimSpace(entry); entry != "" {
			result = append(result, entry)
		}
	}
	return result
}

func loadEntry(idx *index.Index, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("classpath entry: %w", err)
	}
	if info.IsDir() {
		return loadDir(idx, p)
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".jar", ".zip":
		return loadArchive(idx, p)
	}
	log.Warningf("ignoring classpath entry %s: not a directory or archive", p)
	return nil
}

func loadArchive(idx *index.Index, p string) error {
	r, err := zip.OpenReader(p)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	n := 0
	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "META-INF/") {
			continue
		}
		if addClass(idx, f.Name) {
			n++
		}
	}
	log.Debugf("indexed %d classes from %s", n, p)
	return nil
}

func loadDir(idx *index.Index, dir string) error {
	n := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if addClass(idx, filepath.ToSlash(rel)) {
			n++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}
	log.Debugf("indexed %d classes from %s", n, dir)
	return nil
}

// addClass indexes a slash separated class file name like
// "com/acme/Widget.class" and reports whether it was indexed.
func addClass(idx *index.Index, name string) bool {
	if !strings.HasSuffix(name, ".class") {
		return false
	}
	dir, file := path.Split(strings.TrimSuffix(name, ".class"))
	if dir == "" || strings.Contains(file, "$") || file == "module-info" || file == "package-info" {
		return false
	}
	pkg := strings.ReplaceAll(strings.TrimSuffix(dir, "/"), "/", ".")
	return idx.Add(pkg, file) == nil
}
