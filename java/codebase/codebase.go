// Package codebase keeps the parsed Java units of a source tree in memory
// and answers cross-file questions about them.
package codebase

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javasrc/java/resolver/index"
	"github.com/dhamidi/javasrc/java/source"
)

var log = commonlog.GetLogger("javasrc.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	types   *index.Index
	extra   []source.WildcardResolver
}

type FileInfo struct {
	Path     string
	Content  []byte
	Unit     *source.Unit
	ParseErr error
}

var _ source.WildcardResolver = (*Codebase)(nil)

// New returns an empty codebase rooted at rootDir. Units parsed by the
// codebase resolve wildcard imports against the codebase itself first and
// then against extra.
func New(rootDir string, extra ...source.WildcardResolver) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		types:   index.New(),
		extra:   extra,
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every .java file below the root directory. Directories
// starting with a dot are skipped.
func (c *Codebase) ScanAll(ctx context.Context) error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".java" {
			return nil
		}
		if err := c.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
		return nil
	})
}

// ScanGlobs parses the files matching the given patterns, relative to the
// root directory unless absolute. Patterns may use "**".
func (c *Codebase) ScanGlobs(ctx context.Context, patterns ...string) error {
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(c.rootDir, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("expand %s: %w", pattern, err)
		}
		for _, path := range matches {
			if err := ctx.Err(); err != nil {
				return err
			}
			if filepath.Ext(path) != ".java" {
				continue
			}
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
	}
	return nil
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and reparses it. Syntax errors
// are kept on the returned FileInfo rather than failing the update.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	registry := source.NewRegistry(c).With(c.extra...)
	u, err := source.Parse(context.Background(), content, source.WithPath(path), source.WithRegistry(registry))
	if err == nil && u.HasSyntaxErrors() {
		log.Debugf("%s has %d syntax errors", path, len(u.SyntaxErrors()))
	}

	info := &FileInfo{Path: path, Content: content, Unit: u, ParseErr: err}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	c.rebuildTypesLocked()
	return info
}

func (c *Codebase) rebuildTypesLocked() {
	types := index.New()
	for _, info := range c.files {
		if info.Unit == nil || info.Unit.IsDefaultPackage() {
			continue
		}
		for _, t := range info.Unit.Types() {
			if err := types.Add(info.Unit.Package(), t.Name()); err != nil {
				log.Debugf("skipping %s in %s: %s", t.Name(), info.Path, err)
			}
		}
	}
	c.types = types
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.files[path]; !ok {
		return
	}
	delete(c.files, path)
	c.rebuildTypesLocked()
}

func (c *Codebase) File(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Unit returns the parsed unit of path, nil if the file is unknown or
// could not be parsed.
func (c *Codebase) Unit(path string) *source.Unit {
	if info := c.File(path); info != nil {
		return info.Unit
	}
	return nil
}

// Files returns the known paths in sorted order.
func (c *Codebase) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]string, 0, len(c.files))
	for path := range c.files {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

// FindType looks up a type declared in the codebase by canonical name.
// Nested types are found too.
func (c *Codebase) FindType(canonical string) *source.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, path := range sortedKeys(c.files) {
		u := c.files[path].Unit
		if u == nil {
			continue
		}
		for _, t := range u.Types() {
			if found := findType(t, canonical); found != nil {
				return found
			}
		}
	}
	return nil
}

func findType(t *source.Type, canonical string) *source.Type {
	name := t.CanonicalName()
	if name == canonical {
		return t
	}
	if !strings.HasPrefix(canonical, name+".") {
		return nil
	}
	for _, nested := range t.NestedTypes() {
		if found := findType(nested, canonical); found != nil {
			return found
		}
	}
	return nil
}

// Resolve answers wildcard imports of owner's unit with types declared in
// the codebase, checking the imports in order.
func (c *Codebase) Resolve(owner source.Element, simpleName string) string {
	c.mu.RLock()
	types := c.types
	c.mu.RUnlock()
	return types.Resolve(owner, simpleName)
}

// TypeAtPoint resolves the type name under the cursor. Line is 1-based and
// col is a 0-based byte column. It returns "" when no name is under the
// cursor.
func (c *Codebase) TypeAtPoint(path string, line, col int) (string, error) {
	info := c.File(path)
	if info == nil || info.Unit == nil {
		return "", fmt.Errorf("%w: %s is not part of the codebase", source.ErrInvalidArgument, path)
	}
	offset, ok := offsetOf(info.Content, line, col)
	if !ok {
		return "", fmt.Errorf("%w: position %d:%d is outside %s", source.ErrInvalidArgument, line, col, path)
	}
	name := nameAt(info.Content, offset)
	if name == "" {
		return "", nil
	}

	var owner source.Element
	if t := info.Unit.ElementAt(offset); t != nil {
		owner = t
	}
	return info.Unit.ResolveType(owner, name)
}

func offsetOf(content []byte, line, col int) (int, bool) {
	if line < 1 || col < 0 {
		return 0, false
	}
	offset := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(content[offset:], '\n')
		if i < 0 {
			return 0, false
		}
		offset += i + 1
	}
	end := len(content)
	if i := bytes.IndexByte(content[offset:], '\n'); i >= 0 {
		end = offset + i
	}
	if offset+col > end {
		return 0, false
	}
	return offset + col, true
}

// nameAt returns the dotted identifier surrounding offset, cut after the
// segment the offset falls in.
func nameAt(content []byte, offset int) string {
	start, end := offset, offset
	for start > 0 && isNameByte(content[start-1]) {
		start--
	}
	for end < len(content) && isIdentByte(content[end]) {
		end++
	}
	return strings.Trim(string(content[start:end]), ".")
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b >= 0x80 ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func isNameByte(b byte) bool {
	return isIdentByte(b) || b == '.'
}

func sortedKeys(m map[string]*FileInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
