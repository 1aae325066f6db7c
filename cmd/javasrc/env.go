package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/config"
	"github.com/dhamidi/javasrc/java/resolver/classpath"
	"github.com/dhamidi/javasrc/java/resolver/index"
	"github.com/dhamidi/javasrc/java/source"
)

const configFileName = config.ProjectConfigFile

// environment carries the global flags and the loaded configuration.
type environment struct {
	verbose int
	logFile string
	dir     string

	config    *config.Config
	resolvers []source.WildcardResolver
}

func (e *environment) setup() error {
	cfg, err := config.Load(e.dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.config = cfg
	return nil
}

func (e *environment) verbosity() int {
	if e.verbose > e.config.Log.Verbosity {
		return e.verbose
	}
	return e.config.Log.Verbosity
}

func (e *environment) logPath() *string {
	switch {
	case e.logFile != "":
		return &e.logFile
	case e.config.Log.File != "":
		return &e.config.Log.File
	}
	return nil
}

// installRegistry builds the project resolvers from the classpath and the
// configured indexes and installs the default registry.
func (e *environment) installRegistry() error {
	if len(e.config.Classpath) > 0 {
		idx, err := classpath.Load(e.config.Classpath...)
		if err != nil {
			return err
		}
		e.resolvers = append(e.resolvers, idx)
	}
	for _, path := range e.config.Indexes {
		idx, err := index.LoadFile(path)
		if err != nil {
			return err
		}
		e.resolvers = append(e.resolvers, idx)
	}
	source.InitDefaultRegistry(e.registry())
	return nil
}

// registry puts the project resolvers ahead of the registered plugins, so
// project types win over JDK types for ambiguous wildcard imports.
func (e *environment) registry() *source.Registry {
	r := source.NewRegistry(e.resolvers...)
	if e.config.UseJDK() {
		r = r.With(source.RegisteredWildcardResolvers()...)
	}
	return r
}

// sourceRoot is the directory source globs are relative to.
func (e *environment) sourceRoot() string {
	if e.config.Dir != "" {
		return e.config.Dir
	}
	return e.dir
}

// readSource reads a .java file, or stdin when filename is "-".
func readSource(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	if ext := filepath.Ext(filename); ext != ".java" {
		return nil, fmt.Errorf("expected .java file, got %q", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func loadUnit(cmd *cobra.Command, filename string) (*source.Unit, error) {
	data, err := readSource(cmd, filename)
	if err != nil {
		return nil, err
	}
	opts := []source.Option{}
	if filename != "-" {
		opts = append(opts, source.WithPath(filename))
	}
	u, err := source.Parse(context.Background(), data, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	for _, problem := range u.SyntaxErrors() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", filename, problem)
	}
	return u, nil
}

// lookupType finds a type by simple, dotted nested or canonical name.
func lookupType(u *source.Unit, name string) (*source.Type, error) {
	if pkg := u.Package(); pkg != "" {
		name = strings.TrimPrefix(name, pkg+".")
	}
	parts := strings.Split(name, ".")
	t := u.Type(parts[0])
	for _, part := range parts[1:] {
		if t == nil {
			break
		}
		t = t.NestedType(part)
	}
	if t == nil {
		return nil, fmt.Errorf("no type %s in %s", name, u.Path())
	}
	return t, nil
}

// lookupElement returns the package-info element for "package-info" and a
// type otherwise.
func lookupElement(u *source.Unit, name string) (source.Element, error) {
	if name == "package-info" {
		info := u.PackageInfo()
		if info == nil {
			return nil, fmt.Errorf("%s has no package declaration", u.Path())
		}
		return info, nil
	}
	t, err := lookupType(u, name)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func lookupMember(t *source.Type, name string) (*source.Member, error) {
	if m := t.Field(name); m != nil {
		return m, nil
	}
	if m := t.Method(name); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("no member %s in %s", name, t.CanonicalName())
}

// writeUnit prints the rendered unit or overwrites filename with it.
func writeUnit(cmd *cobra.Command, u *source.Unit, filename string, overwrite bool) error {
	output, err := u.Source()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if overwrite {
		if filename == "-" {
			return fmt.Errorf("-w requires a file argument")
		}
		return os.WriteFile(filename, output, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(output)
	return err
}
