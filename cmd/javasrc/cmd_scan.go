package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/java/codebase"
	"github.com/dhamidi/javasrc/java/source"
)

func newScanCmd(env *environment) *cobra.Command {
	var nested bool

	cmd := &cobra.Command{
		Use:   "scan [glob...]",
		Short: "List the types declared in the project sources",
		Long: `Parse the project sources and print the types they declare, one
canonical name per line followed by the file.

Globs default to the sources of javasrc.yaml and are relative to its
directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 {
				patterns = env.config.Sources
			}

			c := codebase.New(env.sourceRoot(), source.DefaultRegistry().Resolvers()...)
			if err := c.ScanGlobs(cmd.Context(), patterns...); err != nil {
				return err
			}

			for _, path := range c.Files() {
				info := c.File(path)
				if info.ParseErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, info.ParseErr)
					continue
				}
				for _, t := range info.Unit.Types() {
					printTypes(cmd, t, path, nested)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&nested, "nested", "n", false, "include nested types")

	return cmd
}

func printTypes(cmd *cobra.Command, t *source.Type, path string, nested bool) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.CanonicalName(), t.Kind(), path)
	if !nested {
		return
	}
	for _, n := range t.NestedTypes() {
		printTypes(cmd, n, path, nested)
	}
}
