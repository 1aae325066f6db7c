package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/java/resolver/classpath"
)

func newIndexCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "index <classpath-entry>...",
		Short: "Write a package index of jars and class directories",
		Long: `Index the top-level classes of jars, zip files and class directories
and write the result as YAML. The file can be listed under "indexes" in
javasrc.yaml. Entries may be globs like lib/*.jar or classpath strings.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []string
			for _, arg := range args {
				entries = append(entries, classpath.Split(arg)...)
			}
			idx, err := classpath.Load(entries...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create index: %w", err)
				}
				defer f.Close()
				w = f
			}
			_, err = idx.WriteTo(w)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the index to this file")

	return cmd
}
