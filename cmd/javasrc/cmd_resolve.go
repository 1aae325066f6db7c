package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/java/source"
)

func newResolveCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "resolve <file> <type>...",
		Short: "Resolve type references to qualified names",
		Long: `Resolve type references as they would be read inside a .java file.

References are resolved from the first type of the file unless --in names
another type, which makes nested types of that type visible.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}

			var owner source.Element
			if in != "" {
				if owner, err = lookupElement(u, in); err != nil {
					return err
				}
			}

			for _, name := range args[1:] {
				resolved, err := u.ResolveType(owner, name)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, resolved)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "type to resolve from, for example Outer.Inner")

	return cmd
}
