package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/format"
)

func newInfoCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Describe the package, imports, types and members of a .java file",
		Long: `Describe a .java file.

The default output has one tab separated record per package, import, type
and member. Use --json for a nested document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}

			var encoder format.Encoder
			if jsonOutput {
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			} else {
				encoder = format.NewLineEncoder(cmd.OutOrStdout())
			}
			if err := encoder.Encode(u.Outline()); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON")

	return cmd
}
