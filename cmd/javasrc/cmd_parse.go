package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/format"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				enc := format.NewASTJSONEncoder(cmd.OutOrStdout())
				if err := enc.Encode(u.Root()); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				if includePositions {
					fmt.Fprintln(cmd.OutOrStdout(), u.Root().StringWithPositions())
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), u.Root().String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVarP(&includePositions, "positions", "p", false, "include source positions in the tree dump")

	return cmd
}
