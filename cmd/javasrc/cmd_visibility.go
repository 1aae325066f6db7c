package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/java/source"
)

func newVisibilityCmd() *cobra.Command {
	var member string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "visibility <file> <type> [public|protected|private|package]",
		Short: "Print or change the visibility of a type or member",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := lookupType(u, args[1])
			if err != nil {
				return err
			}

			var target interface {
				Visibility() source.Visibility
				SetVisibility(source.Visibility) error
			} = t
			if member != "" {
				m, err := lookupMember(t, member)
				if err != nil {
					return err
				}
				target = m
			}

			if len(args) == 2 {
				fmt.Fprintln(cmd.OutOrStdout(), target.Visibility())
				return nil
			}

			v, err := source.ParseVisibility(args[2])
			if err != nil {
				return err
			}
			if err := target.SetVisibility(v); err != nil {
				return err
			}
			return writeUnit(cmd, u, args[0], overwrite)
		},
	}

	cmd.Flags().StringVarP(&member, "member", "m", "", "field or method of the type")
	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
