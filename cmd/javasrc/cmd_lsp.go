package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/java/codebase"
	"github.com/dhamidi/javasrc/java/source"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, source.DefaultRegistry().Resolvers()...)
			return server.RunStdio()
		},
	}
}
