package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	_ "github.com/dhamidi/javasrc/java/resolver/jdk"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	env := &environment{}

	rootCmd := &cobra.Command{
		Use:          "javasrc",
		Short:        "Inspect and edit Java source files",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.setup(); err != nil {
				return err
			}
			commonlog.Configure(env.verbosity(), env.logPath())
			return env.installRegistry()
		},
	}

	rootCmd.PersistentFlags().CountVarP(&env.verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&env.logFile, "log", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&env.dir, "dir", ".", "directory to search for "+configFileName)

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newImportsCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newVisibilityCmd())
	rootCmd.AddCommand(newAnnotateCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newScanCmd(env))
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
