package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imports",
		Short: "List and edit the imports of a .java file",
	}

	cmd.AddCommand(newImportsListCmd())
	cmd.AddCommand(newImportsAddCmd())
	cmd.AddCommand(newImportsRemoveCmd())

	return cmd
}

func newImportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "Print one import per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}
			for _, imp := range u.Imports() {
				fmt.Fprintln(cmd.OutOrStdout(), imp.String())
			}
			return nil
		},
	}
}

func newImportsAddCmd() *cobra.Command {
	var static bool
	var overwrite bool
	var required bool

	cmd := &cobra.Command{
		Use:   "add <file> <name>...",
		Short: "Add single-type or on-demand imports",
		Long: `Add imports to a .java file. Names already imported are left alone.

With --required, java.lang types and names that are already imported are
skipped.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if required && !static && !u.RequiresImport(name) {
					continue
				}
				if static {
					_, err = u.AddStaticImport(name)
				} else {
					_, err = u.AddImport(name)
				}
				if err != nil {
					return err
				}
			}
			return writeUnit(cmd, u, args[0], overwrite)
		},
	}

	cmd.Flags().BoolVar(&static, "static", false, "add static imports")
	cmd.Flags().BoolVar(&required, "required", false, "only add imports the file needs")
	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}

func newImportsRemoveCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "remove <file> <name>...",
		Short: "Remove imports by name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}
			for _, name := range args[1:] {
				if !u.RemoveImportNamed(name) {
					return fmt.Errorf("no import %s in %s", name, args[0])
				}
			}
			return writeUnit(cmd, u, args[0], overwrite)
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
