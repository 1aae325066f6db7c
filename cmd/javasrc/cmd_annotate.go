package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javasrc/java/source"
)

type annotatable interface {
	Annotations() []*source.Annotation
	Annotation(typeName string) *source.Annotation
	AddAnnotation(typeName string) (*source.Annotation, error)
	RemoveAnnotation(a *source.Annotation) error
}

func newAnnotateCmd() *cobra.Command {
	var add []string
	var remove []string
	var arguments string
	var member string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "annotate <file> <type|package-info>",
		Short: "List, add or remove annotations",
		Long: `List, add or remove the annotations of a type, a member or the
package-info element of a .java file.

Without --add or --remove the annotations are printed one per line. Added
annotations given by qualified name are imported when that does not clash
with an existing import.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := loadUnit(cmd, args[0])
			if err != nil {
				return err
			}
			el, err := lookupElement(u, args[1])
			if err != nil {
				return err
			}

			var target annotatable = el
			if member != "" {
				t, ok := el.(*source.Type)
				if !ok {
					return fmt.Errorf("--member needs a type, got %s", el)
				}
				m, err := lookupMember(t, member)
				if err != nil {
					return err
				}
				target = m
			}

			if len(add) == 0 && len(remove) == 0 {
				for _, a := range target.Annotations() {
					fmt.Fprintln(cmd.OutOrStdout(), a.String())
				}
				return nil
			}

			for _, name := range remove {
				a := target.Annotation(name)
				if a == nil {
					return fmt.Errorf("no annotation %s on %s", name, args[1])
				}
				if err := target.RemoveAnnotation(a); err != nil {
					return err
				}
			}
			for _, name := range add {
				a, err := target.AddAnnotation(name)
				if err != nil {
					return err
				}
				if arguments != "" {
					a.SetArguments(arguments)
				}
			}
			return writeUnit(cmd, u, args[0], overwrite)
		},
	}

	cmd.Flags().StringSliceVar(&add, "add", nil, "annotation types to add")
	cmd.Flags().StringSliceVar(&remove, "remove", nil, "annotation types to remove")
	cmd.Flags().StringVar(&arguments, "args", "", "argument text for added annotations, without parentheses")
	cmd.Flags().StringVarP(&member, "member", "m", "", "field or method of the type")
	cmd.Flags().BoolVarP(&overwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
