// Completion: 100% - Rewrite command complete
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jnorthrup/TornadoVM/internal/annotations"
	"github.com/jnorthrup/TornadoVM/internal/phases"
)

// NewRewriteCommand creates the rewrite command: load a procedure
// fixture, run the retargeting pipeline over it and print the resulting
// IR with a dimension summary.
func NewRewriteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite <procedure.yaml>",
		Short: "Rewrite a procedure's annotated loops into parallel ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, inline, err := LoadProcedure(args[0])
			if err != nil {
				return err
			}

			// An explicitly configured provider wins over the fixture's
			// inline records.
			var provider annotations.Provider = inline
			if opts.Settings.AnnotationProvider != "" && opts.Settings.AnnotationProvider != "none" {
				provider, err = annotations.Load(opts.Settings.AnnotationProvider)
				if err != nil {
					return err
				}
			}

			pipeline, err := phases.NewPipeline(provider, opts.Settings.ReverseLoops, opts.Logger)
			if err != nil {
				return err
			}
			result, err := pipeline.Compile(g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, g.Dump())
			if result.Sequential {
				fmt.Fprintln(out, result.Bailout.Format())
				return nil
			}
			fmt.Fprintf(out, "dimensions: %d\n", result.Dimensions)
			for dim, size := range result.DimensionSizes {
				if size >= 0 {
					fmt.Fprintf(out, "  dim %d: %d work items\n", dim, size)
				} else {
					fmt.Fprintf(out, "  dim %d: dynamic bound\n", dim)
				}
			}
			return nil
		},
	}
}
