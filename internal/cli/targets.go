// Completion: 100% - Targets command complete
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jnorthrup/TornadoVM/internal/backend"
	"github.com/jnorthrup/TornadoVM/internal/intrinsics"
)

// NewTargetsCommand creates the targets command: list each device
// target's builtin coverage of the intrinsic operations.
func NewTargetsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List device targets and their math builtin coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, target := range backend.Targets() {
				table, err := backend.TableFor(target)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s:\n", target)
				for _, op := range intrinsics.Operations() {
					if name, ok := table.Builtin(op); ok {
						fmt.Fprintf(out, "  %-10s -> %s\n", op, name)
					} else if opts.Settings.Debug {
						fmt.Fprintf(out, "  %-10s -> (not supported yet)\n", op)
					}
				}
			}
			return nil
		},
	}
}
