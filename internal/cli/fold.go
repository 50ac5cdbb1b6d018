// Completion: 100% - Fold command complete
package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jnorthrup/TornadoVM/internal/backend"
	"github.com/jnorthrup/TornadoVM/internal/graph"
	"github.com/jnorthrup/TornadoVM/internal/intrinsics"
)

// NewFoldCommand creates the fold command: evaluate one intrinsic
// operation over two constants, showing either the folded value or the
// builtin the live node would lower to on the configured target.
func NewFoldCommand(opts *RootOptions) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "fold <operation> <x> <y>",
		Short: "Constant-fold or lower one FP binary intrinsic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := intrinsics.ParseOperation(args[0])
			if err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("operand x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("operand y: %w", err)
			}

			g := graph.New("fold")
			var kind graph.Kind
			var xn, yn graph.NodeID
			switch kindName {
			case "f32":
				kind = graph.KindFloat32
				xn, yn = g.Float32Const(float32(x)), g.Float32Const(float32(y))
			case "f64":
				kind = graph.KindFloat64
				xn, yn = g.Float64Const(x), g.Float64Const(y)
			default:
				return fmt.Errorf("unknown numeric kind: %s (supported: f32, f64)", kindName)
			}

			id, err := intrinsics.Create(g, xn, yn, op, kind)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			n := g.Node(id)
			if n.IsConstant() {
				fmt.Fprintf(out, "%s folds to %g (%s)\n", op, n.AuxFloat, kind)
				return nil
			}

			// No folding rule: show how the live node lowers instead.
			target, err := backend.ParseTarget(opts.Settings.Target)
			if err != nil {
				return err
			}
			table, err := backend.TableFor(target)
			if err != nil {
				return err
			}
			call, err := table.Lower(g, id)
			if err != nil {
				var unsupported *backend.UnsupportedOperationError
				if errors.As(err, &unsupported) {
					return unsupported
				}
				return err
			}
			fmt.Fprintf(out, "%s stays live; lowers to builtin %s on %s\n", op, call.Builtin, target)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "f64", "numeric kind (f32, f64)")
	return cmd
}
