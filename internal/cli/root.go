// Completion: 100% - CLI root command complete
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jnorthrup/TornadoVM/internal/config"
)

// RootOptions holds the settings shared by every subcommand.
type RootOptions struct {
	Settings   config.Settings
	ConfigFile string
	Logger     *slog.Logger
}

// NewRootCommand creates the tornadoc root command. Settings start from
// the environment, are overlaid by an optional YAML config file, and
// finish with any explicit flags.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Settings: config.FromEnv()}

	cmd := &cobra.Command{
		Use:   "tornadoc",
		Short: "Retarget annotated sequential loops onto a data-parallel device model",
		Long: `tornadoc rewrites loops whose induction variables were declared
parallel-across-iterations into explicit offset/stride/range dimensions
consumed by a device scheduler, and folds or lowers the floating-point
math builtins the rewritten kernels call.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.ConfigFile != "" {
				if err := opts.Settings.ApplyFile(opts.ConfigFile); err != nil {
					return err
				}
			}
			// Flags win over file and environment.
			if cmd.Flags().Changed("reverse-loops") {
				opts.Settings.ReverseLoops, _ = cmd.Flags().GetBool("reverse-loops")
			}
			if cmd.Flags().Changed("verbose") {
				opts.Settings.Debug, _ = cmd.Flags().GetBool("verbose")
			}
			if cmd.Flags().Changed("provider") {
				opts.Settings.AnnotationProvider, _ = cmd.Flags().GetString("provider")
			}
			if cmd.Flags().Changed("target") {
				opts.Settings.Target, _ = cmd.Flags().GetString("target")
			}
			level := slog.LevelInfo
			if opts.Settings.Debug {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "YAML config file")
	cmd.PersistentFlags().Bool("verbose", false, "verbose diagnostics")
	cmd.PersistentFlags().Bool("reverse-loops", false, "process loops in reversed outer-first order")
	cmd.PersistentFlags().String("provider", "", "annotation provider (none, fixture:<path>)")
	cmd.PersistentFlags().String("target", "", "device target (opencl, ptx, spirv)")

	cmd.AddCommand(NewRewriteCommand(opts))
	cmd.AddCommand(NewTargetsCommand(opts))
	cmd.AddCommand(NewFoldCommand(opts))

	return cmd
}

// Execute runs the root command and returns its exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error("tornadoc failed", "error", err)
		return 1
	}
	return 0
}
