package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bbugyi200/bugyi/internal/subprocess"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [--timeout D] -- <command> [args...]",
		Short: "Run a command and report a failure as an error chain",
		Long: `Runs a command with its standard output passed through. If the command
exits non-zero, times out or cannot be started, the failure and the
command's standard error are printed as an error report.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")

			a.logger().Debug("running command", zap.Strings("argv", args), zap.Duration("timeout", timeout))

			return subprocess.Run(cmd.Context(), args,
				subprocess.WithStdout(cmd.OutOrStdout()),
				subprocess.WithStdin(cmd.InOrStdin()),
				subprocess.WithTimeout(timeout),
			).Err()
		}),
	}

	// everything after the command name belongs to the command
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().Duration("timeout", 0, "Kill the command after this long (0 = no limit)")
	return cmd
}
