package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bbugyi200/bugyi/internal/xdg"
)

func newXDGCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "xdg <cache|config|data|runtime>",
		Short:     "Print an XDG user directory",
		Long:      "Prints the XDG base directory of the given kind, or a per-program directory below it when --name or --init is given.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(xdg.Cache), string(xdg.Config), string(xdg.Data), string(xdg.Runtime)},
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			initDir, _ := cmd.Flags().GetBool("init")

			kind, err := xdg.ParseKind(args[0])
			if err != nil {
				return err
			}

			var dir string
			switch {
			case initDir:
				if dir, err = xdg.InitFullDir(kind, name).Unwrap(); err != nil {
					return err
				}
			case name != "":
				if dir, err = xdg.FullDir(kind, name); err != nil {
					return err
				}
			default:
				if dir, err = xdg.BaseDir(kind); err != nil {
					return err
				}
			}

			printf(cmd, "%s\n", dir)
			return nil
		}),
	}

	cmd.Flags().StringP("name", "n", "", "Program name for the per-program directory")
	cmd.Flags().Bool("init", false, "Create the per-program directory (named after --name, default: program name)")
	return cmd
}
