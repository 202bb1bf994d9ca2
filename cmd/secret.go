package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bbugyi200/bugyi/internal/console"
	"github.com/bbugyi200/bugyi/internal/core"
)

func newSecretCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a one-time secret file",
		Long: `Writes a random 16 character key to <tmp>/<name>.secret and prints it.
With --wait the file is kept until a key is pressed or the command is
interrupted; otherwise it is removed before the command exits.`,
		Args: cobra.NoArgs,
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			wait, _ := cmd.Flags().GetBool("wait")

			key, cleanup, err := core.Secret(name)
			if err != nil {
				return err
			}
			defer cleanup()

			out := GetWriter(cmd)
			if err := out.WritelnString(key).Err(); err != nil {
				return err
			}
			if !wait {
				return nil
			}

			errOut := GetErrorWriter(cmd)
			errOut.Printf(Info("Secret stored in %s"), core.SecretPath(name)).WritelnString("")
			_, err = console.Getch(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), "Press any key to remove the secret...")
			errOut.WritelnString("")
			return err
		}),
	}

	cmd.Flags().StringP("name", "n", "bugyi", "Name of the secret file")
	cmd.Flags().BoolP("wait", "w", false, "Keep the secret file until a key is pressed")
	return cmd
}
