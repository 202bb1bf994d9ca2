package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bbugyi200/bugyi/internal/tools"
)

func newNotifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify <message>...",
		Short: "Send a desktop notification",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			urgencyFlag, _ := cmd.Flags().GetString("urgency")

			urgency, err := tools.ParseUrgency(urgencyFlag)
			if err != nil {
				return err
			}

			return tools.Notify(cmd.Context(), tools.Notification{
				Title:   title,
				Urgency: urgency,
				Message: args,
			}).Err()
		}),
	}

	cmd.Flags().StringP("title", "t", "", "Notification title (default: program name)")
	cmd.Flags().StringP("urgency", "u", "", "Urgency: low, normal or critical")
	return cmd
}

func newPassCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pass <key>",
		Short: "Print a secret from the pass password store",
		Args:  cobra.ExactArgs(1),
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			password, err := tools.GetPass(cmd.Context(), args[0]).Unwrap()
			if err != nil {
				return err
			}
			w := GetWriter(cmd)
			w.Writeln(Plain(password))
			return w.Err()
		}),
	}
}
