package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bbugyi200/bugyi/internal/dates"
)

func newDatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dates <first[:last]>",
		Short: "Print every date in an inclusive range",
		Long: `Prints one YYYY-MM-DD date per line for the range FIRST:LAST, or just
FIRST. Besides common date layouts, @today (@td) and @yesterday (@yd) are
accepted.`,
		Example: "  bugyi dates 2024-01-30:@today",
		Args:    cobra.ExactArgs(1),
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			days, err := dates.ParseDateRange(args[0])
			if err != nil {
				return err
			}

			for _, d := range days {
				printf(cmd, "%s\n", d.Format(dates.DateLayout))
			}
			return nil
		}),
	}
}
