package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bbugyi200/bugyi/internal/colors"
)

func newColorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "color <color> <text>...",
		Short:     "Print text in an ANSI color",
		Long:      "Prints text in the given color. Respects --colors and NO_COLOR.",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: colors.Names(),
		RunE: a.catch(func(cmd *cobra.Command, args []string) error {
			c, err := colors.Parse(args[0])
			if err != nil {
				return err
			}

			w := GetWriter(cmd)
			w.Writeln(Colored(strings.Join(args[1:], " "), c))
			return w.Err()
		}),
	}
}
