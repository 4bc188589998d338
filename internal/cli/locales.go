package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/hourglass/internal/locale"
)

var localesCmd = LeafCommand{
	Use:   "locales",
	Short: "List the cultures timer inputs can be read in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLocales(cmd, appConfig.Locale)
	},
}.Build()

func runLocales(cmd *cobra.Command, current string) error {
	selected, _ := locale.Lookup(current)

	w := cmd.OutOrStdout()
	for _, name := range locale.Names() {
		l, err := locale.Lookup(name)
		if err != nil {
			return err
		}

		order := "day-first"
		switch {
		case l.IsYearFirst():
			order = "year-first"
		case l.IsMonthFirst():
			order = "month-first"
		}
		clock := "12h"
		if l.Prefer24Hour() {
			clock = "24h"
		}

		marker, label := " ", Text(fmt.Sprintf("%-6s", l.Name()))
		if selected != nil && selected.Name() == l.Name() {
			marker, label = "*", Primary(fmt.Sprintf("%-6s", l.Name()))
		}
		_, _ = fmt.Fprintf(w, "%s %s  %s  %s  %s\n", marker, label,
			Silent(fmt.Sprintf("%-10s", l.ShortDatePattern())), Info(fmt.Sprintf("%-11s", order)), Text(clock))
	}
	return nil
}
