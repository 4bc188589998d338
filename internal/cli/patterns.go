package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/hourglass/internal/parsing"
)

var patternsCmd = LeafCommand{
	Use:   "patterns",
	Short: "List the date/time patterns of the culture in the order they are tried",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "date", Usage: "only show patterns using this date parser (normal, day_of_week, relative, special, empty)"},
		{Name: "time", Usage: "only show patterns using this time parser (normal, special, empty)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := appConfig.Provider()
		if err != nil {
			return err
		}

		dateFlag, _ := cmd.Flags().GetString("date")
		timeFlag, _ := cmd.Flags().GetString("time")

		return runPatterns(cmd, p, dateFlag, timeFlag)
	},
}.Build()

func runPatterns(cmd *cobra.Command, p parsing.Provider, dateFlag, timeFlag string) error {
	cands, err := parsing.Candidates(p)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	shown := 0
	for i, c := range cands {
		if dateFlag != "" && c.DateParser != dateFlag {
			continue
		}
		if timeFlag != "" && c.TimeParser != timeFlag {
			continue
		}
		shown++
		_, _ = fmt.Fprintf(w, "%s %s\n    %s\n",
			Silent(fmt.Sprintf("%4d.", i+1)),
			Info(c.DateParser+" + "+c.TimeParser),
			Text(c.Pattern),
		)
	}

	if shown == 0 {
		_, _ = fmt.Fprintln(w, "no patterns found")
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s\n", Silent(fmt.Sprintf("%d of %d patterns for %s", shown, len(cands), p.Name())))
	return nil
}
