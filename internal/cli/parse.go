package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Flyrell/hourglass/internal/parsing"
	"github.com/Flyrell/hourglass/internal/recent"
)

const endTimeLayout = "Mon 2006-01-02 15:04:05"

var startLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

var parseCmd = LeafCommand{
	Use:   "parse <input...>",
	Short: "Read a timer input and show when the timer would end",
	Example: `  hourglass parse 10m
  hourglass parse next friday at 5pm
  hourglass parse --locale en-GB 03/04 noon --start "2025-01-15 09:00"`,
	Args: cobra.MinimumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "json", Shorthand: "j", Usage: "print the token, start and end time as JSON"},
		{Name: "remember", Shorthand: "r", Usage: "add the input to the recent inputs"},
	},
	StrFlags: []StringFlag{
		{Name: "start", Shorthand: "s", Usage: "timer start (RFC 3339 or YYYY-MM-DD HH:MM); defaults to now"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := appConfig.Provider()
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		remember, _ := cmd.Flags().GetBool("remember")
		startFlag, _ := cmd.Flags().GetString("start")

		return runParse(cmd, appParser, p, appConfig.DataDir, strings.Join(args, " "), startFlag, asJSON, remember, time.Now)
	},
}.Build()

// parseResult is the --json output.
type parseResult struct {
	Token *parsing.TimerStartToken `json:"token"`
	Text  string                   `json:"text"`
	Start time.Time                `json:"start"`
	End   time.Time                `json:"end"`
}

func runParse(cmd *cobra.Command, ps *parsing.Parser, p parsing.Provider, dataDir, input, startFlag string, asJSON, remember bool, nowFn func() time.Time) error {
	start := nowFn()
	if startFlag != "" {
		var err error
		if start, err = parseStart(startFlag, start.Location()); err != nil {
			return err
		}
	}

	token, err := ps.Parse(input, p)
	if err != nil {
		return fmt.Errorf("could not read '%s' as a timer: %w", input, err)
	}

	end, err := token.EndTime(start)
	if err != nil {
		return fmt.Errorf("'%s' does not end after %s: %w", input, start.Format(endTimeLayout), err)
	}

	if remember {
		r, err := recent.NewStore(dataDir).Add(token)
		if err != nil {
			return fmt.Errorf("could not remember '%s': %w", input, err)
		}
		appLogger.Debug("remembered timer input", zap.String("id", r.ID), zap.String("input", input))
	}

	w := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(parseResult{Token: token, Text: token.Format(p), Start: start, End: end}, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, string(data))
		return nil
	}

	_, _ = fmt.Fprintf(w, "%s  %s\n", Info(string(token.Kind())), Primary(token.Format(p)))
	_, _ = fmt.Fprintf(w, "ends  %s  %s\n", Text(end.Format(endTimeLayout)), Silent("in "+end.Sub(start).Round(time.Second).String()))
	return nil
}

func parseStart(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --start value '%s': expected RFC 3339 or YYYY-MM-DD HH:MM", value)
}
