package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Flyrell/hourglass/internal/parsing"
	"github.com/Flyrell/hourglass/internal/recent"
)

var recentListCmd = LeafCommand{
	Use:   "list",
	Short: "Show recently remembered timer inputs, newest first",
	Args:  cobra.NoArgs,
	IntFlags: []IntFlag{
		{Name: "limit", Usage: "maximum number of inputs to show (0 = all)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := appConfig.Provider()
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 0 {
			return fmt.Errorf("--limit must be 0 or positive")
		}

		return runRecentList(cmd, p, appConfig.DataDir, limit)
	},
}.Build()

var recentRemoveCmd = LeafCommand{
	Use:   "remove <id>",
	Short: "Forget one remembered timer input",
	Args:  cobra.ExactArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return runRecentRemove(cmd, appConfig.DataDir, args[0], confirmFromFlag(yes))
	},
}.Build()

var recentClearCmd = LeafCommand{
	Use:   "clear",
	Short: "Forget every remembered timer input",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return runRecentClear(cmd, appConfig.DataDir, confirmFromFlag(yes))
	},
}.Build()

var recentCmd = GroupCommand{
	Use:   "recent",
	Short: "Manage recently used timer inputs",
	Subcommands: []*cobra.Command{
		recentListCmd,
		recentRemoveCmd,
		recentClearCmd,
	},
}.Build()

func runRecentList(cmd *cobra.Command, p parsing.Provider, dataDir string, limit int) error {
	records, err := recent.NewStore(dataDir).List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "no recent inputs")
		return nil
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			Silent(r.ID),
			Text(r.CreatedAt.Local().Format("2006-01-02 15:04")),
			Info(fmt.Sprintf("%-9s", r.Token.Kind())),
			Primary(r.Token.OriginalInput),
			Silent("("+r.Token.Format(p)+")"),
		)
	}
	return nil
}

func runRecentRemove(cmd *cobra.Command, dataDir, id string, confirm ConfirmFunc) error {
	store := recent.NewStore(dataDir)
	records, err := store.List()
	if err != nil {
		return err
	}

	var found *recent.Record
	for i := range records {
		if records[i].ID == id {
			found = &records[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("recent input '%s' not found", id)
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "  input: %s\n", Primary(found.Token.OriginalInput))

	if confirm != nil {
		ok, err := confirm("Forget this input?")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	if err := store.Remove(id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "removed %s\n", Silent(id))
	return nil
}

func runRecentClear(cmd *cobra.Command, dataDir string, confirm ConfirmFunc) error {
	store := recent.NewStore(dataDir)
	records, err := store.List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "no recent inputs")
		return nil
	}

	if confirm != nil {
		ok, err := confirm(fmt.Sprintf("Forget %d recent inputs?", len(records)))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(w, "cancelled")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "recent inputs cleared")
	return nil
}
