package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/journal"
	"github.com/xmazu/envtable/internal/tui"
	"github.com/xmazu/envtable/internal/workspace"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show or verify the edit journal",
	Long: `Every applied edit is appended to .envtable/journal.jsonl at the workspace
root (disable with journal: false in config). Entries record the file, line,
key and time of an edit; values are never written. Each entry carries the
hash of the previous one, so --verify detects edited or removed entries.`,
	RunE: runJournal,
}

var (
	journalLast   int
	journalVerify bool
	journalJSON   bool
)

var errJournalBroken = errors.New("journal chain broken")

func init() {
	journalCmd.Flags().IntVarP(&journalLast, "last", "n", 20, "Number of entries to show (0 for all)")
	journalCmd.Flags().BoolVar(&journalVerify, "verify", false, "Verify the hash chain")
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	root, err := workspace.FindRoot(".")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if journalVerify {
		result, err := journal.Verify(root)
		if err != nil {
			return err
		}
		if !result.OK() {
			fmt.Fprintf(out, "%s %d entries, chain broken at %v\n", tui.Error("✗"), result.TotalEntries, result.Breaks)
			return errJournalBroken
		}
		fmt.Fprintf(out, "%s %d entries, chain intact\n", tui.Success("✓"), result.TotalEntries)
		return nil
	}

	entries, err := journal.Show(root, journalLast)
	if errors.Is(err, journal.ErrNoJournal) {
		fmt.Fprintln(out, tui.Muted("No journal found."))
		return nil
	}
	if err != nil {
		return err
	}

	if journalJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	for _, e := range entries {
		key := e.Key
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(out, "%s  %-12s %s:%d  %s\n", tui.Muted(e.Timestamp), e.Op, e.File, e.Line+1, tui.Key(key))
	}
	return nil
}
