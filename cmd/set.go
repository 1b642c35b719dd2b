package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/envfile"
	"github.com/xmazu/envtable/internal/tui"
)

var setCmd = &cobra.Command{
	Use:   "set LINE KEY [VALUE]",
	Short: "Set the key and value of a line",
	Long: `Rewrite the key and value of the key-value line at LINE (1-based, as shown
by show). Indentation and the spacing around "=" are kept.

If VALUE is omitted it is read with a hidden prompt, so secrets stay out of
shell history.

Examples:
  envtable set 3 API_KEY              # prompt for the value
  envtable set 3 API_KEY abc --dry-run
  envtable set 5 PORT 8080 -f .env.local`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSet,
}

var (
	setDryRun bool
	setReveal bool
)

func init() {
	setCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "Show the change without writing it")
	setCmd.Flags().BoolVar(&setReveal, "reveal", false, "Show raw values in the --dry-run diff")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	lineIndex, err := parseLineNumber(args[0])
	if err != nil {
		return err
	}
	key := args[1]
	if !validKey(key) {
		return fmt.Errorf("invalid key %q: must start with a letter or _ and contain only letters, digits and _", key)
	}

	ed, doc, err := openEditor(targetFile(nil))
	if err != nil {
		return err
	}

	rows, err := ed.Rows()
	if err != nil {
		return err
	}
	if lineIndex >= len(rows) {
		return fmt.Errorf("line %d: %w (%s has %d lines)", lineIndex+1, errNoSuchLine, doc.Path(), len(rows))
	}
	if rows[lineIndex].Kind != envfile.KindKeyValue {
		return fmt.Errorf("line %d is %s: %w (use replace)", lineIndex+1, rows[lineIndex].Kind, errNotEntry)
	}

	var value string
	if len(args) == 3 {
		value = args[2]
	} else {
		value, err = tui.HiddenInput(fmt.Sprintf("Value for %s", key))
		if err != nil {
			return err
		}
	}

	req := editor.EntryEdit(lineIndex, key, value)
	if setDryRun {
		res, err := ed.Plan(req)
		if err != nil {
			return err
		}
		writeDiff(cmd.OutOrStdout(), res, setReveal)
		return nil
	}

	res, err := ed.Apply(req)
	if err != nil {
		return err
	}
	switch {
	case res.Stale:
		return fmt.Errorf("line %d: %w", lineIndex+1, errNoSuchLine)
	case !res.Applied:
		fmt.Fprintf(os.Stderr, "%s line %d unchanged\n", tui.Muted("="), lineIndex+1)
	default:
		fmt.Fprintf(os.Stderr, "%s %s set on line %d\n", tui.Success("✓"), tui.Label(key), lineIndex+1)
	}
	return nil
}
