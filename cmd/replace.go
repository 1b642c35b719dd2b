package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/tui"
)

var replaceCmd = &cobra.Command{
	Use:   "replace LINE TEXT",
	Short: "Replace the raw text of a line",
	Long: `Replace the whole text of the line at LINE (1-based). This is how comments
and blank lines are edited; the text is written verbatim and must be a single
line.

Examples:
  envtable replace 1 "# staging"
  envtable replace 4 "" --dry-run`,
	Args: cobra.ExactArgs(2),
	RunE: runReplace,
}

var (
	replaceDryRun bool
	replaceReveal bool
)

func init() {
	replaceCmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "Show the change without writing it")
	replaceCmd.Flags().BoolVar(&replaceReveal, "reveal", false, "Show raw values in the --dry-run diff")
	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	lineIndex, err := parseLineNumber(args[0])
	if err != nil {
		return err
	}

	ed, _, err := openEditor(targetFile(nil))
	if err != nil {
		return err
	}

	req := editor.LineEdit(lineIndex, args[1])
	if replaceDryRun {
		res, err := ed.Plan(req)
		if err != nil {
			return replaceError(err)
		}
		if res.Stale {
			return fmt.Errorf("line %d: %w", lineIndex+1, errNoSuchLine)
		}
		writeDiff(cmd.OutOrStdout(), res, replaceReveal)
		return nil
	}

	res, err := ed.Apply(req)
	if err != nil {
		return replaceError(err)
	}
	switch {
	case res.Stale:
		return fmt.Errorf("line %d: %w", lineIndex+1, errNoSuchLine)
	case !res.Applied:
		fmt.Fprintf(os.Stderr, "%s line %d unchanged\n", tui.Muted("="), lineIndex+1)
	default:
		fmt.Fprintf(os.Stderr, "%s line %d replaced\n", tui.Success("✓"), lineIndex+1)
	}
	return nil
}

func replaceError(err error) error {
	if errors.Is(err, document.ErrMultilineEdit) {
		return fmt.Errorf("TEXT must be a single line: %w", err)
	}
	return err
}
