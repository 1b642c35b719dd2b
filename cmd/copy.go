package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/envfile"
	"github.com/xmazu/envtable/internal/tui"
)

var copyCmd = &cobra.Command{
	Use:   "copy LINE",
	Short: "Copy the raw value of a line to the clipboard",
	Long: `Copy the value of the key-value line at LINE (1-based) to the system
clipboard without printing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCopy,
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

func init() {
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	lineIndex, err := parseLineNumber(args[0])
	if err != nil {
		return err
	}
	ed, _, err := openEditor(targetFile(nil))
	if err != nil {
		return err
	}
	rows, err := ed.Rows()
	if err != nil {
		return err
	}
	if lineIndex >= len(rows) {
		return fmt.Errorf("line %d: %w", lineIndex+1, errNoSuchLine)
	}
	row := rows[lineIndex]
	if row.Kind != envfile.KindKeyValue {
		return fmt.Errorf("line %d: %w", lineIndex+1, errNotEntry)
	}

	if err := writeClipboard(row.Value); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s %s copied %s\n", tui.Success("✓"), tui.Label(row.Key), tui.Muted(row.DisplayValue))
	return nil
}
