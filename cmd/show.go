package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/envfile"
	"github.com/xmazu/envtable/internal/tui"
)

var showCmd = &cobra.Command{
	Use:   "show [FILE]",
	Short: "Show a .env file as a table",
	Long: `Show every key-value line of a .env file with its line number. Values of six
or more characters are masked unless --reveal is given. Keys defined more
than once are marked.

With --json the render message (rows with kind, line index, display value and
duplicate flag) is printed instead. Masked raw values are omitted from it
unless --reveal is given.

Lines ending in CRLF are not key-value lines: they are treated as comments and
their full text, value included, is printed unmasked with --comments or --json.

Examples:
  envtable show
  envtable show .env.production --comments
  envtable show --json | jq '.rows[] | select(.isDuplicate)'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var (
	showJSON     bool
	showReveal   bool
	showComments bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the render message as JSON")
	showCmd.Flags().BoolVar(&showReveal, "reveal", false, "Show raw values")
	showCmd.Flags().BoolVar(&showComments, "comments", false, "Include comment lines")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ed, doc, err := openEditor(targetFile(args))
	if err != nil {
		return err
	}
	msg, err := ed.Render()
	if err != nil {
		return err
	}

	if showJSON {
		if !showReveal {
			msg = msg.Redacted()
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(msg)
	}

	keys := 0
	for _, row := range msg.Rows {
		if row.Kind == envfile.KindKeyValue {
			keys++
		}
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", tui.Header(doc.Path()), tui.Muted(fmt.Sprintf("(%d keys)", keys)))
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderTable(msg.Rows, tui.TableOptions{Reveal: showReveal, Comments: showComments}))

	rows := make([]envfile.Row, len(msg.Rows))
	for i, r := range msg.Rows {
		rows[i] = r.Row
	}
	if dups := envfile.FindDuplicates(rows); len(dups) > 0 {
		fmt.Fprintf(os.Stderr, "%s duplicate keys: %v\n", tui.Warning("!"), dups.Sorted())
	}
	return nil
}
