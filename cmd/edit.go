package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/envfile"
	"github.com/xmazu/envtable/internal/session"
	"github.com/xmazu/envtable/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit [FILE]",
	Short: "Edit a .env file interactively",
	Long: `Pick a line, then edit its key or value (key-value lines) or its raw text
(comments and blank lines). Masked values are entered with a hidden prompt.
The table is re-read after every edit, so changes made by other tools in the
meantime are picked up.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

const choiceDone = -1

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ed, doc, err := openEditor(targetFile(args))
	if err != nil {
		return err
	}

	view := session.New()
	log.Debug("edit session started", "view", view.ID, "file", doc.Path())

	for {
		msg, err := ed.Render()
		if err != nil {
			return err
		}
		view.Refresh(msg)

		rows := view.Rows()
		choices := make([]tui.Choice, 0, len(rows)+1)
		for i, row := range rows {
			choices = append(choices, tui.Choice{Label: tui.RowLabel(row), Value: i})
		}
		choices = append(choices, tui.Choice{Label: "Done", Value: choiceDone})

		index, err := tui.Select(doc.Path(), choices)
		if err != nil {
			return err
		}
		if index == choiceDone {
			return nil
		}

		req, ok, err := promptEdit(view, index)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		res, err := ed.Apply(req)
		if errors.Is(err, document.ErrMultilineEdit) {
			fmt.Fprintf(os.Stderr, "%s text must be a single line\n", tui.Warning("!"))
			continue
		}
		if err != nil {
			return err
		}
		reportEdit(res)
	}
}

// promptEdit asks for the new content of the row at index and returns the
// request the view produced for it.
func promptEdit(view *session.View, index int) (editor.EditRequest, bool, error) {
	row, ok := view.Row(index)
	if !ok {
		return editor.EditRequest{}, false, nil
	}
	title := fmt.Sprintf("Line %d", row.LineIndex+1)

	if row.Kind != envfile.KindKeyValue {
		text, err := tui.PlaintextInput(title, row.OriginalLine)
		if err != nil {
			return editor.EditRequest{}, false, err
		}
		req, ok := view.CommitLine(index, text)
		return req, ok, nil
	}

	field, err := tui.Select(title, []tui.Choice{
		{Label: "Value", Value: int(session.FieldValue)},
		{Label: "Key", Value: int(session.FieldKey)},
		{Label: "Back", Value: choiceDone},
	})
	if err != nil || field == choiceDone {
		return editor.EditRequest{}, false, err
	}
	if !view.StartEditing(index, session.Field(field)) {
		return editor.EditRequest{}, false, nil
	}

	var text string
	switch {
	case session.Field(field) == session.FieldKey:
		text, err = tui.PlaintextInput(fmt.Sprintf("%s: key", title), row.Key)
		if err == nil && !validKey(text) {
			view.CancelEdit()
			fmt.Fprintf(os.Stderr, "%s invalid key %q\n", tui.Warning("!"), text)
			return editor.EditRequest{}, false, nil
		}
	case envfile.IsMasked(row.Row):
		text, err = tui.HiddenInput(fmt.Sprintf("Value for %s", row.Key))
	default:
		text, err = tui.PlaintextInput(fmt.Sprintf("Value for %s", row.Key), row.Value)
	}
	if err != nil {
		view.CancelEdit()
		return editor.EditRequest{}, false, err
	}

	req, ok := view.Commit(text)
	return req, ok, nil
}

func reportEdit(res editor.Result) {
	n := res.Request.LineIndex + 1
	switch {
	case res.Stale:
		fmt.Fprintf(os.Stderr, "%s line %d no longer exists, edit dropped\n", tui.Warning("!"), n)
	case !res.Applied:
		fmt.Fprintf(os.Stderr, "%s line %d unchanged\n", tui.Muted("="), n)
	default:
		fmt.Fprintf(os.Stderr, "%s line %d updated\n", tui.Success("✓"), n)
	}
}
