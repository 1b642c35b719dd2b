package editor

import (
	"fmt"

	"github.com/xmazu/envtable/internal/envfile"
)

type EditType string

const (
	EditEntry EditType = "updateEntry"
	EditLine  EditType = "updateComment"
)

const RenderRowsType = "renderRows"

// EditRequest is what a UI sends to change one line. Entry edits carry
// NewKey and NewValue; line edits carry the raw NewLineText.
type EditRequest struct {
	Type        EditType `json:"type"`
	LineIndex   int      `json:"lineIndex"`
	NewKey      string   `json:"newKey,omitempty"`
	NewValue    string   `json:"newValue,omitempty"`
	NewLineText string   `json:"newLineText,omitempty"`
}

func EntryEdit(lineIndex int, newKey, newValue string) EditRequest {
	return EditRequest{Type: EditEntry, LineIndex: lineIndex, NewKey: newKey, NewValue: newValue}
}

func LineEdit(lineIndex int, newLineText string) EditRequest {
	return EditRequest{Type: EditLine, LineIndex: lineIndex, NewLineText: newLineText}
}

func (r EditRequest) Validate() error {
	switch r.Type {
	case EditEntry, EditLine:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEdit, r.Type)
	}
}

// RenderMessage is pushed to a UI on load and after every document change.
// Sequence increases with every render produced by the same editor.
type RenderMessage struct {
	Type     string                 `json:"type"`
	Sequence uint64                 `json:"sequence"`
	Rows     []envfile.AnnotatedRow `json:"rows"`
}

// Redacted returns a copy of the message with raw values removed from
// every row whose display value is masked.
func (m RenderMessage) Redacted() RenderMessage {
	rows := make([]envfile.AnnotatedRow, len(m.Rows))
	for i, row := range m.Rows {
		if envfile.IsMasked(row.Row) {
			row.Value = ""
			row.OriginalLine = row.Prefix + row.Key + row.Separator + row.DisplayValue
		}
		rows[i] = row
	}
	m.Rows = rows
	return m
}
