// Package session keeps the consumer-side state of an open .env table: the
// last authoritative render, edits that were sent but not yet confirmed, and
// which cell is being edited.
//
// Pending edits are an overlay. They never modify the authoritative rows and
// are dropped as soon as the next render arrives, because that render already
// reflects (or supersedes) them. The same refresh resets the editing focus,
// since row positions may have shifted.
package session

import (
	"github.com/google/uuid"

	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/envfile"
)

type Field int

const (
	FieldKey Field = iota
	FieldValue
)

func (f Field) String() string {
	if f == FieldKey {
		return "key"
	}
	return "value"
}

// Focus addresses a cell by its position in the rendered row list.
type Focus struct {
	Index int
	Field Field
}

type pending struct {
	req  editor.EditRequest
	line bool
}

type View struct {
	ID string

	sequence uint64
	rows     []envfile.AnnotatedRow
	pending  map[int]pending
	focus    *Focus
}

func New() *View {
	return &View{
		ID:      uuid.New().String(),
		pending: make(map[int]pending),
	}
}

// Refresh installs an authoritative render. Renders older than the current
// one are ignored.
func (v *View) Refresh(msg editor.RenderMessage) bool {
	if v.rows != nil && msg.Sequence != 0 && msg.Sequence < v.sequence {
		return false
	}
	v.sequence = msg.Sequence
	v.rows = msg.Rows
	v.pending = make(map[int]pending)
	v.focus = nil
	return true
}

func (v *View) Sequence() uint64 {
	return v.sequence
}

// Rows returns the authoritative rows with pending edits laid over them.
// Display values and duplicate flags are recomputed for the overlay.
func (v *View) Rows() []envfile.AnnotatedRow {
	if len(v.pending) == 0 {
		out := make([]envfile.AnnotatedRow, len(v.rows))
		copy(out, v.rows)
		return out
	}

	rows := make([]envfile.Row, len(v.rows))
	for i, r := range v.rows {
		rows[i] = r.Row
		p, ok := v.pending[r.LineIndex]
		if !ok {
			continue
		}
		if p.line {
			rows[i] = envfile.ParseLine(p.req.NewLineText, r.LineIndex)
			continue
		}
		rows[i] = r.Row.WithEntry(p.req.NewKey, p.req.NewValue)
	}
	return envfile.Annotate(rows)
}

func (v *View) Row(index int) (envfile.AnnotatedRow, bool) {
	rows := v.Rows()
	if index < 0 || index >= len(rows) {
		return envfile.AnnotatedRow{}, false
	}
	return rows[index], true
}

func (v *View) Pending() int {
	return len(v.pending)
}

func (v *View) IsPending(lineIndex int) bool {
	_, ok := v.pending[lineIndex]
	return ok
}

func (v *View) Focus() (Focus, bool) {
	if v.focus == nil {
		return Focus{}, false
	}
	return *v.focus, true
}

// StartEditing focuses a key or value cell. Only key-value rows have cells.
func (v *View) StartEditing(index int, field Field) bool {
	row, ok := v.Row(index)
	if !ok || row.Kind != envfile.KindKeyValue {
		return false
	}
	v.focus = &Focus{Index: index, Field: field}
	return true
}

func (v *View) CancelEdit() {
	v.focus = nil
}

// Commit ends editing of the focused cell with text and returns the request
// to send. The edit is shown immediately through the pending overlay.
func (v *View) Commit(text string) (editor.EditRequest, bool) {
	if v.focus == nil {
		return editor.EditRequest{}, false
	}
	focus := *v.focus
	v.focus = nil

	row, ok := v.Row(focus.Index)
	if !ok || row.Kind != envfile.KindKeyValue {
		return editor.EditRequest{}, false
	}

	key, value := row.Key, row.Value
	if focus.Field == FieldKey {
		key = text
	} else {
		value = text
	}
	req := editor.EntryEdit(row.LineIndex, key, value)
	v.pending[row.LineIndex] = pending{req: req}
	return req, true
}

// CommitLine replaces the raw text of the row at index, which is how
// comment and blank rows are edited.
func (v *View) CommitLine(index int, text string) (editor.EditRequest, bool) {
	row, ok := v.Row(index)
	if !ok {
		return editor.EditRequest{}, false
	}
	v.focus = nil
	req := editor.LineEdit(row.LineIndex, text)
	v.pending[row.LineIndex] = pending{req: req, line: true}
	return req, true
}
