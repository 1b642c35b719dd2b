package session

import (
	"testing"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/envfile"
)

func render(t *testing.T, ed *editor.Editor) editor.RenderMessage {
	t.Helper()
	msg, err := ed.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return msg
}

func TestView(t *testing.T) {
	t.Run("new view has an id and no rows", func(t *testing.T) {
		v := New()
		if v.ID == "" {
			t.Error("ID should not be empty")
		}
		if len(v.Rows()) != 0 {
			t.Errorf("Rows() = %d rows, want 0", len(v.Rows()))
		}
	})

	t.Run("commit shows pending value until refresh", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("# c\nTOKEN=abc\n"))
		v := New()
		v.Refresh(render(t, ed))

		if !v.StartEditing(1, FieldValue) {
			t.Fatal("StartEditing() on key-value row should succeed")
		}
		req, ok := v.Commit("a-much-longer-token")
		if !ok {
			t.Fatal("Commit() should produce a request")
		}
		want := editor.EntryEdit(1, "TOKEN", "a-much-longer-token")
		if req != want {
			t.Errorf("Commit() = %+v, want %+v", req, want)
		}

		row, _ := v.Row(1)
		if row.Value != "a-much-longer-token" || row.DisplayValue != envfile.MaskPlaceholder {
			t.Errorf("overlay row = %+v, want pending masked value", row)
		}
		if !v.IsPending(1) {
			t.Error("line 1 should be pending")
		}
		if _, focused := v.Focus(); focused {
			t.Error("Commit() should clear focus")
		}

		if _, err := ed.Apply(req); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		v.Refresh(render(t, ed))

		if v.Pending() != 0 {
			t.Errorf("Pending() = %d after refresh, want 0", v.Pending())
		}
		row, _ = v.Row(1)
		if row.Value != "a-much-longer-token" {
			t.Errorf("authoritative value = %q", row.Value)
		}
	})

	t.Run("refresh discards unconfirmed edits", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("A=1"))
		v := New()
		v.Refresh(render(t, ed))

		v.StartEditing(0, FieldValue)
		v.Commit("2")
		v.Refresh(render(t, ed))

		row, _ := v.Row(0)
		if row.Value != "1" {
			t.Errorf("Value = %q, want authoritative %q", row.Value, "1")
		}
	})

	t.Run("refresh resets focus", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("A=1\nB=2"))
		v := New()
		v.Refresh(render(t, ed))

		v.StartEditing(1, FieldKey)
		v.Refresh(render(t, ed))

		if _, focused := v.Focus(); focused {
			t.Error("focus should be reset by refresh")
		}
		if _, ok := v.Commit("X"); ok {
			t.Error("Commit() without focus should do nothing")
		}
	})

	t.Run("older renders are ignored", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("A=1"))
		v := New()
		old := render(t, ed)
		v.Refresh(render(t, ed))

		if v.Refresh(old) {
			t.Error("Refresh() accepted an older render")
		}
	})

	t.Run("key edit updates duplicate flags in the overlay", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("A=1\nB=2"))
		v := New()
		v.Refresh(render(t, ed))

		v.StartEditing(1, FieldKey)
		req, _ := v.Commit("A")

		if req.NewKey != "A" || req.NewValue != "2" {
			t.Errorf("Commit() = %+v", req)
		}
		rows := v.Rows()
		if !rows[0].IsDuplicate || !rows[1].IsDuplicate {
			t.Errorf("overlay duplicate flags = %v, %v, want true, true", rows[0].IsDuplicate, rows[1].IsDuplicate)
		}
	})

	t.Run("comment and blank rows have no cells", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("# c\n\nA=1"))
		v := New()
		v.Refresh(render(t, ed))

		if v.StartEditing(0, FieldKey) || v.StartEditing(1, FieldValue) || v.StartEditing(9, FieldValue) {
			t.Error("StartEditing() should fail for comment, blank and missing rows")
		}
	})

	t.Run("commit line overlays a comment edit", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("# old\nA=1"))
		v := New()
		v.Refresh(render(t, ed))

		req, ok := v.CommitLine(0, "# new")
		if !ok {
			t.Fatal("CommitLine() should produce a request")
		}
		if req != editor.LineEdit(0, "# new") {
			t.Errorf("CommitLine() = %+v", req)
		}
		row, _ := v.Row(0)
		if row.Key != "# new" || row.Kind != envfile.KindComment {
			t.Errorf("overlay row = %+v", row)
		}
	})

	t.Run("cancel edit", func(t *testing.T) {
		ed := editor.New(document.NewBuffer("A=1"))
		v := New()
		v.Refresh(render(t, ed))

		v.StartEditing(0, FieldValue)
		v.CancelEdit()

		if _, focused := v.Focus(); focused {
			t.Error("CancelEdit() should clear focus")
		}
		if v.Pending() != 0 {
			t.Error("CancelEdit() should not record an edit")
		}
	})
}
