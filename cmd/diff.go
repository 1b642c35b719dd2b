package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/envfile"
	"github.com/xmazu/envtable/internal/tui"
)

// displayLine returns text with a masked value replaced by its display
// value, unless reveal is set.
func displayLine(text string, reveal bool) string {
	row := envfile.ParseLine(text, 0)
	if reveal || !envfile.IsMasked(row) {
		return text
	}
	return row.Prefix + row.Key + row.Separator + row.DisplayValue
}

// writeDiff prints the planned change to one line as a removed line, an
// added line and a character-level diff between them.
func writeDiff(w io.Writer, res editor.Result, reveal bool) {
	before := displayLine(res.Before, reveal)
	after := displayLine(res.After, reveal)

	fmt.Fprintf(w, "%s\n", tui.Muted(fmt.Sprintf("@@ line %d @@", res.Request.LineIndex+1)))
	if before == after {
		fmt.Fprintf(w, " %s\n", before)
		return
	}
	fmt.Fprintf(w, "%s\n", tui.RemovedStyle.Render("-"+before))
	fmt.Fprintf(w, "%s\n", tui.AddedStyle.Render("+"+after))

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(tui.RemovedStyle.Strikethrough(true).Render(d.Text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(tui.AddedStyle.Underline(true).Render(d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	fmt.Fprintf(w, "~%s\n", b.String())
}
