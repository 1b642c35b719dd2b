package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/xmazu/envtable/internal/envfile"
)

const (
	MaxKeyWidth   = 32
	MaxValueWidth = 48
	DuplicateMark = "⚠ duplicate"
)

type TableOptions struct {
	// Reveal shows raw values instead of display values.
	Reveal bool
	// Comments includes comment rows; blank rows are never shown.
	Comments bool
}

// RenderTable formats rows as aligned "line key value" columns. Line numbers
// are 1-based. Keys and values wider than their column are truncated.
func RenderTable(rows []envfile.AnnotatedRow, opts TableOptions) string {
	keyWidth := 0
	for _, row := range rows {
		if row.Kind == envfile.KindKeyValue {
			keyWidth = max(keyWidth, min(runewidth.StringWidth(row.Key), MaxKeyWidth))
		}
	}
	numWidth := len(fmt.Sprint(len(rows)))

	var b strings.Builder
	for _, row := range rows {
		num := Muted(fmt.Sprintf("%*d", numWidth, row.LineIndex+1))
		switch row.Kind {
		case envfile.KindKeyValue:
			key := runewidth.FillRight(runewidth.Truncate(row.Key, MaxKeyWidth, "…"), keyWidth)
			fmt.Fprintf(&b, "%s  %s  %s", num, Key(key), formatValue(row.Row, opts.Reveal))
			if row.IsDuplicate {
				fmt.Fprintf(&b, "  %s", DuplicateStyle.Render(DuplicateMark))
			}
			b.WriteByte('\n')
		case envfile.KindComment:
			if opts.Comments {
				fmt.Fprintf(&b, "%s  %s\n", num, Muted(runewidth.Truncate(row.OriginalLine, keyWidth+MaxValueWidth+2, "…")))
			}
		}
	}
	return b.String()
}

func formatValue(row envfile.Row, reveal bool) string {
	if reveal {
		return runewidth.Truncate(row.Value, MaxValueWidth, "…")
	}
	if envfile.IsMasked(row) {
		return MaskedStyle.Render(row.DisplayValue)
	}
	return runewidth.Truncate(row.DisplayValue, MaxValueWidth, "…")
}

// RowLabel is a one-line description of a row for pickers.
func RowLabel(row envfile.AnnotatedRow) string {
	n := row.LineIndex + 1
	switch row.Kind {
	case envfile.KindKeyValue:
		label := fmt.Sprintf("%d  %s = %s", n, runewidth.Truncate(row.Key, MaxKeyWidth, "…"),
			runewidth.Truncate(row.DisplayValue, MaxValueWidth, "…"))
		if row.IsDuplicate {
			label += "  " + DuplicateMark
		}
		return label
	case envfile.KindComment:
		return fmt.Sprintf("%d  %s", n, runewidth.Truncate(row.OriginalLine, MaxKeyWidth+MaxValueWidth, "…"))
	default:
		return fmt.Sprintf("%d  (blank)", n)
	}
}
