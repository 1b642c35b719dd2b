package envfile

import "strings"

// Reconstruct returns the text a row occupies in the document. Blank and
// comment rows are returned verbatim; key-value rows are rebuilt from their
// current fields.
func Reconstruct(row Row) string {
	if row.Kind != KindKeyValue {
		return row.OriginalLine
	}
	return row.Prefix + row.Key + row.Separator + row.Value
}

// Join reconstructs every row and joins them with "\n". For rows from
// Parse(content) without edits the result equals content.
func Join(rows []Row) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = Reconstruct(row)
	}
	return strings.Join(lines, "\n")
}
