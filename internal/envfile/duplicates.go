package envfile

import "sort"

// KeySet is a set of variable names.
type KeySet map[string]struct{}

func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s KeySet) Sorted() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FindDuplicates returns the keys that appear on two or more key-value rows.
// Comparison is exact and case-sensitive.
func FindDuplicates(rows []Row) KeySet {
	seen := make(map[string]bool)
	dups := make(KeySet)
	for _, row := range rows {
		if row.Kind != KindKeyValue || row.Key == "" {
			continue
		}
		if seen[row.Key] {
			dups[row.Key] = struct{}{}
			continue
		}
		seen[row.Key] = true
	}
	return dups
}

// AnnotatedRow is a row as handed to a UI, carrying its duplicate flag.
type AnnotatedRow struct {
	Row
	IsDuplicate bool `json:"isDuplicate"`
}

// Annotate flags every row whose key is in the duplicate set. Only
// key-value rows make a key duplicate, but the flag is checked against the
// key of any row, so a comment whose whole text equals a duplicated key is
// flagged too.
func Annotate(rows []Row) []AnnotatedRow {
	dups := FindDuplicates(rows)
	out := make([]AnnotatedRow, len(rows))
	for i, row := range rows {
		out[i] = AnnotatedRow{
			Row:         row,
			IsDuplicate: dups.Has(row.Key),
		}
	}
	return out
}

// DuplicateLines maps each duplicated key to the line indexes it occupies,
// in document order.
func DuplicateLines(rows []Row) map[string][]int {
	dups := FindDuplicates(rows)
	lines := make(map[string][]int, len(dups))
	for _, row := range rows {
		if row.Kind == KindKeyValue && dups.Has(row.Key) {
			lines[row.Key] = append(lines[row.Key], row.LineIndex)
		}
	}
	return lines
}
