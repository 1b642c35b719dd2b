package envfile

import "unicode/utf16"

const (
	MaskPlaceholder = "******"
	MaskThreshold   = 6
)

// Mask returns value unchanged when it is shorter than MaskThreshold
// UTF-16 code units and MaskPlaceholder otherwise. Characters outside the
// Basic Multilingual Plane count as two units.
func Mask(value string) string {
	if utf16Len(value) < MaskThreshold {
		return value
	}
	return MaskPlaceholder
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// IsMasked reports whether the row's display value hides its raw value.
func IsMasked(row Row) bool {
	return row.Kind == KindKeyValue && row.DisplayValue != row.Value
}
