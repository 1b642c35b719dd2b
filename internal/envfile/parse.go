package envfile

import (
	"strings"
	"unicode/utf8"
)

// Parse splits content on "\n" and classifies every line. It never fails:
// a line that is neither blank, a comment, nor a valid assignment is kept
// as an opaque comment so it still round-trips.
func Parse(content string) []Row {
	lines := strings.Split(content, "\n")
	rows := make([]Row, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, ParseLine(line, i))
	}
	return rows
}

// ParseLine classifies a single line. Precedence is blank, comment,
// key-value, then the comment fallback.
func ParseLine(line string, index int) Row {
	trimmed := strings.TrimFunc(line, isSpace)
	if trimmed == "" {
		return Row{Kind: KindBlank, LineIndex: index, OriginalLine: line}
	}

	if strings.HasPrefix(trimmed, "#") {
		return commentRow(line, index)
	}

	prefix, key, separator, value, ok := splitAssignment(line)
	if !ok {
		return commentRow(line, index)
	}

	return Row{
		Kind:         KindKeyValue,
		LineIndex:    index,
		Prefix:       prefix,
		Key:          key,
		Separator:    separator,
		Value:        value,
		DisplayValue: Mask(value),
		OriginalLine: line,
	}
}

func commentRow(line string, index int) Row {
	return Row{Kind: KindComment, LineIndex: index, Key: line, OriginalLine: line}
}

// splitAssignment tokenizes `<ws><identifier><ws>=<ws><value>`. Each
// whitespace run is consumed greedily; the value is the untouched rest of
// the line and must not contain a line terminator.
func splitAssignment(line string) (prefix, key, separator, value string, ok bool) {
	pos := skipSpace(line, 0)
	prefix = line[:pos]

	keyStart := pos
	if pos >= len(line) || !isIdentStart(line[pos]) {
		return "", "", "", "", false
	}
	pos++
	for pos < len(line) && isIdentPart(line[pos]) {
		pos++
	}
	key = line[keyStart:pos]

	sepStart := pos
	pos = skipSpace(line, pos)
	if pos >= len(line) || line[pos] != '=' {
		return "", "", "", "", false
	}
	pos = skipSpace(line, pos+1)
	separator = line[sepStart:pos]

	value = line[pos:]
	if strings.ContainsFunc(value, isLineTerminator) {
		return "", "", "", "", false
	}
	return prefix, key, separator, value, true
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !isSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

// isSpace reports whether r is whitespace in the sense used by .env
// editors built on ECMAScript regular expressions (\s), which includes the
// byte order mark but not U+0085.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
