// Package document holds the text that .env rows are parsed from and
// written back to.
//
// Documents are addressed by zero-based line index. A replacement never
// changes the number of lines: text containing "\n" is rejected with
// ErrMultilineEdit.
package document
