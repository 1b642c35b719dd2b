package document

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	ErrMultilineEdit  = errors.New("replacement text spans more than one line")
	ErrLineOutOfRange = errors.New("line index out of range")
)

// Buffer is an in-memory document.
type Buffer struct {
	mu      sync.RWMutex
	lines   []string
	version uint64
}

func NewBuffer(text string) *Buffer {
	return &Buffer{lines: splitLines(text)}
}

func (b *Buffer) Text() (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n"), nil
}

func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

func (b *Buffer) Line(index int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if index < 0 || index >= len(b.lines) {
		return "", false
	}
	return b.lines[index], true
}

// Version increases by one for every change to the text.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

func (b *Buffer) ReplaceLine(index int, text string) error {
	if err := checkSingleLine(text); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("replace line %d of %d: %w", index, len(b.lines), ErrLineOutOfRange)
	}
	if b.lines[index] == text {
		return nil
	}
	b.lines[index] = text
	b.version++
	return nil
}

// SetText replaces the whole document, e.g. after the backing file changed.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := splitLines(text)
	if slices.Equal(lines, b.lines) {
		return
	}
	b.lines = lines
	b.version++
}

func checkSingleLine(text string) error {
	if strings.Contains(text, "\n") {
		return ErrMultilineEdit
	}
	return nil
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}
