package document

import (
	"errors"
	"testing"
)

func TestBuffer(t *testing.T) {
	t.Run("text round-trips", func(t *testing.T) {
		for _, text := range []string{"", "\n", "A=1", "A=1\nB=2\n"} {
			got, err := NewBuffer(text).Text()
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if got != text {
				t.Errorf("Text() = %q, want %q", got, text)
			}
		}
	})

	t.Run("line count matches newline splitting", func(t *testing.T) {
		if got := NewBuffer("A\nB\n").LineCount(); got != 3 {
			t.Errorf("LineCount() = %d, want 3", got)
		}
	})

	t.Run("replace line bumps version", func(t *testing.T) {
		b := NewBuffer("A=1\nB=2")

		if err := b.ReplaceLine(1, "B=3"); err != nil {
			t.Fatalf("ReplaceLine() error = %v", err)
		}
		if line, _ := b.Line(1); line != "B=3" {
			t.Errorf("Line(1) = %q, want %q", line, "B=3")
		}
		if b.Version() != 1 {
			t.Errorf("Version() = %d, want 1", b.Version())
		}

		if err := b.ReplaceLine(1, "B=3"); err != nil {
			t.Fatalf("ReplaceLine() error = %v", err)
		}
		if b.Version() != 1 {
			t.Errorf("Version() = %d, want unchanged 1", b.Version())
		}
	})

	t.Run("rejects out of range and multi-line edits", func(t *testing.T) {
		b := NewBuffer("A=1")

		if err := b.ReplaceLine(1, "B=2"); !errors.Is(err, ErrLineOutOfRange) {
			t.Errorf("ReplaceLine(1) error = %v, want %v", err, ErrLineOutOfRange)
		}
		if err := b.ReplaceLine(-1, "B=2"); !errors.Is(err, ErrLineOutOfRange) {
			t.Errorf("ReplaceLine(-1) error = %v, want %v", err, ErrLineOutOfRange)
		}
		if err := b.ReplaceLine(0, "B=2\nC=3"); !errors.Is(err, ErrMultilineEdit) {
			t.Errorf("ReplaceLine() error = %v, want %v", err, ErrMultilineEdit)
		}
		if b.Version() != 0 {
			t.Errorf("Version() = %d, want 0", b.Version())
		}
	})

	t.Run("set text", func(t *testing.T) {
		b := NewBuffer("A=1")
		b.SetText("A=1")
		if b.Version() != 0 {
			t.Errorf("Version() = %d after identical SetText, want 0", b.Version())
		}
		b.SetText("A=2\n")
		if b.Version() != 1 || b.LineCount() != 2 {
			t.Errorf("Version() = %d, LineCount() = %d, want 1, 2", b.Version(), b.LineCount())
		}
	})
}
