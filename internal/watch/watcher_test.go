package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/editor"
)

const testDebounce = 50 * time.Millisecond

func newTestWatcher(t *testing.T, path string) (*FileWatcher, <-chan struct{}) {
	t.Helper()
	w, err := NewFileWatcher(WithDebounce(testDebounce))
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	if err := w.Add(path); err != nil {
		t.Fatalf("Add: %v", err)
	}
	changes := w.Start()
	time.Sleep(50 * time.Millisecond)
	return w, changes
}

func TestFileWatcher(t *testing.T) {
	t.Run("detects file changes", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envFile, []byte("KEY=value\n"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		_, changes := newTestWatcher(t, envFile)

		if err := os.WriteFile(envFile, []byte("KEY=changed\n"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		select {
		case <-changes:
		case <-time.After(2 * time.Second):
			t.Error("expected change notification")
		}
	})

	t.Run("debounces rapid changes", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envFile, []byte("KEY=value\n"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		_, changes := newTestWatcher(t, envFile)

		for i := 0; i < 5; i++ {
			if err := os.WriteFile(envFile, []byte("KEY=value"+string(rune('0'+i))+"\n"), 0644); err != nil {
				t.Fatalf("write file: %v", err)
			}
			time.Sleep(5 * time.Millisecond)
		}

		select {
		case <-changes:
		case <-time.After(2 * time.Second):
			t.Fatal("expected change notification")
		}

		select {
		case <-changes:
			t.Error("expected a single notification for a burst")
		case <-time.After(4 * testDebounce):
		}
	})

	t.Run("detects atomic replace", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envFile, []byte("KEY=value\n"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		_, changes := newTestWatcher(t, envFile)

		doc, err := document.Open(envFile)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := doc.ReplaceLine(0, "KEY=replaced"); err != nil {
			t.Fatalf("ReplaceLine: %v", err)
		}

		select {
		case <-changes:
		case <-time.After(2 * time.Second):
			t.Error("expected change notification after rename")
		}
	})

	t.Run("watches non-existent file", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), ".env")

		_, changes := newTestWatcher(t, envFile)

		if err := os.WriteFile(envFile, []byte("KEY=value\n"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		select {
		case <-changes:
		case <-time.After(2 * time.Second):
			t.Error("expected change notification for created file")
		}
	})

	t.Run("ignores sibling files", func(t *testing.T) {
		dir := t.TempDir()
		envFile := filepath.Join(dir, ".env")

		_, changes := newTestWatcher(t, envFile)

		if err := os.WriteFile(filepath.Join(dir, ".env.local"), []byte("X=1\n"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}

		select {
		case <-changes:
			t.Error("unexpected notification for unwatched file")
		case <-time.After(4 * testDebounce):
		}
	})
}

type fakeRenderer struct {
	seq  uint64
	fail bool
}

func (f *fakeRenderer) Render() (editor.RenderMessage, error) {
	if f.fail {
		return editor.RenderMessage{}, errors.New("boom")
	}
	f.seq++
	return editor.RenderMessage{Type: editor.RenderRowsType, Sequence: f.seq}, nil
}

func TestFollow(t *testing.T) {
	t.Run("renders initially and per change", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		changes := make(chan struct{})
		got := make(chan uint64, 4)
		done := make(chan struct{})
		go func() {
			Follow(ctx, &fakeRenderer{}, changes, func(m editor.RenderMessage) { got <- m.Sequence }, nil)
			close(done)
		}()

		changes <- struct{}{}
		changes <- struct{}{}
		close(changes)
		<-done

		close(got)
		var seqs []uint64
		for s := range got {
			seqs = append(seqs, s)
		}
		if len(seqs) != 3 || seqs[2] != 3 {
			t.Errorf("sequences = %v, want [1 2 3]", seqs)
		}
	})

	t.Run("reports render errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var errs int
		Follow(ctx, &fakeRenderer{fail: true}, make(chan struct{}), func(editor.RenderMessage) {
			t.Error("emit called on failed render")
		}, func(error) { errs++ })

		if errs != 1 {
			t.Errorf("errors = %d, want 1", errs)
		}
	})
}
