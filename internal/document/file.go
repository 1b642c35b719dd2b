package document

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

const defaultPerm = 0644

// File is a document backed by a file on disk. Text always reads the file
// so a parse sees the latest committed content. ReplaceLine performs its
// read-modify-write under an advisory lock shared by every process that
// edits the same path. Callers that parse before writing hold the same lock
// across both with Lock and Unlock.
type File struct {
	path string
	lock *flock.Flock

	mu   sync.Mutex
	held int
}

func Open(path string) (*File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", absPath)
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", absPath, err)
	}
	return &File{path: absPath, lock: flock.New(lockPath(absPath))}, nil
}

func (f *File) Path() string {
	return f.path
}

// Text returns the file content. A missing file reads as an empty document.
func (f *File) Text() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	return string(data), nil
}

// Lock takes the cross-process lock for the file. It is reentrant within
// one File, so ReplaceLine may run while the caller holds it.
func (f *File) Lock() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held == 0 {
		if err := f.lock.Lock(); err != nil {
			return fmt.Errorf("lock %s: %w", f.path, err)
		}
	}
	f.held++
	return nil
}

func (f *File) Unlock() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held == 0 {
		return nil
	}
	f.held--
	if f.held > 0 {
		return nil
	}
	if err := f.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", f.path, err)
	}
	return nil
}

func (f *File) ReplaceLine(index int, text string) error {
	if err := checkSingleLine(text); err != nil {
		return err
	}

	if err := f.Lock(); err != nil {
		return err
	}
	defer f.Unlock()

	current, err := f.Text()
	if err != nil {
		return err
	}
	buf := NewBuffer(current)
	if err := buf.ReplaceLine(index, text); err != nil {
		return err
	}
	if buf.Version() == 0 {
		return nil
	}

	updated, _ := buf.Text()
	return f.write(updated)
}

func (f *File) write(content string) error {
	perm := os.FileMode(defaultPerm)
	if info, err := os.Stat(f.path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// lockPath keeps lock files out of the project directory.
func lockPath(absPath string) string {
	sum := sha256.Sum256([]byte(absPath))
	return filepath.Join(os.TempDir(), "envtable-"+hex.EncodeToString(sum[:8])+".lock")
}
