// Package journal records applied edits as a hash-chained JSON lines log
// kept next to the edited files. Entries name the file, line and key that
// changed; values are never written.
package journal

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xmazu/envtable/internal/editor"
)

const (
	journalDir  = ".envtable"
	journalFile = "journal.jsonl"
)

var (
	ErrNoJournal = errors.New("no journal found")
	mu           sync.Mutex
)

type Op string

const (
	OpUpdateEntry Op = "update_entry"
	OpUpdateLine  Op = "update_line"
)

type Entry struct {
	Timestamp time.Time `json:"ts"`
	Op        Op        `json:"op"`
	File      string    `json:"file"`
	Line      int       `json:"line"`
	Key       string    `json:"key,omitempty"`
	SessionID string    `json:"sid,omitempty"`
	PrevHash  string    `json:"prev_hash"`
}

type EntrySummary struct {
	Timestamp string `json:"ts"`
	Op        string `json:"op"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Key       string `json:"key,omitempty"`
	SessionID string `json:"sid,omitempty"`
}

func Path(workdir string) string {
	if workdir == "" {
		workdir, _ = os.Getwd()
	}
	return filepath.Join(workdir, journalDir, journalFile)
}

func lastHash(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var lastLine string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lastLine = line
		}
	}
	if lastLine == "" {
		return ""
	}
	return hashLine(lastLine)
}

func hashLine(line string) string {
	sum := sha256.Sum256([]byte(line))
	return hex.EncodeToString(sum[:])
}

func Record(workdir string, op Op, file string, line int, opts ...Option) error {
	mu.Lock()
	defer mu.Unlock()

	path := Path(workdir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ensure journal dir: %w", err)
	}

	entry := &Entry{
		Timestamp: time.Now().UTC(),
		Op:        op,
		File:      file,
		Line:      line,
		PrevHash:  lastHash(path),
	}
	for _, opt := range opts {
		opt(entry)
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, string(b)); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

type Option func(*Entry)

func WithKey(key string) Option {
	return func(e *Entry) {
		e.Key = key
	}
}

func WithSessionID(id string) Option {
	return func(e *Entry) {
		e.SessionID = id
	}
}

// Observer returns an editor observer that journals every applied edit to
// file. Write failures are logged and never fail the edit.
func Observer(workdir, file, sessionID string, log *slog.Logger) editor.Observer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(res editor.Result) {
		op := OpUpdateLine
		if res.Request.Type == editor.EditEntry {
			op = OpUpdateEntry
		}
		err := Record(workdir, op, file, res.Request.LineIndex,
			WithKey(res.Key),
			WithSessionID(sessionID),
		)
		if err != nil {
			log.Warn("journal write failed", "file", file, "error", err)
		}
	}
}

func readLines(workdir string) ([]string, error) {
	f, err := os.Open(Path(workdir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoJournal
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return lines, nil
}

// Show returns the last lastN entries, or all of them when lastN <= 0.
// Lines that do not decode are skipped.
func Show(workdir string, lastN int) ([]EntrySummary, error) {
	lines, err := readLines(workdir)
	if err != nil {
		return nil, err
	}
	if lastN > 0 && len(lines) > lastN {
		lines = lines[len(lines)-lastN:]
	}

	var entries []EntrySummary
	for _, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		entries = append(entries, EntrySummary{
			Timestamp: e.Timestamp.Format(time.RFC3339),
			Op:        string(e.Op),
			File:      e.File,
			Line:      e.Line,
			Key:       e.Key,
			SessionID: e.SessionID,
		})
	}
	return entries, nil
}

// VerifyResult reports 1-based entry numbers whose prev_hash does not match
// the entry before them.
type VerifyResult struct {
	TotalEntries int
	Breaks       []int
}

func (r *VerifyResult) OK() bool {
	return len(r.Breaks) == 0
}

func Verify(workdir string) (*VerifyResult, error) {
	lines, err := readLines(workdir)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{TotalEntries: len(lines)}
	prev := ""
	for i, line := range lines {
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.PrevHash != prev {
			result.Breaks = append(result.Breaks, i+1)
		}
		prev = hashLine(line)
	}
	return result, nil
}
