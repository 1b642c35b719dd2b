package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/envfile"
)

var ErrUnknownEdit = errors.New("unknown edit type")

// Document is the text an editor reads rows from and writes lines back to.
type Document interface {
	Text() (string, error)
	ReplaceLine(index int, text string) error
}

// Locker is implemented by documents shared with other processes. Apply
// holds the lock from the re-parse until the line is written.
type Locker interface {
	Lock() error
	Unlock() error
}

// Result describes the outcome of an edit. Applied is false when the
// target line no longer exists or the edit would not change its text.
type Result struct {
	Request EditRequest
	Applied bool
	Stale   bool
	Key     string
	Before  string
	After   string
}

type Observer func(Result)

type Option func(*Editor)

func WithLogger(log *slog.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithObserver registers fn to be called after every applied edit.
func WithObserver(fn Observer) Option {
	return func(e *Editor) {
		e.observers = append(e.observers, fn)
	}
}

// Editor applies edit requests to a document. Every edit re-parses the
// current text and addresses its target by line index only, so an edit
// that races with another change either lands on the intended line or is
// dropped.
type Editor struct {
	mu        sync.Mutex
	doc       Document
	log       *slog.Logger
	observers []Observer
	seq       uint64
}

func New(doc Document, opts ...Option) *Editor {
	e := &Editor{
		doc: doc,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Rows() ([]envfile.Row, error) {
	text, err := e.doc.Text()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return envfile.Parse(text), nil
}

func (e *Editor) Render() (RenderMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows, err := e.Rows()
	if err != nil {
		return RenderMessage{}, err
	}
	e.seq++
	return RenderMessage{
		Type:     RenderRowsType,
		Sequence: e.seq,
		Rows:     envfile.Annotate(rows),
	}, nil
}

func (e *Editor) UpdateEntry(lineIndex int, newKey, newValue string) (Result, error) {
	return e.Apply(EntryEdit(lineIndex, newKey, newValue))
}

func (e *Editor) UpdateLine(lineIndex int, newLineText string) (Result, error) {
	return e.Apply(LineEdit(lineIndex, newLineText))
}

// Plan computes the line an edit would produce without touching the
// document.
func (e *Editor) Plan(req EditRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{Request: req}, err
	}
	rows, err := e.Rows()
	if err != nil {
		return Result{Request: req}, err
	}
	res := plan(rows, req)
	return res, checkSingleLine(res)
}

func (e *Editor) Apply(req EditRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{Request: req}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if l, ok := e.doc.(Locker); ok {
		if err := l.Lock(); err != nil {
			return Result{Request: req}, fmt.Errorf("lock document: %w", err)
		}
		defer l.Unlock()
	}

	rows, err := e.Rows()
	if err != nil {
		return Result{Request: req}, err
	}

	res := plan(rows, req)
	if err := checkSingleLine(res); err != nil {
		return res, err
	}
	if res.Stale {
		e.log.Debug("edit target gone, ignoring", "type", req.Type, "line", req.LineIndex, "lines", len(rows))
		return res, nil
	}
	if res.Before == res.After {
		e.log.Debug("edit leaves line unchanged", "type", req.Type, "line", req.LineIndex)
		return res, nil
	}

	if err := e.doc.ReplaceLine(req.LineIndex, res.After); err != nil {
		return res, fmt.Errorf("replace line %d: %w", req.LineIndex, err)
	}
	res.Applied = true
	e.log.Debug("edit applied", "type", req.Type, "line", req.LineIndex, "key", res.Key)

	for _, fn := range e.observers {
		fn(res)
	}
	return res, nil
}

func plan(rows []envfile.Row, req EditRequest) Result {
	res := Result{Request: req}

	switch req.Type {
	case EditEntry:
		row, ok := findRow(rows, req.LineIndex)
		if !ok {
			res.Stale = true
			return res
		}
		updated := row.WithEntry(req.NewKey, req.NewValue)
		res.Key = updated.Key
		res.Before = envfile.Reconstruct(row)
		res.After = envfile.Reconstruct(updated)
		if row.Kind != envfile.KindKeyValue {
			res.Key = ""
		}
	case EditLine:
		if req.LineIndex < 0 || req.LineIndex >= len(rows) {
			res.Stale = true
			return res
		}
		row := rows[req.LineIndex]
		res.Before = envfile.Reconstruct(row)
		res.After = req.NewLineText
		if parsed := envfile.ParseLine(req.NewLineText, req.LineIndex); parsed.Kind == envfile.KindKeyValue {
			res.Key = parsed.Key
		}
	}
	return res
}

// checkSingleLine rejects a planned edit whose text would split the line.
func checkSingleLine(res Result) error {
	if !res.Stale && strings.Contains(res.After, "\n") {
		return fmt.Errorf("line %d: %w", res.Request.LineIndex, document.ErrMultilineEdit)
	}
	return nil
}

func findRow(rows []envfile.Row, lineIndex int) (envfile.Row, bool) {
	for _, row := range rows {
		if row.LineIndex == lineIndex {
			return row, true
		}
	}
	return envfile.Row{}, false
}
