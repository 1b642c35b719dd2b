package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/envfile"
	"github.com/xmazu/envtable/internal/journal"
	"github.com/xmazu/envtable/internal/workspace"
)

var (
	errNoSuchLine = errors.New("no such line")
	errNotEntry   = errors.New("not a key-value line")
)

// targetFile picks the file a command works on: an explicit argument, then
// --file, then the configured default.
func targetFile(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if fileFlag != "" {
		return fileFlag
	}
	return cfg.DefaultFile
}

func openEditor(path string) (*editor.Editor, *document.File, error) {
	doc, err := document.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	opts := []editor.Option{editor.WithLogger(log.With("file", doc.Path()))}
	if cfg.Journal {
		root, err := workspace.FindRoot(filepath.Dir(doc.Path()))
		if err != nil {
			return nil, nil, err
		}
		rel, err := filepath.Rel(root, doc.Path())
		if err != nil {
			rel = doc.Path()
		}
		opts = append(opts, editor.WithObserver(journal.Observer(root, filepath.ToSlash(rel), sessionID, log)))
	}
	return editor.New(doc, opts...), doc, nil
}

// parseLineNumber converts a 1-based CLI line number to a line index.
func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid line number %q: must be a positive integer", s)
	}
	return n - 1, nil
}

func validKey(key string) bool {
	row := envfile.ParseLine(key+"=", 0)
	return row.Kind == envfile.KindKeyValue && row.Key == key && row.Prefix == "" && row.Separator == "="
}
