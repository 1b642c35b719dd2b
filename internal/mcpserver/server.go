package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/journal"
	"github.com/xmazu/envtable/internal/workspace"
)

type Options struct {
	Version     string
	DefaultFile string
	Journal     bool
	SessionID   string
	Logger      *slog.Logger
}

// Server exposes .env tables as MCP tools. Editors are cached per file so
// render sequence numbers keep increasing for the life of the server.
type Server struct {
	opts    Options
	log     *slog.Logger
	mu      sync.Mutex
	editors map[string]*editor.Editor
}

func New(opts Options) *Server {
	if opts.DefaultFile == "" {
		opts.DefaultFile = ".env"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{
		opts:    opts,
		log:     log,
		editors: make(map[string]*editor.Editor),
	}
}

const (
	renderRowsDescription     = "Parse a .env file into rows (blank, comment, keyValue) with line indexes, masked display values and duplicate flags. Raw values of masked rows are never returned. Lines ending in CRLF are comment rows whose key and originalLine carry the full unmasked text. Call again after any edit; row positions may shift."
	updateEntryDescription    = "Set the key and value of the keyValue row at lineIndex. The line's leading whitespace and separator spacing are kept. If the line no longer exists the edit is ignored and applied is false. Returns the fresh render."
	updateLineDescription     = "Replace the raw text of the line at lineIndex (for comments and blank lines). The text must be a single line. If the line no longer exists the edit is ignored and applied is false. Returns the fresh render."
	findDuplicatesDescription = "List keys defined more than once in a .env file, with the line indexes of every definition."
)

func (s *Server) Run(ctx context.Context) error {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "envtable",
		Version: s.opts.Version,
	}, nil)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "render_rows",
		Description: renderRowsDescription,
	}, s.renderRows)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update_entry",
		Description: updateEntryDescription,
	}, s.updateEntry)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "update_line",
		Description: updateLineDescription,
	}, s.updateLine)

	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "find_duplicates",
		Description: findDuplicatesDescription,
	}, s.findDuplicates)

	s.log.Info("mcp server starting", "version", s.opts.Version)
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) resolve(file string) (string, error) {
	if file == "" {
		file = s.opts.DefaultFile
	}
	return filepath.Abs(file)
}

func (s *Server) editorFor(file string) (*editor.Editor, error) {
	path, err := s.resolve(file)
	if err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ed, ok := s.editors[path]; ok {
		return ed, nil
	}

	doc, err := document.Open(path)
	if err != nil {
		return nil, err
	}
	opts := []editor.Option{editor.WithLogger(s.log.With("file", path))}
	if s.opts.Journal {
		root, err := workspace.FindRoot(filepath.Dir(path))
		if err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		opts = append(opts, editor.WithObserver(journal.Observer(root, filepath.ToSlash(rel), s.opts.SessionID, s.log)))
	}

	ed := editor.New(doc, opts...)
	s.editors[path] = ed
	return ed, nil
}
