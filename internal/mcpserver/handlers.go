package mcpserver

import (
	"context"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/envfile"
)

type fileArgs struct {
	File string `json:"file,omitempty" jsonschema:"path to the .env file (default: configured default file)"`
}

type updateEntryArgs struct {
	File      string `json:"file,omitempty" jsonschema:"path to the .env file (default: configured default file)"`
	LineIndex int    `json:"lineIndex" jsonschema:"0-based line index from render_rows"`
	NewKey    string `json:"newKey" jsonschema:"key to write"`
	NewValue  string `json:"newValue" jsonschema:"value to write (stored verbatim)"`
}

type updateLineArgs struct {
	File        string `json:"file,omitempty" jsonschema:"path to the .env file (default: configured default file)"`
	LineIndex   int    `json:"lineIndex" jsonschema:"0-based line index from render_rows"`
	NewLineText string `json:"newLineText" jsonschema:"replacement text for the whole line"`
}

func (s *Server) renderRows(ctx context.Context, req *mcpsdk.CallToolRequest, args fileArgs) (*mcpsdk.CallToolResult, any, error) {
	ed, err := s.editorFor(args.File)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	msg, err := ed.Render()
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return successResult(msg.Redacted()), nil, nil
}

func (s *Server) updateEntry(ctx context.Context, req *mcpsdk.CallToolRequest, args updateEntryArgs) (*mcpsdk.CallToolResult, any, error) {
	return s.apply(args.File, editor.EntryEdit(args.LineIndex, args.NewKey, args.NewValue))
}

func (s *Server) updateLine(ctx context.Context, req *mcpsdk.CallToolRequest, args updateLineArgs) (*mcpsdk.CallToolResult, any, error) {
	return s.apply(args.File, editor.LineEdit(args.LineIndex, args.NewLineText))
}

func (s *Server) apply(file string, edit editor.EditRequest) (*mcpsdk.CallToolResult, any, error) {
	ed, err := s.editorFor(file)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	res, err := ed.Apply(edit)
	if err != nil {
		if errors.Is(err, document.ErrMultilineEdit) {
			return errorResult("newLineText must be a single line"), nil, nil
		}
		return errorResult(err.Error()), nil, nil
	}
	msg, err := ed.Render()
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	return successResult(map[string]any{
		"applied":   res.Applied,
		"stale":     res.Stale,
		"lineIndex": edit.LineIndex,
		"render":    msg.Redacted(),
	}), nil, nil
}

func (s *Server) findDuplicates(ctx context.Context, req *mcpsdk.CallToolRequest, args fileArgs) (*mcpsdk.CallToolResult, any, error) {
	ed, err := s.editorFor(args.File)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	rows, err := ed.Rows()
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	dups := envfile.FindDuplicates(rows)
	return successResult(map[string]any{
		"duplicates":  dups.Sorted(),
		"lineIndexes": envfile.DuplicateLines(rows),
	}), nil, nil
}
