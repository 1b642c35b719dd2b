package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server (stdio) for AI/IDE integration",
	Long: `Run the Model Context Protocol server on stdio. Exposes render_rows (rows with
masked display values and duplicate flags), update_entry and update_line
(edits addressed by line index) and find_duplicates. Raw values of masked
rows are never returned. Lines ending in CRLF are comment rows, not key-value
rows, and their full text, value included, is returned unmasked.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	server := mcpserver.New(mcpserver.Options{
		Version:     rootCmd.Version,
		DefaultFile: targetFile(nil),
		Journal:     cfg.Journal,
		SessionID:   sessionID,
		Logger:      log,
	})
	return server.Run(context.Background())
}
