package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/editor"
	"github.com/xmazu/envtable/internal/tui"
	"github.com/xmazu/envtable/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [FILE]",
	Short: "Re-render a .env file whenever it changes",
	Long: `Render the table once, then again every time the file is written, replaced
or created. Bursts of writes are coalesced using watch_debounce from config.
With --json one render message is printed per line (JSON lines).

Masking applies to key-value lines only. Lines ending in CRLF are treated as
comments, so their full text, value included, is not masked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var (
	watchJSON   bool
	watchReveal bool
)

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print render messages as JSON lines")
	watchCmd.Flags().BoolVar(&watchReveal, "reveal", false, "Show raw values")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ed, doc, err := openEditor(targetFile(args))
	if err != nil {
		return err
	}
	debounce, err := cfg.Debounce()
	if err != nil {
		return err
	}

	w, err := watch.NewFileWatcher(watch.WithDebounce(debounce), watch.WithLogger(log))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(doc.Path()); err != nil {
		return fmt.Errorf("watch %s: %w", doc.Path(), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	emit := func(msg editor.RenderMessage) {
		if !watchReveal {
			msg = msg.Redacted()
		}
		if watchJSON {
			if err := enc.Encode(msg); err != nil {
				log.Warn("encode render", "error", err)
			}
			return
		}
		fmt.Fprintf(out, "%s %s\n", tui.Header(doc.Path()), tui.Muted(fmt.Sprintf("#%d", msg.Sequence)))
		fmt.Fprint(out, tui.RenderTable(msg.Rows, tui.TableOptions{Reveal: watchReveal}))
		fmt.Fprintln(out)
	}
	onErr := func(err error) {
		fmt.Fprintf(os.Stderr, "%s %v\n", tui.Error("✗"), err)
	}

	watch.Follow(ctx, ed, w.Start(), emit, onErr)
	return nil
}
