package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xmazu/envtable/internal/document"
	"github.com/xmazu/envtable/internal/envfile"
	"github.com/xmazu/envtable/internal/tui"
	"github.com/xmazu/envtable/internal/workspace"
)

var checkCmd = &cobra.Command{
	Use:   "check [PATH...]",
	Short: "Report duplicate keys",
	Long: `Check .env files for keys defined more than once. PATH may be a file or a
directory; directories are walked using the include and exclude globs from
config. Defaults to the current directory.

Exits non-zero when any duplicate is found.

Examples:
  envtable check
  envtable check .env .env.local
  envtable check apps/ --json`,
	RunE: runCheck,
}

var checkJSON bool

var errDuplicates = errors.New("duplicate keys found")

type fileReport struct {
	Path       string           `json:"path"`
	Keys       int              `json:"keys"`
	Duplicates map[string][]int `json:"duplicates,omitempty"`
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON (line numbers are 1-based)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	files, err := collectEnvFiles(args)
	if err != nil {
		return err
	}

	reports, err := checkFiles(cmd.Context(), files)
	if err != nil {
		return err
	}

	found := false
	for _, r := range reports {
		if len(r.Duplicates) > 0 {
			found = true
		}
	}

	if checkJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		writeReports(cmd, reports)
	}

	if found {
		return errDuplicates
	}
	return nil
}

func collectEnvFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		found := []string{p}
		if info.IsDir() {
			found, err = workspace.ListEnvFiles(p, cfg.Include, cfg.Exclude)
			if err != nil {
				return nil, err
			}
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

func checkFiles(ctx context.Context, files []string) ([]fileReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var mu sync.Mutex
	reports := make([]fileReport, 0, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 2))

	for _, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := checkFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports, nil
}

func checkFile(path string) (fileReport, error) {
	doc, err := document.Open(path)
	if err != nil {
		return fileReport{}, err
	}
	text, err := doc.Text()
	if err != nil {
		return fileReport{}, err
	}
	rows := envfile.Parse(text)

	report := fileReport{Path: path}
	for _, row := range rows {
		if row.Kind == envfile.KindKeyValue {
			report.Keys++
		}
	}
	if dups := envfile.DuplicateLines(rows); len(dups) > 0 {
		report.Duplicates = make(map[string][]int, len(dups))
		for key, lines := range dups {
			numbers := make([]int, len(lines))
			for i, idx := range lines {
				numbers[i] = idx + 1
			}
			report.Duplicates[key] = numbers
		}
	}
	log.Debug("checked", "path", path, "keys", report.Keys, "duplicates", len(report.Duplicates))
	return report, nil
}

func writeReports(cmd *cobra.Command, reports []fileReport) {
	out := cmd.OutOrStdout()
	if len(reports) == 0 {
		fmt.Fprintln(out, tui.Muted("No .env files found."))
		return
	}

	for _, r := range reports {
		if len(r.Duplicates) == 0 {
			fmt.Fprintf(out, "%s %s %s\n", tui.Success("✓"), r.Path, tui.Muted(fmt.Sprintf("(%d keys)", r.Keys)))
			continue
		}
		fmt.Fprintf(out, "%s %s\n", tui.Error("✗"), r.Path)

		keys := make([]string, 0, len(r.Duplicates))
		for k := range r.Duplicates {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			nums := make([]string, len(r.Duplicates[k]))
			for i, n := range r.Duplicates[k] {
				nums[i] = fmt.Sprint(n)
			}
			fmt.Fprintf(out, "    %s %s\n", tui.Key(k), tui.Muted("lines "+strings.Join(nums, ", ")))
		}
	}
}
