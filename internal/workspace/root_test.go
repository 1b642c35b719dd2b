package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// layout creates each path under root. Paths ending in "/" are directories.
func layout(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte{}, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindRoot(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		start string
		want  string
	}{
		{
			name:  "pnpm workspace above the app",
			paths: []string{"pnpm-workspace.yaml", "apps/web/"},
			start: "apps/web",
			want:  ".",
		},
		{
			name:  "nearest go.mod beats the repository root",
			paths: []string{".git/", "services/api/go.mod", "services/api/internal/"},
			start: "services/api/internal",
			want:  "services/api",
		},
		{
			name:  "package.json beats a go.work further up",
			paths: []string{"go.work", "web/package.json", "web/src/"},
			start: "web/src",
			want:  "web",
		},
		{
			name:  "go.mod in the start directory",
			paths: []string{"go.mod"},
			start: ".",
			want:  ".",
		},
		{
			name:  "git directory as fallback",
			paths: []string{".git/", "cmd/tool/"},
			start: "cmd/tool",
			want:  ".",
		},
		{
			name:  "no markers returns the start directory",
			paths: []string{"config/"},
			start: "config",
			want:  "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			layout(t, tmp, tt.paths...)

			got, err := FindRoot(filepath.Join(tmp, filepath.FromSlash(tt.start)))
			if err != nil {
				t.Fatalf("FindRoot: %v", err)
			}
			if want := filepath.Join(tmp, filepath.FromSlash(tt.want)); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestFindMarker(t *testing.T) {
	t.Run("reports first marker", func(t *testing.T) {
		tmp := t.TempDir()
		if err := os.WriteFile(filepath.Join(tmp, "go.mod"), []byte{}, 0644); err != nil {
			t.Fatal(err)
		}
		if got := FindMarker(tmp); got != "go.mod" {
			t.Errorf("FindMarker() = %q, want %q", got, "go.mod")
		}
	})

	t.Run("empty without markers", func(t *testing.T) {
		if got := FindMarker(t.TempDir()); got != "" {
			t.Errorf("FindMarker() = %q, want empty", got)
		}
	})
}
