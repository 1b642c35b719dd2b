package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

var MarkerFiles = []string{
	"pnpm-workspace.yaml",
	"turbo.json",
	"lerna.json",
	"go.work",
	"go.mod",
	"package.json",
	".git",
}

// FindRoot walks up from dir to the nearest directory holding a marker
// file. Without one, dir itself (made absolute) is returned.
func FindRoot(dir string) (string, error) {
	original, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	dir = original

	for {
		if FindMarker(dir) != "" {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return original, nil
		}
		dir = parent
	}
}

func FindMarker(dir string) string {
	for _, marker := range MarkerFiles {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return marker
		}
	}
	return ""
}
