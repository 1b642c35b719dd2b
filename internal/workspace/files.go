package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	DefaultInclude = []string{"**/.env", "**/.env.*"}
	DefaultExclude = []string{"**/node_modules/**", "**/.git/**", "**/.env.example"}
)

// IsEnvFilename reports whether name looks like a dotenv file: ".env" or
// ".env.<suffix>", excluding ".env.example".
func IsEnvFilename(name string) bool {
	if name == ".env" {
		return true
	}
	if name == ".env.example" {
		return false
	}
	return strings.HasPrefix(name, ".env.") && len(name) > 5
}

// ListEnvFiles walks root and returns the files whose slash-separated path
// relative to root matches an include pattern and no exclude pattern. A nil
// include falls back to DefaultInclude. Directories matched by an exclude
// pattern ending in "/**" are not descended into.
func ListEnvFiles(root string, include, exclude []string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}
	if include == nil {
		include = DefaultInclude
	}
	var dirExclude []string
	for _, p := range exclude {
		if trimmed, ok := strings.CutSuffix(p, "/**"); ok {
			dirExclude = append(dirExclude, trimmed)
		}
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			skip, err := matchAny(dirExclude, rel)
			if err != nil {
				return err
			}
			if skip {
				return filepath.SkipDir
			}
			return nil
		}
		included, err := matchAny(include, rel)
		if err != nil || !included {
			return err
		}
		excluded, err := matchAny(exclude, rel)
		if err != nil || excluded {
			return err
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func matchAny(patterns []string, rel string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, rel)
		if err != nil {
			return false, fmt.Errorf("pattern %q: %w", p, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
