package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("file not found")

type YAMLFile struct {
	path string
}

func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{path: path}
}

func (y *YAMLFile) Path() string {
	return y.path
}

func (y *YAMLFile) Exists() bool {
	_, err := os.Stat(y.path)
	return err == nil
}

// Load decodes the file into dest. A missing file returns ErrNotFound and
// leaves dest untouched, so callers can pre-fill defaults.
func (y *YAMLFile) Load(dest any) error {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", y.path, ErrNotFound)
		}
		return fmt.Errorf("read file: %w", err)
	}

	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse yaml %s: %w", y.path, err)
	}
	return nil
}

func (y *YAMLFile) Save(data any) error {
	return y.SaveWithPerm(data, 0644)
}

func (y *YAMLFile) SaveWithPerm(data any, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(y.path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}

	if err := os.WriteFile(y.path, out, perm); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
