package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	ConfigDirEnv = "ENVTABLE_CONFIG_DIR"
	ConfigSubdir = "envtable"
)

func ConfigDir() string {
	if d := os.Getenv(ConfigDirEnv); d != "" {
		return d
	}
	if xdg.ConfigHome == "" {
		return filepath.Join(".", ConfigSubdir)
	}
	return filepath.Join(xdg.ConfigHome, ConfigSubdir)
}
