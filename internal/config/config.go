package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xmazu/envtable/internal/storage"
)

const FileName = "config.yaml"

const DefaultWatchDebounce = 500 * time.Millisecond

type Config struct {
	DefaultFile   string   `yaml:"default_file"`
	WatchDebounce string   `yaml:"watch_debounce"`
	Journal       bool     `yaml:"journal"`
	Include       []string `yaml:"include"`
	Exclude       []string `yaml:"exclude"`
}

func Default() *Config {
	return &Config{
		DefaultFile:   ".env",
		WatchDebounce: DefaultWatchDebounce.String(),
		Journal:       true,
		Include:       []string{"**/.env", "**/.env.*"},
		Exclude:       []string{"**/node_modules/**", "**/.git/**", "**/.env.example"},
	}
}

func Path() string {
	return filepath.Join(ConfigDir(), FileName)
}

// Load reads the config file, returning defaults when it does not exist.
// Keys missing from the file keep their default values.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if err := storage.NewYAMLFile(path).Load(cfg); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, err := cfg.Debounce(); err != nil {
		return nil, err
	}
	if cfg.DefaultFile == "" {
		cfg.DefaultFile = ".env"
	}
	return cfg, nil
}

func (c *Config) Save() error {
	return storage.NewYAMLFile(Path()).Save(c)
}

func (c *Config) Debounce() (time.Duration, error) {
	if c.WatchDebounce == "" {
		return DefaultWatchDebounce, nil
	}
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch_debounce %q: %w", c.WatchDebounce, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid watch_debounce %q: must not be negative", c.WatchDebounce)
	}
	return d, nil
}
