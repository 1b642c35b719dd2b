package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xmazu/envtable/internal/config"
	"github.com/xmazu/envtable/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "envtable",
	Short:         "View and edit .env files as a table",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `envtable - Lossless .env viewer and editor.

Every line of a .env file is kept exactly as written: comments, blank lines,
indentation and spacing around "=" survive every edit. Values of six or more
characters are masked on screen, and keys defined more than once are flagged.

Lines are addressed by their 1-based line number, as shown by show.

EXAMPLES:

  envtable show
  envtable show .env.local --reveal
  envtable check .
  envtable set 3 DATABASE_URL
  envtable replace 1 "# local overrides"
  envtable edit

Settings live in config.yaml under $ENVTABLE_CONFIG_DIR or the XDG config
directory (see envtable config).`,
	PersistentPreRunE: setup,
}

var (
	fileFlag     string
	logLevelFlag string
)

var (
	cfg       = config.Default()
	log       = slog.New(slog.DiscardHandler)
	sessionID = uuid.NewString()
)

func init() {
	rootCmd.SetVersionTemplate("envtable version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "Path to .env file (default: default_file from config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default: $"+logger.LevelEnv+" or warn)")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := logger.SetLevel(logLevelFlag); err != nil {
		return err
	}
	log = logger.New(os.Stderr)

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	log.Debug("config loaded", "path", config.Path(), "default_file", cfg.DefaultFile, "journal", cfg.Journal)
	return nil
}

// SetVersion sets the version string shown by --version (e.g. from ldflags).
func SetVersion(v string) { rootCmd.Version = v }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
