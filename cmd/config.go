package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xmazu/envtable/internal/config"
	"github.com/xmazu/envtable/internal/storage"
	"github.com/xmazu/envtable/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration in effect (defaults merged with config.yaml) and
the path it is read from. With --init the defaults are written to that path
if no config file exists yet.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configInit bool

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default config file if none exists")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configInit {
		if storage.NewYAMLFile(config.Path()).Exists() {
			fmt.Fprintf(out, "%s %s already exists\n", tui.Muted("="), config.Path())
			return nil
		}
		if err := config.Default().Save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s wrote %s\n", tui.Success("✓"), config.Path())
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Fprintf(out, "%s\n%s", tui.Muted("# "+config.Path()), data)
	return nil
}
