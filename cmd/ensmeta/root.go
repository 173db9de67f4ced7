package main

import (
	"fmt"
	"os"

	"github.com/luca-drf/ensembl-metadata/internal/ioconfig"
	"github.com/luca-drf/ensembl-metadata/internal/iologger"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ensmeta",
		Short: "ensmeta reconciles Ensembl genome metadata",
		Long: `ensmeta scans the genome databases of an Ensembl data release,
reconciles them into one unified metadata record per species, resolves
the comparative analyses linking species together, and persists the
result into a PostgreSQL metadata warehouse.

The tool provides two main phases:
  - schema: create or migrate the warehouse schema
  - process: scan genome databases and store unified records

Configuration precedence (highest to lowest):
  1. CLI flags (--release, --jobs, etc.)
  2. Environment variables (ENSMETA_*)
  3. Config file (config.yaml)
  4. Built-in defaults

Environment Variables:
  All configuration can be set via ENSMETA_* environment variables.
  Nested fields use underscores (warehouse.host → ENSMETA_WAREHOUSE_HOST).

  Examples:
    ENSMETA_WAREHOUSE_HOST          warehouse PostgreSQL host
    ENSMETA_SERVER_HOST             genome-database server host
    ENSMETA_PROCESS_TRACK_REGISTRY_URL  track registry endpoint
    ENSMETA_LOG_LEVEL               log level (debug/info/warn/error)
    ENSMETA_JOBS_NUMBER             concurrent connection workers

  See 'go doc github.com/luca-drf/ensembl-metadata/pkg/config' for the
  complete list.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-generate config file on first run if it doesn't exist
			if cfgFile == "" {
				exists, err := ioconfig.ConfigFileExists()
				if err != nil {
					return fmt.Errorf("failed to check config file: %w", err)
				}

				if !exists {
					generatedPath, err := ioconfig.GenerateDefaultConfig()
					if err != nil {
						// Only warn, don't fail - can use defaults
						fmt.Printf("Warning: could not generate config file: %v\n", err)
					} else {
						fmt.Printf("Generated default config at: %s\n", generatedPath)
					}
				}
			}

			result, err := ioconfig.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = result.Config

			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to find home directory: %w", err)
			}
			cfg.HomeDir = homeDir

			if err = iologger.Init(
				config.LogDir(cfg.HomeDir), cfg.Log, true,
			); err != nil {
				return err
			}

			switch result.Source {
			case "file":
				fmt.Printf("Using config from: %s\n", result.SourcePath)
			case "defaults+env":
				fmt.Println("Using built-in defaults with environment variable overrides")
			case "defaults":
				fmt.Println("Using built-in defaults (no config file)")
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/ensmeta/config.yaml)")

	// Use -V for version, consistent with related projects
	rootCmd.Flags().BoolP("version", "V", false, "version for ensmeta")

	rootCmd.AddCommand(getSchemaCmd())
	rootCmd.AddCommand(getProcessCmd())

	return rootCmd
}

// getConfig returns the loaded configuration (for use in subcommands)
func getConfig() *config.Config {
	return cfg
}
