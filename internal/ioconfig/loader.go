// Package ioconfig provides I/O operations for loading configuration
// from files, environment variables and flags. This is an impure
// package that handles file system and flag operations.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the
// source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a Config with
// source info. If configPath is empty, the default location
// (~/.config/ensmeta/config.yaml) is tried.
//
// Precedence: flags > env vars > config file > defaults.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	// Enable environment variable overrides
	v.SetEnvPrefix("ENSMETA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults BEFORE reading config - this allows env vars to
	// work with AutomaticEnv() even when no config file exists.
	defaults := config.New()
	v.SetDefault("warehouse.host", defaults.Warehouse.Host)
	v.SetDefault("warehouse.port", defaults.Warehouse.Port)
	v.SetDefault("warehouse.user", defaults.Warehouse.User)
	v.SetDefault("warehouse.password", defaults.Warehouse.Password)
	v.SetDefault("warehouse.database", defaults.Warehouse.Database)
	v.SetDefault("warehouse.ssl_mode", defaults.Warehouse.SSLMode)
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.user", defaults.Server.User)
	v.SetDefault("server.password", defaults.Server.Password)
	v.SetDefault("server.database", defaults.Server.Database)
	v.SetDefault("server.ssl_mode", defaults.Server.SSLMode)
	v.SetDefault("process.retrieve_sequences", defaults.Process.RetrieveSequences)
	v.SetDefault("process.track_registry_url", defaults.Process.TrackRegistryURL)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath, err := GetDefaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				v.SetConfigFile(defaultPath)
			}
		}
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else if configPath == "" && v.ConfigFileUsed() == "" {
			// No config file configured at all, stay on defaults
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	source := "defaults"
	if configFileRead {
		source = "file"
	} else if hasEnvVars() {
		source = "defaults+env"
	}

	return &LoadResult{
		Config:     &cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// hasEnvVars checks if any ENSMETA_* environment variables are set.
func hasEnvVars() bool {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "ENSMETA_") {
			return true
		}
	}
	return false
}
