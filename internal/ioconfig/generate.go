package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"gopkg.in/yaml.v3"
)

// configYAML is the documented default config written on first run.
const configYAML = `# ensmeta configuration.
#
# All values below show the built-in defaults. Uncomment and edit the
# ones you need; anything left commented out keeps its default.
# Every value can also be set via ENSMETA_* environment variables,
# e.g. ENSMETA_WAREHOUSE_HOST, ENSMETA_SERVER_PORT, ENSMETA_LOG_LEVEL.

# Metadata warehouse (PostgreSQL) where unified genome records are
# stored and looked up.
#warehouse:
#  host: localhost
#  port: 5432
#  user: postgres
#  password: postgres
#  database: ensembl_metadata
#  ssl_mode: disable

# Database server hosting the per-species genome databases to scan.
#server:
#  host: localhost
#  port: 5432
#  user: postgres
#  password: postgres
#  database: postgres
#  ssl_mode: disable

#process:
#  # Retrieve the assembly sequence inventory for each genome. Can be
#  # slow for fragmented assemblies.
#  retrieve_sequences: false
#  # Read-alignment track registry consulted for rnaseq databases.
#  # Empty disables track lookups.
#  track_registry_url: ""

#log:
#  # json or text
#  format: json
#  # debug, info, warn or error
#  level: info
#  # file, stderr or stdout
#  destination: stderr

# Number of concurrent workers used when opening database handles.
# Defaults to the number of CPU threads.
#jobs_number: 8
`

// GetConfigDir returns the configuration directory.
// Uses ~/.config/ensmeta/ on all platforms for consistency. The
// ENSMETA_CONFIG_DIR environment variable overrides it (used by tests).
func GetConfigDir() (string, error) {
	if dir := os.Getenv("ENSMETA_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return config.ConfigDir(homeDir), nil
}

// GetDefaultConfigPath returns the full path to the default config file.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// GenerateDefaultConfig creates a documented default config file at the
// default location. Returns the config path, or an error if generation
// fails. Does NOT overwrite an existing file.
func GenerateDefaultConfig() (string, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(configYAML), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// ConfigFileExists checks if a config file exists at the default
// location.
func ConfigFileExists() (bool, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateGeneratedConfig reads a generated config file and checks that
// it is valid YAML for the Config structure. Used by tests.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	return nil
}
