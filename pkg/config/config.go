// Package config provides configuration management for ensembl-metadata.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Warehouse: host, port, user, password, database, ssl_mode
//   - Server: host, port, user, password, database, ssl_mode
//   - Process: retrieve_sequences, track_registry_url
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Process.ReleaseVersion, Process.EGReleaseVersion, Process.Databases
//     (per-run)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ENSMETA_ prefix with underscores for nesting:
//
//	ENSMETA_WAREHOUSE_HOST=localhost
//	ENSMETA_SERVER_PORT=5432
//	ENSMETA_LOG_LEVEL=info
//	ENSMETA_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete ensembl-metadata configuration.
type Config struct {
	// Warehouse contains connection settings for the metadata warehouse
	// where unified genome records are persisted and looked up.
	Warehouse DatabaseConfig `mapstructure:"warehouse" yaml:"warehouse"`

	// Server contains connection settings for the database server that
	// hosts the per-species genome databases to be scanned.
	Server DatabaseConfig `mapstructure:"server" yaml:"server"`

	// Process contains settings specific to the process command.
	Process ProcessConfig `mapstructure:"process" yaml:"process"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used when opening
	// and probing database handles. The metadata pipeline itself runs
	// strictly sequentially.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	// For the genome-database server this is only the maintenance
	// database used for discovery; per-species databases are opened
	// by name.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ProcessConfig contains settings specific to the process command.
type ProcessConfig struct {
	// RetrieveSequences enables retrieval of the assembly sequence
	// inventory (sequence names with archive accessions) for each
	// genome. Disabled by default because the inventory can be large
	// for fragmented assemblies.
	RetrieveSequences bool `mapstructure:"retrieve_sequences" yaml:"retrieve_sequences"`

	// ReleaseVersion is the Ensembl data release the scanned databases
	// belong to, e.g. "99". Runtime-only, set per run.
	ReleaseVersion string `mapstructure:"release_version" yaml:"release_version"`

	// EGReleaseVersion is the Ensembl Genomes release layered over
	// ReleaseVersion, e.g. "46". Empty for a baseline Ensembl run.
	// Runtime-only, set per run.
	EGReleaseVersion string `mapstructure:"eg_release_version" yaml:"eg_release_version"`

	// Databases restricts processing to the named databases. Empty
	// means discover all candidate databases on the server.
	// Runtime-only, set per run.
	Databases []string `mapstructure:"databases" yaml:"databases"`

	// TrackRegistryURL points at the read-alignment track registry
	// consulted for rnaseq databases. Empty disables track lookups.
	TrackRegistryURL string `mapstructure:"track_registry_url" yaml:"track_registry_url"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Warehouse: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "ensembl_metadata",
			SSLMode:  "disable",
		},
		Server: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "postgres",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
