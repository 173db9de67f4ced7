package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptWarehouseHost sets the metadata warehouse hostname or IP address.
func OptWarehouseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Host", s) {
			c.Warehouse.Host = s
		}
	}
}

// OptWarehousePort sets the metadata warehouse port number.
func OptWarehousePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Warehouse Port", i) {
			c.Warehouse.Port = i
		}
	}
}

// OptWarehouseUser sets the metadata warehouse username.
func OptWarehouseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse User", s) {
			c.Warehouse.User = s
		}
	}
}

// OptWarehousePassword sets the metadata warehouse password.
func OptWarehousePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Password", s) {
			c.Warehouse.Password = s
		}
	}
}

// OptWarehouseDatabase sets the metadata warehouse database name.
func OptWarehouseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Database", s) {
			c.Warehouse.Database = s
		}
	}
}

// OptWarehouseSSLMode sets the warehouse SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptWarehouseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Warehouse.SSLMode", s) {
			c.Warehouse.SSLMode = s
		}
	}
}

// OptServerHost sets the genome-database server hostname or IP address.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Host", s) {
			c.Server.Host = s
		}
	}
}

// OptServerPort sets the genome-database server port number.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerUser sets the genome-database server username.
func OptServerUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server User", s) {
			c.Server.User = s
		}
	}
}

// OptServerPassword sets the genome-database server password.
func OptServerPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Password", s) {
			c.Server.Password = s
		}
	}
}

// OptServerDatabase sets the maintenance database used for discovery.
func OptServerDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Server Database", s) {
			c.Server.Database = s
		}
	}
}

// OptServerSSLMode sets the server SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptServerSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Server.SSLMode", s) {
			c.Server.SSLMode = s
		}
	}
}

// OptProcessRetrieveSequences enables or disables retrieval of the
// assembly sequence inventory.
func OptProcessRetrieveSequences(b bool) Option {
	return func(c *Config) {
		c.Process.RetrieveSequences = b
	}
}

// OptProcessReleaseVersion sets the Ensembl data release for this run.
// Runtime-only field - not in ToOptions().
func OptProcessReleaseVersion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Release Version", s) {
			c.Process.ReleaseVersion = s
		}
	}
}

// OptProcessEGReleaseVersion sets the Ensembl Genomes release layered
// over the baseline release. Empty means a baseline Ensembl run.
// Runtime-only field - not in ToOptions().
func OptProcessEGReleaseVersion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Process.EGReleaseVersion = s
	}
}

// OptProcessDatabases restricts processing to the named databases.
// Empty slice means discover all candidates on the server.
// Runtime-only field - not in ToOptions().
func OptProcessDatabases(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Process.Databases = ss
		}
	}
}

// OptProcessTrackRegistryURL sets the read-alignment track registry URL.
func OptProcessTrackRegistryURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Process.TrackRegistryURL = s
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers used for opening
// database handles. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
