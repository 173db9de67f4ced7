package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, ReleaseVersion, EGReleaseVersion,
// Databases). Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Warehouse.Host
	if s != "" {
		res = append(res, OptWarehouseHost(s))
	}
	i = c.Warehouse.Port
	if i > 0 {
		res = append(res, OptWarehousePort(i))
	}
	s = c.Warehouse.User
	if s != "" {
		res = append(res, OptWarehouseUser(s))
	}
	s = c.Warehouse.Password
	if s != "" {
		res = append(res, OptWarehousePassword(s))
	}
	s = c.Warehouse.Database
	if s != "" {
		res = append(res, OptWarehouseDatabase(s))
	}
	s = c.Warehouse.SSLMode
	if s != "" {
		res = append(res, OptWarehouseSSLMode(s))
	}

	s = c.Server.Host
	if s != "" {
		res = append(res, OptServerHost(s))
	}
	i = c.Server.Port
	if i > 0 {
		res = append(res, OptServerPort(i))
	}
	s = c.Server.User
	if s != "" {
		res = append(res, OptServerUser(s))
	}
	s = c.Server.Password
	if s != "" {
		res = append(res, OptServerPassword(s))
	}
	s = c.Server.Database
	if s != "" {
		res = append(res, OptServerDatabase(s))
	}
	s = c.Server.SSLMode
	if s != "" {
		res = append(res, OptServerSSLMode(s))
	}

	res = append(res, OptProcessRetrieveSequences(c.Process.RetrieveSequences))
	s = c.Process.TrackRegistryURL
	if s != "" {
		res = append(res, OptProcessTrackRegistryURL(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Warehouse.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Server.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		[]string{name, val, strings.Join(lines, "\n")},
	)
	return false
}
