package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luca-drf/ensembl-metadata/internal/ioconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENSMETA_CONFIG_DIR", t.TempDir())

	res, err := ioconfig.Load("")
	require.NoError(t, err)
	require.NotNil(t, res.Config)

	assert.Equal(t, "localhost", res.Config.Warehouse.Host)
	assert.Equal(t, "ensembl_metadata", res.Config.Warehouse.Database)
	assert.Equal(t, "postgres", res.Config.Server.Database)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ENSMETA_CONFIG_DIR", t.TempDir())
	t.Setenv("ENSMETA_WAREHOUSE_HOST", "warehouse.example.org")
	t.Setenv("ENSMETA_JOBS_NUMBER", "3")

	res, err := ioconfig.Load("")
	require.NoError(t, err)

	assert.Equal(t, "warehouse.example.org", res.Config.Warehouse.Host)
	assert.Equal(t, 3, res.Config.JobsNumber)
	assert.Equal(t, "defaults+env", res.Source)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `warehouse:
  host: filehost
  port: 5433
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	res, err := ioconfig.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "filehost", res.Config.Warehouse.Host)
	assert.Equal(t, 5433, res.Config.Warehouse.Port)
	assert.Equal(t, "debug", res.Config.Log.Level)
	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)

	// Unset fields keep their defaults.
	assert.Equal(t, "localhost", res.Config.Server.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := ioconfig.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestGenerateDefaultConfig(t *testing.T) {
	t.Setenv("ENSMETA_CONFIG_DIR", t.TempDir())

	exists, err := ioconfig.ConfigFileExists()
	require.NoError(t, err)
	assert.False(t, exists)

	path, err := ioconfig.GenerateDefaultConfig()
	require.NoError(t, err)
	require.FileExists(t, path)

	exists, err = ioconfig.ConfigFileExists()
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, ioconfig.ValidateGeneratedConfig(path))
}
