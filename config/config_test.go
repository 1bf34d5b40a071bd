// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, YAML parsing, and environment overrides
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath(), cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Web.Addr)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
database:
  path: /tmp/fund.db
  driver: sqlite
log:
  mode: prod
web:
  addr: ":9000"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0600))

	t.Setenv("FUNDOPS_WEB_ADDR", ":9100")
	t.Setenv("FUNDOPS_MAIL_FROM", "ops@fund.vc")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/fund.db", cfg.Database.Path)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.Equal(t, ":9100", cfg.Web.Addr)
	assert.Equal(t, "ops@fund.vc", cfg.Mail.From)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
