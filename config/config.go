// ABOUTME: Application configuration loading
// ABOUTME: Merges .env, an optional YAML file at the XDG config path, and FUNDOPS_* environment overrides
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the XDG config and data directories.
const AppName = "fundops"

type Config struct {
	Database struct {
		Path   string `yaml:"path"`
		Driver string `yaml:"driver"`
	} `yaml:"database"`
	Log struct {
		Mode string `yaml:"mode"`
	} `yaml:"log"`
	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`
	Mail struct {
		From string `yaml:"from"`
	} `yaml:"mail"`
}

// DefaultPath returns $XDG_CONFIG_HOME/fundops/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultDatabasePath returns $XDG_DATA_HOME/fundops/fundops.db.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

func Default() *Config {
	cfg := &Config{}
	cfg.Database.Path = DefaultDatabasePath()
	cfg.Database.Driver = "sqlite3"
	cfg.Log.Mode = "dev"
	cfg.Web.Addr = ":8080"
	cfg.Mail.From = "introductions@localhost"
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file or .env is not an error. An empty path means
// DefaultPath().
func Load(path string) (*Config, error) {
	// .env only fills variables that are not already set
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FUNDOPS_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("FUNDOPS_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("FUNDOPS_LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v := os.Getenv("FUNDOPS_WEB_ADDR"); v != "" {
		cfg.Web.Addr = v
	}
	if v := os.Getenv("FUNDOPS_MAIL_FROM"); v != "" {
		cfg.Mail.From = v
	}
}
