package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robfig/cron"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Tailscale    TailscaleConfig    `yaml:"tailscale"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Regeneration RegenerationConfig `yaml:"regeneration"`
	Generator    GeneratorConfig    `yaml:"generator"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// CatalogConfig points at a directory of partition files imported at startup
// when the database holds no catalog yet. Empty disables the seed.
type CatalogConfig struct {
	Dir string `yaml:"dir"`
}

type RegenerationConfig struct {
	Enabled bool `yaml:"enabled"`
	// Schedule is a six-field cron spec (seconds first).
	Schedule string `yaml:"schedule"`
}

type GeneratorConfig struct {
	// Seed fixes the random source; 0 draws a fresh seed per program.
	Seed uint64 `yaml:"seed"`
}

// DefaultSchedule regenerates flagged programs every Monday at 03:00.
const DefaultSchedule = "0 0 3 * * 1"

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix COACHGEN_ and underscore-separated paths:
//
//	COACHGEN_SERVER_HOST, COACHGEN_SERVER_PORT,
//	COACHGEN_DB_HOST, COACHGEN_DB_PORT, COACHGEN_DB_NAME,
//	COACHGEN_DB_USER, COACHGEN_DB_PASSWORD, COACHGEN_DB_SSLMODE,
//	COACHGEN_AUTH_API_KEY, COACHGEN_TAILSCALE_ENABLED, COACHGEN_TAILSCALE_HOSTNAME,
//	COACHGEN_CATALOG_DIR, COACHGEN_REGEN_ENABLED, COACHGEN_REGEN_SCHEDULE,
//	COACHGEN_GENERATOR_SEED
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COACHGEN_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("COACHGEN_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("COACHGEN_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("COACHGEN_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("COACHGEN_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("COACHGEN_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("COACHGEN_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("COACHGEN_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("COACHGEN_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("COACHGEN_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("COACHGEN_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("COACHGEN_CATALOG_DIR"); v != "" {
		cfg.Catalog.Dir = v
	}
	if v := os.Getenv("COACHGEN_REGEN_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Regeneration.Enabled = b
		}
	}
	if v := os.Getenv("COACHGEN_REGEN_SCHEDULE"); v != "" {
		cfg.Regeneration.Schedule = v
	}
	if v := os.Getenv("COACHGEN_GENERATOR_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Generator.Seed = seed
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Regeneration.Schedule == "" {
		cfg.Regeneration.Schedule = DefaultSchedule
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "coachgen"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Regeneration.Enabled {
		if _, err := cron.Parse(c.Regeneration.Schedule); err != nil {
			return fmt.Errorf("regeneration.schedule: %w", err)
		}
	}
	return nil
}
