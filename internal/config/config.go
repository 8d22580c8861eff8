// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort            = 8080
	defaultShutdownSeconds = 30
	defaultWriteLimit      = 120
	defaultMinPlayers      = 3
	defaultMaxPlayers      = 4
	defaultArchiveCron     = "*/10 * * * *"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type LeagueConfig struct {
	Name          string `yaml:"name"`
	Timezone      string `yaml:"timezone"`
	MinPlayers    int    `yaml:"min_players"`
	MaxPlayers    int    `yaml:"max_players"`
	SeedDemoTeams bool   `yaml:"seed_demo_teams"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
	} `yaml:"app"`

	Server struct {
		Port                   int      `yaml:"port"`
		AllowedOrigins         []string `yaml:"allowed_origins"`
		ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
		WriteLimitPerMinute    int      `yaml:"write_limit_per_minute"`
		TrustProxy             bool     `yaml:"trust_proxy"`
	} `yaml:"server"`

	Database DatabaseConfig `yaml:"database"`

	League LeagueConfig `yaml:"league"`

	Jobs struct {
		ArchiveCron string `yaml:"archive_cron"`
	} `yaml:"jobs"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("error applying environment overrides: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyEnv lets deployments override the file without editing it.
func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv("PORT"); ok && value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("PORT must be an integer: %w", err)
		}
		c.Server.Port = port
	}
	if value, ok := os.LookupEnv("ENVIRONMENT"); ok && value != "" {
		c.App.Environment = value
	}
	if value, ok := os.LookupEnv("DATABASE_FILENAME"); ok && value != "" {
		c.Database.Filename = value
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = defaultShutdownSeconds
	}
	if c.Server.WriteLimitPerMinute == 0 {
		c.Server.WriteLimitPerMinute = defaultWriteLimit
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.League.Name == "" {
		c.League.Name = c.App.Name
	}
	if c.League.Timezone == "" {
		c.League.Timezone = "UTC"
	}
	if c.League.MinPlayers == 0 {
		c.League.MinPlayers = defaultMinPlayers
	}
	if c.League.MaxPlayers == 0 {
		c.League.MaxPlayers = defaultMaxPlayers
	}
	if c.Jobs.ArchiveCron == "" {
		c.Jobs.ArchiveCron = defaultArchiveCron
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Server.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown timeout must not be negative")
	}
	if c.Server.WriteLimitPerMinute < 0 {
		return fmt.Errorf("write_limit_per_minute must not be negative")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if _, err := time.LoadLocation(c.League.Timezone); err != nil {
		return fmt.Errorf("invalid league timezone %q: %w", c.League.Timezone, err)
	}
	if c.League.MinPlayers < 1 {
		return fmt.Errorf("league min_players must be at least 1")
	}
	if c.League.MaxPlayers < c.League.MinPlayers {
		return fmt.Errorf("league max_players must not be below min_players")
	}

	if _, err := cron.ParseStandard(c.Jobs.ArchiveCron); err != nil {
		return fmt.Errorf("invalid archive cron expression %q: %w", c.Jobs.ArchiveCron, err)
	}

	return nil
}

// Location returns the league's time zone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.League.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
