package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Symbol      string `yaml:"symbol"`
		MaxAttempts int    `yaml:"max_attempts"`
	} `yaml:"data_source"`
	EventsFile string `yaml:"events_file"`
	Database   struct {
		SQLitePath string `yaml:"sqlite_path"`
		Table      string `yaml:"table"`
	} `yaml:"database"`
	Output struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"output"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty = run once and exit
	} `yaml:"schedule"`
	Proxy    string `yaml:"proxy"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("FETCH_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.MaxAttempts = n
		}
	}
	if v := os.Getenv("EVENTS_FILE"); v != "" {
		cfg.EventsFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SQLITE_TABLE"); v != "" {
		cfg.Database.Table = v
	}
	if v := os.Getenv("CSV_PATH"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("ANALYSIS_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SPY"
	}
	if cfg.DataSource.MaxAttempts == 0 {
		cfg.DataSource.MaxAttempts = 3
	}
	if cfg.EventsFile == "" {
		cfg.EventsFile = "configs/events.yaml"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tariff_analysis.db"
	}
	if cfg.Database.Table == "" {
		cfg.Database.Table = "sp500"
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "sp500_analysis.csv"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.DataSource.MaxAttempts <= 0 {
		return fmt.Errorf("data_source.max_attempts must be positive")
	}
	if c.Database.SQLitePath == "" && c.Output.CSVPath == "" {
		return fmt.Errorf("at least one of database.sqlite_path or output.csv_path is required")
	}
	return nil
}
