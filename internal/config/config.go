package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Security SecurityConfig `yaml:"security" envconfig:"SECURITY"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DataConfig describes the source dataset the pipeline ingests.
type DataConfig struct {
	DatasetFile string `yaml:"dataset_file" envconfig:"DATASET_FILE"`
	TopN        int    `yaml:"top_n" envconfig:"TOP_N"`
}

// SecurityConfig contains auth and rate-limit configuration
type SecurityConfig struct {
	SessionTTL time.Duration   `yaml:"session_ttl" envconfig:"SESSION_TTL"`
	BcryptCost int             `yaml:"bcrypt_cost" envconfig:"BCRYPT_COST"`
	RateLimit  RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR"`
	DatabaseFile string `yaml:"database_file" envconfig:"DATABASE_FILE"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Default returns the built-in configuration. Precedence is
// defaults < config file < environment; defaults live here rather than in
// struct tags so a config file never gets clobbered by envconfig defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Data: DataConfig{
			DatasetFile: "data/animal-shelter-intakes-and-outcomes.csv",
			TopN:        10,
		},
		Security: SecurityConfig{
			SessionTTL: 12 * time.Hour,
			BcryptCost: 10,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Paths: PathsConfig{
			DataDir:      "data",
			DatabaseFile: "data/shelter.db",
			OutputDir:    "output",
			LogsDir:      "logs",
		},
	}
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables take precedence.
func Load() (*Config, error) {
	return LoadFromFile(getConfigFilePath())
}

// LoadFromFile loads configuration from the given YAML file path plus
// environment overrides.
func LoadFromFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("SHELTER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// getConfigFilePath returns the config file location, overridable via env.
func getConfigFilePath() string {
	if path := os.Getenv("SHELTER_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Data.DatasetFile == "" {
		return fmt.Errorf("dataset file must be configured")
	}
	if c.Data.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.Data.TopN)
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost out of range: %d", c.Security.BcryptCost)
	}
	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst < 1 {
			return fmt.Errorf("rate limit enabled but rps/burst not positive")
		}
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}
	return nil
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
