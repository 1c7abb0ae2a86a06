package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"25"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// AnalysisConfig holds the default analysis parameters. Each run may
// override them, subject to the same bounds.
type AnalysisConfig struct {
	HorizonDays      int     `yaml:"horizon_days" envconfig:"HORIZON_DAYS" default:"7" validate:"min=1,max=60"`
	ZScore           float64 `yaml:"z_score" envconfig:"Z_SCORE" default:"1.65" validate:"min=0,max=5"`
	DemandWindowDays int     `yaml:"demand_window_days" envconfig:"DEMAND_WINDOW_DAYS" default:"60" validate:"min=7,max=365"`
}

// OutputConfig contains report output configuration
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"reports"`
}

var validate = validator.New()

// Load loads configuration from environment variables and an optional YAML
// config file. Environment takes precedence over the file.
func Load() (*Config, error) {
	var fileCfg Config
	if path := findConfigFile(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg := fileCfg
	if err := envconfig.Process("INVCTL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configured values against their permitted bounds.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills zero values that envconfig defaults cover when
// processing but that a partially-populated YAML file leaves empty.
func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Server.RateLimitRPS == 0 {
		c.Server.RateLimitRPS = 50
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 25
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}
	if c.Analysis.HorizonDays == 0 {
		c.Analysis.HorizonDays = 7
	}
	if c.Analysis.ZScore == 0 {
		c.Analysis.ZScore = 1.65
	}
	if c.Analysis.DemandWindowDays == 0 {
		c.Analysis.DemandWindowDays = 60
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "reports"
	}
}

// findConfigFile returns the path to the config file, checking common
// locations.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
