// Package config loads printdesk settings from defaults, an optional config
// file, a .env file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/printdesk/printdesk/internal/reminder"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// ReminderConfig holds the pending-orders reminder schedule
type ReminderConfig struct {
	Name    string        `mapstructure:"name"`
	Anchor  string        `mapstructure:"anchor"`
	Period  time.Duration `mapstructure:"period"`
	Timeout time.Duration `mapstructure:"timeout"`
	SlotDir string        `mapstructure:"slot_dir"`
}

// AuthConfig holds dashboard unlock settings
type AuthConfig struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	TokenPath   string        `mapstructure:"token_path"`
}

// MetricsConfig holds metrics export settings
type MetricsConfig struct {
	// Textfile is the node-exporter textfile path. Empty disables export.
	Textfile string `mapstructure:"textfile"`
}

// Options selects extra configuration sources.
type Options struct {
	// ConfigFile is an optional YAML/TOML/JSON config file.
	ConfigFile string
	// EnvFile is the dotenv file to load; missing files are ignored.
	EnvFile string
}

// Load loads configuration from various sources
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load(envFile)

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "printdesk")
	v.SetDefault("app.environment", "development")

	// Database defaults
	v.SetDefault("database.path", "./data/printdesk.db")

	// Logger defaults
	v.SetDefault("logger.level", "info")

	// Reminder defaults
	v.SetDefault("reminder.name", reminder.DefaultName)
	v.SetDefault("reminder.anchor", reminder.DefaultAnchor.String())
	v.SetDefault("reminder.period", reminder.DefaultPeriod.String())
	v.SetDefault("reminder.timeout", "10m")
	v.SetDefault("reminder.slot_dir", "./data/notifications")

	// Auth defaults
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.token_path", "./data/.unlock")

	// Metrics defaults
	v.SetDefault("metrics.textfile", "")
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "APP_NAME")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")

	// Database
	v.BindEnv("database.path", "DB_PATH")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")

	// Reminder
	v.BindEnv("reminder.name", "REMINDER_NAME")
	v.BindEnv("reminder.anchor", "REMINDER_ANCHOR")
	v.BindEnv("reminder.period", "REMINDER_PERIOD")
	v.BindEnv("reminder.timeout", "REMINDER_TIMEOUT")
	v.BindEnv("reminder.slot_dir", "REMINDER_SLOT_DIR")

	// Auth
	v.BindEnv("auth.token_secret", "UNLOCK_TOKEN_SECRET")
	v.BindEnv("auth.token_ttl", "UNLOCK_TOKEN_TTL")
	v.BindEnv("auth.token_path", "UNLOCK_TOKEN_PATH")

	// Metrics
	v.BindEnv("metrics.textfile", "METRICS_TEXTFILE")
}

func validateConfig(cfg *Config) error {
	if cfg.Database.Path == "" {
		return errors.New("database path is required")
	}
	if _, err := reminder.ParseTimeOfDay(cfg.Reminder.Anchor); err != nil {
		return fmt.Errorf("reminder anchor: %w", err)
	}
	if cfg.Reminder.Name == "" {
		return errors.New("reminder name is required")
	}
	if cfg.Reminder.Period <= 0 {
		return errors.New("reminder period must be positive")
	}
	if cfg.Reminder.Timeout <= 0 {
		return errors.New("reminder timeout must be positive")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return errors.New("unlock token TTL must be positive")
	}
	return nil
}

// Schedule returns the reminder schedule. Load has already validated it.
func (cfg *ReminderConfig) Schedule() reminder.Schedule {
	anchor, err := reminder.ParseTimeOfDay(cfg.Anchor)
	if err != nil {
		anchor = reminder.DefaultAnchor
	}
	return reminder.Schedule{Name: cfg.Name, Anchor: anchor, Period: cfg.Period}
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}
