// Package config provides configuration loading, validation, and management
// for the bot. It handles reading from a YAML file and BOT_* environment
// variables, setting default values, and validating configuration parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters for all components
// of the bot: logging, Telegram, the LOE schedule feed, the database, and the
// scheduler.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	LOE       LOEConfig       `mapstructure:"loe"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log verbosity and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the messaging API credentials.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
}

// LOEConfig configures the client for the utility's published schedule feed.
type LOEConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"min=1s,max=5m"`
}

// DatabaseConfig holds SQLite database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TaskConfig describes a single scheduled task entry.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds the user-facing reply texts.
type MessagesConfig struct {
	Welcome          string `mapstructure:"welcome"            validate:"required"`
	Help             string `mapstructure:"help"               validate:"required"`
	SetupUsage       string `mapstructure:"setup_usage"        validate:"required"`
	SetupSaved       string `mapstructure:"setup_saved"        validate:"required"`
	StatusNotSet     string `mapstructure:"status_not_set"     validate:"required"`
	StatusGroup      string `mapstructure:"status_group"       validate:"required"`
	StatusLastHeader string `mapstructure:"status_last_header" validate:"required"`
	StatusNoMessages string `mapstructure:"status_no_messages" validate:"required"`
	GeneralError     string `mapstructure:"general_error"      validate:"required"`
}

// LoadConfig reads configuration from the given YAML file, applies BOT_*
// environment variable overrides, fills in defaults, and validates the
// result. A missing config file is not an error; defaults and environment
// variables still apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
