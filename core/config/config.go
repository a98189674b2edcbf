// Package config loads runtime settings from flags, the environment, an
// optional .env file and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "SHORTCUT"
	appDir    = "osdd-shortcut"

	DefaultBaseURL = "https://api.app.shortcut.com/api/v3"
	DefaultTimeout = 30 * time.Second
)

// Keys understood by Load. Environment variables are the upper-cased key with
// the SHORTCUT_ prefix, e.g. SHORTCUT_API_TOKEN.
const (
	KeyAPIToken  = "api_token"
	KeyBaseURL   = "base_url"
	KeyTimeout   = "timeout"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

type Config struct {
	APIToken  string        `mapstructure:"api_token" validate:"required"`
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=1s"`
	LogLevel  string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string        `mapstructure:"log_format" validate:"oneof=text json"`
}

type LoadOptions struct {
	// ConfigFile is an explicit YAML file. It must exist when set. When empty the
	// default file under the user config dir is read if present.
	ConfigFile string
	// EnvFile defaults to ".env" in the working directory. A missing file is fine.
	EnvFile string
	// Overrides win over every other source; empty strings are ignored.
	Overrides map[string]string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("mapstructure")
	})
}

// DefaultConfigFile returns $HOME/.config/osdd-shortcut/config.yaml.
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir, "config.yaml")
}

func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault(KeyAPIToken, "")
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	cfgFile := opts.ConfigFile
	if cfgFile == "" {
		if def := DefaultConfigFile(); def != "" {
			if _, err := os.Stat(def); err == nil {
				cfgFile = def
			}
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		slog.Debug("Config file loaded", "path", cfgFile)
	}

	for k, val := range opts.Overrides {
		if val != "" {
			v.Set(k, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := validate.Struct(&cfg); err != nil {
		return nil, validationError(err)
	}
	return &cfg, nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fe := fieldErrs[0]
	env := envPrefix + "_" + strings.ToUpper(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("invalid configuration: %s is required (set %s)", fe.Field(), env)
	case "oneof":
		return fmt.Errorf("invalid configuration: %s must be one of %s, got %q", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Errorf("invalid configuration: %s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("invalid configuration: %s failed %q validation", fe.Field(), fe.Tag())
	}
}

func (c *Config) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Logger builds a slog logger writing to w in the configured format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
