// Package config loads process configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/curtisos/curtisos/internal/llm"
	"github.com/curtisos/curtisos/internal/mail"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	AI       llm.Config     `yaml:"ai"`
	Mail     mail.Config    `yaml:"mail"`

	// envErrs holds values that were present in the environment but
	// could not be parsed. Validate reports them.
	envErrs []error
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // auto, json or console
}

const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatConsole = "console"
)

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatAuto,
		},
		AI:   llm.DefaultConfig(),
		Mail: mail.DefaultConfig(),
	}
}

// Load builds the configuration. An empty path skips the file; a missing
// file at an explicit path is an error. The result is validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.AI.Resolve()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Server.Addr, "CURTISOS_ADDR")
	setString(&c.Log.Level, "CURTISOS_LOG_LEVEL")
	setString(&c.Log.Format, "CURTISOS_LOG_FORMAT")

	if v := os.Getenv("CURTISOS_AI_PROVIDER"); v != "" {
		c.AI.Provider = llm.Provider(strings.ToLower(v))
	}
	setString(&c.AI.APIKey, "GEMINI_API_KEY")
	setString(&c.AI.Model, "CURTISOS_AI_MODEL")
	setString(&c.AI.Endpoint, "CURTISOS_AI_ENDPOINT")
	c.setInt(&c.AI.TimeoutMs, "CURTISOS_AI_TIMEOUT_MS")
	c.setInt(&c.AI.MaxRetries, "CURTISOS_AI_MAX_RETRIES")
	c.setBool(&c.AI.LogCalls, "CURTISOS_AI_LOG_CALLS")

	setString(&c.Mail.ClientID, "GMAIL_CLIENT_ID")
	setString(&c.Mail.ClientSecret, "GMAIL_CLIENT_SECRET")
	setString(&c.Mail.RefreshToken, "GMAIL_REFRESH_TOKEN")
	setString(&c.Mail.Query, "CURTISOS_MAIL_QUERY")
	c.setInt(&c.Mail.MaxResults, "CURTISOS_MAIL_MAX_RESULTS")
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func (c *Config) setInt(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Errorf("%s: %q is not an integer", name, v))
		return
	}
	*dst = n
}

func (c *Config) setBool(dst *bool, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Errorf("%s: %q is not a boolean", name, v))
		return
	}
	*dst = b
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.envErrs...)

	if strings.TrimSpace(c.Database.URL) == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server max body bytes must be positive"))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case FormatAuto, FormatJSON, FormatConsole:
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q (valid: auto, json, console)", c.Log.Format))
	}
	if err := c.AI.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Mail.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
