package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServeConfig holds the settings of the headless feed server.
// Fields are populated from environment variables; CLI flags override them.
type ServeConfig struct {
	// Server settings
	Port int
	Bind string

	// Highlight source (file path or http(s) URL) and its credentials
	Source     string
	SourceUser string
	SourcePass string
	RefreshMin int

	// Rendering
	GeezDigits      bool
	IncludeDefaults bool

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// LoadServe reads the server configuration from the environment.
// A .env file in the working directory is loaded first when present.
// Only values that do not parse are reported here; range checks belong to
// Validate, which callers run once flag overrides are applied.
func LoadServe() (*ServeConfig, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	defPort, _ := strconv.Atoi(DefaultPort)

	var env envReader
	cfg := &ServeConfig{
		Port:            env.readInt(EnvPort, defPort),
		Bind:            getEnv(EnvBind, LocalhostBindAddr),
		Source:          getEnv(EnvSource, ""),
		SourceUser:      getEnv(EnvSourceUser, ""),
		SourcePass:      getEnv(EnvSourcePass, ""),
		RefreshMin:      env.readInt(EnvRefreshMin, DefaultRefreshMin),
		GeezDigits:      env.readBool(EnvGeez, false),
		IncludeDefaults: env.readBool(EnvDefaults, true),
		LogLevel:        strings.ToLower(getEnv(EnvLogLevel, LogLevelInfo)),
		LogFormat:       strings.ToLower(getEnv(EnvLogFormat, LogFormatJSON)),
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrEnvInvalid, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *ServeConfig) Validate() error {
	var errs []error

	if c.Port < MinPort || c.Port > MaxPort {
		errs = append(errs, fmt.Errorf("%s must be between %d and %d, got %d", EnvPort, MinPort, MaxPort, c.Port))
	}
	if c.Bind == "" {
		errs = append(errs, fmt.Errorf("%s is required", EnvBind))
	}
	if c.RefreshMin < DisabledInterval {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", EnvRefreshMin, c.RefreshMin))
	}
	if c.SourcePass != "" && c.SourceUser == "" {
		errs = append(errs, fmt.Errorf("%s requires %s", EnvSourcePass, EnvSourceUser))
	}

	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		errs = append(errs, fmt.Errorf("%s must be one of: debug, info, warn, error; got %q", EnvLogLevel, c.LogLevel))
	}

	switch c.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		errs = append(errs, fmt.Errorf("%s must be one of: json, text; got %q", EnvLogFormat, c.LogFormat))
	}

	return errors.Join(errs...)
}

// Addr returns the host:port listen address.
func (c *ServeConfig) Addr() string {
	return c.Bind + AddrSeparator + strconv.Itoa(c.Port)
}

// SlogLevel maps LogLevel onto slog.
func (c *ServeConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader collects parse failures so they are reported together.
type envReader struct {
	errs []error
}

func (r *envReader) readInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be an integer, got %q", key, value))
		return defaultValue
	}
	return n
}

func (r *envReader) readBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s must be a boolean, got %q", key, value))
		return defaultValue
	}
	return b
}
