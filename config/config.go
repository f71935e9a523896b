// Package config loads and validates the service configuration from JSON.
package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/c360/semgraph/errors"
)

// Log output formats.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config is the complete application configuration.
type Config struct {
	Version  string         `json:"version"`
	Server   ServerConfig   `json:"server"`
	Ontology OntologyConfig `json:"ontology,omitempty"`
	Logging  LoggingConfig  `json:"logging,omitempty"`
}

// ServerConfig defines the HTTP gateway settings.
type ServerConfig struct {
	Host            string        `json:"host,omitempty"`
	Port            int           `json:"port,omitempty"`
	EnableCORS      bool          `json:"enable_cors,omitempty"`
	CORSOrigins     []string      `json:"cors_origins,omitempty"`
	MaxRequestSize  int64         `json:"max_request_size,omitempty"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty"`
}

// OntologyConfig defines ontology autoloading and extra namespace prefixes.
type OntologyConfig struct {
	// Path is a Turtle file loaded at startup when Autoload is set.
	Path     string `json:"path,omitempty"`
	Autoload bool   `json:"autoload,omitempty"`

	// Prefixes maps additional namespace prefixes to base IRIs, merged into
	// the seeded registry after startup.
	Prefixes map[string]string `json:"prefixes,omitempty"`
}

// LoggingConfig defines structured logging settings.
type LoggingConfig struct {
	Level  string `json:"level,omitempty"`  // debug, info, warn, error
	Format string `json:"format,omitempty"` // json, text
}

// Default creates a configuration with production defaults.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			EnableCORS:      true,
			CORSOrigins:     []string{"*"},
			MaxRequestSize:  10 << 20, // 10 MiB
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatJSON,
		},
	}
}

// Load reads a JSON configuration file, applies defaults for absent fields,
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %s", errors.ErrMissingConfig, path),
				"Config", "Load", "config file lookup")
		}
		return nil, errors.WrapFatal(err, "Config", "Load", "config file read")
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err),
			"Config", "Load", "config file parsing")
	}
	parseDurations(raw)

	processed, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err),
			"Config", "Load", "config normalization")
	}

	cfg := Default()
	if err := json.Unmarshal(processed, cfg); err != nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: %v", errors.ErrInvalidConfig, err),
			"Config", "Load", "config file parsing")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDurations converts duration strings to nanoseconds for json
// unmarshaling, so config authors can write "10s" instead of raw integers.
func parseDurations(data map[string]any) {
	if server, ok := data["server"].(map[string]any); ok {
		if timeout, ok := server["shutdown_timeout"].(string); ok {
			if d, err := time.ParseDuration(timeout); err == nil {
				server["shutdown_timeout"] = d.Nanoseconds()
			}
		}
	}
}

// Validate checks the configuration and normalizes enum fields.
func (c *Config) Validate() error {
	if c.Version == "" {
		return invalid("version is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid(fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxRequestSize <= 0 {
		return invalid("server.max_request_size must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return invalid("server.shutdown_timeout must be positive")
	}
	if c.Server.EnableCORS && len(c.Server.CORSOrigins) == 0 {
		return invalid("server.cors_origins is required when CORS is enabled")
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid(fmt.Sprintf("logging.level %q is not a valid level", c.Logging.Level))
	}

	c.Logging.Format = strings.ToLower(c.Logging.Format)
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatText:
	default:
		return invalid(fmt.Sprintf("logging.format %q is not a valid format", c.Logging.Format))
	}

	if c.Ontology.Autoload && c.Ontology.Path == "" {
		return invalid("ontology.path is required when autoload is enabled")
	}

	for prefix, base := range c.Ontology.Prefixes {
		if prefix == "" || base == "" {
			return invalid("ontology.prefixes entries must have non-empty prefix and base")
		}
	}

	return nil
}

// ToJSON renders the configuration for debug logging.
func (c *Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func invalid(msg string) error {
	return errors.WrapFatal(
		fmt.Errorf("%w: %s", errors.ErrInvalidConfig, msg),
		"Config", "Validate", "config validation")
}
