package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semgraph/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxRequestSize)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"version": "2.0.0",
		"server": {"port": 9000},
		"ontology": {"path": "/data/core.ttl", "autoload": true,
			"prefixes": {"ex": "http://example.org/"}},
		"logging": {"level": "DEBUG", "format": "text"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.Version)
	assert.Equal(t, 9000, cfg.Server.Port)
	// Defaults survive partial server config.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.True(t, cfg.Ontology.Autoload)
	assert.Equal(t, "http://example.org/", cfg.Ontology.Prefixes["ex"])
	// Level is normalized to lowercase.
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadDurationStrings(t *testing.T) {
	path := writeConfig(t, `{
		"version": "1.0.0",
		"server": {"shutdown_timeout": "5s"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)

	// Raw nanosecond integers still work.
	path = writeConfig(t, `{
		"version": "1.0.0",
		"server": {"shutdown_timeout": 2000000000}
	}`)

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMissingConfig))
	assert.True(t, errors.IsFatal(err))
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"version": `)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty version", mutate: func(c *Config) { c.Version = "" }},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "zero request size", mutate: func(c *Config) { c.Server.MaxRequestSize = 0 }},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{name: "cors without origins", mutate: func(c *Config) { c.Server.CORSOrigins = nil }},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "autoload without path", mutate: func(c *Config) { c.Ontology.Autoload = true }},
		{name: "empty prefix base", mutate: func(c *Config) {
			c.Ontology.Prefixes = map[string]string{"ex": ""}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func TestToJSON(t *testing.T) {
	out, err := Default().ToJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "1.0.0"`)
}
