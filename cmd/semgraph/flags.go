package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/c360/semgraph/config"
)

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigPath   string
	Port         int
	OntologyPath string
	LogLevel     string
	LogFormat    string
	Debug        bool
	ShowVersion  bool
	ShowHelp     bool
	Validate     bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Flags with environment variable fallback
	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("SEMGRAPH_CONFIG", ""),
		"Path to configuration file, empty for defaults (env: SEMGRAPH_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("SEMGRAPH_CONFIG", ""),
		"Path to configuration file, empty for defaults (env: SEMGRAPH_CONFIG)")

	flag.IntVar(&cfg.Port, "port",
		getEnvInt("SEMGRAPH_PORT", 0),
		"Gateway port, 0 to use the configured value (env: SEMGRAPH_PORT)")

	flag.StringVar(&cfg.OntologyPath, "ontology",
		getEnv("SEMGRAPH_ONTOLOGY", ""),
		"Turtle file to load at startup (env: SEMGRAPH_ONTOLOGY)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("SEMGRAPH_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: SEMGRAPH_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("SEMGRAPH_LOG_FORMAT", ""),
		"Log format: json, text (env: SEMGRAPH_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("SEMGRAPH_DEBUG", false),
		"Enable debug logging (env: SEMGRAPH_DEBUG)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.Usage = printDetailedHelp

	flag.Parse()

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if cfg.OntologyPath != "" {
		if _, err := os.Stat(cfg.OntologyPath); err != nil {
			return fmt.Errorf("ontology file not found: %s", cfg.OntologyPath)
		}
	}

	if cfg.LogLevel != "" && !contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "" && !contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}

	return nil
}

// applyFlagOverrides layers non-empty CLI flags over the loaded config.
func applyFlagOverrides(cfg *config.Config, cliCfg *CLIConfig) {
	if cliCfg.Port != 0 {
		cfg.Server.Port = cliCfg.Port
	}
	if cliCfg.OntologyPath != "" {
		cfg.Ontology.Path = cliCfg.OntologyPath
		cfg.Ontology.Autoload = true
	}
	if cliCfg.LogLevel != "" {
		cfg.Logging.Level = cliCfg.LogLevel
	}
	if cliCfg.LogFormat != "" {
		cfg.Logging.Format = cliCfg.LogFormat
	}
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Semantic Graph Service

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run with defaults on port 8080
  %s

  # Run with custom config
  %s --config=/path/to/config.json

  # Load an ontology at startup with debug logging
  %s --ontology=/data/core.ttl --log-level=debug --log-format=text

  # Run with environment variables
  export SEMGRAPH_CONFIG=/etc/semgraph/config.json
  export SEMGRAPH_LOG_LEVEL=debug
  %s

  # Validate configuration only
  %s --config=/path/to/config.json --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
