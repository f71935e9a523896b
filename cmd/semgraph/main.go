// Package main implements the entry point for the SemGraph service.
// SemGraph is an in-memory semantic graph service: it loads RDF ontologies
// expressed in Turtle and serves typed views of the graph over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360/semgraph/config"
	"github.com/c360/semgraph/gateway"
	"github.com/c360/semgraph/metric"
	"github.com/c360/semgraph/semantic"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semgraph"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	cfg, err := loadConfiguration(cliCfg)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	slog.Info("Starting SemGraph (semantic graph service)",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	registry := metric.NewRegistry()
	processor := semantic.New(
		semantic.WithMetrics(registry.CoreMetrics()),
		semantic.WithLogger(logger),
	)

	if err := applyOntologyConfig(processor, cfg, logger); err != nil {
		return err
	}

	server := gateway.NewServer(cfg.Server, processor, registry, logger)
	return runWithSignalHandling(server, cfg)
}

// loadConfiguration reads the config file, or falls back to defaults when no
// file was given.
func loadConfiguration(cliCfg *CLIConfig) (*config.Config, error) {
	if cliCfg.ConfigPath == "" {
		cfg := config.Default()
		applyFlagOverrides(cfg, cliCfg)
		return cfg, cfg.Validate()
	}

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(cfg, cliCfg)
	return cfg, nil
}

// applyOntologyConfig registers configured prefixes and autoloads the
// ontology file when requested.
func applyOntologyConfig(processor *semantic.Processor, cfg *config.Config, logger *slog.Logger) error {
	for prefix, base := range cfg.Ontology.Prefixes {
		if err := processor.Registry().Register(prefix, base); err != nil {
			return fmt.Errorf("register prefix %q: %w", prefix, err)
		}
	}

	if !cfg.Ontology.Autoload {
		return nil
	}

	data, err := os.ReadFile(cfg.Ontology.Path)
	if err != nil {
		return fmt.Errorf("read ontology file: %w", err)
	}

	added, err := processor.LoadTurtle(data)
	if err != nil {
		return fmt.Errorf("autoload ontology: %w", err)
	}

	logger.Info("ontology autoloaded", "path", cfg.Ontology.Path, "triples", added)
	return nil
}

// runWithSignalHandling starts the gateway and blocks until a shutdown
// signal arrives.
func runWithSignalHandling(server *gateway.Server, cfg *config.Config) error {
	signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	if err := server.Start(signalCtx); err != nil {
		return fmt.Errorf("start gateway: %w", err)
	}
	slog.Info("SemGraph started successfully")

	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	if err := server.Stop(cfg.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown gateway: %w", err)
	}
	slog.Info("Shutdown complete")
	return nil
}
