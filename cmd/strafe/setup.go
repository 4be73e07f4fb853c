package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/core"
)

// newLogger creates the stderr logger shared by every command.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "strafe",
		Level:           level,
	}), nil
}

// loadArena loads the arena config and applies the global overrides.
func loadArena() (config.ArenaConfig, core.RuntimeConfig, error) {
	cfg, err := config.LoadArena(flagConfig)
	if err != nil {
		return config.ArenaConfig{}, core.RuntimeConfig{}, err
	}

	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return config.ArenaConfig{}, core.RuntimeConfig{}, err
		}
		config.ApplyBalancePreset(&cfg, preset)
	}

	rc := cfg.RuntimeConfig()
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	if flagSeed != 0 {
		rc.Seed = flagSeed
	}
	return cfg, rc, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
