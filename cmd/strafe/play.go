package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/platform/tui"
	"github.com/vovakirdan/strafe/internal/storage"
)

var flagPlayScript string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Drive the marine in the arena",
	Long: `Start an interactive arena. You control the first actor; the others
follow the input script on a loop.

Controls:
  WASD/Arrows  - Move (keys stay held briefly after each press)
  Mouse        - Aim the barrel
  Click/Space  - Fire
  Tab/E        - Next weapon in the loadout
  V            - Toggle aim diagnostics
  R            - Restart with a new seed
  Ctrl+S       - Save a screenshot to ~/.strafe/screenshots
  Q/Esc        - Quit and record the run

Examples:
  strafe play
  strafe play --preset hard
  strafe play --config ./my-arena.yaml --script ./patrol.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayScript, "script", "", "Input script for the other actors (default: built-in demo)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, rc, err := loadArena()
	if err != nil {
		fail("%v", err)
	}

	script, err := config.LoadScript(flagPlayScript)
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	rc.ScreenW = width
	rc.ScreenH = height

	// Open run ledger
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run ledger: %v\n", err)
		// Continue without storage - the arena still works
		store = nil
	}

	// The terminal belongs to the arena, so logs go to a file when asked for.
	opts := tui.Options{Runtime: rc, Store: store, Script: &script}
	if flagLogLevel == "debug" {
		if f, logErr := os.OpenFile("strafe-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); logErr == nil {
			defer f.Close()
			logger, _ := newLogger()
			logger.SetOutput(f)
			opts.Logger = logger
		}
	}

	runErr := tui.Run(cfg, opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running arena: %v", runErr)
	}
}
