// strafe is a top-down combat locomotion sandbox for the terminal.
//
// Usage:
//
//	strafe play              - Drive the marine in the arena
//	strafe sim               - Run a scripted simulation headlessly
//	strafe serve             - Start SSH server for remote play
//	strafe weapons           - List weapon archetypes and profiles
//	strafe runs              - Show the run ledger
//
// Global flags:
//
//	--config <path>    - Arena config YAML (default: search ~/.strafe/configs, ./configs, built-in)
//	--preset <name>    - Balance preset: easy, normal, hard, fixed
//	--fps <rate>       - Set tick rate (default: from config)
//	--seed <value>     - Set RNG seed for reproducible spread
//	--db <path>        - Set database path (default: ~/.strafe/runs.db)
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import archetypes to register them
	_ "github.com/vovakirdan/strafe/internal/weapons"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "strafe",
	Short: "Strafe - top-down combat locomotion in your terminal",
	Long: `Strafe simulates actors that walk, aim and shoot independently:
movement picks one of six facing sectors, the weapon barrel tracks the
pointer or right stick, and spawn strategies turn held triggers into
projectiles.

Available commands:
  play     - Drive the marine interactively
  sim      - Run a scripted simulation and record it
  serve    - Start SSH server for remote play
  weapons  - List weapon archetypes and configured profiles
  runs     - Inspect the run ledger

Examples:
  strafe play
  strafe sim --seed 42
  strafe sim --script ./duel.yaml --metrics :9100
  strafe serve --ssh :2222
  strafe runs stats`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Balance preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, or time-based when interactive)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.strafe/runs.db", "Path to run ledger database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(weaponsCmd)
	rootCmd.AddCommand(runsCmd)
}
