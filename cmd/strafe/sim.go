package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/strafe/internal/arena"
	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/storage"
	"github.com/vovakirdan/strafe/internal/telemetry"
)

var (
	flagScript      string
	flagParallel    bool
	flagDebug       bool
	flagMetricsAddr string
	flagHold        bool
	flagNoSave      bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a scripted simulation headlessly",
	Long: `Play an input script against the arena without a terminal and print
what happened. The final world state is hashed so two runs with the same
config, script and seed can be compared.

Runs are recorded in the run ledger unless --no-save is given.

Examples:
  strafe sim
  strafe sim --seed 42 --parallel
  strafe sim --script ./duel.yaml --preset hard
  strafe sim --metrics :9100 --hold`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagScript, "script", "", "Path to input script YAML (default: built-in demo)")
	simCmd.Flags().BoolVar(&flagParallel, "parallel", false, "Process actors concurrently within a tick")
	simCmd.Flags().BoolVar(&flagDebug, "debug", false, "Emit diagnostic aim segments every tick")
	simCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Expose Prometheus metrics on this address")
	simCmd.Flags().BoolVar(&flagHold, "hold", false, "Keep serving metrics after the run until interrupted")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the ledger")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, err := newLogger()
	if err != nil {
		fail("%v", err)
	}

	cfg, rc, err := loadArena()
	if err != nil {
		fail("%v", err)
	}
	if flagParallel {
		rc.Parallel = true
	}

	script, err := config.LoadScript(flagScript)
	if err != nil {
		fail("%v", err)
	}

	world, err := arena.NewWorld(cfg, rc, combat.WithLogger(logger))
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics := telemetry.New(reg)

	metricsCtx, stopMetrics := context.WithCancel(ctx)
	defer stopMetrics()
	var g errgroup.Group
	if flagMetricsAddr != "" {
		g.Go(func() error {
			return telemetry.Serve(metricsCtx, flagMetricsAddr, reg, logger)
		})
	}

	sum, runErr := arena.Run(ctx, world, script, arena.RunOptions{
		Dt:        rc.TickDuration(),
		Debug:     flagDebug,
		Logger:    logger,
		Observers: []arena.Observer{metrics},
	})
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		metrics.TickFailed()
	}

	printSummary(script.Name, rc.Seed, sum)

	if !flagNoSave && sum.Ticks > 0 {
		saveRun(script.Name, string(cfg.Balance.Preset), rc.Seed, sum)
	}

	if flagMetricsAddr != "" && flagHold && runErr == nil {
		fmt.Printf("Serving metrics on %s, press Ctrl+C to stop\n", flagMetricsAddr)
		<-ctx.Done()
	}
	stopMetrics()
	if err := g.Wait(); err != nil {
		fail("metrics endpoint: %v", err)
	}

	if runErr != nil {
		fail("%v", runErr)
	}
}

func saveRun(script, preset string, seed int64, sum arena.Summary) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run ledger: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		Script:      script,
		Preset:      preset,
		Seed:        seed,
		Ticks:       sum.Ticks,
		Shots:       sum.Shots,
		Projectiles: sum.Projectiles,
		Retired:     sum.Retired,
		AimMisses:   sum.AimMisses,
		Hash:        sum.Hash,
		Elapsed:     sum.Elapsed,
		Fired:       sum.FiredByKind,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
		return
	}
	fmt.Printf("Saved run %s\n", id)
}

func printSummary(script string, seed int64, sum arena.Summary) {
	fmt.Printf("Run - %s (seed %d)\n", script, seed)
	fmt.Println()
	fmt.Printf("  %-12s %d\n", "Ticks", sum.Ticks)
	fmt.Printf("  %-12s %d\n", "Shots", sum.Shots)
	fmt.Printf("  %-12s %d\n", "Projectiles", sum.Projectiles)
	fmt.Printf("  %-12s %d\n", "Retired", sum.Retired)
	fmt.Printf("  %-12s %d\n", "Live", sum.Live)
	fmt.Printf("  %-12s %d\n", "Aim misses", sum.AimMisses)
	fmt.Printf("  %-12s %016x\n", "Hash", sum.Hash)
	fmt.Printf("  %-12s %v\n", "Elapsed", sum.Elapsed)
	fmt.Println()

	fmt.Printf("  %-3s  %-10s  %-10s  %-11s  %-5s  %s\n", "ID", "Actor", "Weapon", "Facing", "Fired", "Position")
	fmt.Printf("  %-3s  %-10s  %-10s  %-11s  %-5s  %s\n", "--", "-----", "------", "------", "-----", "--------")
	for _, a := range sum.Actors {
		fmt.Printf("  %-3d  %-10s  %-10s  %-11s  %-5d  (%.2f, %.2f)\n",
			a.ID, a.Name, a.Weapon, a.Facing, a.Fired, a.Position.X, a.Position.Y)
	}

	if len(sum.FiredByKind) > 0 {
		kinds := make([]string, 0, len(sum.FiredByKind))
		for k := range sum.FiredByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Println()
		for _, k := range kinds {
			fmt.Printf("  %-12s %d projectiles\n", k, sum.FiredByKind[k])
		}
	}
	fmt.Println()
}
