package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/strafe/internal/platform/tui"
	"github.com/vovakirdan/strafe/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the run ledger",
	Long: `Display recently recorded runs.

Examples:
  strafe runs
  strafe runs --limit 50
  strafe runs --tui
  strafe runs show <id>
  strafe runs stats
  strafe runs clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run with its per-archetype counts",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsShow,
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show projectile totals per weapon archetype",
	Args:  cobra.NoArgs,
	Run:   runRunsStats,
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded run",
	Args:  cobra.NoArgs,
	Run:   runRunsClear,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse the ledger interactively")
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	runsCmd.AddCommand(runsClearCmd)
}

func openLedger() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run ledger: %v", err)
	}
	return store
}

func runRuns(_ *cobra.Command, _ []string) {
	store := openLedger()
	defer store.Close()

	if flagRunsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunLedger(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'strafe sim' to record the first one!")
		return
	}

	fmt.Printf("  %-36s  %-12s  %-7s  %-6s  %-5s  %-16s  %s\n", "ID", "Script", "Preset", "Ticks", "Proj", "Hash", "Date")
	fmt.Printf("  %-36s  %-12s  %-7s  %-6s  %-5s  %-16s  %s\n", "--", "------", "------", "-----", "----", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-12s  %-7s  %-6d  %-5d  %016x  %s\n",
			r.ID, r.Script, r.Preset, r.Ticks, r.Projectiles, r.Hash, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runRunsShow(_ *cobra.Command, args []string) {
	store := openLedger()
	defer store.Close()

	r, err := store.RunByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		return
	}
	if r == nil {
		fmt.Fprintf(os.Stderr, "Error: no run with id %q\n", args[0])
		return
	}

	fmt.Printf("Run %s\n", r.ID)
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "Script", r.Script)
	fmt.Printf("  %-12s %s\n", "Preset", r.Preset)
	fmt.Printf("  %-12s %d\n", "Seed", r.Seed)
	fmt.Printf("  %-12s %d\n", "Ticks", r.Ticks)
	fmt.Printf("  %-12s %d\n", "Shots", r.Shots)
	fmt.Printf("  %-12s %d\n", "Projectiles", r.Projectiles)
	fmt.Printf("  %-12s %d\n", "Retired", r.Retired)
	fmt.Printf("  %-12s %d\n", "Aim misses", r.AimMisses)
	fmt.Printf("  %-12s %016x\n", "Hash", r.Hash)
	fmt.Printf("  %-12s %v\n", "Elapsed", r.Elapsed)
	fmt.Printf("  %-12s %s\n", "Date", r.CreatedAt.Format("2006-01-02 15:04:05"))

	if len(r.Fired) > 0 {
		kinds := make([]string, 0, len(r.Fired))
		for k := range r.Fired {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Println()
		for _, k := range kinds {
			fmt.Printf("  %-12s %d projectiles\n", k, r.Fired[k])
		}
	}
}

func runRunsStats(_ *cobra.Command, _ []string) {
	store := openLedger()
	defer store.Close()

	stats, err := store.WeaponStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-5s  %-11s  %s\n", "Archetype", "Runs", "Projectiles", "Last used")
	fmt.Printf("  %-10s  %-5s  %-11s  %s\n", "---------", "----", "-----------", "---------")
	for _, u := range stats {
		fmt.Printf("  %-10s  %-5d  %-11d  %s\n", u.Kind, u.Runs, u.Fired, u.LastUsed.Format("2006-01-02 15:04"))
	}
}

func runRunsClear(_ *cobra.Command, _ []string) {
	store := openLedger()
	defer store.Close()

	if err := store.ClearRuns(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
		return
	}
	fmt.Println("Run ledger cleared.")
}
