package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/strafe/internal/registry"
)

var weaponsCmd = &cobra.Command{
	Use:   "weapons",
	Short: "List weapon archetypes and configured profiles",
	Long: `Shows the registered spawn strategies and the weapon profiles of the
loaded arena config.`,
	Args: cobra.NoArgs,
	Run:  runWeapons,
}

func runWeapons(_ *cobra.Command, _ []string) {
	archetypes := registry.List()

	fmt.Println("Archetypes:")
	fmt.Println()

	maxKindLen := 4 // "Kind" header
	for _, a := range archetypes {
		maxKindLen = max(maxKindLen, len(a.Kind))
	}
	fmt.Printf("  %-*s  %s\n", maxKindLen, "Kind", "Description")
	fmt.Printf("  %-*s  %s\n", maxKindLen, "----", "-----------")
	for _, a := range archetypes {
		fmt.Printf("  %-*s  %s\n", maxKindLen, a.Kind, a.Description)
	}

	cfg, _, err := loadArena()
	if err != nil {
		fail("%v", err)
	}

	names := make([]string, 0, len(cfg.Weapons))
	for name := range cfg.Weapons {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Println("Profiles:")
	fmt.Println()
	fmt.Printf("  %-10s  %-10s  %-8s  %-6s  %-6s  %-6s  %s\n", "Name", "Kind", "Cooldown", "Ammo", "Speed", "Spread", "Range")
	fmt.Printf("  %-10s  %-10s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "----", "--------", "----", "-----", "------", "-----")
	for _, name := range names {
		w := cfg.Weapons[name]
		ammo := "inf"
		if w.Ammo >= 0 {
			ammo = fmt.Sprintf("%d", w.Ammo)
		}
		fmt.Printf("  %-10s  %-10s  %-8.2f  %-6s  %-6.1f  %-6.2f  %.1f\n",
			name, w.Kind, w.Cooldown, ammo, w.Projectile.Speed, w.Projectile.Spread, w.Projectile.MaxTravel)
	}
	fmt.Println()
	fmt.Println("Use Tab in 'strafe play' to cycle the loadout.")
}
