package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

//go:embed defaults/demo.yaml
var defaultScriptYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Runtime: RuntimeSection{
			TickRate: 60,
		},
		LookDistance: 30,
		Actors: []ActorConfig{
			{Name: "marine", Position: []float64{0, 0}, Speed: 50, Weapon: "rifle"},
			{Name: "gunner", Position: []float64{40, 0}, Speed: 45, Controller: true, Weapon: "shotgun"},
		},
		Weapons: map[string]WeaponConfig{
			"pistol": {
				Kind:         "single",
				BarrelHeight: 1.5,
				BarrelLength: 4,
				Mount:        []float64{6, 0},
				Cooldown:     0.2,
				Ammo:         -1,
				Projectile:   ProjectileConfig{Speed: 40, Spread: 0.05, MaxTravel: 25},
			},
			"rifle": {
				Kind:         "automatic",
				BarrelHeight: 2,
				BarrelLength: 6,
				Mount:        []float64{6, 0},
				Cooldown:     0.15,
				Ammo:         -1,
				Projectile:   ProjectileConfig{Speed: 30, Spread: 0.5, MaxTravel: 15},
			},
			"shotgun": {
				Kind:         "spread",
				BarrelHeight: 2,
				BarrelLength: 7,
				Mount:        []float64{6, 0},
				Cooldown:     0.8,
				Ammo:         24,
				Pellets:      6,
				Projectile:   ProjectileConfig{Speed: 35, Spread: 0.35, MaxTravel: 12},
			},
			"flamer": {
				Kind:         "stream",
				BarrelHeight: 2.5,
				BarrelLength: 5,
				Mount:        []float64{6, 0},
				Cooldown:     0.03,
				Ammo:         400,
				Projectile:   ProjectileConfig{Speed: 18, Spread: 0.25, MaxTravel: 7},
			},
		},
		Loadout: []string{"rifle", "pistol", "shotgun", "flamer"},
		Balance: BalanceConfig{
			Preset: BalanceNormal,
			Level:  0.3,
			Scaling: BalanceScaling{
				SpeedMultiplier:   0.4,
				CooldownReduction: 0.3,
			},
		},
	}
}
