// Package config provides YAML-based arena configuration loading,
// balance presets and scripted input for headless runs.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/strafe/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid arena config")

// ArenaConfig contains everything needed to assemble a combat world.
type ArenaConfig struct {
	Runtime      RuntimeSection          `yaml:"runtime"`
	LookDistance float64                 `yaml:"look_distance"` // controller synthetic aim distance
	Debug        bool                    `yaml:"debug"`
	Actors       []ActorConfig           `yaml:"actors"`
	Weapons      map[string]WeaponConfig `yaml:"weapons"`
	Loadout      []string                `yaml:"loadout"` // weapon cycle order for the interactive arena
	Balance      BalanceConfig           `yaml:"balance"`
}

// RuntimeSection holds the tick loop settings.
type RuntimeSection struct {
	TickRate int   `yaml:"tick_rate"`
	Seed     int64 `yaml:"seed"`
	Parallel bool  `yaml:"parallel"`
}

// ActorConfig defines one actor placed in the arena.
type ActorConfig struct {
	Name       string    `yaml:"name"`
	Position   []float64 `yaml:"position"` // [x, y]
	Speed      float64   `yaml:"speed"`
	Controller bool      `yaml:"controller"`
	Weapon     string    `yaml:"weapon"` // key into ArenaConfig.Weapons
}

// WeaponConfig defines a weapon profile.
type WeaponConfig struct {
	Kind         string           `yaml:"kind"` // registered archetype
	BarrelHeight float64          `yaml:"barrel_height"`
	BarrelLength float64          `yaml:"barrel_length"`
	Mount        []float64        `yaml:"mount"` // [x, y] pivot offset
	Cooldown     float64          `yaml:"cooldown"`
	Ammo         int              `yaml:"ammo"` // negative means unlimited
	Pellets      int              `yaml:"pellets"`
	Projectile   ProjectileConfig `yaml:"projectile"`
}

// ProjectileConfig defines the flight profile of a weapon's projectiles.
type ProjectileConfig struct {
	Speed     float64 `yaml:"speed"`
	Spread    float64 `yaml:"spread"`
	MaxTravel float64 `yaml:"max_travel"`
}

// Vec converts a YAML [x, y] pair to a vector. Missing values are zero.
func Vec(v []float64) core.Vec2 {
	var out core.Vec2
	if len(v) > 0 {
		out.X = v[0]
	}
	if len(v) > 1 {
		out.Y = v[1]
	}
	return out
}

// RuntimeConfig returns the core runtime config described by the arena.
func (c ArenaConfig) RuntimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if c.Runtime.TickRate > 0 {
		rc.TickRate = c.Runtime.TickRate
	}
	rc.Seed = c.Runtime.Seed
	rc.Parallel = c.Runtime.Parallel
	if c.Debug {
		rc.Debug = core.DebugBasic
	}
	return rc
}

// Validate checks the values the simulation relies on.
// Archetype kinds are checked later, when the registry builds the weapon.
func (c ArenaConfig) Validate() error {
	if len(c.Actors) == 0 {
		return fmt.Errorf("%w: no actors", ErrInvalidConfig)
	}
	for i, a := range c.Actors {
		if a.Speed <= 0 {
			return fmt.Errorf("%w: actor %d (%s): speed must be positive", ErrInvalidConfig, i, a.Name)
		}
		if len(a.Position) != 0 && len(a.Position) != 2 {
			return fmt.Errorf("%w: actor %d (%s): position must be [x, y]", ErrInvalidConfig, i, a.Name)
		}
		if a.Weapon == "" {
			continue
		}
		if _, ok := c.Weapons[a.Weapon]; !ok {
			return fmt.Errorf("%w: actor %d (%s): unknown weapon %q", ErrInvalidConfig, i, a.Name, a.Weapon)
		}
	}
	for name, w := range c.Weapons {
		if w.Kind == "" {
			return fmt.Errorf("%w: weapon %q: kind is required", ErrInvalidConfig, name)
		}
		if w.Cooldown < 0 {
			return fmt.Errorf("%w: weapon %q: cooldown must not be negative", ErrInvalidConfig, name)
		}
		if w.BarrelHeight < 0 || w.BarrelLength < 0 {
			return fmt.Errorf("%w: weapon %q: barrel geometry must not be negative", ErrInvalidConfig, name)
		}
		if w.Projectile.Speed < 0 || w.Projectile.Spread < 0 {
			return fmt.Errorf("%w: weapon %q: projectile speed and spread must not be negative", ErrInvalidConfig, name)
		}
		if len(w.Mount) != 0 && len(w.Mount) != 2 {
			return fmt.Errorf("%w: weapon %q: mount must be [x, y]", ErrInvalidConfig, name)
		}
	}
	for _, name := range c.Loadout {
		if _, ok := c.Weapons[name]; !ok {
			return fmt.Errorf("%w: loadout references unknown weapon %q", ErrInvalidConfig, name)
		}
	}
	return nil
}
