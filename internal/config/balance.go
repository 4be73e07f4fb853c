package config

import (
	"fmt"
	"math"
)

// BalancePreset represents a named balance level.
type BalancePreset string

const (
	BalanceEasy   BalancePreset = "easy"
	BalanceNormal BalancePreset = "normal"
	BalanceHard   BalancePreset = "hard"
	BalanceFixed  BalancePreset = "fixed"
)

// BalanceConfig scales actor and weapon values from a single level.
type BalanceConfig struct {
	Preset  BalancePreset  `yaml:"preset"`
	Level   float64        `yaml:"level"` // 0.0 = easy, 1.0 = hard
	Scaling BalanceScaling `yaml:"scaling"`
}

// BalanceScaling defines the magnitude of balance changes at level 1.
type BalanceScaling struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // fraction added to movement speed
	CooldownReduction float64 `yaml:"cooldown_reduction"` // fraction removed from weapon cooldowns
}

// ParsePreset validates a preset name.
func ParsePreset(s string) (BalancePreset, error) {
	switch p := BalancePreset(s); p {
	case BalanceEasy, BalanceNormal, BalanceHard, BalanceFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown balance preset %q (want easy, normal, hard or fixed)", s)
}

// LevelForPreset returns the balance level for a preset.
func LevelForPreset(preset BalancePreset) float64 {
	switch preset {
	case BalanceEasy:
		return 0.0
	case BalanceNormal:
		return 0.3
	case BalanceHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyBalancePreset modifies the config based on a balance preset.
// The fixed preset leaves every value as loaded.
func ApplyBalancePreset(cfg *ArenaConfig, preset BalancePreset) {
	cfg.Balance.Preset = preset
	if preset == BalanceFixed {
		return
	}
	cfg.Balance.Level = LevelForPreset(preset)
}

// Balance calculates scaled actor and weapon values.
type Balance struct {
	cfg   BalanceConfig
	level float64
}

// NewBalance creates a balance calculator.
func NewBalance(cfg BalanceConfig) *Balance {
	return &Balance{
		cfg:   cfg,
		level: clampF(cfg.Level, 0.0, 1.0),
	}
}

// Enabled reports whether values are scaled at all.
func (b *Balance) Enabled() bool {
	return b.cfg.Preset != BalanceFixed
}

// Level returns the effective balance level (0.0 to 1.0).
func (b *Balance) Level() float64 {
	if !b.Enabled() {
		return 0
	}
	return b.level
}

// Speed returns the scaled movement speed.
func (b *Balance) Speed(base float64) float64 {
	// Speed increases from base to base * (1 + speedMultiplier)
	return base * (1.0 + b.Level()*b.cfg.Scaling.SpeedMultiplier)
}

// Cooldown returns the scaled weapon cooldown.
func (b *Balance) Cooldown(base float64) float64 {
	reduction := clampF(b.Level()*b.cfg.Scaling.CooldownReduction, 0.0, 0.9)
	return base * (1.0 - reduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
