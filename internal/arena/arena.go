// Package arena assembles combat worlds from configuration and drives
// them through scripted input without a terminal attached.
package arena

import (
	"fmt"

	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/core"
	"github.com/vovakirdan/strafe/internal/registry"

	// Register weapon archetypes.
	_ "github.com/vovakirdan/strafe/internal/weapons"
)

// BuildWeapon creates a weapon from its profile, scaled by the balance.
func BuildWeapon(name string, wc config.WeaponConfig, b *config.Balance) (*combat.Weapon, error) {
	strategy, err := registry.Create(wc.Kind)
	if err != nil {
		return nil, fmt.Errorf("arena: weapon %q: %w", name, err)
	}

	geometry := combat.WeaponGeometry{
		BarrelHeight: wc.BarrelHeight,
		BarrelLength: wc.BarrelLength,
		Mount:        config.Vec(wc.Mount),
	}
	cooldown := b.Cooldown(wc.Cooldown)
	stats := combat.WeaponStats{
		CooldownDuration: cooldown,
		CooldownElapsed:  cooldown, // ready on the first tick
		Ammo:             wc.Ammo,
		Pellets:          wc.Pellets,
		Projectile: combat.ProjectileProfile{
			Speed:     wc.Projectile.Speed,
			Spread:    wc.Projectile.Spread,
			MaxTravel: wc.Projectile.MaxTravel,
		},
	}
	return combat.NewWeapon(name, geometry, stats, strategy), nil
}

// NewWorld builds a world with one actor per configured actor. Actor IDs
// are the actor's index in the configuration.
func NewWorld(cfg config.ArenaConfig, rc core.RuntimeConfig, opts ...combat.Option) (*combat.World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LookDistance > 0 {
		opts = append([]combat.Option{combat.WithLookDistance(cfg.LookDistance)}, opts...)
	}
	w := combat.NewWorld(rc, opts...)
	balance := config.NewBalance(cfg.Balance)

	for i, ac := range cfg.Actors {
		var weapon *combat.Weapon
		if ac.Weapon != "" {
			var err error
			weapon, err = BuildWeapon(ac.Weapon, cfg.Weapons[ac.Weapon], balance)
			if err != nil {
				return nil, err
			}
		}

		stats := combat.ActorStats{
			MovementSpeed:    balance.Speed(ac.Speed),
			ControllerDriven: ac.Controller,
		}
		actor := combat.NewActor(core.ActorID(i), ac.Name, config.Vec(ac.Position), stats, weapon)
		if err := w.AddActor(actor); err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
	}
	return w, nil
}

// Loadout cycles through the configured weapons for one actor.
type Loadout struct {
	cfg     config.ArenaConfig
	balance *config.Balance
	names   []string
	current int
}

// NewLoadout creates a loadout starting at the actor's configured weapon.
func NewLoadout(cfg config.ArenaConfig, actor int) *Loadout {
	l := &Loadout{
		cfg:     cfg,
		balance: config.NewBalance(cfg.Balance),
		names:   cfg.Loadout,
	}
	if actor >= 0 && actor < len(cfg.Actors) {
		for i, name := range l.names {
			if name == cfg.Actors[actor].Weapon {
				l.current = i
			}
		}
	}
	return l
}

// Current returns the name of the selected weapon.
func (l *Loadout) Current() string {
	if len(l.names) == 0 {
		return ""
	}
	return l.names[l.current]
}

// Next selects the following weapon and equips it on the actor.
func (l *Loadout) Next(w *combat.World, id core.ActorID) (string, error) {
	if len(l.names) == 0 {
		return "", nil
	}
	l.current = (l.current + 1) % len(l.names)
	name := l.names[l.current]

	weapon, err := BuildWeapon(name, l.cfg.Weapons[name], l.balance)
	if err != nil {
		return "", err
	}
	if err := w.Equip(id, weapon); err != nil {
		return "", fmt.Errorf("arena: %w", err)
	}
	return name, nil
}
