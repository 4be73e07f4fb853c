package combat

import (
	"github.com/vovakirdan/strafe/internal/core"
)

// WeaponStats is the mutable state a spawn strategy reads and consumes.
type WeaponStats struct {
	CooldownDuration float64 // seconds between shots, enforced by the strategy
	CooldownElapsed  float64 // seconds since the strategy last consumed the cooldown
	Ammo             int     // rounds left; negative means unlimited
	Pellets          int     // projectiles per shell for spread weapons
	Projectile       ProjectileProfile
}

// Ready reports whether the cooldown has fully elapsed.
func (s WeaponStats) Ready() bool {
	return s.CooldownElapsed >= s.CooldownDuration
}

// Consume restarts the cooldown. Only strategies call this.
func (s *WeaponStats) Consume() {
	s.CooldownElapsed = 0
}

// HasAmmo reports whether n rounds are available.
func (s WeaponStats) HasAmmo(n int) bool {
	return s.Ammo < 0 || s.Ammo >= n
}

// UseAmmo removes n rounds. Unlimited ammo is never decremented.
func (s *WeaponStats) UseAmmo(n int) {
	if s.Ammo < 0 {
		return
	}
	s.Ammo -= n
	if s.Ammo < 0 {
		s.Ammo = 0
	}
}

// SpawnStrategy decides what a held trigger does: cooldown gating, ammo
// consumption and how many projectiles to emit. It must keep no state of its
// own; everything mutable lives in the Shot it is handed.
type SpawnStrategy interface {
	Kind() string
	Fire(shot *Shot)
}

// Shot is the firing context handed to a spawn strategy.
type Shot struct {
	Owner   core.ActorID
	Origin  core.Vec2 // barrel end
	Angle   float64
	Pressed bool // trigger went down this tick
	Weapon  *WeaponStats
	Actor   *ActorStats
	RNG     *SimpleRNG

	spawned []Projectile
}

// Emit spawns one projectile at angle with the weapon's profile.
func (s *Shot) Emit(angle float64) {
	s.EmitProfile(angle, s.Weapon.Projectile)
}

// EmitProfile spawns one projectile at angle with an explicit profile.
func (s *Shot) EmitProfile(angle float64, p ProjectileProfile) {
	s.spawned = append(s.spawned, SpawnProjectile(0, s.Owner, s.Origin, angle, p))
	if s.Actor != nil {
		s.Actor.Fired++
	}
}

// EmitJittered spawns one projectile with its angle jittered by the profile spread.
func (s *Shot) EmitJittered() {
	p := s.Weapon.Projectile
	angle := s.Angle
	if p.Spread > 0 && s.RNG != nil {
		angle += s.RNG.Symmetric(p.Spread)
	}
	s.EmitProfile(angle, p)
}

// Spawned returns the projectiles emitted so far. IDs are assigned by the world.
func (s *Shot) Spawned() []Projectile {
	return s.spawned
}

// Weapon is one weapon instance owned by exactly one actor.
type Weapon struct {
	Name     string
	Geometry WeaponGeometry
	Stats    WeaponStats
	Strategy SpawnStrategy
	Pose     BarrelPose

	triggerHeld bool
}

// NewWeapon creates a weapon with an unaimed pose.
func NewWeapon(name string, g WeaponGeometry, s WeaponStats, strategy SpawnStrategy) *Weapon {
	return &Weapon{
		Name:     name,
		Geometry: g,
		Stats:    s,
		Strategy: strategy,
		Pose:     NewBarrelPose(core.Vec2{}, g),
	}
}

// Advance accumulates cooldown time. It runs every tick regardless of the trigger.
func (w *Weapon) Advance(dt float64) {
	w.Stats.CooldownElapsed += dt
}

// PullTrigger evaluates the trigger for this tick and, while it is held,
// hands the shot to the spawn strategy. It reports whether the strategy ran.
func (w *Weapon) PullTrigger(held bool, shot *Shot) bool {
	pressed := held && !w.triggerHeld
	w.triggerHeld = held
	if !held || w.Strategy == nil {
		return false
	}
	shot.Pressed = pressed
	shot.Weapon = &w.Stats
	w.Strategy.Fire(shot)
	return true
}

// Kind returns the archetype of the weapon's strategy.
func (w *Weapon) Kind() string {
	if w.Strategy == nil {
		return ""
	}
	return w.Strategy.Kind()
}
