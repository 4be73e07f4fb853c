package combat

import (
	"math"

	"github.com/vovakirdan/strafe/internal/core"
)

// ActorSnapshot is the observable state of one actor.
type ActorSnapshot struct {
	ID        core.ActorID
	Position  core.Vec2
	Facing    FacingState
	Fired     int
	Weapon    string
	Pose      BarrelPose
	Cooldown  float64
	Ammo      int
	RNGState  uint64
	HasWeapon bool
}

// Snapshot captures the full world state for determinism checks.
type Snapshot struct {
	Tick        uint64
	Actors      []ActorSnapshot
	Projectiles []Projectile
}

// Snapshot returns a copy of the current world state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        w.tick,
		Actors:      make([]ActorSnapshot, 0, len(w.actors)),
		Projectiles: make([]Projectile, w.projectiles.Len()),
	}
	copy(snap.Projectiles, w.projectiles.All())

	for _, a := range w.actors {
		as := ActorSnapshot{
			ID:       a.ID,
			Position: a.Position,
			Facing:   a.Facing,
			Fired:    a.Stats.Fired,
			RNGState: a.rng.State(),
		}
		if a.Weapon != nil {
			as.HasWeapon = true
			as.Weapon = a.Weapon.Name
			as.Pose = a.Weapon.Pose
			as.Cooldown = a.Weapon.Stats.CooldownElapsed
			as.Ammo = a.Weapon.Stats.Ammo
		}
		snap.Actors = append(snap.Actors, as)
	}
	return snap
}

func hashFloat(h uint64, f float64) uint64 {
	return h*31 + math.Float64bits(f)
}

func hashVec(h uint64, v core.Vec2) uint64 {
	return hashFloat(hashFloat(h, v.X), v.Y)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(len(snap.Actors))      //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Projectiles)) //#nosec G115 -- hash computation

	for _, a := range snap.Actors {
		h = h*31 + uint64(a.ID)     //#nosec G115 -- hash computation
		h = hashVec(h, a.Position)
		h = h*31 + uint64(a.Facing) //#nosec G115 -- hash computation
		h = h*31 + uint64(a.Fired)  //#nosec G115 -- hash computation
		h = hashVec(h, a.Pose.Position)
		h = hashVec(h, a.Pose.End)
		h = hashFloat(h, a.Pose.Angle)
		h = h*31 + uint64(a.Pose.Flip) //#nosec G115 -- hash computation
		h = hashFloat(h, a.Cooldown)
		h = h*31 + uint64(a.Ammo) //#nosec G115 -- hash computation
		h = h*31 + a.RNGState
	}

	for _, p := range snap.Projectiles {
		h = h*31 + uint64(p.ID)
		h = hashVec(h, p.Position)
		h = hashFloat(h, p.Angle)
		h = hashFloat(h, p.Traveled)
	}

	return h
}
