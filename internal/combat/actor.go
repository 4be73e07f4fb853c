package combat

import (
	"github.com/vovakirdan/strafe/internal/core"
)

// ActorStats holds balancing values for an actor.
type ActorStats struct {
	MovementSpeed    float64 // world units per second, > 0
	ControllerDriven bool    // selects the controller input source
	Fired            int     // projectiles emitted by this actor
}

// Actor is a controllable entity with a position, a facing state and one weapon.
type Actor struct {
	ID       core.ActorID
	Name     string
	Position core.Vec2
	Facing   FacingState
	Stats    ActorStats
	Weapon   *Weapon

	rng SimpleRNG
}

// NewActor creates an actor standing at pos.
func NewActor(id core.ActorID, name string, pos core.Vec2, stats ActorStats, weapon *Weapon) *Actor {
	a := &Actor{
		ID:       id,
		Name:     name,
		Position: pos,
		Facing:   Idle,
		Stats:    stats,
		Weapon:   weapon,
	}
	if weapon != nil {
		weapon.Pose = NewBarrelPose(weapon.Geometry.Pivot(pos), weapon.Geometry)
	}
	return a
}

// clone returns a deep copy that a tick can mutate and later discard.
func (a *Actor) clone() *Actor {
	c := *a
	if a.Weapon != nil {
		w := *a.Weapon
		c.Weapon = &w
	}
	return &c
}
