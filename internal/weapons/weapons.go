// Package weapons implements the spawn strategies for each weapon archetype.
// Every strategy is stateless: cooldown, ammo and RNG live in the Shot.
package weapons

import (
	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/registry"
)

// Archetype kinds.
const (
	KindSingle    = "single"
	KindAutomatic = "automatic"
	KindSpread    = "spread"
	KindStream    = "stream"
)

const (
	// DefaultPellets is used by spread weapons configured without a pellet count.
	DefaultPellets = 6
	// maxStreamBurst caps how many particles a stream emits in one tick after a long frame.
	maxStreamBurst = 4
)

func init() {
	registry.Register(KindSingle, "one round per trigger press", func() combat.SpawnStrategy { return Single{} })
	registry.Register(KindAutomatic, "fires every cooldown while held", func() combat.SpawnStrategy { return Automatic{} })
	registry.Register(KindSpread, "one shell of jittered pellets per cooldown", func() combat.SpawnStrategy { return Spread{} })
	registry.Register(KindStream, "continuous short-range particles", func() combat.SpawnStrategy { return Stream{} })
}

// Single fires one projectile on the tick the trigger goes down.
type Single struct{}

// Kind implements combat.SpawnStrategy.
func (Single) Kind() string { return KindSingle }

// Fire implements combat.SpawnStrategy.
func (Single) Fire(s *combat.Shot) {
	if !s.Pressed || !s.Weapon.Ready() || !s.Weapon.HasAmmo(1) {
		return
	}
	s.Weapon.Consume()
	s.Weapon.UseAmmo(1)
	s.EmitJittered()
}

// Automatic fires one projectile every cooldown while the trigger is held.
type Automatic struct{}

// Kind implements combat.SpawnStrategy.
func (Automatic) Kind() string { return KindAutomatic }

// Fire implements combat.SpawnStrategy.
func (Automatic) Fire(s *combat.Shot) {
	if !s.Weapon.Ready() || !s.Weapon.HasAmmo(1) {
		return
	}
	s.Weapon.Consume()
	s.Weapon.UseAmmo(1)
	s.EmitJittered()
}

// Spread fires a shell of pellets, each with its own angle jitter.
// One shell costs one round.
type Spread struct{}

// Kind implements combat.SpawnStrategy.
func (Spread) Kind() string { return KindSpread }

// Fire implements combat.SpawnStrategy.
func (Spread) Fire(s *combat.Shot) {
	if !s.Weapon.Ready() || !s.Weapon.HasAmmo(1) {
		return
	}
	s.Weapon.Consume()
	s.Weapon.UseAmmo(1)

	pellets := s.Weapon.Pellets
	if pellets <= 0 {
		pellets = DefaultPellets
	}
	for range pellets {
		s.EmitJittered()
	}
}

// Stream emits particles at a fixed rate. A long tick emits the particles
// it owes, up to maxStreamBurst, so the stream density does not depend on
// the frame rate.
type Stream struct{}

// Kind implements combat.SpawnStrategy.
func (Stream) Kind() string { return KindStream }

// Fire implements combat.SpawnStrategy.
func (Stream) Fire(s *combat.Shot) {
	if !s.Weapon.Ready() {
		return
	}

	n := 1
	if d := s.Weapon.CooldownDuration; d > 0 {
		n = int(s.Weapon.CooldownElapsed / d)
	}
	n = min(n, maxStreamBurst)
	if !s.Weapon.HasAmmo(1) {
		return
	}
	s.Weapon.Consume()

	for range n {
		if !s.Weapon.HasAmmo(1) {
			break
		}
		s.Weapon.UseAmmo(1)
		s.EmitJittered()
	}
}
