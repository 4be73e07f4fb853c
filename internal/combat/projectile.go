package combat

import (
	"github.com/vovakirdan/strafe/internal/core"
)

// ProjectileProfile is the weapon-specific flight profile of one shot.
type ProjectileProfile struct {
	Speed     float64 // world units per second
	Spread    float64 // max angle jitter in radians, applied at spawn
	MaxTravel float64 // retirement distance; <= 0 never retires
}

// ProjectileID identifies a projectile inside a world.
type ProjectileID uint64

// Projectile is a straight-line, constant-velocity shot.
type Projectile struct {
	ID        ProjectileID
	Owner     core.ActorID
	Origin    core.Vec2
	Position  core.Vec2
	Angle     float64 // radians, fixed at spawn
	Spread    float64
	Speed     float64
	MaxTravel float64
	Traveled  float64
}

// SpawnProjectile creates a projectile at origin flying at angle.
func SpawnProjectile(id ProjectileID, owner core.ActorID, origin core.Vec2, angle float64, p ProjectileProfile) Projectile {
	return Projectile{
		ID:        id,
		Owner:     owner,
		Origin:    origin,
		Position:  origin,
		Angle:     angle,
		Spread:    p.Spread,
		Speed:     p.Speed,
		MaxTravel: p.MaxTravel,
	}
}

// PositionAt returns where the projectile is after traveling distance d.
func (p Projectile) PositionAt(d float64) core.Vec2 {
	return p.Origin.Add(core.FromAngle(p.Angle).Scale(d))
}

// Advance moves the projectile for dt seconds. Position is derived from the
// origin so that it never drifts off the firing line.
func (p *Projectile) Advance(dt float64) {
	p.Traveled += p.Speed * dt
	p.Position = p.PositionAt(p.Traveled)
}

// Spent reports whether the projectile reached its travel limit.
func (p Projectile) Spent() bool {
	return p.MaxTravel > 0 && p.Traveled >= p.MaxTravel
}

// Retired is reported for each projectile removed during a tick.
type Retired struct {
	ID       ProjectileID
	Owner    core.ActorID
	Position core.Vec2
	Traveled float64
}

// ProjectilePool holds the live projectiles of a world.
type ProjectilePool struct {
	live []Projectile
}

// Len returns the number of live projectiles.
func (pp *ProjectilePool) Len() int {
	return len(pp.live)
}

// All returns the live projectiles. The slice must not be modified.
func (pp *ProjectilePool) All() []Projectile {
	return pp.live
}

// Add appends newly spawned projectiles.
func (pp *ProjectilePool) Add(ps ...Projectile) {
	pp.live = append(pp.live, ps...)
}

// Advance moves every live projectile and retires the ones that reached
// their travel limit this tick.
func (pp *ProjectilePool) Advance(dt float64) []Retired {
	var retired []Retired
	kept := pp.live[:0]
	for i := range pp.live {
		p := pp.live[i]
		p.Advance(dt)
		if p.Spent() {
			retired = append(retired, Retired{
				ID:       p.ID,
				Owner:    p.Owner,
				Position: p.Position,
				Traveled: p.Traveled,
			})
			continue
		}
		kept = append(kept, p)
	}
	pp.live = kept
	return retired
}

// Clone returns an independent copy of the pool.
func (pp *ProjectilePool) Clone() *ProjectilePool {
	live := make([]Projectile, len(pp.live))
	copy(live, pp.live)
	return &ProjectilePool{live: live}
}
