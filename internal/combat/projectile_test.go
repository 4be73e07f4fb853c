package combat

import (
	"math"
	"testing"

	"github.com/vovakirdan/strafe/internal/core"
)

func TestProjectileStraightLine(t *testing.T) {
	origin := core.V(2, 3)
	angle := 0.6
	p := SpawnProjectile(1, 0, origin, angle, ProjectileProfile{Speed: 30})

	dt := 1.0 / 60
	for i := 1; i <= 120; i++ {
		p.Advance(dt)
		elapsed := float64(i) * dt
		want := origin.Add(core.FromAngle(angle).Scale(30 * elapsed))
		if p.Position.Distance(want) > 1e-6 {
			t.Fatalf("tick %d: position %v, expected %v", i, p.Position, want)
		}
		if p.Angle != angle {
			t.Fatalf("tick %d: angle changed to %v", i, p.Angle)
		}
	}
}

func TestProjectilePositionAt(t *testing.T) {
	p := SpawnProjectile(1, 0, core.V(0, 0), math.Pi/2, ProjectileProfile{Speed: 10})
	if got := p.PositionAt(4); !approxVec(got, core.V(0, 4)) {
		t.Errorf("PositionAt(4) = %v, expected (0, 4)", got)
	}
}

func TestProjectilePoolRetires(t *testing.T) {
	pool := &ProjectilePool{}
	pool.Add(
		SpawnProjectile(1, 0, core.Vec2{}, 0, ProjectileProfile{Speed: 30, MaxTravel: 15}),
		SpawnProjectile(2, 0, core.Vec2{}, 0, ProjectileProfile{Speed: 10, MaxTravel: 0}),
	)

	retired := pool.Advance(0.25)
	if len(retired) != 0 {
		t.Fatalf("retired %d after 7.5 units, expected 0", len(retired))
	}

	retired = pool.Advance(0.25)
	if len(retired) != 1 || retired[0].ID != 1 {
		t.Fatalf("retired = %+v, expected projectile 1", retired)
	}
	if !approx(retired[0].Traveled, 15) {
		t.Errorf("retired traveled = %v, expected 15", retired[0].Traveled)
	}
	if pool.Len() != 1 || pool.All()[0].ID != 2 {
		t.Errorf("pool = %+v, expected only projectile 2", pool.All())
	}

	for range 1000 {
		pool.Advance(1)
	}
	if pool.Len() != 1 {
		t.Error("projectile without a travel limit must never retire")
	}
}

func TestProjectilePoolClone(t *testing.T) {
	pool := &ProjectilePool{}
	pool.Add(SpawnProjectile(1, 0, core.Vec2{}, 0, ProjectileProfile{Speed: 1}))

	c := pool.Clone()
	c.Advance(1)
	if pool.All()[0].Traveled != 0 {
		t.Error("advancing a clone changed the original pool")
	}
}
