package combat

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/strafe/internal/core"
)

// identityView maps screen coordinates one-to-one onto world coordinates.
type identityView struct{}

func (identityView) ScreenToWorld(p core.Vec2) (core.Vec2, bool) { return p, true }

func testWorld(t *testing.T, parallel bool) *World {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 12345
	w := NewWorld(cfg, WithParallel(parallel))

	g := WeaponGeometry{BarrelHeight: 2, BarrelLength: 1}
	stats := WeaponStats{
		CooldownDuration: 0.1,
		Ammo:             -1,
		Projectile:       ProjectileProfile{Speed: 30, Spread: 0.5, MaxTravel: 15},
	}
	hero := NewActor(0, "hero", core.Vec2{}, ActorStats{MovementSpeed: 50}, NewWeapon("gun", g, stats, repeater{}))
	pad := NewActor(1, "pad", core.V(20, 20), ActorStats{MovementSpeed: 40, ControllerDriven: true}, NewWeapon("gun", g, stats, jitterRepeater{}))
	if err := w.AddActor(hero); err != nil {
		t.Fatalf("AddActor() error: %v", err)
	}
	if err := w.AddActor(pad); err != nil {
		t.Fatalf("AddActor() error: %v", err)
	}
	return w
}

// jitterRepeater is a repeater whose shots use the actor's spread RNG.
type jitterRepeater struct{}

func (jitterRepeater) Kind() string { return "jitter" }

func (jitterRepeater) Fire(s *Shot) {
	if !s.Weapon.Ready() {
		return
	}
	s.Weapon.Consume()
	s.EmitJittered()
}

func scriptedInput(tick int) core.TickInput {
	in := core.NewTickInput(1.0 / 60)
	in.Viewport = identityView{}

	kb := core.InputFrame{
		Down:          tick%40 < 20,
		Left:          tick%30 >= 15,
		Pointer:       core.V(float64(tick%17)-8, 12),
		PointerActive: true,
		Shoot:         tick%9 < 6,
	}
	in.SetActor(0, kb)

	pad := core.InputFrame{
		MoveAxis:        core.V(math.Sin(float64(tick)/10), math.Cos(float64(tick)/7)),
		MoveActive:      true,
		LookAxis:        core.V(-1, float64(tick%5)-2),
		LookActive:      true,
		ControllerShoot: tick%4 != 0,
	}
	in.SetActor(1, pad)
	return in
}

func TestWorldEndToEndFront(t *testing.T) {
	w := NewWorld(core.DefaultConfig())
	a := NewActor(0, "hero", core.Vec2{}, ActorStats{MovementSpeed: 50}, nil)
	if err := w.AddActor(a); err != nil {
		t.Fatalf("AddActor() error: %v", err)
	}

	in := core.NewTickInput(1)
	in.SetActor(0, core.InputFrame{Down: true})
	if _, err := w.Step(in); err != nil {
		t.Fatalf("Step() error: %v", err)
	}

	got, _ := w.Actor(0)
	if !approxVec(got.Position, core.V(0, 50)) {
		t.Errorf("position = %v, expected (0, 50)", got.Position)
	}
	if got.Facing != Front {
		t.Errorf("facing = %v, expected Front", got.Facing)
	}
}

func TestWorldDuplicateActor(t *testing.T) {
	w := NewWorld(core.DefaultConfig())
	if err := w.AddActor(NewActor(3, "a", core.Vec2{}, ActorStats{}, nil)); err != nil {
		t.Fatalf("AddActor() error: %v", err)
	}
	err := w.AddActor(NewActor(3, "b", core.Vec2{}, ActorStats{}, nil))
	if !errors.Is(err, ErrDuplicateActor) {
		t.Errorf("AddActor() error = %v, expected ErrDuplicateActor", err)
	}
}

func TestWorldDeterminism(t *testing.T) {
	w1 := testWorld(t, false)
	w2 := testWorld(t, false)

	for i := range 300 {
		if _, err := w1.Step(scriptedInput(i)); err != nil {
			t.Fatalf("run 1 tick %d: %v", i, err)
		}
		if _, err := w2.Step(scriptedInput(i)); err != nil {
			t.Fatalf("run 2 tick %d: %v", i, err)
		}
	}

	snap1 := w1.Snapshot()
	snap2 := w2.Snapshot()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Tick != 300 {
		t.Errorf("Tick = %d, expected 300", snap1.Tick)
	}
}

func TestWorldParallelMatchesSequential(t *testing.T) {
	seq := testWorld(t, false)
	par := testWorld(t, true)

	for i := range 200 {
		r1, err := seq.Step(scriptedInput(i))
		if err != nil {
			t.Fatalf("sequential tick %d: %v", i, err)
		}
		r2, err := par.Step(scriptedInput(i))
		if err != nil {
			t.Fatalf("parallel tick %d: %v", i, err)
		}
		if r1.Spawned() != r2.Spawned() || len(r1.Retired) != len(r2.Retired) {
			t.Fatalf("tick %d: results differ: %+v vs %+v", i, r1, r2)
		}
	}

	s1, s2 := seq.Snapshot(), par.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("parallel hash %d, expected %d", s2.Hash(), s1.Hash())
	}
}

func TestWorldStepErrorCommitsNothing(t *testing.T) {
	w := testWorld(t, false)
	for i := range 30 {
		if _, err := w.Step(scriptedInput(i)); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	before := w.Snapshot()

	in := scriptedInput(30)
	pad := in.Actor(1)
	pad.MoveAxis = core.V(math.NaN(), 0)
	in.SetActor(1, pad)

	_, err := w.Step(in)
	if !errors.Is(err, ErrSectorInvariant) {
		t.Fatalf("Step() error = %v, expected ErrSectorInvariant", err)
	}

	after := w.Snapshot()
	if after.Hash() != before.Hash() {
		t.Errorf("state changed after aborted tick: %d -> %d", before.Hash(), after.Hash())
	}
	if after.Tick != before.Tick {
		t.Errorf("Tick = %d, expected %d", after.Tick, before.Tick)
	}
}

func TestWorldSpawnedMoveNextTick(t *testing.T) {
	w := testWorld(t, false)

	in := core.NewTickInput(0.1)
	in.Viewport = identityView{}
	in.SetActor(0, core.InputFrame{Pointer: core.V(10, 0), PointerActive: true, Shoot: true})

	r, err := w.Step(in)
	if err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if len(r.Shots) != 1 || r.Shots[0].Actor != 0 {
		t.Fatalf("Shots = %+v, expected one shot from actor 0", r.Shots)
	}

	hero, _ := w.Actor(0)
	var spawned Projectile
	for _, p := range w.Projectiles() {
		if p.ID == r.Shots[0].Projectiles[0] {
			spawned = p
		}
	}
	if spawned.Traveled != 0 || spawned.Position != hero.Weapon.Pose.End {
		t.Errorf("new projectile moved on its spawn tick: %+v", spawned)
	}

	if _, err := w.Step(core.NewTickInput(0.1)); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	for _, p := range w.Projectiles() {
		if p.ID == spawned.ID && !approx(p.Traveled, 3) {
			t.Errorf("Traveled = %v after one tick, expected 3", p.Traveled)
		}
	}
}

func TestWorldAimMissRetainsPose(t *testing.T) {
	w := testWorld(t, false)

	in := core.NewTickInput(0.1)
	in.Viewport = identityView{}
	in.SetActor(0, core.InputFrame{Pointer: core.V(-10, 5), PointerActive: true})
	if _, err := w.Step(in); err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	hero, _ := w.Actor(0)
	aimed := hero.Weapon.Pose

	// No pointer and movement: the pose follows the pivot but keeps its angle.
	in = core.NewTickInput(0.1)
	in.Debug = core.DebugBasic
	in.SetActor(0, core.InputFrame{Right: true})
	r, err := w.Step(in)
	if err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	hero, _ = w.Actor(0)
	if hero.Weapon.Pose.Angle != aimed.Angle || hero.Weapon.Pose.Flip != aimed.Flip {
		t.Errorf("pose angle changed on aim miss")
	}
	if !approxVec(hero.Weapon.Pose.Pivot, hero.Position) {
		t.Errorf("pose pivot = %v, expected actor position %v", hero.Weapon.Pose.Pivot, hero.Position)
	}

	missed := false
	for _, id := range r.AimMisses {
		if id == 0 {
			missed = true
		}
	}
	if !missed {
		t.Errorf("AimMisses = %v, expected actor 0", r.AimMisses)
	}
	if len(r.Segments) == 0 {
		t.Error("expected debug segments with DebugBasic")
	}
}
