package weapons

import (
	"math"
	"testing"

	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/core"
	"github.com/vovakirdan/strafe/internal/registry"
)

var geometry = combat.WeaponGeometry{BarrelHeight: 2, BarrelLength: 1}

// fire runs a weapon for the given trigger sequence and returns the
// number of projectiles spawned on each tick.
func fire(w *combat.Weapon, dt float64, held []bool) []int {
	rng := combat.NewSimpleRNG(99)
	actor := combat.ActorStats{}
	counts := make([]int, len(held))
	for i, h := range held {
		w.Advance(dt)
		shot := combat.Shot{Origin: core.V(1, 1), Angle: 0.3, Actor: &actor, RNG: &rng}
		w.PullTrigger(h, &shot)
		counts[i] = len(shot.Spawned())
	}
	return counts
}

func equalCounts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestArchetypesRegistered(t *testing.T) {
	for _, kind := range []string{KindSingle, KindAutomatic, KindSpread, KindStream} {
		s, err := registry.Create(kind)
		if err != nil {
			t.Errorf("Create(%q) error: %v", kind, err)
			continue
		}
		if s.Kind() != kind {
			t.Errorf("Create(%q).Kind() = %q", kind, s.Kind())
		}
	}
}

func TestSingleFiresOncePerPress(t *testing.T) {
	w := combat.NewWeapon("pistol", geometry, combat.WeaponStats{CooldownDuration: 0.05, Ammo: -1}, Single{})
	held := []bool{true, true, true, false, true, true}
	want := []int{1, 0, 0, 0, 1, 0}

	if got := fire(w, 0.1, held); !equalCounts(got, want) {
		t.Errorf("Single spawned %v, expected %v", got, want)
	}
}

func TestSingleRespectsCooldown(t *testing.T) {
	w := combat.NewWeapon("pistol", geometry, combat.WeaponStats{CooldownDuration: 1, Ammo: -1}, Single{})
	// Tapping faster than the cooldown only fires when the cooldown has elapsed.
	held := []bool{false, false, false, false, false, false, false, false, false, false, true, false, true}
	got := fire(w, 0.1, held)
	if got[10] != 1 || got[12] != 0 {
		t.Errorf("Single spawned %v, expected a shot at tick 10 only", got)
	}
}

func TestAutomaticCadence(t *testing.T) {
	w := combat.NewWeapon("rifle", geometry, combat.WeaponStats{CooldownDuration: 0.25, Ammo: -1}, Automatic{})
	held := make([]bool, 10)
	for i := range held {
		held[i] = true
	}

	total := 0
	for _, n := range fire(w, 0.125, held) {
		total += n
	}
	// Ready on ticks 1, 3, 5, 7 and 9 (elapsed reaches 0.25 every second tick).
	if total != 5 {
		t.Errorf("Automatic spawned %d over 10 ticks, expected 5", total)
	}
}

func TestAutomaticAmmo(t *testing.T) {
	w := combat.NewWeapon("rifle", geometry, combat.WeaponStats{CooldownDuration: 0, Ammo: 3}, Automatic{})
	got := fire(w, 0.1, []bool{true, true, true, true, true})
	want := []int{1, 1, 1, 0, 0}
	if !equalCounts(got, want) {
		t.Errorf("Automatic spawned %v, expected %v", got, want)
	}
	if w.Stats.Ammo != 0 {
		t.Errorf("Ammo = %d, expected 0", w.Stats.Ammo)
	}
}

func TestSpreadPellets(t *testing.T) {
	stats := combat.WeaponStats{
		CooldownDuration: 0.5,
		Ammo:             2,
		Pellets:          5,
		Projectile:       combat.ProjectileProfile{Speed: 20, Spread: 0.3, MaxTravel: 8},
	}
	w := combat.NewWeapon("shotgun", geometry, stats, Spread{})

	rng := combat.NewSimpleRNG(5)
	w.Advance(1)
	shot := combat.Shot{Angle: 1, RNG: &rng}
	w.PullTrigger(true, &shot)

	spawned := shot.Spawned()
	if len(spawned) != 5 {
		t.Fatalf("Spread spawned %d, expected 5", len(spawned))
	}
	distinct := false
	for _, p := range spawned {
		if math.Abs(p.Angle-1) > 0.3 {
			t.Errorf("pellet angle %v outside spread", p.Angle)
		}
		if p.Angle != spawned[0].Angle {
			distinct = true
		}
	}
	if !distinct {
		t.Error("expected pellets with different angles")
	}
	if w.Stats.Ammo != 1 {
		t.Errorf("Ammo = %d after one shell, expected 1", w.Stats.Ammo)
	}
}

func TestSpreadDefaultPellets(t *testing.T) {
	w := combat.NewWeapon("shotgun", geometry, combat.WeaponStats{Ammo: -1}, Spread{})
	got := fire(w, 0.1, []bool{true})
	if got[0] != DefaultPellets {
		t.Errorf("Spread spawned %d, expected %d", got[0], DefaultPellets)
	}
}

func TestStreamCatchesUp(t *testing.T) {
	stats := combat.WeaponStats{CooldownDuration: 0.02, Ammo: -1}

	w := combat.NewWeapon("flamer", geometry, stats, Stream{})
	got := fire(w, 0.05, []bool{true})
	if got[0] != 2 {
		t.Errorf("Stream spawned %d after 0.05s, expected 2", got[0])
	}

	w = combat.NewWeapon("flamer", geometry, stats, Stream{})
	got = fire(w, 1, []bool{true})
	if got[0] != maxStreamBurst {
		t.Errorf("Stream spawned %d after a long tick, expected %d", got[0], maxStreamBurst)
	}
}

func TestStreamAmmo(t *testing.T) {
	w := combat.NewWeapon("flamer", geometry, combat.WeaponStats{CooldownDuration: 0.01, Ammo: 3}, Stream{})
	got := fire(w, 1, []bool{true, true})
	if got[0] != 3 || got[1] != 0 {
		t.Errorf("Stream spawned %v, expected [3 0]", got)
	}
}

func TestReleasedTriggerNeverFires(t *testing.T) {
	strategies := []combat.SpawnStrategy{Single{}, Automatic{}, Spread{}, Stream{}}
	for _, s := range strategies {
		w := combat.NewWeapon(s.Kind(), geometry, combat.WeaponStats{Ammo: -1}, s)
		for _, n := range fire(w, 0.1, []bool{false, false, false}) {
			if n != 0 {
				t.Errorf("%s fired with the trigger released", s.Kind())
			}
		}
	}
}
