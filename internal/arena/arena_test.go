package arena

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/strafe/internal/combat"
	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/core"
)

type countingObserver struct {
	ticks int
}

func (c *countingObserver) Observe(combat.StepResult) { c.ticks++ }

func defaultWorld(t *testing.T) *combat.World {
	t.Helper()
	cfg := config.DefaultArenaConfig()
	rc := cfg.RuntimeConfig()
	rc.Seed = 2024
	w, err := NewWorld(cfg, rc)
	if err != nil {
		t.Fatalf("NewWorld() error: %v", err)
	}
	return w
}

func TestNewWorldFromDefaults(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	w := defaultWorld(t)

	if len(w.Actors()) != len(cfg.Actors) {
		t.Fatalf("actors = %d, expected %d", len(w.Actors()), len(cfg.Actors))
	}

	marine, ok := w.Actor(0)
	if !ok {
		t.Fatal("actor 0 missing")
	}
	if marine.Weapon == nil || marine.Weapon.Kind() != "automatic" {
		t.Errorf("marine weapon = %+v, expected an automatic rifle", marine.Weapon)
	}
	wantSpeed := 50 * (1 + 0.3*0.4)
	if math.Abs(marine.Stats.MovementSpeed-wantSpeed) > 1e-9 {
		t.Errorf("marine speed = %v, expected %v", marine.Stats.MovementSpeed, wantSpeed)
	}
	if p := marine.Weapon.Stats.Projectile; p.Speed != 30 || p.Spread != 0.5 || p.MaxTravel != 15 {
		t.Errorf("rifle projectile = %+v, expected speed 30 spread 0.5 distance 15", p)
	}

	gunner, _ := w.Actor(1)
	if !gunner.Stats.ControllerDriven {
		t.Error("gunner should be controller driven")
	}
}

func TestNewWorldUnknownArchetype(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	w := cfg.Weapons["rifle"]
	w.Kind = "railgun"
	cfg.Weapons["rifle"] = w

	if _, err := NewWorld(cfg, cfg.RuntimeConfig()); err == nil {
		t.Error("NewWorld() expected error for an unregistered archetype")
	}
}

func TestRunDemoScript(t *testing.T) {
	script, err := config.LoadScript("")
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}

	obs := &countingObserver{}
	sum, err := Run(context.Background(), defaultWorld(t), script, RunOptions{Observers: []Observer{obs}})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if sum.Ticks != script.Ticks() {
		t.Errorf("Ticks = %d, expected %d", sum.Ticks, script.Ticks())
	}
	if obs.ticks != sum.Ticks {
		t.Errorf("observer saw %d ticks, expected %d", obs.ticks, sum.Ticks)
	}
	if sum.Projectiles == 0 || sum.Shots == 0 {
		t.Errorf("Summary = %+v, expected shots", sum)
	}
	if sum.FiredByKind["automatic"] == 0 || sum.FiredByKind["spread"] == 0 {
		t.Errorf("FiredByKind = %v, expected automatic and spread shots", sum.FiredByKind)
	}
	if sum.Projectiles != sum.Retired+sum.Live {
		t.Errorf("projectiles %d != retired %d + live %d", sum.Projectiles, sum.Retired, sum.Live)
	}
}

func TestRunDeterministic(t *testing.T) {
	script, _ := config.LoadScript("")

	s1, err := Run(context.Background(), defaultWorld(t), script, RunOptions{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	s2, err := Run(context.Background(), defaultWorld(t), script, RunOptions{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if s1.Hash != s2.Hash {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash, s2.Hash)
	}
}

func TestRunCancelled(t *testing.T) {
	script, _ := config.LoadScript("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := Run(ctx, defaultWorld(t), script, RunOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
	if sum.Ticks != 0 {
		t.Errorf("Ticks = %d, expected 0", sum.Ticks)
	}
}

func TestRunStopsOnSectorInvariant(t *testing.T) {
	script := config.Script{
		Actors: []config.ActorScript{
			{Actor: 1, Segments: []config.Segment{
				{Ticks: 5, Move: []float64{0, 1}},
				{Ticks: 5, Move: []float64{math.NaN(), 1}},
			}},
		},
	}

	sum, err := Run(context.Background(), defaultWorld(t), script, RunOptions{})
	if !errors.Is(err, combat.ErrSectorInvariant) {
		t.Fatalf("Run() error = %v, expected ErrSectorInvariant", err)
	}
	if sum.Ticks != 5 {
		t.Errorf("Ticks = %d, expected 5 committed ticks", sum.Ticks)
	}
}

func TestFrameFor(t *testing.T) {
	seg := config.Segment{Move: []float64{-0.4, 2}, Aim: []float64{3, 4}, Look: []float64{1, 0}, Fire: true}

	kb := FrameFor(seg, false)
	if !kb.Left || kb.Right || kb.Up || !kb.Down {
		t.Errorf("keyboard keys = %+v", kb)
	}
	if !kb.PointerActive || kb.Pointer != core.V(3, 4) || !kb.Shoot || kb.ControllerShoot {
		t.Errorf("keyboard pointer/trigger = %+v", kb)
	}

	pad := FrameFor(seg, true)
	if !pad.MoveActive || pad.MoveAxis != core.V(-0.4, 2) {
		t.Errorf("controller move = %+v", pad)
	}
	if !pad.LookActive || !pad.ControllerShoot || pad.Shoot {
		t.Errorf("controller look/trigger = %+v", pad)
	}
}

func TestLoadoutCycles(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	w := defaultWorld(t)
	l := NewLoadout(cfg, 0)

	if l.Current() != "rifle" {
		t.Fatalf("Current() = %q, expected rifle", l.Current())
	}
	for _, want := range []string{"pistol", "shotgun", "flamer", "rifle"} {
		name, err := l.Next(w, 0)
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if name != want {
			t.Errorf("Next() = %q, expected %q", name, want)
		}
		marine, _ := w.Actor(0)
		if marine.Weapon.Name != want {
			t.Errorf("equipped %q, expected %q", marine.Weapon.Name, want)
		}
	}

	if _, err := l.Next(w, 42); !errors.Is(err, combat.ErrUnknownActor) {
		t.Errorf("Next(unknown) error = %v, expected ErrUnknownActor", err)
	}
}
