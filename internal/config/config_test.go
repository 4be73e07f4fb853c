package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedArenaMatchesDefault(t *testing.T) {
	var embedded ArenaConfig
	if err := yaml.Unmarshal(defaultArenaYAML, &embedded); err != nil {
		t.Fatalf("embedded arena.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(embedded, DefaultArenaConfig()) {
		t.Errorf("embedded arena.yaml differs from DefaultArenaConfig():\n%+v\n%+v", embedded, DefaultArenaConfig())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("embedded arena.yaml invalid: %v", err)
	}
}

func TestLoadArenaCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	data := []byte(`
runtime:
  tick_rate: 30
  seed: 7
actors:
  - name: solo
    speed: 10
    weapon: gun
weapons:
  gun:
    kind: automatic
    cooldown: 0.1
    ammo: -1
    mount: [1, 2]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArena(path)
	if err != nil {
		t.Fatalf("LoadArena() error: %v", err)
	}
	rc := cfg.RuntimeConfig()
	if rc.TickRate != 30 || rc.Seed != 7 {
		t.Errorf("RuntimeConfig() = %+v, expected tick rate 30 and seed 7", rc)
	}
	if got := Vec(cfg.Weapons["gun"].Mount); got.X != 1 || got.Y != 2 {
		t.Errorf("mount = %v, expected (1, 2)", got)
	}
}

func TestLoadArenaMissingFile(t *testing.T) {
	if _, err := LoadArena(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadArena(missing) expected error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ArenaConfig)
	}{
		{"no actors", func(c *ArenaConfig) { c.Actors = nil }},
		{"zero speed", func(c *ArenaConfig) { c.Actors[0].Speed = 0 }},
		{"bad position", func(c *ArenaConfig) { c.Actors[0].Position = []float64{1} }},
		{"unknown weapon", func(c *ArenaConfig) { c.Actors[0].Weapon = "bfg" }},
		{"negative cooldown", func(c *ArenaConfig) {
			w := c.Weapons["rifle"]
			w.Cooldown = -1
			c.Weapons["rifle"] = w
		}},
		{"missing kind", func(c *ArenaConfig) {
			w := c.Weapons["rifle"]
			w.Kind = ""
			c.Weapons["rifle"] = w
		}},
		{"unknown loadout", func(c *ArenaConfig) { c.Loadout = append(c.Loadout, "bfg") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultArenaConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestBalancePresets(t *testing.T) {
	tests := []struct {
		preset   BalancePreset
		speed    float64
		cooldown float64
	}{
		{BalanceEasy, 100, 1},
		{BalanceNormal, 112, 0.91},
		{BalanceHard, 128, 0.79},
		{BalanceFixed, 100, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultArenaConfig()
			cfg.Balance.Level = 0.5
			ApplyBalancePreset(&cfg, tt.preset)
			b := NewBalance(cfg.Balance)
			if got := b.Speed(100); !approx(got, tt.speed) {
				t.Errorf("Speed(100) = %v, expected %v", got, tt.speed)
			}
			if got := b.Cooldown(1); !approx(got, tt.cooldown) {
				t.Errorf("Cooldown(1) = %v, expected %v", got, tt.cooldown)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != BalanceHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) expected error")
	}
}

func TestDemoScript(t *testing.T) {
	s, err := LoadScript("")
	if err != nil {
		t.Fatalf("LoadScript() error: %v", err)
	}
	if s.Ticks() != 225 {
		t.Errorf("Ticks() = %d, expected 225", s.Ticks())
	}

	seg, ok := s.Actors[0].At(59)
	if !ok || !seg.Fire || Vec(seg.Move).Y != 1 {
		t.Errorf("At(59) = %+v, %v, expected the first segment", seg, ok)
	}
	seg, ok = s.Actors[0].At(60)
	if !ok || seg.Fire {
		t.Errorf("At(60) = %+v, %v, expected the second segment", seg, ok)
	}
	if _, ok := s.Actors[1].At(180); ok {
		t.Error("At(180) on a 180-tick timeline should report false")
	}
}

func TestParseScriptRejectsBadVectors(t *testing.T) {
	data := []byte(`
actors:
  - actor: 0
    segments:
      - ticks: 3
        move: [1, 2, 3]
`)
	if _, err := ParseScript(data); err == nil {
		t.Error("ParseScript() expected error for a 3-element vector")
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
