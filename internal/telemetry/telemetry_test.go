package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/strafe/internal/combat"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	values := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	return values
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Observe(combat.StepResult{
		Shots: []combat.ShotEvent{
			{Weapon: "rifle", Projectiles: []combat.ProjectileID{1}},
			{Weapon: "shotgun", Projectiles: []combat.ProjectileID{2, 3, 4}},
		},
		Retired: []combat.Retired{{ID: 9}},
		Live:    7,
	})
	m.Observe(combat.StepResult{Live: 5})
	m.TickFailed()

	values := gather(t, reg)
	expected := map[string]float64{
		"strafe_ticks_total":               2,
		"strafe_tick_errors_total":         1,
		"strafe_shots_total":               2,
		"strafe_projectiles_spawned_total": 4,
		"strafe_projectiles_retired_total": 1,
		"strafe_projectiles_live":          5,
	}
	for name, want := range expected {
		if got := values[name]; got != want {
			t.Errorf("%s = %v, expected %v", name, got, want)
		}
	}
}
