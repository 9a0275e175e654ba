// pkg/airport/config_test.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import (
	"strings"
	"testing"

	"github.com/airportsim/surfaceops/pkg/rand"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
config:
  wait_cost: 1
  wait_time: 5
  safety_time: 10
  safety_distance: 3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TickPerTimeUnit != 1 {
		t.Errorf("TickPerTimeUnit = %d, want default of 1", cfg.TickPerTimeUnit)
	}
	if cfg.SafetyTime != 10 {
		t.Errorf("SafetyTime = %v, want 10", cfg.SafetyTime)
	}
}

func TestLoadConfigRejectsMismatchedDistribution(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
config:
  gate_delay_time: [0, 5, 10]
  gate_delay_prob: [0.5, 0.5]
`)
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), ErrProbLengthMismatch.Error()) {
		t.Fatalf("got %v, want an error mentioning %q", err, ErrProbLengthMismatch)
	}
}

func TestLoadModelsResolvesVelocityDistribution(t *testing.T) {
	path := writeTemp(t, "models.yaml", `
models:
  - name: heavy
    v_max: 80
    a_max: 2
    a_brake: 3
    safety_distance: 10
    velocity: [70, 80]
    prob: [0.3, 0.7]
`)
	models, err := LoadModels(path)
	if err != nil {
		t.Fatalf("LoadModels: %v", err)
	}
	heavy, ok := models["heavy"]
	if !ok {
		t.Fatal("expected a \"heavy\" model")
	}
	s := rand.New(1)
	for i := 0; i < 20; i++ {
		v := heavy.CruiseVelocity(s)
		if v != 70 && v != 80 {
			t.Errorf("CruiseVelocity() = %v, want 70 or 80", v)
		}
	}
}

func TestLoadModelsRejectsEmptyProbability(t *testing.T) {
	path := writeTemp(t, "models.yaml", `
models:
  - name: bad
    velocity: [10, 20]
    prob: [0, 0]
`)
	_, err := LoadModels(path)
	if err == nil || !strings.Contains(err.Error(), ErrEmptyProb.Error()) {
		t.Fatalf("got %v, want an error mentioning %q", err, ErrEmptyProb)
	}
}

func TestGenerateInstanceIsReproducibleGivenASeed(t *testing.T) {
	g := &AirportGraph{
		Vertices: []Vertex{
			{ID: 0, Name: "gateA", Kind: KindGate},
			{ID: 1, Name: "rwyA", Kind: KindRunway},
		},
	}
	g.gates = []int{0}
	g.runways = []int{1}
	models := map[string]*AircraftModel{"m1": {Name: "m1", VMax: 10}}

	gen := func() *Instance {
		s := rand.New(42)
		inst, err := GenerateInstance(g, models, nil, s, 5, 1, 3)
		if err != nil {
			t.Fatalf("GenerateInstance: %v", err)
		}
		return inst
	}
	a, b := gen(), gen()
	if len(a.Departures) != 5 || len(b.Departures) != 5 {
		t.Fatalf("got %d/%d departures, want 5", len(a.Departures), len(b.Departures))
	}
	for i := range a.Departures {
		if a.Departures[i] != b.Departures[i] {
			t.Errorf("departure %d differs between runs with the same seed: %+v vs %+v", i, a.Departures[i], b.Departures[i])
		}
	}
}

func TestGenerateInstanceUsesDepartRoutesWhenGiven(t *testing.T) {
	g := &AirportGraph{
		Vertices: []Vertex{
			{ID: 0, Name: "gateA", Kind: KindGate},
			{ID: 1, Name: "gateB", Kind: KindGate},
			{ID: 2, Name: "rwyA", Kind: KindRunway},
		},
	}
	g.gates = []int{0, 1}
	g.runways = []int{2}
	models := map[string]*AircraftModel{"m1": {Name: "m1", VMax: 10}}
	routes := []DepartRoute{{Gate: "gateB", Runway: "rwyA"}}

	s := rand.New(7)
	inst, err := GenerateInstance(g, models, routes, s, 3, 0, 0)
	if err != nil {
		t.Fatalf("GenerateInstance: %v", err)
	}
	for _, d := range inst.Departures {
		if d.Gate != "gateB" || d.Runway != "rwyA" {
			t.Errorf("departure %+v did not follow the single allowed route", d)
		}
	}
}
