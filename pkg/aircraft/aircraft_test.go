// pkg/aircraft/aircraft_test.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aircraft

import (
	"math"
	"testing"

	"github.com/airportsim/surfaceops/pkg/airport"
)

func threeEdgeGraph() *airport.AirportGraph {
	g := &airport.AirportGraph{
		Vertices: []airport.Vertex{
			{ID: 0, Name: "gate"},
			{ID: 1, Name: "mid1"},
			{ID: 2, Name: "mid2"},
			{ID: 3, Name: "rwy"},
		},
		Edges: []airport.Edge{
			{ID: 0, Name: "e0", U: 0, V: 1, Length: 50},
			{ID: 1, Name: "e1", U: 1, V: 2, Length: 50},
			{ID: 2, Name: "e2", U: 2, V: 3, Length: 50},
		},
	}
	return g
}

func TestHasPlan(t *testing.T) {
	a := &Aircraft{Cost: math.Inf(1)}
	if a.HasPlan() {
		t.Error("infinite-cost aircraft should have no plan")
	}
	a.Cost = 10
	a.Path = []PathState{{Vertex: 0}}
	if !a.HasPlan() {
		t.Error("finite-cost aircraft with a path should have a plan")
	}
}

func TestDistanceToNextPointAndTargetVertex(t *testing.T) {
	g := threeEdgeGraph()
	a := &Aircraft{EdgePath: []int{0, 1, 2}, Pos: Pos{EdgeIndex: 0, Distance: 30}}
	if got, want := a.DistanceToNextPoint(g), 20.0; got != want {
		t.Errorf("DistanceToNextPoint = %v, want %v", got, want)
	}
	if got, want := a.TargetVertex(g), 1; got != want {
		t.Errorf("TargetVertex = %v, want %v", got, want)
	}
}

func TestUpcomingEdgesWithinSightLength(t *testing.T) {
	g := threeEdgeGraph()
	a := &Aircraft{EdgePath: []int{0, 1, 2}, Pos: Pos{EdgeIndex: 0, Distance: 40}}
	got := a.UpcomingEdges(g, 30)
	want := []string{"e0"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("UpcomingEdges = %v, want %v", got, want)
	}

	far := &Aircraft{EdgePath: []int{0, 1, 2}, Pos: Pos{EdgeIndex: 0, Distance: 40}}
	got = far.UpcomingEdges(g, 200)
	if len(got) == 0 {
		t.Error("UpcomingEdges with a long sight length should see ahead edges")
	}
}

func TestUpcomingEdgesNoneWhenFarFromEdgeEnd(t *testing.T) {
	g := threeEdgeGraph()
	a := &Aircraft{EdgePath: []int{0, 1, 2}, Pos: Pos{EdgeIndex: 0, Distance: 0}}
	if got := a.UpcomingEdges(g, 10); len(got) != 0 {
		t.Errorf("UpcomingEdges = %v, want none", got)
	}
}

func TestBuildFromInstanceUnknownGateIsError(t *testing.T) {
	g := threeEdgeGraph()
	models := map[string]*airport.AircraftModel{"heavy": {Name: "heavy", VMax: 10}}
	inst := &airport.Instance{Departures: []airport.DepartureSpec{
		{Gate: "nope", Runway: "rwy", Model: "heavy"},
	}}
	if _, err := BuildFromInstance(g, models, inst); err == nil {
		t.Fatal("expected an error for an unknown gate name")
	}
}

func TestBuildFromInstanceUnknownModelIsError(t *testing.T) {
	g := threeEdgeGraph()
	models := map[string]*airport.AircraftModel{"heavy": {Name: "heavy", VMax: 10}}
	inst := &airport.Instance{Departures: []airport.DepartureSpec{
		{Gate: "gate", Runway: "rwy", Model: "light"},
	}}
	if _, err := BuildFromInstance(g, models, inst); err == nil {
		t.Fatal("expected an error for an unknown model name")
	}
}

func TestBuildFromInstanceResolvesNames(t *testing.T) {
	g := threeEdgeGraph()
	models := map[string]*airport.AircraftModel{"heavy": {Name: "heavy", VMax: 10}}
	inst := &airport.Instance{Departures: []airport.DepartureSpec{
		{Gate: "gate", Runway: "rwy", Model: "heavy", AppearTime: 5},
	}}
	got, err := BuildFromInstance(g, models, inst)
	if err != nil {
		t.Fatalf("BuildFromInstance: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d aircraft, want 1", len(got))
	}
	a := got[0]
	if a.Start != 0 || a.Goal != 3 || a.AppearTime != 5 || a.Model.Name != "heavy" {
		t.Errorf("aircraft = %+v, not resolved as expected", a)
	}
	if !math.IsInf(a.Cost, 1) {
		t.Errorf("Cost = %v, want +Inf before planning", a.Cost)
	}
}
