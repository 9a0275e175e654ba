// pkg/scheduler/scheduler_test.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scheduler

import (
	"math"
	"testing"

	"github.com/airportsim/surfaceops/pkg/aircraft"
	"github.com/airportsim/surfaceops/pkg/airport"
	"github.com/airportsim/surfaceops/pkg/rand"
)

// sharedEdgeGraph builds two gates feeding the same single-lane edge into
// one runway, so two aircraft cannot cross it at the same time.
func sharedEdgeGraph() *airport.AirportGraph {
	g := &airport.AirportGraph{}
	g.Vertices = []airport.Vertex{
		{ID: 0, Name: "gateA", Kind: airport.KindGate},
		{ID: 1, Name: "gateB", Kind: airport.KindGate},
		{ID: 2, Name: "merge", Kind: airport.KindIntersection},
		{ID: 3, Name: "rwy", Kind: airport.KindRunway},
	}
	g.Edges = []airport.Edge{
		{ID: 0, Name: "e0", U: 0, V: 2, Length: 50},
		{ID: 1, Name: "e1", U: 1, V: 2, Length: 50},
		{ID: 2, Name: "e2", U: 2, V: 3, Length: 50},
	}
	g.Vertices[0].OutEdges = []int{0}
	g.Vertices[1].OutEdges = []int{1}
	g.Vertices[2].OutEdges = []int{2}
	return g
}

func flatConfig() *airport.Config {
	return &airport.Config{WaitCost: 1, WaitTime: 5, SafetyTime: 0}
}

func testModel() *airport.AircraftModel {
	return &airport.AircraftModel{Name: "m1", VMax: 10, AMax: 2, ABrake: 3, SafetyDistance: 5}
}

func TestRunFCFSOrdersByAppearTime(t *testing.T) {
	g := sharedEdgeGraph()
	cfg := flatConfig()
	s := New(g, cfg, rand.New(1), nil)

	aircrafts := []*aircraft.Aircraft{
		{ID: "late", Start: 1, Goal: 3, Model: testModel(), AppearTime: 10},
		{ID: "early", Start: 0, Goal: 3, Model: testModel(), AppearTime: 0},
	}
	s.Run(FCFS, aircrafts)

	for _, a := range aircrafts {
		if !a.HasPlan() {
			t.Fatalf("aircraft %s has no plan", a.ID)
		}
	}
	var early, late *aircraft.Aircraft
	for _, a := range aircrafts {
		if a.ID == "early" {
			early = a
		} else {
			late = a
		}
	}
	if early.ExpectedRunwayTime > late.ExpectedRunwayTime {
		t.Errorf("FCFS should have let the earlier-appearing aircraft reach the runway first: early=%v late=%v",
			early.ExpectedRunwayTime, late.ExpectedRunwayTime)
	}
}

func TestRunSerializesSharedEdgeCrossing(t *testing.T) {
	g := sharedEdgeGraph()
	cfg := flatConfig()
	s := New(g, cfg, rand.New(1), nil)

	aircrafts := []*aircraft.Aircraft{
		{ID: "a0", Start: 0, Goal: 3, Model: testModel(), AppearTime: 0},
		{ID: "a1", Start: 1, Goal: 3, Model: testModel(), AppearTime: 0},
	}
	s.Run(FCFS, aircrafts)

	for _, a := range aircrafts {
		if !a.HasPlan() {
			t.Fatalf("aircraft %s has no plan", a.ID)
		}
	}

	// Both must cross edge e2 (the shared merge->runway edge); their
	// reserved windows on it must not overlap.
	interval := func(a *aircraft.Aircraft, edgeName string) (float64, float64, bool) {
		edgeIdx := 0
		for i := 1; i < len(a.Path); i++ {
			prev, cur := a.Path[i-1], a.Path[i]
			if cur.Vertex == prev.Vertex {
				continue
			}
			name := g.Edges[a.EdgePath[edgeIdx]].Name
			edgeIdx++
			if name == edgeName {
				return prev.Earliest, cur.Earliest, true
			}
		}
		return 0, 0, false
	}

	s0, e0, ok0 := interval(aircrafts[0], "e2")
	s1, e1, ok1 := interval(aircrafts[1], "e2")
	if !ok0 || !ok1 {
		t.Fatalf("expected both aircraft to cross e2: ok0=%v ok1=%v", ok0, ok1)
	}
	if s0 < e1 && s1 < e0 {
		t.Errorf("overlapping crossings of the shared edge: a0=[%v,%v) a1=[%v,%v)", s0, e0, s1, e1)
	}
}

func TestClearPlansResetsSchedulerFields(t *testing.T) {
	g := sharedEdgeGraph()
	cfg := flatConfig()
	s := New(g, cfg, rand.New(1), nil)

	aircrafts := []*aircraft.Aircraft{
		{ID: "a0", Start: 0, Goal: 3, Model: testModel(), AppearTime: 0},
	}
	s.Run(FCFS, aircrafts)
	if !aircrafts[0].HasPlan() {
		t.Fatal("expected a plan before ClearPlans")
	}

	s.ClearPlans(aircrafts)
	a := aircrafts[0]
	if a.Path != nil || a.EdgePath != nil || a.Cost != 0 || a.PushbackTime != 0 {
		t.Errorf("ClearPlans left stale fields: %+v", a)
	}
}

func TestFLFSString(t *testing.T) {
	if FLFS.String() != "FLFS" || FCFS.String() != "FCFS" {
		t.Errorf("Strategy.String() wrong: FLFS=%q FCFS=%q", FLFS.String(), FCFS.String())
	}
}

func TestRunLeavesUnreachableAircraftInfeasible(t *testing.T) {
	g := sharedEdgeGraph()
	cfg := &airport.Config{WaitCost: 1, WaitTime: 5, SafetyTime: math.Inf(1)}
	s := New(g, cfg, rand.New(1), nil)
	s.Reservations = nil

	aircrafts := []*aircraft.Aircraft{
		{ID: "a0", Start: 0, Goal: 3, Model: testModel(), AppearTime: 0},
	}
	s.Run(FCFS, aircrafts)
	s.Reservations.ReserveVertex(3, math.Inf(-1), math.Inf(1))

	aircrafts2 := []*aircraft.Aircraft{
		{ID: "blocked", Start: 1, Goal: 3, Model: testModel(), AppearTime: 0},
	}
	s.planOne(aircrafts2[0])
	if aircrafts2[0].HasPlan() {
		t.Error("expected no plan once the runway vertex is permanently blocked")
	}
	if !math.IsInf(aircrafts2[0].Cost, 1) {
		t.Errorf("Cost = %v, want +Inf", aircrafts2[0].Cost)
	}
}
