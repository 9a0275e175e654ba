// pkg/aircraft/aircraft.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aircraft defines the per-flight record shared by the planner,
// scheduler, and simulator: its planned path, derived edge path, and
// (during simulation) its kinematic state and command buffer.
package aircraft

import (
	"math"

	"github.com/airportsim/surfaceops/pkg/airport"
)

// Command is the instruction the simulator issues to an aircraft each
// tick.
type Command int

const (
	CommandNone Command = iota
	CommandGo
	CommandStop
)

// PathState is one (vertex, [earliest, latest]) entry of a planned path.
// Adjacent states share a vertex only when that state is a wait.
type PathState struct {
	Vertex   int
	Earliest float64
	Latest   float64
}

// Pos is the simulator's kinematic position: the index of the current
// edge in EdgePath, and the distance travelled along it.
type Pos struct {
	EdgeIndex int
	Distance  float64
}

// Aircraft is one scheduled departure. Fields above the "simulator
// runtime state" marker are written once by the scheduler and never
// touched again; fields below are reset and mutated every tick by the
// simulator.
type Aircraft struct {
	ID    string
	Index int

	Start     int // gate vertex id
	Goal      int // runway vertex id
	Model     *airport.AircraftModel
	ModelName string

	AppearTime       float64 // from the instance file
	ActualAppearTime float64 // AppearTime + sampled gate delay

	// Produced by the planner/scheduler.
	Path               []PathState
	EdgePath           []int // edge ids, derived from Path
	PushbackTime       float64
	ExpectedRunwayTime float64
	Cost               float64 // math.Inf(1) if the planner found no path

	ExpandedNodes  int
	GeneratedNodes int

	// Simulator runtime state.
	Pos              Pos
	Velocity         float64
	Acceleration     float64
	Command          Command
	PrevCommand      Command
	ReadyForRunway   bool
	ActualRunwayTime float64

	PassedCheckPoint map[string]bool
	PrevAircraft     *Aircraft

	StopReceived    int
	ZeroVelocityTick int
	WaitTick        int
}

// HasPlan reports whether the planner found a feasible path for this
// aircraft.
func (a *Aircraft) HasPlan() bool {
	return !math.IsInf(a.Cost, 1) && len(a.Path) > 0
}

// CurrentEdge returns the edge the aircraft currently occupies.
func (a *Aircraft) CurrentEdge(g *airport.AirportGraph) *airport.Edge {
	return &g.Edges[a.EdgePath[a.Pos.EdgeIndex]]
}

// CurrentEdgeName returns the name of the edge the aircraft currently
// occupies.
func (a *Aircraft) CurrentEdgeName(g *airport.AirportGraph) string {
	return g.Edges[a.EdgePath[a.Pos.EdgeIndex]].Name
}

// DistanceToNextPoint returns the remaining distance to the end of the
// current edge.
func (a *Aircraft) DistanceToNextPoint(g *airport.AirportGraph) float64 {
	return g.Edges[a.EdgePath[a.Pos.EdgeIndex]].Length - a.Pos.Distance
}

// TargetVertex returns the vertex the aircraft is currently approaching:
// the target end of its current edge.
func (a *Aircraft) TargetVertex(g *airport.AirportGraph) int {
	return g.Edges[a.EdgePath[a.Pos.EdgeIndex]].V
}

// SimulationInit resets all runtime and statistics fields in preparation
// for a simulator run; called once per aircraft before simulation_time
// reaches zero.
func (a *Aircraft) SimulationInit() {
	a.StopReceived = 0
	a.ZeroVelocityTick = 0
	a.WaitTick = 0
	a.Command = CommandNone
	a.PrevCommand = CommandNone
	a.ReadyForRunway = false
	a.ActualRunwayTime = 0
	a.Pos = Pos{}
	a.Velocity = 0
	a.Acceleration = 0
	a.PrevAircraft = nil
	a.PassedCheckPoint = nil
}

// UpcomingEdges returns, in order, the names of the edges the aircraft
// will cross within sightLength distance of its current position. It is
// not part of the tick protocol; tests use it to assert lookahead
// behavior.
func (a *Aircraft) UpcomingEdges(g *airport.AirportGraph, sightLength float64) []string {
	var edges []string
	remaining := sightLength - a.DistanceToNextPoint(g)
	if remaining <= 0 {
		return edges
	}
	i := a.Pos.EdgeIndex
	edges = append(edges, g.Edges[a.EdgePath[i]].Name)
	i++
	for remaining > 0 && i < len(a.EdgePath) {
		e := &g.Edges[a.EdgePath[i]]
		if remaining > e.Length {
			edges = append(edges, e.Name)
		}
		remaining -= e.Length
		i++
	}
	return edges
}
