// pkg/scheduler/scheduler.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package scheduler orders per-aircraft planning calls under one of two
// heuristics (FCFS, FLFS) and owns the ReservationTable that each Planner
// call is checked against and commits into.
package scheduler

import (
	"math"
	"sort"

	"github.com/airportsim/surfaceops/pkg/aircraft"
	"github.com/airportsim/surfaceops/pkg/airport"
	"github.com/airportsim/surfaceops/pkg/log"
	"github.com/airportsim/surfaceops/pkg/planner"
	"github.com/airportsim/surfaceops/pkg/rand"
	"github.com/airportsim/surfaceops/pkg/util"
)

// Strategy is a tagged variant selecting the insertion order; FCFS and
// FLFS differ only in the one priority function below, so there is no
// need for a polymorphic Scheduler hierarchy.
type Strategy int

const (
	FCFS Strategy = iota
	FLFS
)

func (s Strategy) String() string {
	if s == FLFS {
		return "FLFS"
	}
	return "FCFS"
}

// Scheduler plans all departures in an instance in the chosen strategy's
// order, committing each produced plan to a fresh ReservationTable.
type Scheduler struct {
	graph   *airport.AirportGraph
	cfg     *airport.Config
	planner *planner.Planner
	stream  *rand.Stream
	lg      *log.Logger

	Reservations *planner.ReservationTable
}

// New constructs a Scheduler. lg may be nil.
func New(g *airport.AirportGraph, cfg *airport.Config, stream *rand.Stream, lg *log.Logger) *Scheduler {
	return &Scheduler{
		graph:   g,
		cfg:     cfg,
		planner: planner.New(g, cfg, lg),
		stream:  stream,
		lg:      lg,
	}
}

// ClearPlans resets the reservation table and every aircraft's
// planner-produced fields, so the same aircraft slice can be scheduled
// again under a different strategy.
func (s *Scheduler) ClearPlans(aircrafts []*aircraft.Aircraft) {
	s.Reservations = planner.NewReservationTable()
	for _, a := range aircrafts {
		a.Path = nil
		a.EdgePath = nil
		a.PushbackTime = 0
		a.ExpectedRunwayTime = 0
		a.Cost = 0
		a.ActualAppearTime = 0
		a.ExpandedNodes = 0
		a.GeneratedNodes = 0
	}
}

type priorityKey struct {
	primary float64
	appear  float64
	id      string
}

// Run plans every aircraft in the order strategy prescribes, mutating
// each aircraft's Path/EdgePath/PushbackTime/ExpectedRunwayTime/Cost in
// place. Aircraft the planner cannot route are left with Cost = +Inf and
// no committed plan; the run continues with the rest.
func (s *Scheduler) Run(strategy Strategy, aircrafts []*aircraft.Aircraft) {
	s.Reservations = planner.NewReservationTable()

	order := util.DuplicateSlice(aircrafts)

	keys := make(map[string]priorityKey, len(order))
	for _, a := range order {
		a.ActualAppearTime = a.AppearTime + s.cfg.GateDelay.Sample(s.stream)
		switch strategy {
		case FLFS:
			rem := s.planner.EstimateRemaining(a.Goal, a.Model, a.Start)
			keys[a.ID] = priorityKey{primary: a.ActualAppearTime + rem, appear: a.ActualAppearTime, id: a.ID}
		default: // FCFS
			keys[a.ID] = priorityKey{primary: a.AppearTime, appear: a.AppearTime, id: a.ID}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		ki, kj := keys[order[i].ID], keys[order[j].ID]
		if ki.primary != kj.primary {
			return ki.primary < kj.primary
		}
		if ki.appear != kj.appear {
			return ki.appear < kj.appear
		}
		return ki.id < kj.id
	})

	for _, a := range order {
		s.planOne(a)
	}
}

func (s *Scheduler) planOne(a *aircraft.Aircraft) {
	earliestStart := s.Reservations.EarliestFreeVertexTime(a.Start, a.ActualAppearTime)
	res, err := s.planner.Plan(s.Reservations, a.Start, a.Goal, a.Model, earliestStart)
	if err != nil {
		a.Cost = math.Inf(1)
		a.ExpandedNodes, a.GeneratedNodes = res.ExpandedNodes, res.GeneratedNodes
		if s.lg != nil {
			s.lg.Warnf("scheduler: aircraft %s has no feasible plan", a.ID)
		}
		return
	}

	a.Path = res.Path
	a.EdgePath = res.EdgePath
	a.Cost = res.Cost
	a.ExpectedRunwayTime = res.ExpectedRunwayTime
	a.ExpandedNodes = res.ExpandedNodes
	a.GeneratedNodes = res.GeneratedNodes
	a.PushbackTime = firstDepartureTime(res.Path, a.Start)

	s.commit(a)
}

// firstDepartureTime returns the time the aircraft first leaves its
// start vertex: the Earliest time of the first path state whose vertex
// differs from start.
func firstDepartureTime(path []aircraft.PathState, start int) float64 {
	for i := 1; i < len(path); i++ {
		if path[i].Vertex != start {
			return path[i-1].Earliest
		}
	}
	if len(path) > 0 {
		return path[len(path)-1].Earliest
	}
	return 0
}

// commit writes the plan's path into the reservation table per §4.3: the
// padded interval of each edge traversal is reserved on both the edge and
// its destination vertex; waits reserve only their own unpadded interval
// on the vertex. The starting gate is held from appear time through
// pushback, and the goal runway from arrival through a sampled runway
// delay.
func (s *Scheduler) commit(a *aircraft.Aircraft) {
	half := s.cfg.SafetyTime / 2
	path := a.Path

	s.Reservations.ReserveVertex(a.Start, a.ActualAppearTime, a.PushbackTime)

	edgeIdx := 0
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		if cur.Vertex == prev.Vertex {
			s.Reservations.ReserveVertex(prev.Vertex, prev.Earliest, cur.Earliest)
			continue
		}
		eid := a.EdgePath[edgeIdx]
		edgeIdx++
		lo, hi := prev.Earliest-half, cur.Earliest+half
		s.Reservations.ReserveEdge(eid, lo, hi)
		s.Reservations.ReserveVertex(cur.Vertex, lo, hi)
	}

	delay := s.cfg.RunwayDelay.Sample(s.stream)
	s.Reservations.ReserveVertex(a.Goal, a.ExpectedRunwayTime, a.ExpectedRunwayTime+delay)
}
