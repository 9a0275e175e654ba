// pkg/simulator/tick.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simulator

import (
	"sort"

	"github.com/airportsim/surfaceops/pkg/aircraft"
)

// tick executes the ten-step per-tick protocol in order. No step
// observes state belonging to a later step.
func (s *Simulator) tick() {
	s.appearance()
	candidates := s.mutexCandidates()
	s.grantAndCommand(candidates)
	updateFronter(s.graph, s.traffic, s.onGraph)
	s.advance()
	s.runwayRemoval()
	updateFronter(s.graph, s.traffic, s.onGraph)
	s.conflictCheck()
	s.clearCommands()
	s.SimulationTime++
}

// appearance is step 1: at the start of every scheduling time unit, each
// planned aircraft whose actual_appear_time equals that time unit joins
// the graph. An actual_appear_time that is not a whole number of time
// units never matches, so such an aircraft never joins.
func (s *Simulator) appearance() {
	if s.cfg.TickPerTimeUnit <= 0 || s.SimulationTime%s.cfg.TickPerTimeUnit != 0 {
		return
	}
	schedTime := float64(s.SimulationTime) / float64(s.cfg.TickPerTimeUnit)

	ordered := make([]*aircraft.Aircraft, len(s.aircrafts))
	copy(ordered, s.aircrafts)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, a := range ordered {
		if !a.HasPlan() || s.appeared[a.ID] {
			continue
		}
		if a.ActualAppearTime != schedTime {
			continue
		}
		a.Pos = aircraft.Pos{EdgeIndex: 0, Distance: 0}
		s.appeared[a.ID] = true
		s.onGraph[a.ID] = a
		s.traffic.PushBack(s.graph.Edges[a.EdgePath[0]].Name, a)
	}
}

// mutexCandidates is step 2: among aircraft near an unheld check point,
// retain the one closest to it (ties broken by id) as that vertex's sole
// candidate for step 3.
func (s *Simulator) mutexCandidates() map[int]*aircraft.Aircraft {
	candidates := make(map[int]*aircraft.Aircraft)
	for _, a := range s.sortedOnGraph() {
		if a.DistanceToNextPoint(s.graph) > s.cfg.SafetyDistance {
			continue
		}
		v := a.TargetVertex(s.graph)
		if s.mutex[v] != nil {
			continue
		}
		cur, ok := candidates[v]
		if !ok {
			candidates[v] = a
			continue
		}
		ad, cd := a.DistanceToNextPoint(s.graph), cur.DistanceToNextPoint(s.graph)
		if ad < cd || (ad == cd && a.ID < cur.ID) {
			candidates[v] = a
		}
	}
	return candidates
}

// grantAndCommand is step 3: grant the mutex to each vertex's candidate
// if unheld, then issue GO to whichever aircraft holds the mutex at its
// target vertex and STOP to every other aircraft near a check point.
func (s *Simulator) grantAndCommand(candidates map[int]*aircraft.Aircraft) {
	for _, a := range s.sortedOnGraph() {
		if a.DistanceToNextPoint(s.graph) > s.cfg.SafetyDistance {
			continue
		}
		v := a.TargetVertex(s.graph)
		if candidates[v] == a && s.mutex[v] == nil {
			s.mutex[v] = a
		}
		if s.mutex[v] == a {
			a.Command = aircraft.CommandGo
		} else {
			a.Command = aircraft.CommandStop
			if s.lg != nil && s.mutex[v] != nil {
				s.lg.Debugf("simulator: %s holds at %s, waiting for %s", a.ID, s.graph.Vertices[v].Name, s.mutex[v].ID)
			}
		}
	}
}

// advance is step 5: every active aircraft computes its new velocity via
// the car-following controller, then moves by velocity/tick_per_time_unit,
// possibly crossing one or more check points.
func (s *Simulator) advance() {
	type result struct {
		accel, velocity float64
	}
	results := make(map[string]result, len(s.onGraph))
	for _, a := range s.sortedOnGraph() {
		d := distanceToPrev(s.graph, a)
		accel, vel := controllerStep(a, d, s.cfg.TickPerTimeUnit)
		results[a.ID] = result{accel, vel}
	}

	for _, a := range s.sortedOnGraph() {
		r := results[a.ID]
		applyControllerResult(a, r.accel, r.velocity, a.Model.VMax)
		s.crossCheckPoints(a)
	}
}

// crossCheckPoints advances a's position along its edge path, handling
// zero or more check-point crossings within this tick.
func (s *Simulator) crossCheckPoints(a *aircraft.Aircraft) {
	a.PassedCheckPoint = make(map[string]bool)

	l := a.Pos.Distance + a.Velocity/float64(s.cfg.TickPerTimeUnit)
	idx := a.Pos.EdgeIndex

	for l > s.graph.Edges[a.EdgePath[idx]].Length && idx+1 < len(a.EdgePath) {
		edge := &s.graph.Edges[a.EdgePath[idx]]
		l -= edge.Length
		a.PassedCheckPoint[edge.Name] = true
		s.mutex[edge.V] = nil
		s.traffic.RemoveIfFront(edge.Name, a)
		idx++
		s.traffic.PushBack(s.graph.Edges[a.EdgePath[idx]].Name, a)
	}

	if l > s.graph.Edges[a.EdgePath[idx]].Length {
		edge := &s.graph.Edges[a.EdgePath[idx]]
		a.PassedCheckPoint[edge.Name] = true
		s.mutex[edge.V] = nil
		s.traffic.RemoveIfFront(edge.Name, a)
		a.ReadyForRunway = true
	}

	a.Pos = aircraft.Pos{EdgeIndex: idx, Distance: l}
}

// runwayRemoval is step 6: aircraft that reached ready_for_runway leave
// the graph and are marked complete.
func (s *Simulator) runwayRemoval() {
	for _, a := range s.sortedOnGraph() {
		if !a.ReadyForRunway {
			continue
		}
		delete(s.onGraph, a.ID)
		a.ActualRunwayTime = float64(s.SimulationTime) / float64(s.cfg.TickPerTimeUnit)
		s.CompletedCount++
	}
}

// conflictCheck is step 8: report, but do not abort on, any pair of
// aircraft on the same edge closer than safety_distance.
func (s *Simulator) conflictCheck() {
	for _, a := range s.sortedOnGraph() {
		leader := a.PrevAircraft
		if leader == nil {
			continue
		}
		if _, stillActive := s.onGraph[leader.ID]; !stillActive {
			continue
		}
		if a.EdgePath[a.Pos.EdgeIndex] != leader.EdgePath[leader.Pos.EdgeIndex] {
			continue
		}
		if leader.Pos.Distance-a.Pos.Distance < s.cfg.SafetyDistance {
			s.handleConflict(a, leader)
		}
	}
}

// handleConflict logs a safety-distance violation. It is a diagnostic,
// not a fatal error: the simulation continues regardless.
func (s *Simulator) handleConflict(a, leader *aircraft.Aircraft) {
	if s.lg != nil {
		s.lg.Warnf("%v: %s is %.2f from leader %s, below safety_distance %.2f",
			ErrSafetyDistanceViolation, a.ID, leader.Pos.Distance-a.Pos.Distance, leader.ID, s.cfg.SafetyDistance)
	}
}

// clearCommands is step 9: shift command into prev_command and reset
// command to NO for the next tick.
func (s *Simulator) clearCommands() {
	for _, a := range s.sortedOnGraph() {
		a.PrevCommand = a.Command
		a.Command = aircraft.CommandNone
	}
}
