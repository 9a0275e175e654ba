// pkg/simulator/frontvehicle.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simulator

import (
	"github.com/airportsim/surfaceops/pkg/aircraft"
	"github.com/airportsim/surfaceops/pkg/airport"
)

// updateFronter recomputes every active aircraft's PrevAircraft pointer
// from the current Traffic state. It is called twice per tick (steps 4
// and 7 of the protocol): once before the advance pass so the
// car-following controller has a leader to react to, and again after the
// advance pass so the conflict check sees post-move positions.
func updateFronter(g *airport.AirportGraph, traffic *Traffic, onGraph map[string]*aircraft.Aircraft) {
	for _, edgeName := range traffic.EdgeNames() {
		elems := traffic.Elements(edgeName)
		for i := range elems {
			if i == 0 {
				continue
			}
			elems[i].PrevAircraft = elems[i-1]
		}
		if len(elems) == 0 {
			continue
		}
		front := elems[0]
		front.PrevAircraft = nearestAcrossIntersection(g, traffic, front)
	}
}

// nearestAcrossIntersection finds the aircraft closest to the
// intersection among the rear-most aircraft on every edge leaving the
// target vertex of front's current edge.
func nearestAcrossIntersection(g *airport.AirportGraph, traffic *Traffic, front *aircraft.Aircraft) *aircraft.Aircraft {
	target := front.TargetVertex(g)

	var best *aircraft.Aircraft
	for _, eid := range g.OutEdges(target) {
		name := g.Edges[eid].Name
		cand := traffic.Back(name)
		if cand == nil {
			continue
		}
		if best == nil || cand.Pos.Distance < best.Pos.Distance {
			best = cand
		}
	}
	return best
}

// distanceToPrev returns the along-path gap between a and its leader,
// whether they share an edge or the leader has already crossed into the
// next one.
func distanceToPrev(g *airport.AirportGraph, a *aircraft.Aircraft) float64 {
	leader := a.PrevAircraft
	if leader == nil {
		return 0
	}
	if leader.EdgePath[leader.Pos.EdgeIndex] == a.EdgePath[a.Pos.EdgeIndex] {
		return leader.Pos.Distance - a.Pos.Distance
	}
	return a.DistanceToNextPoint(g) + leader.Pos.Distance
}
