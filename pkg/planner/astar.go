// pkg/planner/astar.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"container/heap"
	"math"

	"github.com/davecgh/go-spew/spew"

	"github.com/airportsim/surfaceops/pkg/aircraft"
	"github.com/airportsim/surfaceops/pkg/airport"
	"github.com/airportsim/surfaceops/pkg/log"
)

// maxGeneratedNodes bounds A* expansion so a misconfigured reservation
// (e.g. an infinite safety_time walling off the goal forever) fails the
// search instead of generating wait-states without end.
const maxGeneratedNodes = 200_000

// spaceTimeState is the (vertex, arrival_time) search state.
type spaceTimeState struct {
	v int
	t float64
}

// astarNode is one entry in the open set.
type astarNode struct {
	state   spaceTimeState
	g       float64
	f       float64
	parent  *astarNode
	viaEdge int // edge id taken to reach this node, or -1 for a wait/start
	index   int
}

type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].state.t < h[j].state.t
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Planner runs the space-time A* search for one aircraft at a time
// against a ReservationTable supplied by the caller (the Scheduler).
type Planner struct {
	graph      *airport.AirportGraph
	cfg        *airport.Config
	heuristics *HeuristicCache
	lg         *log.Logger
}

// New constructs a Planner bound to g and cfg. lg may be nil.
func New(g *airport.AirportGraph, cfg *airport.Config, lg *log.Logger) *Planner {
	return &Planner{graph: g, cfg: cfg, heuristics: NewHeuristicCache(g), lg: lg}
}

// Result is the outcome of a single successful Plan call.
type Result struct {
	Path               []aircraft.PathState
	EdgePath           []int
	Cost               float64
	ExpectedRunwayTime float64
	ExpandedNodes      int
	GeneratedNodes     int
}

// EstimateRemaining returns the admissible heuristic's estimate of travel
// time from vertex v to goal for model, ignoring reservations. The
// Scheduler uses it to rank aircraft under the FLFS strategy without
// running a full search.
func (p *Planner) EstimateRemaining(goal int, model *airport.AircraftModel, v int) float64 {
	return p.heuristics.Remaining(goal, model)[v]
}

// Plan searches for a conflict-free timed path for one aircraft from
// start to goal, departing no earlier than earliestStart, against rt.
// rt is read only; the Scheduler commits the returned plan afterward.
func (p *Planner) Plan(rt *ReservationTable, start, goal int, model *airport.AircraftModel, earliestStart float64) (*Result, error) {
	h := p.heuristics.Remaining(goal, model)

	open := &astarHeap{}
	heap.Init(open)
	startNode := &astarNode{state: spaceTimeState{v: start, t: earliestStart}, g: 0, f: h[start], viaEdge: -1}
	heap.Push(open, startNode)

	visited := make(map[spaceTimeState]bool)
	expanded, generated := 0, 1

	for open.Len() > 0 {
		cur := heap.Pop(open).(*astarNode)
		if visited[cur.state] {
			continue
		}
		visited[cur.state] = true
		expanded++

		if cur.state.v == goal {
			path, edgePath := reconstruct(cur)
			if p.lg != nil {
				p.lg.Debugf("planner: path found v=%d t=%.2f cost=%.2f trace=%s",
					cur.state.v, cur.state.t, cur.g, spew.Sdump(path))
			}
			return &Result{
				Path:               path,
				EdgePath:           edgePath,
				Cost:               cur.g,
				ExpectedRunwayTime: cur.state.t,
				ExpandedNodes:      expanded,
				GeneratedNodes:     generated,
			}, nil
		}

		if generated > maxGeneratedNodes {
			break
		}

		// Wait at the current vertex for one wait_time unit.
		waitLo, waitHi := cur.state.t, cur.state.t+p.cfg.WaitTime
		if rt.VertexFree(cur.state.v, waitLo, waitHi) {
			next := spaceTimeState{v: cur.state.v, t: waitHi}
			if !visited[next] {
				g := cur.g + p.cfg.WaitTime*p.cfg.WaitCost
				node := &astarNode{state: next, g: g, f: g + h[cur.state.v], parent: cur, viaEdge: -1}
				heap.Push(open, node)
				generated++
			}
		}

		// Traverse each out-edge.
		for _, eid := range p.graph.OutEdges(cur.state.v) {
			e := &p.graph.Edges[eid]
			duration := edgeDuration(e, model)
			arrive := cur.state.t + duration
			checkLo, checkHi := cur.state.t, arrive+p.cfg.SafetyTime

			if !rt.EdgeFree(eid, checkLo, checkHi) {
				continue
			}
			if !rt.VertexFree(e.V, checkLo, checkHi) {
				continue
			}
			if rev, ok := p.graph.EdgeBetween(e.V, e.U); ok && !rt.EdgeFree(rev, checkLo, checkHi) {
				continue
			}

			next := spaceTimeState{v: e.V, t: arrive}
			if visited[next] {
				continue
			}
			g := cur.g + duration
			node := &astarNode{state: next, g: g, f: g + h[e.V], parent: cur, viaEdge: eid}
			heap.Push(open, node)
			generated++
		}
	}

	if p.lg != nil {
		p.lg.Debugf("planner: no path start=%d goal=%d expanded=%d generated=%d", start, goal, expanded, generated)
	}
	return &Result{ExpandedNodes: expanded, GeneratedNodes: generated, Cost: math.Inf(1)}, ErrNoPath
}

func reconstruct(n *astarNode) ([]aircraft.PathState, []int) {
	var path []aircraft.PathState
	var edgePath []int
	for cur := n; cur != nil; cur = cur.parent {
		path = append([]aircraft.PathState{{Vertex: cur.state.v, Earliest: cur.state.t, Latest: cur.state.t}}, path...)
		if cur.viaEdge >= 0 {
			edgePath = append([]int{cur.viaEdge}, edgePath...)
		}
	}
	return path, edgePath
}
