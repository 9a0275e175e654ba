// pkg/planner/heuristic.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"container/heap"
	"math"

	"github.com/airportsim/surfaceops/pkg/airport"
)

// HeuristicCache memoizes, per (goal vertex, model), the shortest
// remaining travel time in the unconstrained graph from every vertex to
// that goal. It is computed once per (goal, model) pair via a backward
// Dijkstra over the reversed graph and reused across every aircraft that
// shares a goal and model, which is the common case (one runway per
// aircraft, a handful of models).
type HeuristicCache struct {
	graph   *airport.AirportGraph
	reverse [][]int // reverse[v] = edge ids whose V == v
	byGoal  map[int]map[string][]float64
}

// NewHeuristicCache builds the reverse-adjacency index once for g.
func NewHeuristicCache(g *airport.AirportGraph) *HeuristicCache {
	rev := make([][]int, len(g.Vertices))
	for _, e := range g.Edges {
		rev[e.V] = append(rev[e.V], e.ID)
	}
	return &HeuristicCache{graph: g, reverse: rev, byGoal: make(map[int]map[string][]float64)}
}

// edgeDuration returns the time to traverse e at model's v_max, clamped
// by the edge's speed cap if one is set.
func edgeDuration(e *airport.Edge, model *airport.AircraftModel) float64 {
	v := model.VMax
	if e.SpeedCap > 0 && e.SpeedCap < v {
		v = e.SpeedCap
	}
	if v <= 0 {
		return 0
	}
	return e.Length / v
}

type distNode struct {
	v     int
	dist  float64
	index int
}

type distHeap []*distNode

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *distHeap) Push(x any)         { n := x.(*distNode); n.index = len(*h); *h = append(*h, n) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// Remaining returns the admissible heuristic value (shortest remaining
// travel time to goal, ignoring reservations) from v, for the given goal
// vertex and model.
func (hc *HeuristicCache) Remaining(goal int, model *airport.AircraftModel) []float64 {
	byModel, ok := hc.byGoal[goal]
	if !ok {
		byModel = make(map[string][]float64)
		hc.byGoal[goal] = byModel
	}
	if dist, ok := byModel[model.Name]; ok {
		return dist
	}

	dist := make([]float64, len(hc.graph.Vertices))
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[goal] = 0

	h := &distHeap{}
	heap.Init(h)
	heap.Push(h, &distNode{v: goal, dist: 0})
	visited := make([]bool, len(hc.graph.Vertices))

	for h.Len() > 0 {
		cur := heap.Pop(h).(*distNode)
		if visited[cur.v] {
			continue
		}
		visited[cur.v] = true

		for _, eid := range hc.reverse[cur.v] {
			e := &hc.graph.Edges[eid]
			nd := cur.dist + edgeDuration(e, model)
			if nd < dist[e.U] {
				dist[e.U] = nd
				heap.Push(h, &distNode{v: e.U, dist: nd})
			}
		}
	}

	byModel[model.Name] = dist
	return dist
}
