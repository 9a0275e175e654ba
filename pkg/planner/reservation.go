// pkg/planner/reservation.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package planner implements the single-agent space-time A* search that
// produces a conflict-free timed path for one aircraft against the
// reservations already committed by earlier aircraft.
package planner

import "sort"

// Interval is an inclusive time window during which a vertex or edge is
// exclusively occupied by one aircraft.
type Interval struct {
	Start, End float64
}

func (iv Interval) overlaps(lo, hi float64) bool {
	return lo <= iv.End && hi >= iv.Start
}

// ReservationTable maps each vertex and each edge to the set of time
// intervals during which it is occupied. It is insertion-order
// independent: intervals are kept sorted by Start so overlap checks don't
// depend on the order reservations were added, only on the order the
// scheduler commits aircraft (which determines which aircraft gets first
// claim on a contested window).
type ReservationTable struct {
	vertex map[int][]Interval
	edge   map[int][]Interval // keyed by directed edge id
}

// NewReservationTable returns an empty table.
func NewReservationTable() *ReservationTable {
	return &ReservationTable{
		vertex: make(map[int][]Interval),
		edge:   make(map[int][]Interval),
	}
}

func insertSorted(s []Interval, iv Interval) []Interval {
	i := sort.Search(len(s), func(i int) bool { return s[i].Start >= iv.Start })
	s = append(s, Interval{})
	copy(s[i+1:], s[i:])
	s[i] = iv
	return s
}

func anyOverlap(s []Interval, lo, hi float64) bool {
	// s is sorted by Start (not by End, which can be any length), so scan
	// from the front and stop at the first interval starting after hi.
	for _, iv := range s {
		if iv.Start > hi {
			break
		}
		if iv.overlaps(lo, hi) {
			return true
		}
	}
	return false
}

// VertexFree reports whether vertex v has no reservation overlapping
// [lo, hi].
func (rt *ReservationTable) VertexFree(v int, lo, hi float64) bool {
	return !anyOverlap(rt.vertex[v], lo, hi)
}

// EdgeFree reports whether directed edge id has no reservation overlapping
// [lo, hi].
func (rt *ReservationTable) EdgeFree(id int, lo, hi float64) bool {
	return !anyOverlap(rt.edge[id], lo, hi)
}

// ReserveVertex adds an occupancy interval to vertex v.
func (rt *ReservationTable) ReserveVertex(v int, lo, hi float64) {
	rt.vertex[v] = insertSorted(rt.vertex[v], Interval{Start: lo, End: hi})
}

// ReserveEdge adds an occupancy interval to directed edge id.
func (rt *ReservationTable) ReserveEdge(id int, lo, hi float64) {
	rt.edge[id] = insertSorted(rt.edge[id], Interval{Start: lo, End: hi})
}

// EarliestFreeVertexTime returns the smallest time >= from at which
// vertex v has no reservation covering it. Used to compute a departing
// aircraft's earliest_start when an earlier aircraft is still holding its
// gate.
func (rt *ReservationTable) EarliestFreeVertexTime(v int, from float64) float64 {
	t := from
	s := rt.vertex[v]
	for advanced := true; advanced; {
		advanced = false
		for _, iv := range s {
			if iv.Start <= t && t <= iv.End {
				t = iv.End
				advanced = true
			}
		}
	}
	return t
}
