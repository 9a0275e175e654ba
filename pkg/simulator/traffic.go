// pkg/simulator/traffic.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package simulator drives all scheduled aircraft forward in discrete
// ticks: intersection mutex arbitration, front-vehicle discovery, and the
// car-following longitudinal controller.
package simulator

import (
	"container/list"

	"github.com/iancoleman/orderedmap"

	"github.com/airportsim/surfaceops/pkg/aircraft"
)

// Traffic is the per-edge deque of aircraft currently on that edge,
// ordered front-to-back from most to least advanced along the edge. The
// backing OrderedMap keeps edges in first-touched order, which keeps
// iteration (used by updateFronter every tick) reproducible across runs.
type Traffic struct {
	edges *orderedmap.OrderedMap
}

// NewTraffic returns an empty Traffic.
func NewTraffic() *Traffic {
	return &Traffic{edges: orderedmap.New()}
}

func (t *Traffic) dequeFor(edgeName string) *list.List {
	v, ok := t.edges.Get(edgeName)
	if !ok {
		return nil
	}
	return v.(*list.List)
}

// PushBack appends a (the least-advanced, just-entered aircraft) to
// edgeName's deque.
func (t *Traffic) PushBack(edgeName string, a *aircraft.Aircraft) {
	l := t.dequeFor(edgeName)
	if l == nil {
		l = list.New()
		t.edges.Set(edgeName, l)
	}
	l.PushBack(a)
}

// Front returns the most-advanced aircraft on edgeName, or nil.
func (t *Traffic) Front(edgeName string) *aircraft.Aircraft {
	l := t.dequeFor(edgeName)
	if l == nil || l.Len() == 0 {
		return nil
	}
	return l.Front().Value.(*aircraft.Aircraft)
}

// Back returns the least-advanced (most recently entered) aircraft on
// edgeName, or nil.
func (t *Traffic) Back(edgeName string) *aircraft.Aircraft {
	l := t.dequeFor(edgeName)
	if l == nil || l.Len() == 0 {
		return nil
	}
	return l.Back().Value.(*aircraft.Aircraft)
}

// Elements returns every aircraft on edgeName, front to back.
func (t *Traffic) Elements(edgeName string) []*aircraft.Aircraft {
	l := t.dequeFor(edgeName)
	if l == nil {
		return nil
	}
	out := make([]*aircraft.Aircraft, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*aircraft.Aircraft))
	}
	return out
}

// RemoveIfFront pops a from the front of edgeName's deque if it is
// indeed the front element, reporting whether it removed anything. The
// tick protocol only ever pops the aircraft that just crossed the
// check point, which must be at the front by construction; a false
// return indicates the Traffic bookkeeping has drifted out of sync.
func (t *Traffic) RemoveIfFront(edgeName string, a *aircraft.Aircraft) bool {
	l := t.dequeFor(edgeName)
	if l == nil || l.Len() == 0 {
		return false
	}
	front := l.Front()
	if front.Value.(*aircraft.Aircraft) != a {
		return false
	}
	l.Remove(front)
	return true
}

// EdgeNames returns the names of edges that currently have (or have ever
// had) a non-empty deque, in first-touched order.
func (t *Traffic) EdgeNames() []string {
	return t.edges.Keys()
}
