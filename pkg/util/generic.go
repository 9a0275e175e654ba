// pkg/util/generic.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package util collects small generic helpers shared across the planner,
// scheduler, and simulator packages: deterministic map iteration, slice
// transforms, and an accumulating error logger used by the config/model/
// instance loaders.
package util

import (
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

// SortedMapKeys returns the keys of the given map, sorted from low to
// high. Iteration over the simulator's aircraft-on-graph map must be
// stable wherever ordering is observable (mutex candidate ties, conflict
// reporting), so callers range over this instead of the map directly.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// DuplicateSlice returns a newly-allocated copy of the given slice. Used
// wherever a list of aircraft must be reordered into a priority queue
// without disturbing the caller's original slice.
func DuplicateSlice[V any](s []V) []V {
	dupe := make([]V, len(s))
	copy(dupe, s)
	return dupe
}
