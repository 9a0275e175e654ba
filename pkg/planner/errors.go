// pkg/planner/errors.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import "errors"

// ErrNoPath is returned when the open set empties, or the search exceeds
// maxGeneratedNodes, before the goal is expanded. It is not fatal: the scheduler records cost = +Inf for the
// affected aircraft and continues with the rest of the instance.
var ErrNoPath = errors.New("planner: no feasible path under current reservations")
