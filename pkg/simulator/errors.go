// pkg/simulator/errors.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simulator

import "errors"

// ErrSimulationTimedOut is returned by Run when the tick budget is
// exceeded before every scheduled aircraft reaches its runway. The
// aircraft still in flight keep ActualRunwayTime == 0; CompletedCount
// reflects however many finished before the timeout.
var ErrSimulationTimedOut = errors.New("simulator: tick budget exceeded before all aircraft completed")

// ErrSafetyDistanceViolation is never returned as an error value;
// handleConflict formats it into a warning log line and the simulation
// continues.
var ErrSafetyDistanceViolation = errors.New("simulator: two aircraft closer than safety_distance on the same edge")
