// pkg/metrics/metrics.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package metrics derives the per-run summary row (wait/travel time
// averages, total cost, makespan, search effort, runtime) from a
// completed scheduling and simulation pass.
package metrics

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/airportsim/surfaceops/pkg/aircraft"
)

// Summary is one solver run's result row.
type Summary struct {
	Solver         string
	Runtime        time.Duration
	AvgWaitTime    float64
	AvgTravelTime  float64
	TotalCost      float64
	Makespan       float64
	ExpandedNodes  int
	GeneratedNodes int
	CompletedCount int
}

// Summarize computes a Summary from a fully scheduled (and, if run,
// simulated) set of aircraft. runtime is the wall-clock duration of the
// solver run the caller timed around Scheduler.Run/Simulator.Run.
func Summarize(solver string, aircrafts []*aircraft.Aircraft, runtime time.Duration) Summary {
	s := Summary{Solver: solver, Runtime: runtime}

	var waitSum, travelSum, makespan float64
	planned := 0
	for _, a := range aircrafts {
		s.ExpandedNodes += a.ExpandedNodes
		s.GeneratedNodes += a.GeneratedNodes

		if math.IsInf(a.Cost, 1) {
			s.TotalCost = math.Inf(1)
			continue
		}
		if !math.IsInf(s.TotalCost, 1) {
			s.TotalCost += a.Cost
		}

		waitSum += a.PushbackTime - a.AppearTime
		travelSum += a.ExpectedRunwayTime - a.PushbackTime
		if a.ExpectedRunwayTime > makespan {
			makespan = a.ExpectedRunwayTime
		}
		planned++

		if a.ActualRunwayTime > 0 {
			s.CompletedCount++
		}
	}

	if planned > 0 {
		s.AvgWaitTime = waitSum / float64(planned)
		s.AvgTravelTime = travelSum / float64(planned)
	}
	s.Makespan = makespan
	return s
}

// AppendCSV appends one summary row to path, creating it if necessary.
// No header row is written, matching the original tool's output format:
// solver,runtime,avg_wait_time,avg_travel_time,total_cost,makespan,
// expanded_nodes,generated_nodes,instance_file.
func (s Summary) AppendCSV(path, instanceFile string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s,%v,%g,%g,%g,%g,%d,%d,%s\n",
		s.Solver, s.Runtime.Seconds(), s.AvgWaitTime, s.AvgTravelTime, s.TotalCost, s.Makespan,
		s.ExpandedNodes, s.GeneratedNodes, instanceFile)
	return err
}
