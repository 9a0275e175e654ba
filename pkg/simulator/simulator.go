// pkg/simulator/simulator.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simulator

import (
	"github.com/airportsim/surfaceops/pkg/aircraft"
	"github.com/airportsim/surfaceops/pkg/airport"
	"github.com/airportsim/surfaceops/pkg/log"
	"github.com/airportsim/surfaceops/pkg/util"
)

// Simulator drives every scheduled aircraft through the airport graph in
// discrete ticks. It is single-threaded and runs to completion (or
// timeout) inside Run; nothing here blocks on external input.
type Simulator struct {
	graph *airport.AirportGraph
	cfg   *airport.Config
	lg    *log.Logger

	aircrafts []*aircraft.Aircraft
	appeared  map[string]bool
	onGraph   map[string]*aircraft.Aircraft
	traffic   *Traffic
	mutex     map[int]*aircraft.Aircraft

	SimulationTime int // ticks
	MaxTicks       int
	CompletedCount int
}

// New constructs a Simulator for the given scheduled aircraft. lg may be
// nil. MaxTicks defaults to 10x the sum of every planned aircraft's
// travel duration (expected_runway_time - pushback_time), per §5's
// "max-tick safety bound (configurable; default: 10·Σ path durations)";
// callers may override MaxTicks before calling Run.
func New(g *airport.AirportGraph, cfg *airport.Config, aircrafts []*aircraft.Aircraft, lg *log.Logger) *Simulator {
	s := &Simulator{
		graph:     g,
		cfg:       cfg,
		lg:        lg,
		aircrafts: aircrafts,
		appeared:  make(map[string]bool),
		onGraph:   make(map[string]*aircraft.Aircraft),
		traffic:   NewTraffic(),
		mutex:     make(map[int]*aircraft.Aircraft),
	}
	s.MaxTicks = defaultMaxTicks(aircrafts, cfg)
	return s
}

func defaultMaxTicks(aircrafts []*aircraft.Aircraft, cfg *airport.Config) int {
	total := 0.0
	for _, a := range aircrafts {
		if a.HasPlan() {
			total += a.ExpectedRunwayTime - a.PushbackTime
		}
	}
	ticks := int(total*float64(cfg.TickPerTimeUnit)*10) + cfg.TickPerTimeUnit
	if ticks <= 0 {
		ticks = 1000
	}
	return ticks
}

func plannedCount(aircrafts []*aircraft.Aircraft) int {
	n := 0
	for _, a := range aircrafts {
		if a.HasPlan() {
			n++
		}
	}
	return n
}

// Run advances the simulation tick by tick until every planned aircraft
// has reached its runway, or until MaxTicks is exceeded.
func (s *Simulator) Run() error {
	for _, a := range s.aircrafts {
		if a.HasPlan() {
			a.SimulationInit()
		}
	}

	target := plannedCount(s.aircrafts)
	for s.CompletedCount < target {
		if s.SimulationTime >= s.MaxTicks {
			if s.lg != nil {
				s.lg.Warnf("simulator: timed out at tick %d with %d/%d complete", s.SimulationTime, s.CompletedCount, target)
			}
			return ErrSimulationTimedOut
		}
		s.tick()
	}
	return nil
}

// sortedOnGraph returns the currently active aircraft sorted by id, the
// stable order §5 requires at every point ordering is observable.
func (s *Simulator) sortedOnGraph() []*aircraft.Aircraft {
	ids := util.SortedMapKeys(s.onGraph)
	out := make([]*aircraft.Aircraft, len(ids))
	for i, id := range ids {
		out[i] = s.onGraph[id]
	}
	return out
}
