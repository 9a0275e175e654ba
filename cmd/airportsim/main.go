// main.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Command airportsim schedules and simulates a population of departing
// aircraft across an airport surface graph, then appends one (or, for
// -solver ALL, two) summary rows to the output CSV file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brunoga/deep"

	"github.com/airportsim/surfaceops/pkg/aircraft"
	"github.com/airportsim/surfaceops/pkg/airport"
	"github.com/airportsim/surfaceops/pkg/log"
	"github.com/airportsim/surfaceops/pkg/metrics"
	"github.com/airportsim/surfaceops/pkg/rand"
	"github.com/airportsim/surfaceops/pkg/scheduler"
	"github.com/airportsim/surfaceops/pkg/simulator"
)

var (
	graphFile    = flag.String("graph", "", "pre-built airport graph file; if empty, -node/-link/-spot/-runway are used instead")
	modelFile    = flag.String("model", "", "aircraft model file (required)")
	instanceFile = flag.String("instance", "", "departure instance file (required); synthesized if it does not exist")
	outputFile   = flag.String("output", "", "output CSV file (required)")
	solverName   = flag.String("solver", "", "solver: FCFS, FLFS, or ALL (required)")
	configFile   = flag.String("config", "../config.yaml", "config file")

	nodeFile    = flag.String("node", "", "node file, used when -graph is absent")
	linkFile    = flag.String("link", "", "link file, used when -graph is absent")
	spotFile    = flag.String("spot", "", "spot file, used when -graph is absent")
	runwayFile  = flag.String("runway", "", "runway file, used when -graph is absent")
	departFile  = flag.String("depart", "", "optional depart routing table, used by instance generation")
	agentNum    = flag.Int("agentNum", 0, "number of agents to synthesize if -instance does not exist")
	intervalMin = flag.Float64("interval_min", 0, "minimum appear_time interval between synthesized departures")
	intervalMax = flag.Float64("interval_max", 0, "maximum appear_time interval between synthesized departures")

	logLevel = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir   = flag.String("logdir", "", "log file directory")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 1
		}
		return 2
	}

	lg := log.New(*logLevel, *logDir)

	if *modelFile == "" || *instanceFile == "" || *outputFile == "" || *solverName == "" {
		lg.Errorf("%v: -model, -instance, -output, and -solver are all required", airport.ErrMissingRequiredFlag)
		flag.Usage()
		return 2
	}
	if *solverName != "FCFS" && *solverName != "FLFS" && *solverName != "ALL" {
		fmt.Fprintf(os.Stderr, "airportsim: -solver must be FCFS, FLFS, or ALL, got %q\n", *solverName)
		return 2
	}

	g, err := loadGraph()
	if err != nil {
		lg.Errorf("loading graph: %v", err)
		return 2
	}

	cfg, err := airport.LoadConfig(*configFile)
	if err != nil {
		lg.Errorf("loading config %s: %v", *configFile, err)
		return 2
	}

	models, err := airport.LoadModels(*modelFile)
	if err != nil {
		lg.Errorf("loading models %s: %v", *modelFile, err)
		return 2
	}

	stream := rand.New(time.Now().UnixNano())

	inst, err := loadOrGenerateInstance(g, models, stream)
	if err != nil {
		lg.Errorf("loading/generating instance %s: %v", *instanceFile, err)
		return 2
	}

	aircrafts, err := aircraft.BuildFromInstance(g, models, inst)
	if err != nil {
		lg.Errorf("building aircraft: %v", err)
		return 2
	}

	switch *solverName {
	case "ALL":
		fresh, err := deep.Copy(aircrafts)
		if err != nil {
			lg.Errorf("deep-copying aircraft for ALL solver runs: %v", err)
			return 2
		}
		if err := runOne(g, cfg, stream, aircrafts, lg, scheduler.FLFS); err != nil {
			lg.Errorf("FLFS run: %v", err)
		}
		if err := runOne(g, cfg, stream, fresh, lg, scheduler.FCFS); err != nil {
			lg.Errorf("FCFS run: %v", err)
		}
	case "FLFS":
		if err := runOne(g, cfg, stream, aircrafts, lg, scheduler.FLFS); err != nil {
			lg.Errorf("FLFS run: %v", err)
		}
	case "FCFS":
		if err := runOne(g, cfg, stream, aircrafts, lg, scheduler.FCFS); err != nil {
			lg.Errorf("FCFS run: %v", err)
		}
	}

	return 0
}

func loadGraph() (*airport.AirportGraph, error) {
	if *graphFile != "" {
		return airport.LoadGraph(*graphFile)
	}
	return airport.LoadGraphParts(*nodeFile, *linkFile, *spotFile, *runwayFile)
}

func loadOrGenerateInstance(g *airport.AirportGraph, models map[string]*airport.AircraftModel, stream *rand.Stream) (*airport.Instance, error) {
	if _, err := os.Stat(*instanceFile); err == nil {
		return airport.LoadInstance(*instanceFile)
	}

	var routes []airport.DepartRoute
	if *departFile != "" {
		var err error
		routes, err = airport.LoadDepartRoutes(*departFile)
		if err != nil {
			return nil, err
		}
	}

	inst, err := airport.GenerateInstance(g, models, routes, stream, *agentNum, *intervalMin, *intervalMax)
	if err != nil {
		return nil, err
	}
	if err := inst.Save(*instanceFile); err != nil {
		return nil, err
	}
	return inst, nil
}

// runOne schedules and simulates aircrafts under strategy, then appends
// one summary row to -output.
func runOne(g *airport.AirportGraph, cfg *airport.Config, stream *rand.Stream, aircrafts []*aircraft.Aircraft, lg *log.Logger, strategy scheduler.Strategy) error {
	start := time.Now()

	sched := scheduler.New(g, cfg, stream, lg)
	sched.Run(strategy, aircrafts)

	sim := simulator.New(g, cfg, aircrafts, lg)
	simErr := sim.Run()
	if simErr != nil {
		lg.Warnf("%s: %v", strategy, simErr)
	}

	summary := metrics.Summarize(strategy.String(), aircrafts, time.Since(start))
	return summary.AppendCSV(*outputFile, *instanceFile)
}
