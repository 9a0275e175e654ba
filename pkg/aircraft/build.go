// pkg/aircraft/build.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aircraft

import (
	"fmt"
	"math"

	"github.com/airportsim/surfaceops/pkg/airport"
)

// BuildFromInstance resolves each departure in inst against g and
// models, producing the Aircraft slice the Scheduler will plan. An
// unknown gate, runway, or model name is a hard load error, per §6.
func BuildFromInstance(g *airport.AirportGraph, models map[string]*airport.AircraftModel, inst *airport.Instance) ([]*Aircraft, error) {
	out := make([]*Aircraft, len(inst.Departures))
	for i, d := range inst.Departures {
		start, err := g.VertexByName(d.Gate)
		if err != nil {
			return nil, fmt.Errorf("departure %d: %w: %q", i, err, d.Gate)
		}
		goal, err := g.VertexByName(d.Runway)
		if err != nil {
			return nil, fmt.Errorf("departure %d: %w: %q", i, err, d.Runway)
		}
		model, ok := models[d.Model]
		if !ok {
			return nil, fmt.Errorf("departure %d: %w: %q", i, airport.ErrUnknownModel, d.Model)
		}

		out[i] = &Aircraft{
			ID:         fmt.Sprintf("a%d", i),
			Index:      i,
			Start:      start,
			Goal:       goal,
			Model:      model,
			ModelName:  d.Model,
			AppearTime: d.AppearTime,
			Cost:       math.Inf(1),
		}
	}
	return out, nil
}
