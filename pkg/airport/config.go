// pkg/airport/config.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airport

import (
	"errors"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/airportsim/surfaceops/pkg/rand"
	"github.com/airportsim/surfaceops/pkg/util"
)

// Distribution is a discrete categorical distribution over float64
// values: a value at Values[i] occurs with probability Probs[i]. It backs
// gate_delay, runway_delay, and per-model taxi velocity sampling.
type Distribution struct {
	Values []float64
	Probs  []float64
}

func (d Distribution) validate() error {
	if len(d.Values) != len(d.Probs) {
		return ErrProbLengthMismatch
	}
	anyPositive := false
	for _, p := range d.Probs {
		if p > 0 {
			anyPositive = true
		}
	}
	if len(d.Values) > 0 && !anyPositive {
		return ErrEmptyProb
	}
	return nil
}

// Sample draws one value from the distribution using s.
func (d Distribution) Sample(s *rand.Stream) float64 {
	if len(d.Values) == 0 {
		return 0
	}
	i := s.WeightedIndex(d.Probs)
	if i < 0 {
		i = len(d.Values) - 1
	}
	return d.Values[i]
}

// Config holds the scheduling/simulation tunables read from the -config
// YAML file's "config" section.
type Config struct {
	WaitCost        float64 `yaml:"wait_cost"`
	WaitTime        float64 `yaml:"wait_time"`
	SafetyTime      float64 `yaml:"safety_time"`
	TickPerTimeUnit int     `yaml:"tick_per_time_unit"`
	SafetyDistance  float64 `yaml:"safety_distance"`

	GateDelayTime   []float64 `yaml:"gate_delay_time"`
	GateDelayProb   []float64 `yaml:"gate_delay_prob"`
	RunwayDelayTime []float64 `yaml:"runway_delay_time"`
	RunwayDelayProb []float64 `yaml:"runway_delay_prob"`

	GateDelay   Distribution `yaml:"-"`
	RunwayDelay Distribution `yaml:"-"`
}

type rawConfigFile struct {
	Config Config `yaml:"config"`
}

// LoadConfig reads and validates the -config YAML file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw rawConfigFile
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	c := raw.Config
	c.GateDelay = Distribution{Values: c.GateDelayTime, Probs: c.GateDelayProb}
	c.RunwayDelay = Distribution{Values: c.RunwayDelayTime, Probs: c.RunwayDelayProb}

	var el util.ErrorLogger
	el.Push("config")
	el.Push("gate_delay")
	if err := c.GateDelay.validate(); err != nil {
		el.Error(err)
	}
	el.Pop()
	el.Push("runway_delay")
	if err := c.RunwayDelay.validate(); err != nil {
		el.Error(err)
	}
	el.Pop()
	el.Pop()
	if el.HaveErrors() {
		return nil, errors.New(el.String())
	}

	if c.TickPerTimeUnit <= 0 {
		c.TickPerTimeUnit = 1
	}
	return &c, nil
}

// AircraftModel describes one class of departing aircraft: its kinematic
// limits and its categorical taxi-velocity distribution.
type AircraftModel struct {
	Name           string    `yaml:"name"`
	VMax           float64   `yaml:"v_max"`
	AMax           float64   `yaml:"a_max"`
	ABrake         float64   `yaml:"a_brake"`
	SafetyDistance float64   `yaml:"safety_distance"`
	Velocity       []float64 `yaml:"velocity"`
	Prob           []float64 `yaml:"prob"`

	VelocityDist Distribution `yaml:"-"`
}

type rawModelFile struct {
	Models []AircraftModel `yaml:"models"`
}

// LoadModels reads the -model YAML file into a name-keyed map.
func LoadModels(path string) (map[string]*AircraftModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw rawModelFile
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]*AircraftModel, len(raw.Models))
	var el util.ErrorLogger
	el.Push("models")
	for i := range raw.Models {
		m := &raw.Models[i]
		m.VelocityDist = Distribution{Values: m.Velocity, Probs: m.Prob}
		el.Push(m.Name)
		if err := m.VelocityDist.validate(); err != nil {
			el.Error(err)
		} else {
			out[m.Name] = m
		}
		el.Pop()
	}
	el.Pop()
	if el.HaveErrors() {
		return nil, errors.New(el.String())
	}
	return out, nil
}

// CruiseVelocity samples a taxi velocity for this model from s.
func (m *AircraftModel) CruiseVelocity(s *rand.Stream) float64 {
	if v := m.VelocityDist.Sample(s); v > 0 {
		return v
	}
	return m.VMax
}

// DepartureSpec is one row of the -instance YAML file: a single planned
// departure before gate-delay perturbation or planning has happened.
type DepartureSpec struct {
	Gate       string  `yaml:"gate"`
	Runway     string  `yaml:"runway"`
	AppearTime float64 `yaml:"appear_time"`
	Model      string  `yaml:"model"`
}

// Instance is the full -instance YAML file: an ordered list of departures.
type Instance struct {
	Departures []DepartureSpec `yaml:"departures"`
}

// LoadInstance reads an -instance YAML file. It does not validate gate,
// runway, or model names against a graph/model set; callers resolve those
// while constructing Aircraft so that the error can name the offending
// departure index.
func LoadInstance(path string) (*Instance, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var inst Instance
	if err := yaml.Unmarshal(b, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// Save writes the instance back out as YAML, used both by instance
// generation (so a synthesized instance is reproducible) and by the
// round-trip test property.
func (inst *Instance) Save(path string) error {
	b, err := yaml.Marshal(inst)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// DepartRoute is one allowed (gate, runway) pairing, loaded from the
// optional -depart routing table. When present, GenerateInstance draws
// gate/runway pairs from this table instead of independently drawing a
// gate and a runway.
type DepartRoute struct {
	Gate   string `yaml:"gate"`
	Runway string `yaml:"runway"`
}

type rawDepartFile struct {
	Routes []DepartRoute `yaml:"routes"`
}

// LoadDepartRoutes reads the optional -depart YAML file.
func LoadDepartRoutes(path string) ([]DepartRoute, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw rawDepartFile
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return raw.Routes, nil
}

// GenerateInstance synthesizes agentNum departures. Gate/runway pairs are
// drawn uniformly from routes if non-empty, otherwise a gate and a runway
// are drawn independently and uniformly from the graph's
// Gates()/Runways(). Aircraft models are drawn uniformly from models, and
// appear_time offsets are drawn uniformly from [intervalMin, intervalMax]
// relative to the previous departure's appear_time (the first departure
// always appears at time 0). All draws come from s, so the same seed
// always reproduces the same instance.
func GenerateInstance(g *AirportGraph, models map[string]*AircraftModel, routes []DepartRoute, s *rand.Stream, agentNum int, intervalMin, intervalMax float64) (*Instance, error) {
	if len(routes) == 0 && (len(g.Gates()) == 0 || len(g.Runways()) == 0) {
		return nil, ErrUnknownVertex
	}
	if len(models) == 0 {
		return nil, ErrUnknownModel
	}
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)

	inst := &Instance{Departures: make([]DepartureSpec, agentNum)}
	appear := 0.0
	for i := 0; i < agentNum; i++ {
		if i > 0 {
			if intervalMax > intervalMin {
				appear += intervalMin + s.Float32Range(intervalMax-intervalMin)
			} else {
				appear += intervalMin
			}
		}

		var gate, runway string
		if len(routes) > 0 {
			r := routes[s.Intn(len(routes))]
			gate, runway = r.Gate, r.Runway
		} else {
			gate = g.Vertices[g.Gates()[s.Intn(len(g.Gates()))]].Name
			runway = g.Vertices[g.Runways()[s.Intn(len(g.Runways()))]].Name
		}
		model := names[s.Intn(len(names))]
		inst.Departures[i] = DepartureSpec{Gate: gate, Runway: runway, AppearTime: appear, Model: model}
	}
	return inst, nil
}
