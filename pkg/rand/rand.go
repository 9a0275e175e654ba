// pkg/rand/rand.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package rand provides the single deterministic random stream used by
// instance generation, delay sampling, and velocity sampling. It is a
// PCG32-based generator rather than math/rand so that a seed deterministically
// reproduces the exact same sequence across platforms and Go versions.
package rand

import "sync"

///////////////////////////////////////////////////////////////////////////
// PCG32

const (
	pcg32State      = 0x853c49e6748fea9b
	pcg32Increment  = 0xda3e39cb94b95bdb
	pcg32Multiplier = 0x5851f42d4c957f2d
)

type PCG32 struct {
	State     uint64
	Increment uint64
}

func NewPCG32() PCG32 {
	return PCG32{pcg32State, pcg32Increment}
}

func (p *PCG32) Seed(state, sequence uint64) {
	p.Increment = (sequence << 1) | 1
	p.State = (state+p.Increment)*pcg32Multiplier + p.Increment
}

func (p *PCG32) Random() uint32 {
	oldState := p.State
	p.State = oldState*pcg32Multiplier + p.Increment

	xorShifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorShifted >> rot) | (xorShifted << ((-rot) & 31))
}

func (p *PCG32) Bounded(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	threshold := -bound % bound
	for {
		r := p.Random()
		if r >= threshold {
			return r % bound
		}
	}
}

///////////////////////////////////////////////////////////////////////////
// Stream

// Stream is an injectable source of randomness. Planning and simulation
// code never reads wall-clock time directly; callers construct one Stream
// at process startup (seeded from the clock or a fixed test seed) and
// thread it through the Scheduler and instance generator so that a run is
// reproducible given the seed.
type Stream struct {
	mu  sync.Mutex
	pcg PCG32
}

func New(seed int64) *Stream {
	s := &Stream{pcg: NewPCG32()}
	s.Seed(seed)
	return s
}

func (s *Stream) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pcg.Seed(uint64(seed), pcg32Increment)
}

func (s *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.pcg.Bounded(uint32(n)))
}

// IntRange returns a uniformly distributed integer in [lo, hi).
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo)
}

func (s *Stream) Float32() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float32(s.pcg.Random()) / (1<<32 - 1)
}

// Float32Range returns a uniformly distributed value in [0, max]; max
// itself is possible because Float32 can return 1.
func (s *Stream) Float32Range(max float64) float64 {
	return float64(s.Float32()) * max
}

// WeightedIndex samples an index into weights proportional to each
// weight's value using weighted reservoir sampling; it is used to draw
// from the categorical time/prob and velocity/prob distributions in the
// config, model, and delay data.
func (s *Stream) WeightedIndex(weights []float64) int {
	idx := -1
	sumWt := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		sumWt += w
		if s.Float32() < float32(w/sumWt) {
			idx = i
		}
	}
	return idx
}
