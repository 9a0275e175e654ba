// pkg/rand/rand_test.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import "testing"

func TestStreamDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if av, bv := a.Intn(1000), b.Intn(1000); av != bv {
			t.Fatalf("streams diverged at draw %d: %d != %d", i, av, bv)
		}
	}
}

func TestIntRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(5, 10)
		if v < 5 || v >= 10 {
			t.Errorf("IntRange(5, 10) returned out-of-range value %d", v)
		}
	}
}

func TestWeightedIndex(t *testing.T) {
	weights := []float64{1, 2, 3, 4, 0}
	s := New(11)
	counts := make([]int, len(weights))

	n := 100000
	for i := 0; i < n; i++ {
		idx := s.WeightedIndex(weights)
		if idx < 0 {
			t.Fatalf("WeightedIndex returned -1 for non-empty weights")
		}
		counts[idx]++
	}

	if counts[4] != 0 {
		t.Errorf("expected zero draws for zero-weight entry, got %d", counts[4])
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	for i, w := range weights {
		expected := int(w / sum * float64(n))
		if counts[i] < expected-600 || counts[i] > expected+600 {
			t.Errorf("weight %d: expected roughly %d draws, got %d", i, expected, counts[i])
		}
	}
}
