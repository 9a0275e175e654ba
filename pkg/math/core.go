// pkg/math/core.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package math provides small scalar helpers shared by the simulator's
// car-following controller.
package math

import "golang.org/x/exp/constraints"

// Clamp restricts x to the range [low, high]
func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}
