// pkg/simulator/carfollow.go
// Copyright(c) 2024 airportsim contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package simulator

import (
	"math"

	"github.com/airportsim/surfaceops/pkg/aircraft"
	pmath "github.com/airportsim/surfaceops/pkg/math"
)

// controllerStep computes one aircraft's new acceleration and velocity
// for the tick, given its leader's distance and velocity as they stood
// before this tick's advance (a.PrevAircraft is a snapshot link, not a
// value updated mid-tick). It does not mutate a; callers apply the
// result during the advance pass so that every aircraft's controller
// reads consistent, pre-tick state.
func controllerStep(a *aircraft.Aircraft, distanceToPrev float64, tickPerTimeUnit int) (accel, newVelocity float64) {
	t := 1.0 / float64(tickPerTimeUnit)

	if a.Command == aircraft.CommandStop {
		accel = -a.Model.ABrake
		return accel, a.Velocity + accel*t
	}

	if a.PrevAircraft == nil {
		accel = a.Model.AMax
		return accel, a.Velocity + accel*t
	}

	other := a.PrevAircraft
	vOther := other.Velocity
	aBrakeOther := other.Model.ABrake
	h := distanceToPrev + (vOther*vOther)/(2*aBrakeOther) - a.Model.SafetyDistance

	aEq := 2 * t * t
	bEq := a.Model.ABrake*t*t + 2*a.Velocity*t
	cEq := a.Velocity*a.Velocity + 2*a.Model.ABrake*(a.Velocity*t-h)

	disc := bEq*bEq - 4*aEq*cEq
	if disc < 0 {
		accel = -a.Model.ABrake
	} else {
		accel = (-bEq + math.Sqrt(disc)) / (2 * aEq)
	}
	accel = pmath.Clamp(accel, -a.Model.ABrake, a.Model.AMax)
	return accel, a.Velocity + accel*t
}

// applyControllerResult records accel/velocity on a and updates the
// stop_received/wait_tick/zero_velocity_tick counters, mirroring the
// bookkeeping §4.4.1 specifies alongside the controller law itself.
func applyControllerResult(a *aircraft.Aircraft, accel, velocity, vMax float64) {
	if a.Command == aircraft.CommandStop {
		a.WaitTick++
		if a.PrevCommand != aircraft.CommandStop {
			a.StopReceived++
		}
	}

	velocity = pmath.Clamp(velocity, 0, vMax)
	if velocity == 0 {
		a.ZeroVelocityTick++
	}

	a.Acceleration = accel
	a.Velocity = velocity
}
