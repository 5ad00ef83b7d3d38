package scurve

import (
	"github.com/pkg/errors"

	m "pfeifer.dev/scurve/math"
)

const (
	// MinPeakVelocity is the floor of the peak velocity search.
	MinPeakVelocity = 0.01
	// SolverIterations bounds the bisection.
	SolverIterations = 20
	// SolverTolerance is the accepted round trip distance error in metres.
	SolverTolerance = 0.001
)

// AccelPhase is the accelerate-from-rest half of a move, split into its three constant
// jerk phases.
type AccelPhase struct {
	// Phase 1: jerk from 0 to amax
	T1 float64
	V1 float64
	D1 float64

	// Phase 2: constant amax
	T2 float64
	V2 float64
	D2 float64

	// Phase 3: jerk from amax back to 0, ends at the peak velocity
	T3 float64
	V3 float64
	D3 float64

	TotalTime     float64
	TotalDistance float64
}

// Accelerate computes the acceleration phase that reaches peak velocity v from rest.
//
// T2 = v/amax - amax/jmax is negative when v is below RampVelocity; the distances still
// follow the same polynomials, which keeps the result monotonic in v for the solver.
func Accelerate(l Limits, v float64) AccelPhase {
	tj := l.RampTime()
	ta := v / l.maxAcceleration

	p := AccelPhase{T1: tj, T2: ta - tj, T3: tj}

	s := m.State{}
	s = s.Advance(l.maxJerk, p.T1)
	p.V1, p.D1 = s.Velocity, s.Position

	s = s.Advance(0, p.T2)
	p.V2, p.D2 = s.Velocity, s.Position-p.D1

	s = s.Advance(-l.maxJerk, p.T3)
	p.V3, p.D3 = s.Velocity, s.Position-p.D1-p.D2

	p.TotalTime = p.T1 + p.T2 + p.T3
	p.TotalDistance = p.D1 + p.D2 + p.D3
	return p
}

// AccelDistance is the distance covered while accelerating from rest to v. Decelerating
// from v to rest covers the same distance.
func AccelDistance(l Limits, v float64) float64 {
	return Accelerate(l, v).TotalDistance
}

func roundTrip(l Limits, v float64) float64 {
	return 2 * AccelDistance(l, v)
}

// SolvePeakVelocity finds the highest velocity that can be reached from rest and shed
// back to rest within distance, capped at the configured max velocity.
//
// The search is a fixed bisection between MinPeakVelocity and the max velocity. A
// candidate is accepted only when its round trip falls short of distance by at most
// SolverTolerance, so the returned velocity never overshoots and the plan's cruise
// absorbs the remainder. ErrDistanceTooShortForRamp is returned when the result could
// not reach the acceleration cap or even the velocity floor overshoots. A max velocity
// below RampVelocity fails for every distance with ErrVelocityCapBelowRamp.
func SolvePeakVelocity(l Limits, distance float64) (float64, error) {
	if !m.Finite(distance) || distance <= 0 {
		return 0, errors.Wrapf(ErrInvalidParameter, "distance must be a positive number, got %g", distance)
	}

	if l.maxVelocity < l.RampVelocity() {
		return 0, errors.Wrapf(ErrVelocityCapBelowRamp,
			"max velocity %g is below ramp velocity %g", l.maxVelocity, l.RampVelocity())
	}

	v, err := bisect(l, distance)
	if err != nil {
		return 0, err
	}

	if v < l.RampVelocity() {
		return 0, errors.Wrapf(ErrDistanceTooShortForRamp,
			"distance %g allows peak velocity %g, full ramp needs %g (%g m)",
			distance, v, l.RampVelocity(), roundTrip(l, l.RampVelocity()))
	}
	return v, nil
}

func bisect(l Limits, distance float64) (float64, error) {
	if roundTrip(l, l.maxVelocity) <= distance {
		return l.maxVelocity, nil
	}

	lo := min(MinPeakVelocity, l.maxVelocity)
	hi := l.maxVelocity
	if roundTrip(l, lo) > distance {
		return 0, errors.Wrapf(ErrDistanceTooShortForRamp,
			"distance %g is shorter than the round trip at the velocity floor %g", distance, lo)
	}

	for range SolverIterations {
		mid := (lo + hi) / 2
		short := distance - roundTrip(l, mid)
		if short >= 0 && short <= SolverTolerance {
			return mid, nil
		}
		if short < 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo, nil
}
