package scurve

import (
	"math"

	"github.com/pkg/errors"

	m "pfeifer.dev/scurve/math"
)

const (
	// DefaultTimeStep is the sampling step in seconds.
	DefaultTimeStep = 0.01
	// StopVelocity is the velocity below which the axis counts as stopped.
	StopVelocity = 0.001
	// MaxSamples bounds the size of a single trajectory.
	MaxSamples = 10_000_000
	// arrivalTolerance is relative to the distance.
	arrivalTolerance = 1e-9
)

// Integrate samples plan every dt seconds.
//
// Each sample is evaluated in closed form from the state at the start of its segment,
// so no error accumulates between samples. Samples fall on multiples of dt until the
// plan ends, and a final partial step lands exactly on the end of the plan. Sampling
// stops at the first sample at the target with a velocity of at most StopVelocity;
// its position is snapped to the target distance.
func Integrate(l Limits, plan Plan, dt float64) (*Samples, error) {
	if !m.Finite(dt) || dt <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "time step must be a positive number, got %g", dt)
	}
	if len(plan.Segments) == 0 {
		return nil, errors.Wrap(ErrPlanningDivergence, "plan has no segments")
	}

	segs := plan.Segments
	n := len(segs)
	starts := make([]float64, n+1)
	states := make([]m.State, n+1)
	for i, seg := range segs {
		if !m.Finite(seg.Jerk) || !m.Finite(seg.Duration) || seg.Duration < 0 {
			return nil, errors.Wrapf(ErrPlanningDivergence, "segment %d (%s) has jerk %g, duration %g", i, seg.Phase, seg.Jerk, seg.Duration)
		}
		starts[i+1] = starts[i] + seg.Duration
		states[i+1] = states[i].Advance(seg.Jerk, seg.Duration)
	}

	total := starts[n]
	if !m.Finite(total) || total <= 0 {
		return nil, errors.Wrapf(ErrPlanningDivergence, "plan duration %g", total)
	}

	tol := arrivalTolerance * max(1, l.distance)
	end := states[n]
	if math.Abs(end.Position-l.distance) > tol || math.Abs(end.Velocity) > StopVelocity {
		return nil, errors.Wrapf(ErrPlanningDivergence,
			"plan ends at position %g velocity %g, target %g", end.Position, end.Velocity, l.distance)
	}

	steps := math.Ceil(total / dt)
	if steps >= MaxSamples {
		return nil, errors.Wrapf(ErrInvalidParameter, "time step %g needs %g samples for a %gs move, limit %d", dt, steps, total, MaxSamples)
	}

	cruise, hasCruise := plan.Cruise()
	limit := 2*int(steps) + 2
	s := newSamples(dt, int(steps)+1)

	seg := 0
	for i := 0; ; i++ {
		if i > limit {
			return nil, errors.Wrapf(ErrPlanningDivergence, "no arrival after %d samples", i)
		}

		t := float64(i) * dt
		final := t >= total
		if final {
			t = total
		}
		for seg < n-1 && t >= starts[seg+1] {
			seg++
		}

		st := states[seg].Advance(segs[seg].Jerk, t-starts[seg])
		if hasCruise && seg == cruise {
			st.Velocity = plan.PeakVelocity
			st.Acceleration = 0
		}

		pos := m.Clamp(st.Position, 0, l.distance)
		if i > 0 {
			pos = max(pos, s.Position[i-1])
		}
		p := Point{
			Time:         t,
			Position:     pos,
			Velocity:     m.Clamp(st.Velocity, 0, l.maxVelocity),
			Acceleration: m.Clamp(st.Acceleration, -l.maxAcceleration, l.maxAcceleration),
			Jerk:         segs[seg].Jerk,
			Stage:        seg,
		}
		s.append(p)

		if p.Position >= l.distance-tol && p.Velocity <= StopVelocity {
			break
		}
		if final {
			return nil, errors.Wrapf(ErrPlanningDivergence,
				"sampling ended at position %g velocity %g, target %g", p.Position, p.Velocity, l.distance)
		}
	}

	s.Position[s.Len()-1] = l.distance
	return s, nil
}
