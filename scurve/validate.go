package scurve

import (
	"fmt"
	"math"
)

const (
	// AccelerationTolerance is the slack allowed on the acceleration cap.
	AccelerationTolerance = 1e-6
	// TimeStepTolerance is the relative slack allowed on the spacing of samples.
	TimeStepTolerance = 1e-6
)

// Violation describes the first sample that breaks a profile invariant. Index is -1
// for problems with the sequence as a whole.
type Violation struct {
	Index int
	Field string
	Value float64
	Bound string
}

func (v *Violation) Error() string {
	if v.Index < 0 {
		return fmt.Sprintf("profile %s: %s", v.Field, v.Bound)
	}
	return fmt.Sprintf("sample %d: %s %g violates %s", v.Index, v.Field, v.Value, v.Bound)
}

// Valid reports whether Validate finds no violation.
func Valid(l Limits, s *Samples) bool {
	return Validate(l, s) == nil
}

// Validate checks an already produced trajectory against l and returns the first
// violation found, or nil.
func Validate(l Limits, s *Samples) error {
	n := s.Len()
	if n == 0 {
		return &Violation{Index: -1, Field: "length", Bound: "no samples"}
	}
	for _, c := range [][]float64{s.Position, s.Velocity, s.Acceleration, s.Jerk} {
		if len(c) != n || len(s.Stage) != n {
			return &Violation{Index: -1, Field: "length", Bound: "series lengths differ"}
		}
	}

	if s.Position[0] != 0 {
		return &Violation{0, "position", s.Position[0], "== 0 at start"}
	}
	if s.Velocity[0] != 0 {
		return &Violation{0, "velocity", s.Velocity[0], "== 0 at start"}
	}
	if s.Acceleration[0] != 0 {
		return &Violation{0, "acceleration", s.Acceleration[0], "== 0 at start"}
	}

	aMax := l.maxAcceleration + AccelerationTolerance
	dt := s.TimeStep
	stepTol := TimeStepTolerance * dt
	last := n - 1
	for i := range n {
		switch {
		case s.Velocity[i] < 0:
			return &Violation{i, "velocity", s.Velocity[i], ">= 0"}
		case s.Velocity[i] > l.maxVelocity:
			return &Violation{i, "velocity", s.Velocity[i], fmt.Sprintf("<= %g", l.maxVelocity)}
		case math.Abs(s.Acceleration[i]) > aMax:
			return &Violation{i, "acceleration", s.Acceleration[i], fmt.Sprintf("|a| <= %g", l.maxAcceleration)}
		case math.Abs(s.Jerk[i]) > l.maxJerk:
			return &Violation{i, "jerk", s.Jerk[i], fmt.Sprintf("|j| <= %g", l.maxJerk)}
		}
		if i == 0 {
			continue
		}
		if s.Position[i] < s.Position[i-1] {
			return &Violation{i, "position", s.Position[i], fmt.Sprintf(">= %g", s.Position[i-1])}
		}
		if s.Time[i] <= s.Time[i-1] {
			return &Violation{i, "time", s.Time[i], fmt.Sprintf("> %g", s.Time[i-1])}
		}
		if dt <= 0 {
			continue
		}
		// every step is dt, the last one may be shorter
		step := s.Time[i] - s.Time[i-1]
		if i < last && math.Abs(step-dt) > stepTol {
			return &Violation{i, "time", s.Time[i], fmt.Sprintf("== %g + %g", s.Time[i-1], dt)}
		}
		if i == last && step > dt+stepTol {
			return &Violation{i, "time", s.Time[i], fmt.Sprintf("<= %g + %g", s.Time[i-1], dt)}
		}
	}

	if s.Position[last] != l.distance {
		return &Violation{last, "position", s.Position[last], fmt.Sprintf("== %g at end", l.distance)}
	}
	if s.Velocity[last] > StopVelocity {
		return &Violation{last, "velocity", s.Velocity[last], fmt.Sprintf("<= %g at end", StopVelocity)}
	}
	return nil
}
