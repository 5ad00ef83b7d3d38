package scurve

import (
	"fmt"

	"github.com/pkg/errors"

	m "pfeifer.dev/scurve/math"
)

// Limits is the validated parameter set of a single move. The zero value is not
// usable; build one with New.
type Limits struct {
	distance        float64
	maxVelocity     float64
	maxAcceleration float64
	maxJerk         float64
}

// New validates the four move parameters.
//
// Every value must be finite and strictly positive, otherwise ErrInvalidParameter is
// returned. maxJerk below maxAcceleration is rejected with ErrJerkTooLow.
func New(distance, maxVelocity, maxAcceleration, maxJerk float64) (Limits, error) {
	params := []struct {
		name  string
		value float64
	}{
		{"distance", distance},
		{"max velocity", maxVelocity},
		{"max acceleration", maxAcceleration},
		{"max jerk", maxJerk},
	}
	for _, p := range params {
		if !m.Finite(p.value) || p.value <= 0 {
			return Limits{}, errors.Wrapf(ErrInvalidParameter, "%s must be a positive number, got %g", p.name, p.value)
		}
	}
	if maxJerk < maxAcceleration {
		return Limits{}, errors.Wrapf(ErrJerkTooLow, "max jerk %g < max acceleration %g", maxJerk, maxAcceleration)
	}

	return Limits{
		distance:        distance,
		maxVelocity:     maxVelocity,
		maxAcceleration: maxAcceleration,
		maxJerk:         maxJerk,
	}, nil
}

func (l Limits) Distance() float64        { return l.distance }
func (l Limits) MaxVelocity() float64     { return l.maxVelocity }
func (l Limits) MaxAcceleration() float64 { return l.maxAcceleration }
func (l Limits) MaxJerk() float64         { return l.maxJerk }

// RampTime is the time needed to ramp acceleration between zero and its cap.
func (l Limits) RampTime() float64 {
	return l.maxAcceleration / l.maxJerk
}

// RampVelocity is the lowest peak velocity whose acceleration phase still reaches the
// acceleration cap. Slower peaks would need a triangular acceleration profile.
func (l Limits) RampVelocity() float64 {
	return l.maxAcceleration * l.maxAcceleration / l.maxJerk
}

func (l Limits) String() string {
	return fmt.Sprintf("distance=%g vmax=%g amax=%g jmax=%g", l.distance, l.maxVelocity, l.maxAcceleration, l.maxJerk)
}
