package scurve

import "github.com/pkg/errors"

// Input errors are raised while building Limits and are fixed by asking for new values.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrJerkTooLow       = errors.New("max jerk is below max acceleration")
)

// Planning errors mean the solver or planner produced a geometrically impossible plan.
var (
	ErrDistanceTooShortForRamp = errors.New("distance too short for a full acceleration ramp")
	ErrPlanningDivergence      = errors.New("plan does not reach the target distance")

	// ErrVelocityCapBelowRamp is the ErrDistanceTooShortForRamp case that no distance
	// can fix: max velocity is below max acceleration²/max jerk.
	ErrVelocityCapBelowRamp = errors.Wrap(ErrDistanceTooShortForRamp, "velocity cap below ramp velocity")
)

// IsInputError reports whether err was caused by bad user input rather than by the planner.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidParameter) || errors.Is(err, ErrJerkTooLow)
}

// IsPlanningError reports whether err signals an unsupported regime or a planner defect.
func IsPlanningError(err error) bool {
	return errors.Is(err, ErrDistanceTooShortForRamp) || errors.Is(err, ErrPlanningDivergence)
}
