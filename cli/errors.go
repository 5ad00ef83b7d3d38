package cli

import (
	"github.com/pkg/errors"

	"pfeifer.dev/scurve/batch"
	"pfeifer.dev/scurve/render"
	"pfeifer.dev/scurve/scurve"
	ms "pfeifer.dev/scurve/settings"
)

var ErrUsage = errors.New("invalid usage")

const (
	exitFailure = 1
	exitInput   = 2
	exitPlan    = 3
)

func isInputError(err error) bool {
	var fileErr *batch.FileError
	return scurve.IsInputError(err) ||
		errors.As(err, &fileErr) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ms.ErrInvalidSetting) ||
		errors.Is(err, ms.ErrUnknownSetting) ||
		errors.Is(err, render.ErrUnsupportedFormat)
}

// ExitCode maps err to the process exit status: 2 for bad input, 3 when no plan could
// be produced, 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case isInputError(err):
		return exitInput
	case scurve.IsPlanningError(err):
		return exitPlan
	}
	return exitFailure
}

// Message is the user facing explanation of err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, scurve.ErrJerkTooLow):
		return "max jerk must be at least max acceleration: " + err.Error()
	case errors.Is(err, scurve.ErrInvalidParameter):
		return "invalid input, every limit must be a positive number: " + err.Error()
	case errors.Is(err, scurve.ErrVelocityCapBelowRamp):
		return "max velocity is too low to ramp up to full acceleration at any distance, " +
			"raise max velocity or max jerk, or lower max acceleration: " + err.Error()
	case errors.Is(err, scurve.ErrDistanceTooShortForRamp):
		return "the distance is too short to ramp up to full acceleration, " +
			"use a longer distance, a lower max acceleration or a higher max jerk: " + err.Error()
	case errors.Is(err, scurve.ErrPlanningDivergence):
		return "internal planning error, the plan does not land on the target: " + err.Error()
	case isInputError(err):
		return "invalid input: " + err.Error()
	}
	return "error: " + err.Error()
}
