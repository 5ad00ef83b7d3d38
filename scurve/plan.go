package scurve

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	m "pfeifer.dev/scurve/math"
)

// Phase names the role of a segment within a move.
type Phase int

const (
	PhaseJerkUp        Phase = iota // J1: acceleration ramps up to amax
	PhaseAccelerate                 // A: constant amax
	PhaseJerkDown                   // J2: acceleration ramps down, ends at peak velocity
	PhaseCruise                     // V: constant peak velocity
	PhaseDecelJerkDown              // J3: acceleration ramps down to -amax
	PhaseDecelerate                 // D: constant -amax
	PhaseDecelJerkUp                // J4: acceleration ramps back to 0 at rest
)

// Phases lists every phase in move order.
var Phases = []Phase{
	PhaseJerkUp, PhaseAccelerate, PhaseJerkDown, PhaseCruise,
	PhaseDecelJerkDown, PhaseDecelerate, PhaseDecelJerkUp,
}

var phaseNames = [...]string{"J1", "A", "J2", "V", "J3", "D", "J4"}

var phaseDescriptions = [...]string{
	"jerk up", "accelerate", "jerk down", "cruise",
	"decel jerk down", "decelerate", "decel jerk up",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Description is a human readable name of the phase.
func (p Phase) Description() string {
	if p < 0 || int(p) >= len(phaseDescriptions) {
		return p.String()
	}
	return phaseDescriptions[p]
}

// Segment is a constant jerk interval of a plan.
type Segment struct {
	Phase    Phase   `json:"phase"`
	Jerk     float64 `json:"jerk"`
	Duration float64 `json:"duration"`
}

// Plan is the ordered list of constant jerk segments of a move.
type Plan struct {
	PeakVelocity float64   `json:"peak_velocity"`
	Segments     []Segment `json:"segments"`
}

// Duration is the total time of the move.
func (p Plan) Duration() float64 {
	return floats.Sum(p.Durations())
}

func (p Plan) Durations() []float64 {
	d := make([]float64, len(p.Segments))
	for i, s := range p.Segments {
		d[i] = s.Duration
	}
	return d
}

// HasCruise reports whether the plan holds the peak velocity for a while.
func (p Plan) HasCruise() bool {
	_, ok := p.Cruise()
	return ok
}

// Cruise returns the index of the cruise segment.
func (p Plan) Cruise() (int, bool) {
	for i, s := range p.Segments {
		if s.Phase == PhaseCruise {
			return i, true
		}
	}
	return -1, false
}

func (p Plan) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "peak=%g", p.PeakVelocity)
	for _, s := range p.Segments {
		fmt.Fprintf(&b, " %s(j=%g,t=%g)", s.Phase, s.Jerk, s.Duration)
	}
	return b.String()
}

// PlanSegments lays out the symmetric accelerate, cruise and decelerate segments that
// reach peakVelocity and return to rest.
//
// A cruise segment is emitted only when the target distance is strictly longer than
// twice the acceleration distance. Without it the plan has six segments and the two
// negative jerk segments are adjacent.
func PlanSegments(l Limits, peakVelocity float64) (Plan, error) {
	if !m.Finite(peakVelocity) || peakVelocity <= 0 || peakVelocity > l.maxVelocity {
		return Plan{}, errors.Wrapf(ErrInvalidParameter,
			"peak velocity must be in (0, %g], got %g", l.maxVelocity, peakVelocity)
	}

	if peakVelocity < l.RampVelocity() {
		return Plan{}, errors.Wrapf(ErrDistanceTooShortForRamp,
			"peak velocity %g is below ramp velocity %g", peakVelocity, l.RampVelocity())
	}
	accel := Accelerate(l, peakVelocity)

	// v/amax - amax/jmax can round below zero right at the ramp velocity
	j := l.maxJerk
	tj, tc := accel.T1, max(0, accel.T2)
	dAccel := accel.TotalDistance

	plan := Plan{PeakVelocity: peakVelocity}
	if l.distance > 2*dAccel {
		tv := (l.distance - 2*dAccel) / peakVelocity
		plan.Segments = []Segment{
			{PhaseJerkUp, j, tj},
			{PhaseAccelerate, 0, tc},
			{PhaseJerkDown, -j, tj},
			{PhaseCruise, 0, tv},
			{PhaseDecelJerkDown, -j, tj},
			{PhaseDecelerate, 0, tc},
			{PhaseDecelJerkUp, j, tj},
		}
		return plan, nil
	}

	plan.Segments = []Segment{
		{PhaseJerkUp, j, tj},
		{PhaseAccelerate, 0, tc},
		{PhaseJerkDown, -j, tj},
		{PhaseDecelJerkDown, -j, tj},
		{PhaseDecelerate, 0, tc},
		{PhaseDecelJerkUp, j, tj},
	}
	return plan, nil
}
