package scurve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phases(p Plan) []Phase {
	out := make([]Phase, len(p.Segments))
	for i, s := range p.Segments {
		out[i] = s.Phase
	}
	return out
}

func jerks(p Plan) []float64 {
	out := make([]float64, len(p.Segments))
	for i, s := range p.Segments {
		out[i] = s.Jerk
	}
	return out
}

func TestPlanSegmentsWithCruise(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 1.0, 0.5, 1.0, 2.0)
	plan, err := PlanSegments(l, 0.5)
	require.NoError(t, err)

	assert.Equal(t, Phases, phases(plan))
	assert.Equal(t, []float64{2, 0, -2, 0, -2, 0, 2}, jerks(plan))
	assert.InDeltaSlice(t, []float64{0.5, 0, 0.5, 1.0, 0.5, 0, 0.5}, plan.Durations(), 1e-12)
	assert.InDelta(t, 3.0, plan.Duration(), 1e-12)

	idx, ok := plan.Cruise()
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.True(t, plan.HasCruise())
}

func TestPlanSegmentsWithoutCruise(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 0.8, 2, 1, 5)
	v, err := SolvePeakVelocity(l, l.Distance())
	require.NoError(t, err)

	// a peak whose round trip covers the full distance leaves no room to cruise
	over := mustLimits(t, 2*AccelDistance(l, v), 2, 1, 5)
	plan, err := PlanSegments(over, v)
	require.NoError(t, err)

	assert.False(t, plan.HasCruise())
	assert.Equal(t, []Phase{
		PhaseJerkUp, PhaseAccelerate, PhaseJerkDown,
		PhaseDecelJerkDown, PhaseDecelerate, PhaseDecelJerkUp,
	}, phases(plan))
	assert.Equal(t, []float64{5, 0, -5, -5, 0, 5}, jerks(plan))

	tj, tc := 0.2, v/1-0.2
	assert.InDeltaSlice(t, []float64{tj, tc, tj, tj, tc, tj}, plan.Durations(), 1e-12)
}

func TestPlanSegmentsCruiseBoundary(t *testing.T) {
	t.Parallel()

	base := mustLimits(t, 1, 0.5, 1, 2)
	boundary := 2 * AccelDistance(base, base.MaxVelocity())

	at := mustLimits(t, boundary, 0.5, 1, 2)
	v, err := SolvePeakVelocity(at, at.Distance())
	require.NoError(t, err)
	require.Equal(t, 0.5, v)
	plan, err := PlanSegments(at, v)
	require.NoError(t, err)
	assert.Len(t, plan.Segments, 6)

	above := mustLimits(t, boundary*(1+1e-6), 0.5, 1, 2)
	v, err = SolvePeakVelocity(above, above.Distance())
	require.NoError(t, err)
	plan, err = PlanSegments(above, v)
	require.NoError(t, err)
	require.Len(t, plan.Segments, 7)
	assert.Greater(t, plan.Segments[3].Duration, 0.0)
}

func TestPlanSegmentsRejectsPeak(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 1, 0.5, 1, 2)

	_, err := PlanSegments(l, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = PlanSegments(l, 0.6)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = PlanSegments(l, 0.3)
	assert.ErrorIs(t, err, ErrDistanceTooShortForRamp, "0.3 is below the 0.5 ramp velocity")
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	names := make([]string, len(Phases))
	for i, p := range Phases {
		names[i] = p.String()
	}
	assert.Equal(t, []string{"J1", "A", "J2", "V", "J3", "D", "J4"}, names)
	assert.Equal(t, "cruise", PhaseCruise.Description())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
