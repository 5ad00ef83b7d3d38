package scurve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validLimits = []struct {
	name                 string
	distance, v, a, jerk float64
}{
	{"reference move", 1.0, 0.5, 1.0, 2.0},
	{"long cruise", 10, 2, 1, 5},
	{"no room to cruise", 0.8, 2, 1, 5},
	{"cruise equals ramp", 3, 1, 0.5, 0.5},
	{"stiff axis", 50, 1.5, 3, 30},
	{"short hop", 0.05, 0.2, 0.5, 10},
	{"long slow", 100, 3, 2, 10},
}

func TestGenerateScenarioReferenceMove(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 1.0, 0.5, 1.0, 2.0)
	p, err := Generate(l, DefaultTimeStep)
	require.NoError(t, err)
	s := p.Samples

	assert.LessOrEqual(t, p.Plan.PeakVelocity, 0.5)
	require.Equal(t, 301, s.Len())
	assert.InDelta(t, 3.0, s.Duration(), 1e-12)

	final := s.Final()
	assert.Equal(t, 1.0, final.Position)
	assert.LessOrEqual(t, final.Velocity, StopVelocity)

	// end of J1: v = j*tj²/2
	j2 := s.At(0.5)
	assert.Equal(t, 2, j2.Stage)
	assert.InDelta(t, 0.25, j2.Velocity, 1e-9)
	assert.InDelta(t, 1.0, j2.Acceleration, 1e-9)
	assert.Equal(t, -2.0, j2.Jerk)

	cruise := s.At(1.5)
	assert.Equal(t, 3, cruise.Stage)
	assert.Equal(t, 0.5, cruise.Velocity)
	assert.Equal(t, 0.0, cruise.Acceleration)
	assert.InDelta(t, 0.5, cruise.Position, 1e-9)
	assert.Equal(t, PhaseCruise, p.Phase(cruise.Index))

	assert.NoError(t, Validate(l, s))
}

func TestGenerateDistanceTooShortForRamp(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 0.01, 0.5, 1.0, 2.0)
	_, err := Generate(l, DefaultTimeStep)
	require.ErrorIs(t, err, ErrDistanceTooShortForRamp)
	assert.True(t, IsPlanningError(err))
}

func TestGenerateProperties(t *testing.T) {
	t.Parallel()

	for _, tt := range validLimits {
		for _, dt := range []float64{0.01, 0.001} {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				l := mustLimits(t, tt.distance, tt.v, tt.a, tt.jerk)
				p, err := Generate(l, dt)
				require.NoError(t, err)
				s := p.Samples

				require.NoError(t, Validate(l, s))
				assert.Equal(t, tt.distance, s.Final().Position)
				assert.LessOrEqual(t, s.Final().Velocity, StopVelocity)

				assert.Equal(t, 0.0, s.Time[0])
				for i := 1; i < s.Len(); i++ {
					step := s.Time[i] - s.Time[i-1]
					assert.Greater(t, step, 0.0)
					if i < s.Len()-1 {
						assert.InDelta(t, dt, step, 1e-9, "sample %d", i)
					} else {
						assert.LessOrEqual(t, step, dt+1e-9)
					}
					assert.GreaterOrEqual(t, s.Position[i], s.Position[i-1])
				}
				assert.InDelta(t, p.Plan.Duration(), s.Duration(), dt)
			})
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 7.3, 1.1, 0.9, 4)
	a, err := Generate(l, DefaultTimeStep)
	require.NoError(t, err)
	b, err := Generate(l, DefaultTimeStep)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// The six segment plan has no plateau between the two negative jerk segments. With a
// closed form evaluation it still comes to rest; this records how close.
func TestIntegrateSixSegmentResidual(t *testing.T) {
	t.Parallel()

	for _, tt := range validLimits {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := mustLimits(t, tt.distance, tt.v, tt.a, tt.jerk)
			v, err := SolvePeakVelocity(l, l.Distance())
			require.NoError(t, err)

			at := mustLimits(t, 2*AccelDistance(l, v), tt.v, tt.a, tt.jerk)
			plan, err := PlanSegments(at, v)
			require.NoError(t, err)
			require.Len(t, plan.Segments, 6)

			s, err := Integrate(at, plan, DefaultTimeStep)
			require.NoError(t, err)
			final := s.Final()
			t.Logf("residual velocity %.3g acceleration %.3g", final.Velocity, final.Acceleration)
			assert.InDelta(t, 0, final.Velocity, 1e-9)
			assert.InDelta(t, 0, final.Acceleration, 1e-9)
			assert.NoError(t, Validate(at, s))
		})
	}
}

func TestIntegrateRejectsTimeStep(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 1, 0.5, 1, 2)
	plan, err := PlanSegments(l, 0.5)
	require.NoError(t, err)

	for _, dt := range []float64{0, -0.01} {
		_, err := Integrate(l, plan, dt)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}

	_, err = Integrate(l, plan, 1e-9)
	assert.ErrorIs(t, err, ErrInvalidParameter, "too many samples")
}

func TestIntegrateDivergence(t *testing.T) {
	t.Parallel()

	l := mustLimits(t, 0.3, 0.5, 1, 2)

	// the round trip at 0.5 is 0.5 m, longer than the 0.3 m move
	overshoot, err := PlanSegments(l, 0.5)
	require.NoError(t, err)
	_, err = Integrate(l, overshoot, DefaultTimeStep)
	assert.ErrorIs(t, err, ErrPlanningDivergence)

	_, err = Integrate(l, Plan{}, DefaultTimeStep)
	assert.ErrorIs(t, err, ErrPlanningDivergence)

	negative := Plan{PeakVelocity: 0.5, Segments: []Segment{{PhaseJerkUp, 2, -1}}}
	_, err = Integrate(l, negative, DefaultTimeStep)
	assert.ErrorIs(t, err, ErrPlanningDivergence)
	assert.True(t, IsPlanningError(err))
}
