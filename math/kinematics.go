package math

// State is the motion of an axis at one instant.
type State struct {
	Position     float64
	Velocity     float64
	Acceleration float64
}

// Advance returns the state reached after holding a constant jerk for t seconds.
//
//	a(t) = a0 + j*t
//	v(t) = v0 + a0*t + j/2*t²
//	x(t) = x0 + v0*t + a0/2*t² + j/6*t³
func (s State) Advance(jerk, t float64) State {
	return State{
		Position:     s.Position + Distance(t, jerk, s.Acceleration, s.Velocity),
		Velocity:     Velocity(t, jerk, s.Acceleration, s.Velocity),
		Acceleration: s.Acceleration + jerk*t,
	}
}

// Velocity is the velocity after t seconds of constant jerk starting from aEgo and vEgo.
func Velocity(t, jerk, aEgo, vEgo float64) float64 {
	return vEgo + aEgo*t + jerk/2*(t*t)
}

// Distance is the distance covered in t seconds of constant jerk starting from aEgo and vEgo.
func Distance(t, jerk, aEgo, vEgo float64) float64 {
	return t*vEgo + aEgo/2*(t*t) + jerk/6*(t*t*t)
}
