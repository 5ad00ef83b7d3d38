package scurve

import "math"

// Samples is a trajectory sampled at a fixed time step. All slices have the same length
// and index i of each describes the same instant. Stage holds the index of the plan
// segment that owns the sample.
type Samples struct {
	TimeStep     float64   `json:"dt"`
	Time         []float64 `json:"time"`
	Position     []float64 `json:"position"`
	Velocity     []float64 `json:"velocity"`
	Acceleration []float64 `json:"acceleration"`
	Jerk         []float64 `json:"jerk"`
	Stage        []int     `json:"stage"`
}

// Point is one row of Samples.
type Point struct {
	Index        int     `json:"index"`
	Time         float64 `json:"time"`
	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
	Jerk         float64 `json:"jerk"`
	Stage        int     `json:"stage"`
}

func newSamples(dt float64, capacity int) *Samples {
	return &Samples{
		TimeStep:     dt,
		Time:         make([]float64, 0, capacity),
		Position:     make([]float64, 0, capacity),
		Velocity:     make([]float64, 0, capacity),
		Acceleration: make([]float64, 0, capacity),
		Jerk:         make([]float64, 0, capacity),
		Stage:        make([]int, 0, capacity),
	}
}

func (s *Samples) append(p Point) {
	s.Time = append(s.Time, p.Time)
	s.Position = append(s.Position, p.Position)
	s.Velocity = append(s.Velocity, p.Velocity)
	s.Acceleration = append(s.Acceleration, p.Acceleration)
	s.Jerk = append(s.Jerk, p.Jerk)
	s.Stage = append(s.Stage, p.Stage)
}

func (s *Samples) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Time)
}

// Duration is the time of the last sample.
func (s *Samples) Duration() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.Time[len(s.Time)-1]
}

// Point returns row i. i must be within [0, Len()).
func (s *Samples) Point(i int) Point {
	return Point{
		Index:        i,
		Time:         s.Time[i],
		Position:     s.Position[i],
		Velocity:     s.Velocity[i],
		Acceleration: s.Acceleration[i],
		Jerk:         s.Jerk[i],
		Stage:        s.Stage[i],
	}
}

// IndexAt maps a time to the sample at or before it, floor(t/dt), clamped to the
// sample range. It returns -1 for empty samples.
func (s *Samples) IndexAt(t float64) int {
	n := s.Len()
	if n == 0 {
		return -1
	}
	if math.IsNaN(t) || t <= 0 || s.TimeStep <= 0 {
		return 0
	}
	idx := math.Floor(t / s.TimeStep)
	if idx >= float64(n-1) {
		return n - 1
	}
	return int(idx)
}

// At is the nearest-sample readout at time t.
func (s *Samples) At(t float64) Point {
	return s.Point(s.IndexAt(t))
}

func (s *Samples) Final() Point {
	return s.Point(s.Len() - 1)
}
