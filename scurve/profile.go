package scurve

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Profile is a planned move together with its samples.
type Profile struct {
	Limits  Limits   `json:"limits"`
	Plan    Plan     `json:"plan"`
	Samples *Samples `json:"samples"`
}

// Generate plans the move described by l and samples it every dt seconds.
func Generate(l Limits, dt float64) (*Profile, error) {
	v, err := SolvePeakVelocity(l, l.distance)
	if err != nil {
		return nil, errors.Wrap(err, "could not solve peak velocity")
	}
	plan, err := PlanSegments(l, v)
	if err != nil {
		return nil, errors.Wrap(err, "could not plan segments")
	}
	samples, err := Integrate(l, plan, dt)
	if err != nil {
		return nil, errors.Wrap(err, "could not integrate plan")
	}
	return &Profile{Limits: l, Plan: plan, Samples: samples}, nil
}

// Phase is the phase that owns sample i.
func (p *Profile) Phase(i int) Phase {
	return p.Plan.Segments[p.Samples.Stage[i]].Phase
}

// Summary is the compact description of a profile that is persisted and printed.
type Summary struct {
	Limits       Limits  `json:"limits"`
	TimeStep     float64 `json:"dt"`
	PeakVelocity float64 `json:"peak_velocity"`
	Duration     float64 `json:"duration"`
	Segments     int     `json:"segments"`
	Cruise       bool    `json:"cruise"`
	Samples      int     `json:"samples"`
	Final        Point   `json:"final"`
}

func (p *Profile) Summary() Summary {
	return Summary{
		Limits:       p.Limits,
		TimeStep:     p.Samples.TimeStep,
		PeakVelocity: p.Plan.PeakVelocity,
		Duration:     p.Plan.Duration(),
		Segments:     len(p.Plan.Segments),
		Cruise:       p.Plan.HasCruise(),
		Samples:      p.Samples.Len(),
		Final:        p.Samples.Final(),
	}
}

type limitsJSON struct {
	Distance        float64 `json:"distance"`
	MaxVelocity     float64 `json:"max_velocity"`
	MaxAcceleration float64 `json:"max_acceleration"`
	MaxJerk         float64 `json:"max_jerk"`
}

func (l Limits) MarshalJSON() ([]byte, error) {
	return json.Marshal(limitsJSON{l.distance, l.maxVelocity, l.maxAcceleration, l.maxJerk})
}

// UnmarshalJSON decodes and validates limits, so a decoded value is as trustworthy as
// one built with New.
func (l *Limits) UnmarshalJSON(data []byte) error {
	var raw limitsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "could not decode limits")
	}
	parsed, err := New(raw.Distance, raw.MaxVelocity, raw.MaxAcceleration, raw.MaxJerk)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
