package cli

import (
	"fmt"
	"io"
	"strings"

	"pfeifer.dev/scurve/batch"
	"pfeifer.dev/scurve/scurve"
)

func summary(p *scurve.Profile) string {
	s := p.Summary()
	shape := "no cruise"
	if s.Cruise {
		shape = "cruise"
	}
	return fmt.Sprintf(
		"limits: %s\npeak velocity: %.3f m/s\nduration: %.3f s\nsegments: %d (%s)\nsamples: %d (dt %g s)",
		s.Limits, s.PeakVelocity, s.Duration, s.Segments, shape, s.Samples, s.TimeStep,
	)
}

// readout describes one sample, three decimals per quantity.
func readout(p *scurve.Profile, pt scurve.Point) string {
	phase := p.Phase(pt.Index)
	return fmt.Sprintf(
		"time: %.3f s\nposition: %.3f m\nvelocity: %.3f m/s\nacceleration: %.3f m/s²\njerk: %.3f m/s³\nstage: %s (%s)",
		pt.Time, pt.Position, pt.Velocity, pt.Acceleration, pt.Jerk, phase, phase.Description(),
	)
}

func writeText(w io.Writer, p *scurve.Profile, every int) error {
	every = max(1, every)
	var b strings.Builder
	b.WriteString(summary(p))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%-5s %10s %10s %10s %10s %10s %5s\n", "index", "time", "position", "velocity", "accel", "jerk", "stage")
	s := p.Samples
	last := s.Len() - 1
	for i := 0; i <= last; i++ {
		if i%every != 0 && i != last {
			continue
		}
		pt := s.Point(i)
		fmt.Fprintf(&b, "%-5d %10.4f %10.4f %10.4f %10.4f %10.4f %5s\n",
			pt.Index, pt.Time, pt.Position, pt.Velocity, pt.Acceleration, pt.Jerk, p.Phase(i))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func resultLine(r batch.Result) string {
	if r.Err != nil {
		return fmt.Sprintf("%-20s FAIL %s", r.Job.Name, Message(r.Err))
	}
	s := r.Profile.Summary()
	return fmt.Sprintf("%-20s ok   peak=%.3f m/s duration=%.3f s segments=%d samples=%d",
		r.Job.Name, s.PeakVelocity, s.Duration, s.Segments, s.Samples)
}
