package render

import (
	"fmt"
	"image/color"

	"pfeifer.dev/scurve/scurve"
)

// Stage colours in phase order: J1 A J2 V J3 D J4.
var stageColors = []color.RGBA{
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, // purple
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // orange
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, // brown
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, // pink
}

var cursorColor = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}

func StageColor(p scurve.Phase) color.RGBA {
	if p < 0 || int(p) >= len(stageColors) {
		return cursorColor
	}
	return stageColors[p]
}

// StageHex is StageColor as a CSS colour.
func StageHex(p scurve.Phase) string {
	c := StageColor(p)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// run is a contiguous range of samples owned by one phase. End is inclusive and is the
// first sample of the next run, so neighbouring runs share a point and draw joined up.
type run struct {
	Phase      scurve.Phase
	Start, End int
}

func runs(p *scurve.Profile) []run {
	n := p.Samples.Len()
	if n == 0 {
		return nil
	}

	var out []run
	cur := run{Phase: p.Phase(0)}
	for i := 1; i < n; i++ {
		phase := p.Phase(i)
		if phase != cur.Phase {
			cur.End = i
			out = append(out, cur)
			cur = run{Phase: phase, Start: i}
		}
	}
	cur.End = n - 1
	return append(out, cur)
}

type series struct {
	Name   string
	Unit   string
	Values []float64
}

func quantities(s *scurve.Samples) []series {
	return []series{
		{"position", "m", s.Position},
		{"velocity", "m/s", s.Velocity},
		{"acceleration", "m/s²", s.Acceleration},
		{"jerk", "m/s³", s.Jerk},
	}
}
