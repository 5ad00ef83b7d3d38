package render

import (
	"bufio"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	m "pfeifer.dev/scurve/math"
	"pfeifer.dev/scurve/scurve"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ImageFormats are the formats WriteImage can produce.
var ImageFormats = []string{"png", "svg", "pdf", "jpg", "jpeg"}

type Options struct {
	Width  vg.Length
	Height vg.Length
	// Cursor draws a vertical line at this time when ShowCursor is set.
	Cursor     float64
	ShowCursor bool
}

func DefaultOptions() Options {
	return Options{Width: 8 * vg.Inch, Height: 10 * vg.Inch}
}

// Format returns the lower case extension of path without the dot.
func Format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// WriteImage draws the four aligned panels of p in the given format.
func WriteImage(p *scurve.Profile, w io.Writer, format string, opts Options) error {
	format = strings.ToLower(format)
	if !slices.Contains(ImageFormats, format) {
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	if p.Samples.Len() == 0 {
		return errors.New("profile has no samples")
	}
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}

	panels, err := Panels(p, opts)
	if err != nil {
		return err
	}

	img, err := draw.NewFormattedCanvas(opts.Width, opts.Height, format)
	if err != nil {
		return errors.Wrap(err, "could not create canvas")
	}
	dc := draw.New(img)

	table := make([][]*plot.Plot, len(panels))
	for i, panel := range panels {
		table[i] = []*plot.Plot{panel}
	}
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadY:      vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(table, tiles, dc)
	for i := range table {
		table[i][0].Draw(canvases[i][0])
	}

	_, err = img.WriteTo(w)
	if err != nil {
		return errors.Wrap(err, "could not write image")
	}
	return nil
}

// SaveImage writes the plot to path, picking the format from its extension.
func SaveImage(p *scurve.Profile, path string, opts Options) error {
	format := Format(path)
	if !slices.Contains(ImageFormats, format) {
		return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	return writeFile(path, func(w *bufio.Writer) error { return WriteImage(p, w, format, opts) })
}

// Panels builds one plot per quantity with a line run per stage. Only the first panel
// carries the legend.
func Panels(p *scurve.Profile, opts Options) ([]*plot.Plot, error) {
	s := p.Samples
	rs := runs(p)
	duration := s.Duration()

	var panels []*plot.Plot
	for i, q := range quantities(s) {
		pl := plot.New()
		pl.Y.Label.Text = q.Name + " (" + q.Unit + ")"
		pl.Add(plotter.NewGrid())

		seen := map[scurve.Phase]bool{}
		for _, r := range rs {
			pts := make(plotter.XYs, 0, r.End-r.Start+1)
			for j := r.Start; j <= r.End; j++ {
				pts = append(pts, plotter.XY{X: s.Time[j], Y: q.Values[j]})
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, errors.Wrapf(err, "could not plot %s", q.Name)
			}
			line.Color = StageColor(r.Phase)
			line.Width = vg.Points(1.5)
			pl.Add(line)

			if i == 0 && !seen[r.Phase] {
				seen[r.Phase] = true
				pl.Legend.Add(r.Phase.String()+" "+r.Phase.Description(), line)
			}
		}

		if opts.ShowCursor {
			cursor, err := cursorLine(q.Values, m.Clamp(opts.Cursor, 0, duration))
			if err != nil {
				return nil, err
			}
			pl.Add(cursor)
		}

		pl.X.Min = 0
		pl.X.Max = duration
		panels = append(panels, pl)
	}

	top := panels[0]
	top.Title.Text = p.Limits.String()
	top.Legend.Top = true
	top.Legend.Left = false
	top.Legend.XOffs = -10
	top.Legend.YOffs = -10
	panels[len(panels)-1].X.Label.Text = "time (s)"
	return panels, nil
}

func cursorLine(values []float64, t float64) (*plotter.Line, error) {
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	line, err := plotter.NewLine(plotter.XYs{{X: t, Y: lo}, {X: t, Y: hi}})
	if err != nil {
		return nil, errors.Wrap(err, "could not plot cursor")
	}
	line.Color = cursorColor
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return line, nil
}
