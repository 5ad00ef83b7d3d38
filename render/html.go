package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	m "pfeifer.dev/scurve/math"
	"pfeifer.dev/scurve/scurve"
)

// maxChartPoints bounds the points per chart so long moves stay responsive in a browser.
const maxChartPoints = 4000

// WriteHTML renders p as a page of four interactive line charts.
func WriteHTML(p *scurve.Profile, w io.Writer, o Options) error {
	s := p.Samples
	if s.Len() == 0 {
		return errors.New("profile has no samples")
	}
	stride := max(1, s.Len()/maxChartPoints)
	rs := runs(p)

	page := components.NewPage()
	for _, q := range quantities(s) {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: "S-curve profile", Width: "1000px", Height: "320px"}),
			charts.WithTitleOpts(opts.Title{Title: q.Name, Subtitle: p.Limits.String()}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
			charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "time (s)", NameLocation: "middle", NameGap: 25, Min: 0, Max: s.Duration()}),
			charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: q.Unit}),
		)

		for _, r := range rs {
			data := make([]opts.LineData, 0, (r.End-r.Start)/stride+2)
			for j := r.Start; j < r.End; j += stride {
				data = append(data, opts.LineData{Value: []interface{}{s.Time[j], q.Values[j]}})
			}
			data = append(data, opts.LineData{Value: []interface{}{s.Time[r.End], q.Values[r.End]}})

			hex := StageHex(r.Phase)
			line.AddSeries(r.Phase.String(), data,
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: hex, Width: 2}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
			)
		}

		if o.ShowCursor {
			t := m.Clamp(o.Cursor, 0, s.Duration())
			lo, hi := floats.Min(q.Values), floats.Max(q.Values)
			line.AddSeries("cursor", []opts.LineData{
				{Value: []interface{}{t, lo}},
				{Value: []interface{}{t, hi}},
			},
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: "#404040", Type: "dashed"}),
			)
		}
		page.AddCharts(line)
	}

	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "could not render html")
	}
	return nil
}
