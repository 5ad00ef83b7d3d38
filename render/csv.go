package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"pfeifer.dev/scurve/scurve"
)

var csvHeader = []string{"time", "position", "velocity", "acceleration", "jerk", "stage"}

// WriteCSV writes a header row and one row per sample.
func WriteCSV(s *scurve.Samples, w io.Writer) error {
	return WriteCSVEvery(s, w, 1)
}

// WriteCSVEvery writes every nth sample. The last sample is always written.
func WriteCSVEvery(s *scurve.Samples, w io.Writer, every int) error {
	every = max(1, every)
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "could not write csv header")
	}

	n := s.Len()
	for i := 0; i < n; i++ {
		if i%every != 0 && i != n-1 {
			continue
		}
		row := []string{
			formatFloat(s.Time[i]),
			formatFloat(s.Position[i]),
			formatFloat(s.Velocity[i]),
			formatFloat(s.Acceleration[i]),
			formatFloat(s.Jerk[i]),
			strconv.Itoa(s.Stage[i]),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrapf(err, "could not write csv row %d", i)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "could not flush csv")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
