package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"gonum.org/v1/plot/vg"

	"pfeifer.dev/scurve/batch"
	"pfeifer.dev/scurve/params"
	"pfeifer.dev/scurve/render"
	"pfeifer.dev/scurve/scurve"
	ms "pfeifer.dev/scurve/settings"
)

func defaultExportPath(s ms.ProfileSettings) string {
	return filepath.Join(s.OutputDirectory, "profile.png")
}

func profileFromFlags(cmd *cli.Command) (*scurve.Profile, error) {
	l, err := scurve.New(
		cmd.Float64("distance"),
		cmd.Float64("max-velocity"),
		cmd.Float64("max-acceleration"),
		cmd.Float64("max-jerk"),
	)
	if err != nil {
		return nil, err
	}
	return scurve.Generate(l, cmd.Float64("dt"))
}

// output opens path for writing, or returns w when path is empty.
func output(w io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "could not create output directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not create output file")
	}
	return f, f.Close, nil
}

func planAction(ctx context.Context, cmd *cli.Command) error {
	p, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}

	w, done, err := output(cmd.Root().Writer, cmd.String("output"))
	if err != nil {
		return err
	}

	every := cmd.Int("every")
	switch format := strings.ToLower(cmd.String("format")); format {
	case "text":
		err = writeText(w, p, every)
	case "json":
		err = writeJSON(w, p)
	case "csv":
		if !cmd.IsSet("every") {
			every = 1
		}
		err = render.WriteCSVEvery(p.Samples, w, every)
	default:
		err = errors.Wrapf(ErrUsage, "unknown format %q, expected text, json or csv", format)
	}
	if cerr := done(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "could not close output file")
	}
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		return saveLastProfile(p)
	}
	return nil
}

func writeJSON(w io.Writer, p *scurve.Profile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(struct {
		Summary scurve.Summary  `json:"summary"`
		Plan    scurve.Plan     `json:"plan"`
		Samples *scurve.Samples `json:"samples"`
	}{p.Summary(), p.Plan, p.Samples})
	return errors.Wrap(err, "could not encode profile")
}

func saveLastProfile(p *scurve.Profile) error {
	data, err := json.MarshalIndent(p.Summary(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode profile summary")
	}
	return errors.Wrap(params.PutParam(params.LAST_PROFILE, data), "could not save last profile")
}

// LastProfile reads the summary stored by plan --save.
func LastProfile() (scurve.Summary, error) {
	var s scurve.Summary
	data, err := params.GetParam(params.LAST_PROFILE)
	if err != nil {
		return s, err
	}
	err = json.Unmarshal(data, &s)
	return s, errors.Wrap(err, "could not decode last profile")
}

func atAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errors.Wrap(ErrUsage, "expected exactly one time argument")
	}
	t, err := strconv.ParseFloat(cmd.Args().First(), 64)
	if err != nil {
		return errors.Wrapf(ErrUsage, "time must be a number, got %q", cmd.Args().First())
	}

	p, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, readout(p, p.Samples.At(t)))
	return err
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	p, err := profileFromFlags(cmd)
	if err != nil {
		return err
	}

	opts := render.Options{
		Width:      vg.Length(cmd.Float64("width")) * vg.Inch,
		Height:     vg.Length(cmd.Float64("height")) * vg.Inch,
		Cursor:     cmd.Float64("at"),
		ShowCursor: cmd.IsSet("at"),
	}
	path := cmd.String("output")
	if err := render.Save(p, path, opts); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.Root().Writer, "wrote %s\n", path)
	return err
}

func batchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errors.Wrap(ErrUsage, "expected exactly one batch file")
	}

	s := ms.Settings
	base := batch.Job{
		Distance:        s.Distance,
		MaxVelocity:     s.MaxVelocity,
		MaxAcceleration: s.MaxAcceleration,
		MaxJerk:         s.MaxJerk,
		TimeStep:        s.TimeStep,
	}
	jobs, err := batch.Load(cmd.Args().First(), base)
	if err != nil {
		return err
	}

	runner := batch.Runner{
		Workers: cmd.Int("workers"),
		Render: render.Options{
			Width:  vg.Length(s.PlotWidth) * vg.Inch,
			Height: vg.Length(s.PlotHeight) * vg.Inch,
		},
	}
	results, err := runner.Run(ctx, jobs)
	if err != nil {
		return err
	}

	failed := 0
	w := cmd.Root().Writer
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		fmt.Fprintln(w, resultLine(r))
	}
	if failed > 0 {
		return errors.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or change the persisted defaults",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print every setting",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return writeSettings(cmd.Root().Writer, ms.Settings)
				},
			},
			{
				Name:  "reset",
				Usage: "Restore the default settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms.Settings.Default()
					return ms.Settings.Save()
				},
			},
			{
				Name:  "recommended",
				Usage: "Load the recommended settings",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					ms.Settings.Recommended()
					return ms.Settings.Save()
				},
			},
			{
				Name:      "set",
				Usage:     "Change one setting",
				ArgsUsage: "<key> <value>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() != 2 {
						return errors.Wrapf(ErrUsage, "expected a key and a value, keys are %s", strings.Join(ms.Keys(), ", "))
					}
					if err := ms.Settings.Set(cmd.Args().Get(0), cmd.Args().Get(1)); err != nil {
						return err
					}
					return ms.Settings.Save()
				},
			},
		},
	}
}

func writeSettings(w io.Writer, s ms.ProfileSettings) error {
	for _, key := range ms.Keys() {
		value, err := s.Get(key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-17s %s\n", key, value); err != nil {
			return err
		}
	}
	return nil
}
