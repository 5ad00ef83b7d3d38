package batch

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pfeifer.dev/scurve/scurve"
)

// Job is one move of a batch file. Keys missing from a job are filled from the file
// defaults and then from the caller's base job.
type Job struct {
	Name            string
	Distance        float64
	MaxVelocity     float64
	MaxAcceleration float64
	MaxJerk         float64
	TimeStep        float64
	Export          string
}

// jobEntry tells an absent key apart from an explicit zero.
type jobEntry struct {
	Name            string   `yaml:"name"`
	Distance        *float64 `yaml:"distance"`
	MaxVelocity     *float64 `yaml:"max_velocity"`
	MaxAcceleration *float64 `yaml:"max_acceleration"`
	MaxJerk         *float64 `yaml:"max_jerk"`
	TimeStep        *float64 `yaml:"dt"`
	Export          string   `yaml:"export"`
}

type file struct {
	Defaults jobEntry   `yaml:"defaults"`
	Jobs     []jobEntry `yaml:"jobs"`
}

// FileError is returned by Load when a batch file cannot be read or parsed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Limits validates the job's move parameters.
func (j Job) Limits() (scurve.Limits, error) {
	return scurve.New(j.Distance, j.MaxVelocity, j.MaxAcceleration, j.MaxJerk)
}

func pick(v *float64, d float64) float64 {
	if v == nil {
		return d
	}
	return *v
}

func (e jobEntry) resolve(d Job) Job {
	return Job{
		Name:            e.Name,
		Distance:        pick(e.Distance, d.Distance),
		MaxVelocity:     pick(e.MaxVelocity, d.MaxVelocity),
		MaxAcceleration: pick(e.MaxAcceleration, d.MaxAcceleration),
		MaxJerk:         pick(e.MaxJerk, d.MaxJerk),
		TimeStep:        pick(e.TimeStep, d.TimeStep),
		Export:          e.Export,
	}
}

// Decode reads a batch file. Unknown keys are rejected.
func Decode(r io.Reader, base Job) ([]Job, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read batch file")
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "could not parse batch file")
	}
	if len(f.Jobs) == 0 {
		return nil, errors.New("batch file has no jobs")
	}

	defaults := f.Defaults.resolve(base)
	jobs := make([]Job, len(f.Jobs))
	for i, e := range f.Jobs {
		j := e.resolve(defaults)
		if j.Name == "" {
			j.Name = fmt.Sprintf("job %d", i+1)
		}
		jobs[i] = j
	}
	return jobs, nil
}

func Load(path string, base Job) ([]Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: errors.Wrap(err, "could not open batch file")}
	}
	defer f.Close()

	jobs, err := Decode(f, base)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return jobs, nil
}
