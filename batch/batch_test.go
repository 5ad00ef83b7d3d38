package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"pfeifer.dev/scurve/scurve"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var base = Job{Distance: 1, MaxVelocity: 0.5, MaxAcceleration: 1, MaxJerk: 2, TimeStep: 0.01}

const batchFile = `
defaults:
  max_jerk: 5
jobs:
  - name: reference
    max_jerk: 2
  - distance: 10
    max_velocity: 2
  - name: short
    distance: 0.05
    max_velocity: 0.4
    max_acceleration: 1
    max_jerk: 2
`

func TestDecode(t *testing.T) {
	t.Parallel()

	jobs, err := Decode(strings.NewReader(batchFile), base)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, Job{Name: "reference", Distance: 1, MaxVelocity: 0.5, MaxAcceleration: 1, MaxJerk: 2, TimeStep: 0.01}, jobs[0])
	assert.Equal(t, Job{Name: "job 2", Distance: 10, MaxVelocity: 2, MaxAcceleration: 1, MaxJerk: 5, TimeStep: 0.01}, jobs[1])
	assert.Equal(t, "short", jobs[2].Name)
}

func TestDecodeRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "jobs:\n  - distance: 1\n    colour: red\n"},
		{"no jobs", "defaults:\n  distance: 1\n"},
		{"empty", ""},
		{"not yaml", "jobs: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(tt.data), base)
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	jobs, err := Decode(strings.NewReader(batchFile), base)
	require.NoError(t, err)
	jobs = append(jobs, Job{Name: "bad", Distance: -1, MaxVelocity: 1, MaxAcceleration: 1, MaxJerk: 1})

	results, err := Runner{Workers: 2}.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, jobs[i].Name, r.Job.Name)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, 0.5, results[0].Profile.Plan.PeakVelocity)
	require.NoError(t, results[1].Err)
	assert.True(t, scurve.Valid(results[1].Profile.Limits, results[1].Profile.Samples))

	assert.True(t, errors.Is(results[2].Err, scurve.ErrDistanceTooShortForRamp))
	assert.Nil(t, results[2].Profile)
	assert.True(t, errors.Is(results[3].Err, scurve.ErrInvalidParameter))
}

func TestRunMatchesSequential(t *testing.T) {
	t.Parallel()

	jobs := make([]Job, 12)
	for i := range jobs {
		jobs[i] = base
		jobs[i].Distance = 1 + float64(i)
	}

	parallel, err := Runner{Workers: 4}.Run(context.Background(), jobs)
	require.NoError(t, err)
	sequential, err := Runner{Workers: 1}.Run(context.Background(), jobs)
	require.NoError(t, err)

	for i := range jobs {
		require.NoError(t, parallel[i].Err)
		assert.Equal(t, sequential[i].Profile, parallel[i].Profile)
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Runner{Workers: 2}.Run(ctx, []Job{base, base, base})
	assert.True(t, errors.Is(err, context.Canceled))
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, context.Canceled))
		assert.Nil(t, r.Profile)
	}
}

func TestRunExports(t *testing.T) {
	t.Parallel()

	job := base
	job.Export = filepath.Join(t.TempDir(), "reference.csv")

	results, err := Runner{Workers: 1}.Run(context.Background(), []Job{job})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.FileExists(t, job.Export)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Load(path, base)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, path, fileErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadKeepsParseError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs:\n  - distance: [1]\n"), 0o644))

	_, err := Load(path, base)
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	var typeErr *yaml.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestDecodeExplicitZero(t *testing.T) {
	t.Parallel()

	data := `
defaults:
  max_jerk: 0
jobs:
  - name: zero distance
    distance: 0
    max_jerk: 2
  - name: zero step
    max_jerk: 2
    dt: 0
  - name: default jerk
`
	jobs, err := Decode(strings.NewReader(data), base)
	require.NoError(t, err)
	require.Len(t, jobs, 3)

	assert.Equal(t, 0.0, jobs[0].Distance)
	assert.Equal(t, 0.0, jobs[1].TimeStep)
	assert.Equal(t, 1.0, jobs[1].Distance)
	assert.Equal(t, 0.0, jobs[2].MaxJerk)

	results, err := Runner{Workers: 2}.Run(context.Background(), jobs)
	require.NoError(t, err)
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, scurve.ErrInvalidParameter), r.Job.Name)
		assert.Nil(t, r.Profile)
	}
}
