package batch

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"pfeifer.dev/scurve/render"
	"pfeifer.dev/scurve/scurve"
	"pfeifer.dev/scurve/utils"
)

// Result is the outcome of one job. Profile is nil when Err is set.
type Result struct {
	Index   int
	Job     Job
	Profile *scurve.Profile
	Err     error
}

// Runner plans batch jobs concurrently. Each job is planned on its own; jobs never
// share state.
type Runner struct {
	Workers int
	Render  render.Options
}

// Run plans every job and returns the results in job order. A failing job does not
// stop the others. Jobs not yet started when ctx is cancelled get ctx's error, and Run
// returns it too.
func (r Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))
	for i, job := range jobs {
		results[i] = Result{Index: i, Job: job}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Profile, results[i].Err = r.plan(job)
			utils.Logie(errors.Wrapf(results[i].Err, "batch job %s", job.Name))
			return nil
		})
	}

	// the jobs themselves never return errors
	_ = g.Wait()
	return results, ctx.Err()
}

func (r Runner) plan(job Job) (*scurve.Profile, error) {
	l, err := job.Limits()
	if err != nil {
		return nil, err
	}
	p, err := scurve.Generate(l, job.TimeStep)
	if err != nil {
		return nil, err
	}
	if job.Export != "" {
		if err := render.Save(p, job.Export, r.Render); err != nil {
			return nil, errors.Wrapf(err, "could not export %s", job.Name)
		}
	}
	return p, nil
}
