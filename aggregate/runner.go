package aggregate

import (
	"context"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/presslab/ilp"
	"github.com/katalvlaran/presslab/linesource"
	"github.com/katalvlaran/presslab/machine"
	"github.com/katalvlaran/presslab/toggle"
)

// Runner solves batches of machines. The zero value is usable: it runs
// runtime.NumCPU() workers, BFS for toggles, branch-and-bound for joltage,
// isolates failures and logs nothing.
type Runner struct {
	// Workers bounds concurrent machines; <= 0 means runtime.NumCPU().
	Workers int

	// FailFast aborts the run on the first failed solve.
	FailFast bool

	// Toggle selects the toggle algorithm; empty means BFS.
	Toggle toggle.Strategy

	// ToggleOpts are passed to every toggle solve. The run context is
	// appended, so a WithContext here is overridden.
	ToggleOpts []toggle.Option

	// Joltage solves the joltage program; nil means ilp.New("").
	Joltage ilp.Solver

	// Logger receives per-machine entries; nil discards them.
	Logger logrus.FieldLogger

	// Metrics, if non-nil, records every solve.
	Metrics *Metrics
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}

	return runtime.NumCPU()
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger != nil {
		return r.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// Run solves every machine in both modes and sums the minima.
//
// With FailFast the first failure cancels the remaining work and is returned
// as a *MachineError; the returned Totals then only carries Machines. Without
// it, failures land in Totals.Failures and Run errors only when ctx ends.
func (r *Runner) Run(ctx context.Context, machines []*machine.Machine) (Totals, error) {
	joltage := r.Joltage
	if joltage == nil {
		var err error
		if joltage, err = ilp.New(""); err != nil {
			return Totals{}, errors.Wrap(err, "aggregate: default joltage solver")
		}
	}
	log := r.logger()

	slots := make([]slot, len(machines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, m := range machines {
		g.Go(func() error {
			slots[i] = r.solve(gctx, i, m, joltage, log)
			if !r.FailFast {
				return nil
			}
			if err := slots[i].toggleErr; err != nil {
				return &MachineError{Index: i, Mode: ModeToggle, Err: err}
			}
			if err := slots[i].joltageErr; err != nil {
				return &MachineError{Index: i, Mode: ModeJoltage, Err: err}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Totals{Machines: len(machines)}, err
	}
	if err := ctx.Err(); err != nil {
		return Totals{Machines: len(machines)}, errors.Wrap(err, "aggregate: run interrupted")
	}

	t := fold(slots)
	log.WithFields(logrus.Fields{
		"machines": t.Machines,
		"toggle":   t.Toggle,
		"joltage":  t.Joltage,
		"failures": len(t.Failures),
	}).Info("run complete")

	return t, nil
}

// solve runs both modes for machine i. Under FailFast a toggle failure skips
// the joltage solve.
func (r *Runner) solve(ctx context.Context, i int, m *machine.Machine, joltage ilp.Solver, log logrus.FieldLogger) slot {
	var s slot
	if err := ctx.Err(); err != nil {
		s.toggleErr, s.joltageErr = err, err
		return s
	}
	entry := log.WithField("machine", i)

	start := time.Now()
	opts := append(slices.Clone(r.ToggleOpts), toggle.WithContext(ctx))
	res, err := toggle.Solve(r.Toggle, m, opts...)
	r.Metrics.observeToggle(r.Toggle, res, err, time.Since(start))
	if err != nil {
		s.toggleErr = err
		entry.WithField("mode", ModeToggle).WithError(err).Warn("solve failed")
		if r.FailFast {
			s.joltageErr = err
			return s
		}
	} else {
		s.toggle = res.Presses
		entry.WithFields(logrus.Fields{
			"mode":    ModeToggle,
			"presses": res.Presses,
			"states":  res.StatesVisited,
		}).Debug("solved")
	}

	start = time.Now()
	sol, err := ilp.SolveMachine(ctx, joltage, m)
	r.Metrics.observeJoltage(sol, err, time.Since(start))
	if err != nil {
		s.joltageErr = err
		entry.WithField("mode", ModeJoltage).WithError(err).Warn("solve failed")
		return s
	}
	s.joltage = sol.Objective
	entry.WithFields(logrus.Fields{
		"mode":    ModeJoltage,
		"presses": sol.Objective,
		"nodes":   sol.Nodes,
	}).Debug("solved")

	return s
}

// RunFile reads machines from path, one per line, and runs them.
func (r *Runner) RunFile(ctx context.Context, path string) (Totals, error) {
	src, err := linesource.Open(path)
	if err != nil {
		return Totals{}, errors.Wrap(err, "aggregate: read input")
	}
	defer src.Close()

	return r.RunSource(ctx, src)
}

// RunSource parses every line of src and runs the machines.
func (r *Runner) RunSource(ctx context.Context, src *linesource.Source) (Totals, error) {
	machines, err := machine.ParseAll(src.Lines())
	if err != nil {
		return Totals{}, errors.Wrap(err, "aggregate: parse input")
	}
	if err := src.Err(); err != nil {
		return Totals{}, errors.Wrap(err, "aggregate: read input")
	}
	if n := src.Skipped(); n > 0 {
		r.logger().WithField("lines", n).Warn("skipped lines that are not valid UTF-8")
	}

	return r.Run(ctx, machines)
}
