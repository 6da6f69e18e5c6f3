package ilp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/presslab/linsys"
)

// ErrInfeasible is returned when no non-negative integer assignment satisfies
// every row. Limit and solver failures wrap it, so errors.Is(err,
// ErrInfeasible) holds for every "no answer" outcome.
var ErrInfeasible = errors.New("ilp: infeasible")

var (
	// ErrTimeLimit is returned when the time budget runs out before optimality is proven.
	ErrTimeLimit = fmt.Errorf("%w: time limit reached", ErrInfeasible)

	// ErrNodeLimit is returned when the node budget runs out before optimality is proven.
	ErrNodeLimit = fmt.Errorf("%w: node limit reached", ErrInfeasible)

	// ErrNonIntegral is returned by Rounding when the relaxed optimum does not
	// round to a certified integer optimum.
	ErrNonIntegral = fmt.Errorf("%w: relaxation optimum is not integral", ErrInfeasible)

	// ErrSolver is returned when the LP back-end fails for a reason other than infeasibility.
	ErrSolver = fmt.Errorf("%w: lp solver failure", ErrInfeasible)
)

var (
	// ErrSystemNil is returned if a nil system pointer is passed.
	ErrSystemNil = errors.New("ilp: system is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("ilp: invalid option supplied")

	// ErrUnknownStrategy is returned by New for unknown strategy names.
	ErrUnknownStrategy = errors.New("ilp: unknown strategy")
)

// DefaultEps is the integrality and pruning tolerance for LP values.
const DefaultEps = 1e-6

// simplexTol is the reduced-cost tolerance handed to the simplex.
const simplexTol = 1e-10

// deadlineEvery is how many nodes pass between deadline checks.
const deadlineEvery = 64

// Solver finds a minimum-sum non-negative integer assignment for a system.
type Solver interface {
	Solve(ctx context.Context, sys *linsys.System) (Solution, error)
}

// Solution is an optimal assignment.
//   - Values: one press count per variable.
//   - Objective: sum of Values.
//   - Nodes: search nodes processed, pruned ones included.
type Solution struct {
	Values    []int
	Objective int
	Nodes     int
}

// Option configures a solver via functional arguments.
type Option func(*Options)

// Options holds search budgets shared by all strategies.
type Options struct {
	// TimeLimit, if > 0, bounds wall-clock search time (ErrTimeLimit).
	TimeLimit time.Duration

	// NodeLimit, if > 0, bounds processed nodes (ErrNodeLimit).
	NodeLimit int

	// Eps is the integrality tolerance for LP values.
	Eps float64

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns unlimited budgets and DefaultEps.
func DefaultOptions() Options {
	return Options{Eps: DefaultEps}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// WithTimeLimit sets a wall-clock budget; 0 disables it, negative is invalid.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: TimeLimit cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.TimeLimit = d
	}
}

// WithNodeLimit sets a node budget; 0 disables it, negative is invalid.
func WithNodeLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: NodeLimit cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.NodeLimit = n
	}
}

// WithEps sets the integrality tolerance; it must lie in (0, 0.5).
func WithEps(eps float64) Option {
	return func(o *Options) {
		if !(eps > 0 && eps < 0.5) {
			o.err = fmt.Errorf("%w: Eps must be in (0, 0.5), got %g", ErrOptionViolation, eps)
			return
		}
		o.Eps = eps
	}
}
