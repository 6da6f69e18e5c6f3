package ilp

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/presslab/linsys"
)

// Rounding solves the LP relaxation once and rounds it. The rounded point is
// accepted only when it satisfies every row exactly and its objective equals
// ⌈relaxed optimum⌉, which certifies optimality. Anything else is reported as
// ErrNonIntegral instead of an unverified answer.
type Rounding struct {
	opts Options
}

// NewRounding validates opts and returns the solver.
func NewRounding(opts ...Option) (*Rounding, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Rounding{opts: o}, nil
}

// Solve runs a single relaxation.
func (s *Rounding) Solve(ctx context.Context, sys *linsys.System) (Solution, error) {
	red, err := prepare(sys)
	if err != nil {
		return Solution{}, err
	}
	if sys.NumVars == 0 {
		return Solution{Values: []int{}}, nil
	}
	if err := newBudget(ctx, s.opts).tick(); err != nil {
		return Solution{}, err
	}

	relax, err := newRelaxation(red)
	if err != nil {
		return Solution{}, err
	}
	obj, x, err := relax.solve(make([]int, sys.NumVars), sys.UpperBounds())
	if err != nil {
		return Solution{Nodes: 1}, err
	}

	xi, integral := roundAll(x, s.opts.Eps)
	if err := sys.Check(xi); err != nil {
		return Solution{Nodes: 1}, fmt.Errorf("%w: rounded point violates rows: %v", ErrNonIntegral, err)
	}
	got := sys.Objective(xi)
	if want := int(math.Ceil(obj - s.opts.Eps)); got != want {
		return Solution{Nodes: 1}, fmt.Errorf("%w: rounded objective %d, relaxed bound %d (integral=%t)",
			ErrNonIntegral, got, want, integral)
	}

	return Solution{Values: xi, Objective: got, Nodes: 1}, nil
}
