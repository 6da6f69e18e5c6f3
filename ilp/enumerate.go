package ilp

import (
	"context"
	"fmt"

	"github.com/katalvlaran/presslab/linsys"
)

// Enumerate is an exact Solver that walks every assignment of the free
// variables of the reduced system within their upper bounds and derives the
// pivot variables from them. It needs no floating point and serves as the
// brute-force oracle for the LP-based strategies.
//
// Cost grows as the product of (UpperBounds[f]+1) over free variables f;
// partial sums of free values prune branches that cannot beat the incumbent.
type Enumerate struct {
	opts Options
}

// NewEnumerate validates opts and returns the solver.
func NewEnumerate(opts ...Option) (*Enumerate, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Enumerate{opts: o}, nil
}

type enumEngine struct {
	sys    *linsys.System
	red    *linsys.Reduced
	ub     []int
	free   []int
	budget *budget

	best    []int
	bestObj int
	found   bool
}

// Solve enumerates free-variable assignments depth-first.
func (s *Enumerate) Solve(ctx context.Context, sys *linsys.System) (Solution, error) {
	red, err := prepare(sys)
	if err != nil {
		return Solution{}, err
	}

	e := &enumEngine{
		sys:    sys,
		red:    red,
		ub:     sys.UpperBounds(),
		free:   make([]int, len(red.Free)),
		budget: newBudget(ctx, s.opts),
	}
	stopErr := e.walk(0, 0)

	sol := Solution{Nodes: e.budget.nodes}
	if e.found {
		sol.Values = e.best
		sol.Objective = e.bestObj
	}
	if stopErr != nil {
		return sol, stopErr
	}
	if !e.found {
		return sol, fmt.Errorf("%w: no integer point among free assignments", ErrInfeasible)
	}

	return sol, nil
}

// walk fixes free variable k given the partial sum of free values so far.
// Every call counts as a node, pruned or not.
func (e *enumEngine) walk(k, partial int) error {
	if err := e.budget.tick(); err != nil {
		return err
	}
	if e.found && partial >= e.bestObj {
		return nil
	}
	if k == len(e.free) {
		return e.leaf()
	}
	for v := 0; v <= e.ub[e.red.Free[k]]; v++ {
		e.free[k] = v
		if err := e.walk(k+1, partial+v); err != nil {
			return err
		}
		if e.found && partial+v >= e.bestObj {
			break
		}
	}

	return nil
}

// leaf derives the pivots and keeps the assignment if it improves.
func (e *enumEngine) leaf() error {
	x, ok := e.red.Solve(e.free)
	if !ok {
		return nil
	}
	if err := e.sys.Check(x); err != nil {
		return fmt.Errorf("%w: derived point failed exact check: %v", ErrSolver, err)
	}
	if obj := e.sys.Objective(x); !e.found || obj < e.bestObj {
		e.best = x
		e.bestObj = obj
		e.found = true
	}

	return nil
}
