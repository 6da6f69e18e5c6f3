// Branch-and-Bound over LP relaxations.
//
// BranchAndBound solves the joltage integer program exactly: each node solves
// the LP relaxation of the reduced system under box bounds, prunes when the
// rounded-up relaxed optimum cannot beat the incumbent, and otherwise splits
// on the most fractional variable.
//
// Outline:
//  1. Reduction first: linsys.Reduce drops dependent rows, so the simplex sees
//     a full-row-rank matrix; contradictory systems fail before any LP.
//  2. Finite box: every variable starts in [0, UpperBounds[j]], so the tree
//     is finite even without the LP bound.
//  3. Bound: the objective is integral, so ⌈LP − eps⌉ is an admissible lower
//     bound. Prune whenever it is ≥ the incumbent.
//  4. Branching: most fractional variable (lowest index on ties), down
//     branch (x ≤ ⌊v⌋) explored first. Fully deterministic.
//  5. Budgets: node limit, sparse deadline checks (every 64 nodes) and ctx.
//
// Complexity:
//   - Worst case exponential in the number of variables; LP bounds usually
//     close the tree after a handful of nodes on machine-sized instances.
//   - Memory: O(depth · n) for the explicit node stack.

package ilp

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/presslab/linsys"
)

// BranchAndBound is the default exact Solver.
type BranchAndBound struct {
	opts Options
}

// NewBranchAndBound validates opts and returns the solver.
func NewBranchAndBound(opts ...Option) (*BranchAndBound, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &BranchAndBound{opts: o}, nil
}

// bbNode is one box of the search tree.
type bbNode struct {
	lo, hi []int
}

// bbEngine holds all search data for one Solve call.
type bbEngine struct {
	sys    *linsys.System
	relax  relaxation
	eps    float64
	budget *budget

	// Current best incumbent.
	best    []int
	bestObj int
	found   bool
}

// Solve runs the search. On a budget stop the best incumbent found so far,
// if any, is returned together with ErrTimeLimit or ErrNodeLimit.
func (s *BranchAndBound) Solve(ctx context.Context, sys *linsys.System) (Solution, error) {
	red, err := prepare(sys)
	if err != nil {
		return Solution{}, err
	}
	if sys.NumVars == 0 {
		return Solution{Values: []int{}}, nil
	}

	relax, err := newRelaxation(red)
	if err != nil {
		return Solution{}, err
	}
	e := &bbEngine{
		sys:    sys,
		relax:  relax,
		eps:    s.opts.Eps,
		budget: newBudget(ctx, s.opts),
	}
	stopErr := e.run(bbNode{lo: make([]int, sys.NumVars), hi: sys.UpperBounds()})

	sol := Solution{Nodes: e.budget.nodes}
	if e.found {
		sol.Values = e.best
		sol.Objective = e.bestObj
	}
	if stopErr != nil {
		return sol, stopErr
	}
	if !e.found {
		return sol, fmt.Errorf("%w: no integer point in %d nodes", ErrInfeasible, e.budget.nodes)
	}

	return sol, nil
}

// run processes nodes depth-first from an explicit stack.
func (e *bbEngine) run(root bbNode) error {
	stack := []bbNode{root}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := e.budget.tick(); err != nil {
			return err
		}

		obj, x, err := e.relax.solve(nd.lo, nd.hi)
		// Exact match: ErrSolver wraps ErrInfeasible too.
		if err == ErrInfeasible {
			continue
		}
		if err != nil {
			return err
		}

		// Prune by bound.
		if e.found && int(math.Ceil(obj-e.eps)) >= e.bestObj {
			continue
		}

		j, v := e.mostFractional(x)
		if j < 0 {
			if err := e.commit(x); err != nil {
				return err
			}
			continue
		}

		fl := int(math.Floor(v))
		if fl+1 <= nd.hi[j] {
			up := bbNode{lo: slices.Clone(nd.lo), hi: nd.hi}
			up.lo[j] = fl + 1
			stack = append(stack, up)
		}
		if fl >= nd.lo[j] {
			down := bbNode{lo: nd.lo, hi: slices.Clone(nd.hi)}
			down.hi[j] = fl
			stack = append(stack, down)
		}
	}

	return nil
}

// mostFractional returns the variable farthest from an integer, or -1 when
// every value is integral within eps.
func (e *bbEngine) mostFractional(x []float64) (int, float64) {
	best, bestDist := -1, e.eps
	for j, v := range x {
		frac := v - math.Floor(v)
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			best, bestDist = j, dist
		}
	}
	if best < 0 {
		return -1, 0
	}

	return best, x[best]
}

// commit verifies an integral relaxed point exactly and records it when it
// beats the incumbent.
func (e *bbEngine) commit(x []float64) error {
	xi, _ := roundAll(x, e.eps)
	if err := e.sys.Check(xi); err != nil {
		return fmt.Errorf("%w: integral LP point failed exact check: %v", ErrSolver, err)
	}
	obj := e.sys.Objective(xi)
	if !e.found || obj < e.bestObj {
		e.best = xi
		e.bestObj = obj
		e.found = true
	}

	return nil
}
