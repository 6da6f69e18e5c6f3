package ilp

import (
	"context"
	"fmt"

	"github.com/katalvlaran/presslab/linsys"
	"github.com/katalvlaran/presslab/machine"
)

// Strategy names accepted by New.
const (
	StrategyBranchAndBound = "branch-and-bound"
	StrategyEnumerate      = "enumerate"
	StrategyRounding       = "rounding"
)

// New builds the Solver named by strategy. An empty name selects
// branch-and-bound.
func New(strategy string, opts ...Option) (Solver, error) {
	switch strategy {
	case "", StrategyBranchAndBound:
		return NewBranchAndBound(opts...)
	case StrategyEnumerate:
		return NewEnumerate(opts...)
	case StrategyRounding:
		return NewRounding(opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// SolveMachine builds the joltage system of m, solves it with s and verifies
// the returned assignment against the system before handing it back.
func SolveMachine(ctx context.Context, s Solver, m *machine.Machine) (Solution, error) {
	sys, err := linsys.Build(m)
	if err != nil {
		return Solution{}, err
	}
	sol, err := s.Solve(ctx, sys)
	if err != nil {
		return sol, err
	}
	if err := sys.Check(sol.Values); err != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrSolver, err)
	}

	return sol, nil
}

// MinJoltagePresses returns the minimum total number of presses that meets
// every joltage requirement of m exactly.
func MinJoltagePresses(ctx context.Context, s Solver, m *machine.Machine) (int, error) {
	sol, err := SolveMachine(ctx, s, m)
	if err != nil {
		return 0, err
	}

	return sol.Objective, nil
}
