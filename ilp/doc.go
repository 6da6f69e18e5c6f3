// Package ilp solves the joltage integer program of a button machine:
//
//	minimise   sum_b x_b
//	subject to sum_{b covers i} x_b = J_i   for every light i
//	           x_b ∈ ℤ, x_b ≥ 0
//
// The solving strategy sits behind the narrow Solver interface so it can be
// swapped without touching linsys.Build.
//
// Strategies
//
//   - BranchAndBound (default): LP relaxation via the gonum simplex on the
//     reduced system, branch on the most fractional variable, prune with the
//     rounded-up relaxed optimum. Exact for arbitrary inputs.
//   - Enumerate: exact walk over the free variables of the reduced system
//     within their upper bounds. No floating point; used as an oracle.
//   - Rounding: one relaxation, rounded. Accepted only when the rounded point
//     checks exactly and matches the relaxed bound, else ErrNonIntegral.
//
// Errors
//
//	ErrInfeasible is the root of every "no answer" outcome. ErrTimeLimit,
//	ErrNodeLimit, ErrNonIntegral and ErrSolver all wrap it, so callers that
//	only distinguish feasible from infeasible can test errors.Is(err,
//	ErrInfeasible). Budget stops return the best incumbent alongside the error.
//	ErrSystemNil, ErrOptionViolation and ErrUnknownStrategy report misuse.
//
// Usage
//
//	s, err := ilp.New(ilp.StrategyBranchAndBound, ilp.WithTimeLimit(10*time.Second))
//	presses, err := ilp.MinJoltagePresses(ctx, s, m)
package ilp
