// Package linsys builds the joltage equation system of a button machine and
// offers the exact integer tooling solvers need around it.
//
// What
//
//   - Build: one non-negative integer variable per button, one equality row
//     per light (sum of covering buttons = the light's joltage requirement),
//     objective: minimise the sum of all variables. Build solves nothing.
//   - Check / Objective: exact verification of a candidate assignment.
//   - UpperBounds: x_b ≤ min requirement over the lights b covers.
//   - Reduce: fraction-free Gauss–Jordan elimination over int64. Dependent
//     rows are dropped, contradictions become ErrInconsistent, and the
//     remaining pivot / free variable split drives exact enumeration.
//     Reduced.Dense hands the full-row-rank rows to LP back-ends as a gonum
//     matrix.
//
// Example
//
//	sys, _ := linsys.Build(m)
//	red, err := sys.Reduce()
//	if errors.Is(err, linsys.ErrInconsistent) {
//		// no assignment, integer or not
//	}
//	x, ok := red.Solve(freeValues)
//
// Errors
//
//   - ErrMachineNil, ErrDimensionMismatch, ErrNegative, ErrViolated (via
//     *RowError), ErrInconsistent, ErrOverflow, ErrEmpty.
package linsys
