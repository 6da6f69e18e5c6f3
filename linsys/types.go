package linsys

import (
	"errors"
	"fmt"
)

// Sentinel errors for system construction, verification and reduction.
var (
	// ErrMachineNil is returned if a nil machine pointer is passed to Build.
	ErrMachineNil = errors.New("linsys: machine is nil")

	// ErrDimensionMismatch is returned when an assignment has the wrong length.
	ErrDimensionMismatch = errors.New("linsys: dimension mismatch")

	// ErrNegative is returned when an assignment holds a negative value.
	ErrNegative = errors.New("linsys: negative variable value")

	// ErrViolated is returned when an assignment breaks an equality row.
	ErrViolated = errors.New("linsys: constraint violated")

	// ErrInconsistent is returned by Reduce when the rows admit no real solution.
	ErrInconsistent = errors.New("linsys: inconsistent system")

	// ErrOverflow is returned by Reduce when coefficients outgrow int64 safety.
	ErrOverflow = errors.New("linsys: coefficient overflow during reduction")

	// ErrEmpty is returned by Reduced.Dense when no rows or no variables remain.
	ErrEmpty = errors.New("linsys: empty system")
)

// Row is one equality constraint: the sum of Vars equals RHS.
// Light is the light index the row was built from.
type Row struct {
	Light int
	Vars  []int
	RHS   int
}

// System is an equality-constrained integer program over NumVars
// non-negative variables whose objective is to minimise their sum.
type System struct {
	NumVars int
	Rows    []Row
}

// RowError reports a violated row for a concrete assignment.
type RowError struct {
	Row  int
	Got  int
	Want int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("linsys: row %d sums to %d, want %d", e.Row, e.Got, e.Want)
}

// Unwrap lets errors.Is match ErrViolated.
func (e *RowError) Unwrap() error { return ErrViolated }

// ReducedRow is one row of the reduced system:
//
//	sum_j Coeffs[j]·x_j = RHS
//
// where Coeffs[Pivot] > 0 and every other pivot column is zero.
type ReducedRow struct {
	Pivot  int
	Coeffs []int64
	RHS    int64
}

// Reduced is the integer row-reduced echelon form of a System. Rows are
// linearly independent; Free lists variables without a pivot, ascending.
type Reduced struct {
	NumVars int
	Rows    []ReducedRow
	Free    []int
}
