package linsys

import (
	"fmt"

	"github.com/katalvlaran/presslab/machine"
)

// Build turns a machine into its joltage system: one variable per button and,
// for each light i, the row sum_{b covers i} x_b = Joltage[i].
func Build(m *machine.Machine) (*System, error) {
	if m == nil {
		return nil, ErrMachineNil
	}
	joltage := m.Joltage()
	sys := &System{
		NumVars: m.NumButtons(),
		Rows:    make([]Row, len(joltage)),
	}
	for i, req := range joltage {
		row := Row{Light: i, RHS: req}
		for b := 0; b < m.NumButtons(); b++ {
			if m.Covers(b, i) {
				row.Vars = append(row.Vars, b)
			}
		}
		sys.Rows[i] = row
	}

	return sys, nil
}

// Objective returns the sum of x.
func (s *System) Objective(x []int) int {
	total := 0
	for _, v := range x {
		total += v
	}

	return total
}

// Check verifies x exactly: correct length, non-negative, every row holds.
func (s *System) Check(x []int) error {
	if len(x) != s.NumVars {
		return fmt.Errorf("%w: %d values for %d variables", ErrDimensionMismatch, len(x), s.NumVars)
	}
	for j, v := range x {
		if v < 0 {
			return fmt.Errorf("%w: x[%d] = %d", ErrNegative, j, v)
		}
	}
	for r, row := range s.Rows {
		got := 0
		for _, j := range row.Vars {
			got += x[j]
		}
		if got != row.RHS {
			return &RowError{Row: r, Got: got, Want: row.RHS}
		}
	}

	return nil
}

// UpperBounds returns, per variable, the smallest RHS among the rows it
// appears in. No feasible point exceeds these bounds since all coefficients
// are 1 and all variables non-negative. Variables in no row get 0: they never
// help the objective.
func (s *System) UpperBounds() []int {
	ub := make([]int, s.NumVars)
	seen := make([]bool, s.NumVars)
	for _, row := range s.Rows {
		for _, j := range row.Vars {
			if !seen[j] || row.RHS < ub[j] {
				ub[j] = row.RHS
				seen[j] = true
			}
		}
	}

	return ub
}
