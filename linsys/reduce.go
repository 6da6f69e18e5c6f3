package linsys

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// coeffLimit bounds |coefficient| after each elimination step so that the
// next cross-multiplication cannot overflow int64.
const coeffLimit = 1 << 31

// Reduce performs fraction-free Gauss–Jordan elimination over int64.
//
// Implementation:
//   - Stage 1: copy rows into an augmented matrix [A | b].
//   - Stage 2: for each column, pick the row with the smallest non-zero
//     |entry| as pivot, eliminate the column from every other row by
//     cross-multiplication, and divide each touched row by its gcd.
//   - Stage 3: any leftover row is all-zero in A; a non-zero RHS there
//     means ErrInconsistent. Leftover rows are dropped.
//
// The result has full row rank, which LP back-ends require.
func (s *System) Reduce() (*Reduced, error) {
	n := s.NumVars
	a := make([][]int64, len(s.Rows))
	for r, row := range s.Rows {
		a[r] = make([]int64, n+1)
		for _, j := range row.Vars {
			a[r][j] = 1
		}
		a[r][n] = int64(row.RHS)
	}

	var (
		rank   int
		pivots []int
	)
	for col := 0; col < n && rank < len(a); col++ {
		p := -1
		for r := rank; r < len(a); r++ {
			if a[r][col] != 0 && (p < 0 || abs64(a[r][col]) < abs64(a[p][col])) {
				p = r
			}
		}
		if p < 0 {
			continue
		}
		a[rank], a[p] = a[p], a[rank]
		for r := range a {
			if r == rank || a[r][col] == 0 {
				continue
			}
			f, g := a[rank][col], a[r][col]
			for c := 0; c <= n; c++ {
				a[r][c] = a[r][c]*f - a[rank][c]*g
			}
			if err := normalize(a[r]); err != nil {
				return nil, err
			}
		}
		pivots = append(pivots, col)
		rank++
	}

	for r := rank; r < len(a); r++ {
		if a[r][n] != 0 {
			return nil, fmt.Errorf("%w: row reduces to 0 = %d", ErrInconsistent, a[r][n])
		}
	}

	red := &Reduced{NumVars: n, Rows: make([]ReducedRow, rank)}
	isPivot := make([]bool, n)
	for k, col := range pivots {
		row := a[k]
		if row[col] < 0 {
			for c := range row {
				row[c] = -row[c]
			}
		}
		red.Rows[k] = ReducedRow{Pivot: col, Coeffs: row[:n:n], RHS: row[n]}
		isPivot[col] = true
	}
	for j := 0; j < n; j++ {
		if !isPivot[j] {
			red.Free = append(red.Free, j)
		}
	}

	return red, nil
}

// normalize divides row by the gcd of its entries and enforces coeffLimit.
func normalize(row []int64) error {
	var g int64
	for _, v := range row {
		g = gcd(g, abs64(v))
	}
	if g > 1 {
		for c := range row {
			row[c] /= g
		}
	}
	for _, v := range row {
		if abs64(v) >= coeffLimit {
			return ErrOverflow
		}
	}

	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

// Solve derives every pivot variable from the given free-variable values.
// free is indexed like r.Free. It returns false when some pivot would be
// fractional or negative.
func (r *Reduced) Solve(free []int) ([]int, bool) {
	x := make([]int, r.NumVars)
	for k, j := range r.Free {
		x[j] = free[k]
	}
	for _, row := range r.Rows {
		rest := row.RHS
		for _, j := range r.Free {
			rest -= row.Coeffs[j] * int64(x[j])
		}
		d := row.Coeffs[row.Pivot]
		if rest < 0 || rest%d != 0 {
			return nil, false
		}
		x[row.Pivot] = int(rest / d)
	}

	return x, true
}

// Dense returns the reduced coefficient matrix and right-hand side, or
// ErrEmpty when every row was dependent.
func (r *Reduced) Dense() (*mat.Dense, []float64, error) {
	if len(r.Rows) == 0 || r.NumVars == 0 {
		return nil, nil, ErrEmpty
	}
	a := mat.NewDense(len(r.Rows), r.NumVars, nil)
	b := make([]float64, len(r.Rows))
	for k, row := range r.Rows {
		for j, v := range row.Coeffs {
			a.Set(k, j, float64(v))
		}
		b[k] = float64(row.RHS)
	}

	return a, b, nil
}
