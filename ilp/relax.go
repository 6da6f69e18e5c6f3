package ilp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/katalvlaran/presslab/linsys"
)

// budget tracks node, deadline and context limits for one search.
type budget struct {
	ctx         context.Context
	nodeLimit   int
	useDeadline bool
	deadline    time.Time
	nodes       int
}

func newBudget(ctx context.Context, o Options) *budget {
	b := &budget{ctx: ctx, nodeLimit: o.NodeLimit}
	if o.TimeLimit > 0 {
		b.useDeadline = true
		b.deadline = time.Now().Add(o.TimeLimit)
	}

	return b
}

// tick counts one node and reports why the search must stop, if it must.
func (b *budget) tick() error {
	b.nodes++
	if b.nodeLimit > 0 && b.nodes > b.nodeLimit {
		return ErrNodeLimit
	}
	if err := b.ctx.Err(); err != nil {
		return err
	}
	if b.useDeadline && b.nodes%deadlineEvery == 0 && time.Now().After(b.deadline) {
		return ErrTimeLimit
	}

	return nil
}

// relaxation solves the LP relaxation of a reduced system under box bounds
// lo ≤ x ≤ hi. The model is put into the standard form gonum expects by
// shifting x = lo + x' and adding one slack per variable:
//
//	minimise   sum x'
//	subject to R·x'     = b − R·lo    (reduced rows, full row rank)
//	           x' + s   = hi − lo     (one bound row per variable)
//	           x', s ≥ 0
//
// Bound rows own a private slack column, so full row rank is preserved and
// no column is all-zero.
type relaxation struct {
	n  int
	k  int
	ra *mat.Dense // reduced rows R; nil when k == 0
	rb []float64
}

// newRelaxation takes the gonum form of red once for every node.
func newRelaxation(red *linsys.Reduced) (relaxation, error) {
	r := relaxation{n: red.NumVars}
	ra, rb, err := red.Dense()
	switch {
	case errors.Is(err, linsys.ErrEmpty):
		// Every row was dependent; only the bound rows remain.
	case err != nil:
		return r, fmt.Errorf("%w: %v", ErrSolver, err)
	default:
		r.ra, r.rb = ra, rb
		r.k, _ = ra.Dims()
	}

	return r, nil
}

// solve returns the relaxed optimum and point, or an error wrapping
// ErrInfeasible when the box is empty of real solutions.
func (r relaxation) solve(lo, hi []int) (float64, []float64, error) {
	n, k := r.n, r.k

	a := mat.NewDense(k+n, 2*n, nil)
	b := make([]float64, k+n)
	c := make([]float64, 2*n)
	for j := 0; j < n; j++ {
		c[j] = 1
	}

	if k > 0 {
		loF := make([]float64, n)
		for j, v := range lo {
			loF[j] = float64(v)
		}
		var shift mat.VecDense
		shift.MulVec(r.ra, mat.NewVecDense(n, loF))
		a.Slice(0, k, 0, n).(*mat.Dense).Copy(r.ra)
		for i := 0; i < k; i++ {
			b[i] = r.rb[i] - shift.AtVec(i)
			if b[i] < 0 {
				row := a.RawRowView(i)
				for j := 0; j < n; j++ {
					row[j] = -row[j]
				}
				b[i] = -b[i]
			}
		}
	}
	for j := 0; j < n; j++ {
		a.Set(k+j, j, 1)
		a.Set(k+j, n+j, 1)
		b[k+j] = float64(hi[j] - lo[j])
	}

	opt, x, err := lp.Simplex(c, a, b, simplexTol, nil)
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return 0, nil, ErrInfeasible
	case err != nil:
		return 0, nil, fmt.Errorf("%w: %v", ErrSolver, err)
	}

	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = x[j] + float64(lo[j])
		opt += float64(lo[j])
	}

	return opt, out, nil
}

// prepare reduces sys and reports inconsistency as infeasibility.
func prepare(sys *linsys.System) (*linsys.Reduced, error) {
	if sys == nil {
		return nil, ErrSystemNil
	}
	red, err := sys.Reduce()
	if errors.Is(err, linsys.ErrInconsistent) {
		return nil, fmt.Errorf("%w: %w", ErrInfeasible, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolver, err)
	}

	return red, nil
}

// roundAll rounds every value to the nearest integer and reports whether all
// were within eps of it.
func roundAll(x []float64, eps float64) ([]int, bool) {
	out := make([]int, len(x))
	integral := true
	for j, v := range x {
		r := math.Round(v)
		if math.Abs(v-r) > eps {
			integral = false
		}
		out[j] = int(r)
	}

	return out, integral
}
