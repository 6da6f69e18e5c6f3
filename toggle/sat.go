package toggle

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/presslab/machine"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// MinPressesSAT computes the same minimum as MinPresses with a SAT encoding:
// one literal per button, an XOR parity circuit per light pinned to the goal,
// and a cardinality sorting network whose Leq(w) outputs are assumed for
// w = 0, 1, ... until the formula becomes satisfiable.
//
// StatesVisited in the result counts solver calls. MaxStates and OnLevel
// are ignored; Ctx is checked between solver calls.
func MinPressesSAT(m *machine.Machine, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrMachineNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return Result{}, err
	}

	goal := m.Goal()
	nb := m.NumButtons()
	if !anyOn(goal) {
		return Result{Presses: 0, Buttons: []int{}, StatesVisited: 0}, nil
	}
	if nb == 0 {
		return Result{}, fmt.Errorf("%w: no buttons", ErrUnreachable)
	}

	c := logic.NewCCap(nb * (len(goal) + 1))
	xs := make([]z.Lit, nb)
	for b := range xs {
		xs[b] = c.Lit()
	}

	// parity[i] is true iff an odd number of pressed buttons cover light i.
	pins := make([]z.Lit, 0, len(goal))
	for i, on := range goal {
		parity := c.F
		for b := 0; b < nb; b++ {
			if m.Covers(b, i) {
				parity = c.Xor(parity, xs[b])
			}
		}
		if on {
			pins = append(pins, parity)
		} else {
			pins = append(pins, parity.Not())
		}
	}
	cs := c.CardSort(xs)

	g := gini.New()
	c.ToCnf(g)
	// Register every button variable with the solver even when the
	// circuit folded it away.
	for _, x := range xs {
		g.Add(x)
		g.Add(x.Not())
		g.Add(z.LitNull)
	}

	calls := 1
	g.Assume(pins...)
	if g.Solve() == unsatisfiable {
		return Result{}, fmt.Errorf("%w: parity constraints unsatisfiable", ErrUnreachable)
	}

	for w := 1; w <= cs.N(); w++ {
		if err := o.Ctx.Err(); err != nil {
			return Result{}, err
		}
		calls++
		g.Assume(pins...)
		g.Assume(cs.Leq(w))
		if g.Solve() != satisfiable {
			continue
		}
		buttons := make([]int, 0, w)
		for b, x := range xs {
			if g.Value(x) {
				buttons = append(buttons, b)
			}
		}

		return Result{Presses: len(buttons), Buttons: buttons, StatesVisited: calls}, nil
	}

	// Unreachable: the unrestricted formula was satisfiable, so Leq(N) is too.
	return Result{}, fmt.Errorf("%w: cardinality search exhausted", ErrUnreachable)
}

func anyOn(goal []bool) bool {
	for _, on := range goal {
		if on {
			return true
		}
	}

	return false
}
