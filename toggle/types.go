// Package toggle provides tunable options and error definitions
// for the minimum toggle-press search.
package toggle

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for toggle search.
var (
	// ErrMachineNil is returned if a nil machine pointer is passed.
	ErrMachineNil = errors.New("toggle: machine is nil")

	// ErrUnreachable is returned when no press set produces the goal.
	ErrUnreachable = errors.New("toggle: goal unreachable")

	// ErrStateLimit is returned when the visited set exceeds MaxStates.
	ErrStateLimit = errors.New("toggle: state limit exceeded")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("toggle: invalid option supplied")

	// ErrUnknownStrategy is returned by Solve and ParseStrategy for unknown names.
	ErrUnknownStrategy = errors.New("toggle: unknown strategy")
)

// checkEvery is how many state expansions pass between cancellation checks.
const checkEvery = 1024

// Option configures the search via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks shared by all strategies.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxStates, if > 0, caps the visited set of the BFS strategy.
	// A value of 0 disables the cap.
	MaxStates int

	// OnLevel is called before a BFS level is expanded with the level
	// number (presses so far) and the frontier size. Returning an error
	// aborts the search.
	OnLevel func(level, frontier int) error

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, no state cap
// and a no-op level hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnLevel: func(int, int) error { return nil },
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxStates caps the number of distinct states the BFS may visit.
//
//	n > 0:  limit to n states
//	n == 0: explicit no limit
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithOnLevel registers a per-level hook.
func WithOnLevel(fn func(level, frontier int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnLevel = fn
		}
	}
}

// Result is the outcome of a minimum toggle search.
//   - Presses: minimum number of presses (0 when the goal is all-off).
//   - Buttons: one shortest press set, ascending button indices.
//   - StatesVisited: distinct states recorded (BFS) or solver calls (SAT).
//   - Levels: BFS levels fully expanded.
type Result struct {
	Presses       int
	Buttons       []int
	StatesVisited int
	Levels        int
}
