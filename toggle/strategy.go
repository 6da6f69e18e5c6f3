package toggle

import (
	"fmt"

	"github.com/katalvlaran/presslab/machine"
)

// Strategy names a minimum toggle algorithm.
type Strategy string

const (
	// BFS is the breadth-first state-space search (MinPresses).
	BFS Strategy = "bfs"

	// SAT is the cardinality-minimised SAT encoding (MinPressesSAT).
	SAT Strategy = "sat"
)

// ParseStrategy maps a configuration value onto a Strategy.
// An empty name selects BFS.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", BFS:
		return BFS, nil
	case SAT:
		return SAT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Solve dispatches to the algorithm named by s.
func Solve(s Strategy, m *machine.Machine, opts ...Option) (Result, error) {
	switch s {
	case BFS, "":
		return MinPresses(m, opts...)
	case SAT:
		return MinPressesSAT(m, opts...)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(s))
	}
}
