package aggregate

import "fmt"

// Mode names one of the two press-minimisation problems.
type Mode string

const (
	// ModeToggle is the minimum toggle presses problem.
	ModeToggle Mode = "toggle"

	// ModeJoltage is the minimum joltage presses problem.
	ModeJoltage Mode = "joltage"
)

// MachineError locates a failed solve.
type MachineError struct {
	Index int // zero-based position of the machine in the batch
	Mode  Mode
	Err   error
}

func (e *MachineError) Error() string {
	return fmt.Sprintf("aggregate: machine %d (%s): %v", e.Index, e.Mode, e.Err)
}

// Unwrap exposes the solver error to errors.Is and errors.As.
func (e *MachineError) Unwrap() error { return e.Err }

// Totals is the outcome of a run.
//   - Toggle, Joltage: summed minima of the machines each mode solved.
//   - Machines: machines in the batch.
//   - Failures: isolated failures, ordered by machine then mode.
type Totals struct {
	Toggle   int
	Joltage  int
	Machines int
	Failures []MachineError
}

// slot is the per-machine result written by exactly one worker.
type slot struct {
	toggle     int
	joltage    int
	toggleErr  error
	joltageErr error
}

// fold sums the slots in machine order.
func fold(slots []slot) Totals {
	t := Totals{Machines: len(slots)}
	for i, s := range slots {
		if s.toggleErr != nil {
			t.Failures = append(t.Failures, MachineError{Index: i, Mode: ModeToggle, Err: s.toggleErr})
		} else {
			t.Toggle += s.toggle
		}
		if s.joltageErr != nil {
			t.Failures = append(t.Failures, MachineError{Index: i, Mode: ModeJoltage, Err: s.joltageErr})
		} else {
			t.Joltage += s.joltage
		}
	}

	return t
}
