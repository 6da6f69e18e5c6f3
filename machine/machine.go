package machine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Machine is a parsed button machine. The zero value is a machine with no
// lights and no buttons.
type Machine struct {
	goal    []bool
	buttons [][]int
	joltage []int
}

// New validates and copies its arguments into a Machine.
// Duplicate indices within one button are collapsed; order is preserved.
func New(goal []bool, buttons [][]int, joltage []int) (*Machine, error) {
	m := &Machine{
		goal:    slices.Clone(goal),
		buttons: make([][]int, len(buttons)),
		joltage: slices.Clone(joltage),
	}
	for b, set := range buttons {
		m.buttons[b] = dedupe(set)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// dedupe returns a copy of set without repeated indices.
func dedupe(set []int) []int {
	out := make([]int, 0, len(set))
	for _, idx := range set {
		if !slices.Contains(out, idx) {
			out = append(out, idx)
		}
	}

	return out
}

// Validate reports the first violated invariant, or nil.
func (m *Machine) Validate() error {
	n := len(m.goal)
	if len(m.joltage) != n {
		return fmt.Errorf("%w: %d lights, %d requirements", ErrJoltageLength, n, len(m.joltage))
	}
	for i, j := range m.joltage {
		if j < 0 {
			return fmt.Errorf("%w: light %d requires %d", ErrBadJoltage, i, j)
		}
	}
	for b, set := range m.buttons {
		for _, idx := range set {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: button %d references light %d of %d", ErrIndexRange, b, idx, n)
			}
		}
	}

	return nil
}

// Lights returns the number of lights N.
func (m *Machine) Lights() int { return len(m.goal) }

// NumButtons returns the number of buttons.
func (m *Machine) NumButtons() int { return len(m.buttons) }

// Goal returns a copy of the target light pattern.
func (m *Machine) Goal() []bool { return slices.Clone(m.goal) }

// Button returns a copy of the incidence set of button b.
// It returns nil when b is out of range.
func (m *Machine) Button(b int) []int {
	if b < 0 || b >= len(m.buttons) {
		return nil
	}

	return slices.Clone(m.buttons[b])
}

// Buttons returns a deep copy of all incidence sets.
func (m *Machine) Buttons() [][]int {
	out := make([][]int, len(m.buttons))
	for b, set := range m.buttons {
		out[b] = slices.Clone(set)
	}

	return out
}

// Covers reports whether button b affects light i.
func (m *Machine) Covers(b, i int) bool {
	if b < 0 || b >= len(m.buttons) {
		return false
	}

	return slices.Contains(m.buttons[b], i)
}

// Joltage returns a copy of the per-light joltage requirements.
func (m *Machine) Joltage() []int { return slices.Clone(m.joltage) }

// GoalMask packs the goal into a uint64 with bit i set when light i must be lit.
func (m *Machine) GoalMask() (uint64, error) {
	if len(m.goal) > MaxPackedLights {
		return 0, fmt.Errorf("%w: %d", ErrTooManyLights, len(m.goal))
	}
	var mask uint64
	for i, on := range m.goal {
		if on {
			mask |= 1 << uint(i)
		}
	}

	return mask, nil
}

// ButtonMask packs the incidence set of button b into a uint64.
func (m *Machine) ButtonMask(b int) (uint64, error) {
	if len(m.goal) > MaxPackedLights {
		return 0, fmt.Errorf("%w: %d", ErrTooManyLights, len(m.goal))
	}
	if b < 0 || b >= len(m.buttons) {
		return 0, fmt.Errorf("%w: button %d of %d", ErrIndexRange, b, len(m.buttons))
	}
	var mask uint64
	for _, idx := range m.buttons[b] {
		mask |= 1 << uint(idx)
	}

	return mask, nil
}

// Toggle applies each listed button once, in order, to the all-off pattern
// and returns the resulting lights. Out-of-range button numbers are ignored.
func (m *Machine) Toggle(presses []int) []bool {
	state := make([]bool, len(m.goal))
	for _, b := range presses {
		if b < 0 || b >= len(m.buttons) {
			continue
		}
		for _, idx := range m.buttons[b] {
			state[idx] = !state[idx]
		}
	}

	return state
}

// Increment returns the per-light joltage produced by pressing button b
// counts[b] times.
func (m *Machine) Increment(counts []int) ([]int, error) {
	if len(counts) != len(m.buttons) {
		return nil, fmt.Errorf("%w: %d counts for %d buttons", ErrIndexRange, len(counts), len(m.buttons))
	}
	sums := make([]int, len(m.goal))
	for b, c := range counts {
		for _, idx := range m.buttons[b] {
			sums[idx] += c
		}
	}

	return sums, nil
}

// String encodes the machine in the input line format accepted by Parse.
func (m *Machine) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, on := range m.goal {
		if on {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(']')
	for _, set := range m.buttons {
		sb.WriteString(" (")
		sb.WriteString(joinInts(set))
		sb.WriteByte(')')
	}
	sb.WriteString(" {")
	sb.WriteString(joinInts(m.joltage))
	sb.WriteByte('}')

	return sb.String()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}

	return strings.Join(parts, ",")
}
