package machine

import (
	"errors"
	"fmt"
)

// Sentinel errors for machine construction and parsing.
var (
	// ErrFieldCount is returned when a line has fewer than a goal and a joltage field.
	ErrFieldCount = errors.New("machine: too few fields")

	// ErrBadGoal is returned for an unrecognized goal character or an empty goal.
	ErrBadGoal = errors.New("machine: invalid goal pattern")

	// ErrBadIndex is returned when a button index fails integer parsing.
	ErrBadIndex = errors.New("machine: invalid button index")

	// ErrIndexRange is returned when a button index is not below the light count.
	ErrIndexRange = errors.New("machine: button index out of range")

	// ErrBadJoltage is returned when a joltage requirement fails integer parsing.
	ErrBadJoltage = errors.New("machine: invalid joltage requirement")

	// ErrJoltageLength is returned when the joltage count differs from the light count.
	ErrJoltageLength = errors.New("machine: joltage count does not match light count")

	// ErrTooManyLights is returned when a pattern does not fit a packed uint64 key.
	ErrTooManyLights = errors.New("machine: more than 64 lights")
)

// MaxPackedLights is the largest light count GoalMask and ButtonMask can pack.
const MaxPackedLights = 64

// ParseError locates a parse failure. Line is 1-based and zero when unknown;
// Field is the 0-based field index within the line.
type ParseError struct {
	Line  int
	Field int
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, field %d %q: %v", e.Line, e.Field, e.Text, e.Err)
	}

	return fmt.Sprintf("field %d %q: %v", e.Field, e.Text, e.Err)
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *ParseError) Unwrap() error { return e.Err }
