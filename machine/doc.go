// Package machine models a button machine: a row of indicator lights, a set of
// buttons each wired to a subset of those lights, and a per-light joltage
// requirement.
//
// What
//
//   - Machine holds the goal pattern, the button incidence sets and the
//     joltage requirements. A Machine is immutable once built; accessors
//     return copies.
//   - Parse decodes one input line into a Machine:
//
//     [.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//
//     The first field is the goal ('.' off, '#' on, brackets ignored), the
//     middle fields are buttons (comma-separated light indices inside '()' or
//     '{}'), and the last field lists one joltage requirement per light.
//   - ParseAll decodes a numbered line sequence, skipping blank lines.
//   - GoalMask and ButtonMask pack patterns into uint64 keys (bit i = light i)
//     for the reachability search.
//
// Errors
//
//   - ErrFieldCount     fewer than two fields on a line.
//   - ErrBadGoal        a goal rune other than '.', '#', '[' or ']', or an empty goal.
//   - ErrBadIndex       a button index that is not a non-negative integer.
//   - ErrIndexRange     a button index ≥ the number of lights.
//   - ErrBadJoltage     a joltage value that is not a non-negative integer.
//   - ErrJoltageLength  joltage count differs from the number of lights.
//   - ErrTooManyLights  packing a machine with more than 64 lights.
//
// Parse failures are returned as *ParseError, which records the offending
// field and line and unwraps to one of the sentinels above.
package machine
