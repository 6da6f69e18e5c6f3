package machine

import (
	"errors"
	"iter"
	"strconv"
	"strings"
)

// bracketStripper removes every bracket style a button or joltage field may use.
var bracketStripper = strings.NewReplacer("(", "", ")", "", "{", "", "}", "")

// Parse decodes one machine line. Fields are separated by spaces; the first
// is the goal, the last the joltage requirements, everything in between a button.
func Parse(line string) (*Machine, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, &ParseError{Field: len(fields), Text: line, Err: ErrFieldCount}
	}

	goal, err := parseGoal(fields[0])
	if err != nil {
		return nil, &ParseError{Field: 0, Text: fields[0], Err: err}
	}

	last := len(fields) - 1
	buttons := make([][]int, 0, last-1)
	for f := 1; f < last; f++ {
		set, err := parseList(fields[f], ErrBadIndex)
		if err != nil {
			return nil, &ParseError{Field: f, Text: fields[f], Err: err}
		}
		for _, idx := range set {
			if idx >= len(goal) {
				return nil, &ParseError{Field: f, Text: fields[f], Err: ErrIndexRange}
			}
		}
		buttons = append(buttons, set)
	}

	joltage, err := parseList(fields[last], ErrBadJoltage)
	if err != nil {
		return nil, &ParseError{Field: last, Text: fields[last], Err: err}
	}
	if len(joltage) != len(goal) {
		return nil, &ParseError{Field: last, Text: fields[last], Err: ErrJoltageLength}
	}

	m, err := New(goal, buttons, joltage)
	if err != nil {
		return nil, &ParseError{Field: last, Text: line, Err: err}
	}

	return m, nil
}

// parseGoal maps '.' to off and '#' to on, dropping '[' and ']'.
func parseGoal(s string) ([]bool, error) {
	goal := make([]bool, 0, len(s))
	for _, r := range s {
		switch r {
		case '.':
			goal = append(goal, false)
		case '#':
			goal = append(goal, true)
		case '[', ']':
		default:
			return nil, ErrBadGoal
		}
	}
	if len(goal) == 0 {
		return nil, ErrBadGoal
	}

	return goal, nil
}

// parseList strips brackets and parses a comma-separated list of
// non-negative integers; bad reports the sentinel for a malformed element.
func parseList(s string, bad error) ([]int, error) {
	body := bracketStripper.Replace(s)
	parts := strings.Split(body, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return nil, bad
		}
		out = append(out, v)
	}

	return out, nil
}

// ParseAll parses every non-blank line of seq, keyed by line number, and
// stops at the first failure, which is returned as a *ParseError carrying
// that line number.
func ParseAll(seq iter.Seq2[int, string]) ([]*Machine, error) {
	var out []*Machine
	for lineNo, line := range seq {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m, err := Parse(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = lineNo
			}

			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}
