package machine_test

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/presslab/machine"
)

const sampleLine = "[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}"

// TestParse_Sample decodes the canonical sample line.
func TestParse_Sample(t *testing.T) {
	m, err := machine.Parse(sampleLine)
	require.NoError(t, err)
	require.Equal(t, 4, m.Lights())
	require.Equal(t, 6, m.NumButtons())
	require.Equal(t, []bool{false, true, true, false}, m.Goal())
	require.Equal(t, [][]int{{3}, {1, 3}, {2}, {2, 3}, {0, 2}, {0, 1}}, m.Buttons())
	require.Equal(t, []int{3, 5, 4, 7}, m.Joltage())
}

// TestParse_BracketStyles accepts both bracket styles and a bare goal.
func TestParse_BracketStyles(t *testing.T) {
	m, err := machine.Parse("#. {0} (0,1) 2,1")
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, m.Goal())
	require.Equal(t, [][]int{{0}, {0, 1}}, m.Buttons())
	require.Equal(t, []int{2, 1}, m.Joltage())
}

// TestParse_ExtraWhitespace tolerates surrounding and repeated spaces.
func TestParse_ExtraWhitespace(t *testing.T) {
	m, err := machine.Parse("  [#]   (0)  {1}  ")
	require.NoError(t, err)
	require.Equal(t, 1, m.NumButtons())
}

// TestParse_NoButtons allows a machine with zero buttons.
func TestParse_NoButtons(t *testing.T) {
	m, err := machine.Parse("[..] {0,0}")
	require.NoError(t, err)
	require.Zero(t, m.NumButtons())
}

// TestParse_Errors maps each malformed line onto its sentinel.
func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		want  error
		field int
	}{
		{"empty", "", machine.ErrFieldCount, 0},
		{"goal only", "[.#]", machine.ErrFieldCount, 1},
		{"bad goal rune", "[.x] (0) {1,1}", machine.ErrBadGoal, 0},
		{"empty goal", "[] (0) {1}", machine.ErrBadGoal, 0},
		{"bad index", "[.#] (a) {1,1}", machine.ErrBadIndex, 1},
		{"empty button", "[.#] () {1,1}", machine.ErrBadIndex, 1},
		{"negative index", "[.#] (-1) {1,1}", machine.ErrBadIndex, 1},
		{"index range", "[.#] (0) (2) {1,1}", machine.ErrIndexRange, 2},
		{"bad joltage", "[.#] (0) {1,x}", machine.ErrBadJoltage, 2},
		{"short joltage", "[.#] (0) {1}", machine.ErrJoltageLength, 2},
		{"long joltage", "[.#] (0) {1,2,3}", machine.ErrJoltageLength, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := machine.Parse(tc.line)
			require.ErrorIs(t, err, tc.want)
			var pe *machine.ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %T", err)
			require.Equal(t, tc.field, pe.Field)
		})
	}
}

// numbered keys lines by their 1-based position.
func numbered(lines []string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, line := range lines {
			if !yield(i+1, line) {
				return
			}
		}
	}
}

// TestParseAll_LineNumbers skips blank lines and reports 1-based line numbers.
func TestParseAll_LineNumbers(t *testing.T) {
	lines := []string{sampleLine, "", "[#] (0) {1}", "[#] (q) {1}"}
	_, err := machine.ParseAll(numbered(lines))
	require.ErrorIs(t, err, machine.ErrBadIndex)
	var pe *machine.ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 4, pe.Line)
	require.Contains(t, pe.Error(), "line 4")

	ms, err := machine.ParseAll(numbered(lines[:3]))
	require.NoError(t, err)
	require.Len(t, ms, 2)
}

// TestParseAll_KeepsGivenNumbers reports the number the sequence supplied,
// not the count of lines received.
func TestParseAll_KeepsGivenNumbers(t *testing.T) {
	seq := func(yield func(int, string) bool) {
		_ = yield(1, "[#] (0) {1}") && yield(3, "[#] (x) {1}")
	}
	_, err := machine.ParseAll(seq)
	var pe *machine.ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, 3, pe.Line)
}

// TestParse_RoundTrip re-encodes parsed machines losslessly.
func TestParse_RoundTrip(t *testing.T) {
	for _, line := range []string{
		sampleLine,
		"[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}",
		"[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}",
	} {
		m, err := machine.Parse(line)
		require.NoError(t, err)
		require.Equal(t, line, m.String())
	}
}
