package toggle_test

import (
	"context"
	"errors"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/presslab/machine"
	"github.com/katalvlaran/presslab/toggle"
)

var sampleLines = []string{
	"[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}",
	"[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}",
	"[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}",
}

var sampleMinima = []int{2, 3, 2}

func mustParse(t *testing.T, line string) *machine.Machine {
	t.Helper()
	m, err := machine.Parse(line)
	require.NoError(t, err)

	return m
}

// bruteForce returns the smallest subset size whose XOR equals the goal,
// or -1 when no subset works.
func bruteForce(t *testing.T, m *machine.Machine) int {
	t.Helper()
	goal, err := m.GoalMask()
	require.NoError(t, err)
	best := -1
	for subset := 0; subset < 1<<m.NumButtons(); subset++ {
		var state uint64
		for b := 0; b < m.NumButtons(); b++ {
			if subset&(1<<b) != 0 {
				mask, err := m.ButtonMask(b)
				require.NoError(t, err)
				state ^= mask
			}
		}
		if state == goal {
			if n := bits.OnesCount(uint(subset)); best < 0 || n < best {
				best = n
			}
		}
	}

	return best
}

// randomMachine builds a machine with up to maxLights lights and maxButtons buttons.
func randomMachine(rng *rand.Rand, maxLights, maxButtons int) *machine.Machine {
	n := 1 + rng.Intn(maxLights)
	goal := make([]bool, n)
	for i := range goal {
		goal[i] = rng.Intn(2) == 1
	}
	buttons := make([][]int, rng.Intn(maxButtons+1))
	for b := range buttons {
		for i := 0; i < n; i++ {
			if rng.Intn(3) == 0 {
				buttons[b] = append(buttons[b], i)
			}
		}
		if len(buttons[b]) == 0 {
			buttons[b] = []int{rng.Intn(n)}
		}
	}
	m, _ := machine.New(goal, buttons, make([]int, n))

	return m
}

// ToggleSuite exercises both strategies under the same scenarios.
type ToggleSuite struct {
	suite.Suite
	strategy toggle.Strategy
}

func TestToggleBFS(t *testing.T) { suite.Run(t, &ToggleSuite{strategy: toggle.BFS}) }
func TestToggleSAT(t *testing.T) { suite.Run(t, &ToggleSuite{strategy: toggle.SAT}) }

// TestSingleButton is scenario A: goal "#." with one button on light 0.
func (s *ToggleSuite) TestSingleButton() {
	m := mustParse(s.T(), "[#.] (0) {0,0}")
	res, err := toggle.Solve(s.strategy, m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, res.Presses)
	require.Equal(s.T(), []int{0}, res.Buttons)
}

// TestAlreadySatisfied is scenario B: an all-off goal needs no presses.
func (s *ToggleSuite) TestAlreadySatisfied() {
	m := mustParse(s.T(), "[..] (0) (1) {0,0}")
	res, err := toggle.Solve(s.strategy, m)
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Presses)
	require.Empty(s.T(), res.Buttons)

	noButtons := mustParse(s.T(), "[..] {0,0}")
	res, err = toggle.Solve(s.strategy, noButtons)
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Presses)
}

// TestSamples checks the documented sample machines.
func (s *ToggleSuite) TestSamples() {
	total := 0
	for i, line := range sampleLines {
		m := mustParse(s.T(), line)
		res, err := toggle.Solve(s.strategy, m)
		require.NoError(s.T(), err)
		require.Equal(s.T(), sampleMinima[i], res.Presses, "machine %d", i)
		require.Equal(s.T(), m.Goal(), m.Toggle(res.Buttons), "winning presses must reproduce the goal")
		total += res.Presses
	}
	require.Equal(s.T(), 7, total)
}

// TestUnreachable reports a goal no button combination can produce.
func (s *ToggleSuite) TestUnreachable() {
	m := mustParse(s.T(), "[#.] (1) {0,0}")
	_, err := toggle.Solve(s.strategy, m)
	require.ErrorIs(s.T(), err, toggle.ErrUnreachable)

	none := mustParse(s.T(), "[#] {0}")
	_, err = toggle.Solve(s.strategy, none)
	require.ErrorIs(s.T(), err, toggle.ErrUnreachable)
}

// TestMatchesBruteForce compares against exhaustive subset enumeration.
func (s *ToggleSuite) TestMatchesBruteForce() {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		m := randomMachine(rng, 6, 6)
		want := bruteForce(s.T(), m)
		res, err := toggle.Solve(s.strategy, m)
		if want < 0 {
			require.ErrorIs(s.T(), err, toggle.ErrUnreachable, "machine %s", m)
			continue
		}
		require.NoError(s.T(), err, "machine %s", m)
		require.Equal(s.T(), want, res.Presses, "machine %s", m)
		require.Equal(s.T(), m.Goal(), m.Toggle(res.Buttons), "machine %s", m)
	}
}

// TestErrors covers nil input and option violations.
func (s *ToggleSuite) TestErrors() {
	_, err := toggle.Solve(s.strategy, nil)
	require.ErrorIs(s.T(), err, toggle.ErrMachineNil)

	m := mustParse(s.T(), sampleLines[0])
	_, err = toggle.Solve(s.strategy, m, toggle.WithMaxStates(-1))
	require.ErrorIs(s.T(), err, toggle.ErrOptionViolation)
}

// TestCancelled stops before any work on a cancelled context.
func (s *ToggleSuite) TestCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := mustParse(s.T(), sampleLines[1])
	_, err := toggle.Solve(s.strategy, m, toggle.WithContext(ctx))
	require.ErrorIs(s.T(), err, context.Canceled)
}

// TestMaxStates aborts the BFS once the visited set hits its cap.
func TestMaxStates(t *testing.T) {
	m := mustParse(t, sampleLines[0])
	_, err := toggle.MinPresses(m, toggle.WithMaxStates(2))
	require.ErrorIs(t, err, toggle.ErrStateLimit)

	res, err := toggle.MinPresses(m, toggle.WithMaxStates(0))
	require.NoError(t, err)
	require.Equal(t, 2, res.Presses)
	require.LessOrEqual(t, res.StatesVisited, 16)
}

// TestOnLevel records frontier sizes and propagates hook errors.
func TestOnLevel(t *testing.T) {
	m := mustParse(t, sampleLines[1])
	var levels []int
	res, err := toggle.MinPresses(m, toggle.WithOnLevel(func(level, frontier int) error {
		levels = append(levels, level)
		require.Positive(t, frontier)
		return nil
	}))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, levels)
	require.Equal(t, 2, res.Levels)

	boom := errors.New("boom")
	_, err = toggle.MinPresses(m, toggle.WithOnLevel(func(level, _ int) error {
		if level == 1 {
			return boom
		}
		return nil
	}))
	require.ErrorIs(t, err, boom)
}

// TestWideMachine uses the SAT strategy beyond the packed-key limit.
func TestWideMachine(t *testing.T) {
	const n = 70
	goal := make([]bool, n)
	goal[0], goal[69] = true, true
	m, err := machine.New(goal, [][]int{{0}, {69}, {0, 69}}, make([]int, n))
	require.NoError(t, err)

	_, err = toggle.MinPresses(m)
	require.ErrorIs(t, err, machine.ErrTooManyLights)

	res, err := toggle.MinPressesSAT(m)
	require.NoError(t, err)
	require.Equal(t, 1, res.Presses)
	require.Equal(t, []int{2}, res.Buttons)
}

// TestParseStrategy maps configuration names.
func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]toggle.Strategy{"": toggle.BFS, "bfs": toggle.BFS, "sat": toggle.SAT} {
		got, err := toggle.ParseStrategy(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := toggle.ParseStrategy("dfs")
	require.ErrorIs(t, err, toggle.ErrUnknownStrategy)
	_, err = toggle.Solve("dfs", mustParse(t, sampleLines[0]))
	require.ErrorIs(t, err, toggle.ErrUnknownStrategy)
}
