package toggle

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/presslab/machine"
)

// step links a discovered state to its predecessor and the button pressed.
type step struct {
	prev   uint64
	button int // -1 for the start state
}

// walker encapsulates mutable BFS state for one call.
type walker struct {
	opts     Options
	goal     uint64
	masks    []uint64
	frontier []uint64
	visited  map[uint64]step
	expanded int
	levels   int
}

// MinPresses runs a level-synchronous breadth-first search from the all-off
// state and returns the minimum number of presses that reaches the goal,
// together with one press set achieving it.
// Returns ErrMachineNil, ErrOptionViolation, machine.ErrTooManyLights,
// ErrUnreachable, ErrStateLimit, ctx errors, or a wrapped OnLevel error.
func MinPresses(m *machine.Machine, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrMachineNil
	}
	o, err := buildOptions(opts)
	if err != nil {
		return Result{}, err
	}

	goal, err := m.GoalMask()
	if err != nil {
		return Result{}, err
	}
	// All-off goal is met by the empty press set.
	if goal == 0 {
		return Result{Presses: 0, Buttons: []int{}, StatesVisited: 1}, nil
	}

	masks := make([]uint64, m.NumButtons())
	for b := range masks {
		if masks[b], err = m.ButtonMask(b); err != nil {
			return Result{}, err
		}
	}

	w := &walker{
		opts:     o,
		goal:     goal,
		masks:    masks,
		frontier: []uint64{0},
		visited:  map[uint64]step{0: {button: -1}},
	}

	return w.loop()
}

// loop expands one level per iteration until the goal appears or the
// frontier empties.
func (w *walker) loop() (Result, error) {
	for level := 0; len(w.frontier) > 0; level++ {
		if err := w.opts.Ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := w.opts.OnLevel(level, len(w.frontier)); err != nil {
			return Result{}, fmt.Errorf("toggle: OnLevel error at level %d: %w", level, err)
		}

		next, found, err := w.expand()
		if err != nil {
			return Result{}, err
		}
		if found {
			return Result{
				Presses:       level + 1,
				Buttons:       w.pathTo(w.goal),
				StatesVisited: len(w.visited),
				Levels:        w.levels,
			}, nil
		}
		w.frontier = next
		w.levels++
	}

	return Result{}, fmt.Errorf("%w: %d states explored", ErrUnreachable, len(w.visited))
}

// expand applies every button to every frontier state. It stops as soon as
// the goal is produced and records the goal's parent link.
func (w *walker) expand() ([]uint64, bool, error) {
	var next []uint64
	for _, s := range w.frontier {
		for b, mask := range w.masks {
			w.expanded++
			if w.expanded%checkEvery == 0 {
				if err := w.opts.Ctx.Err(); err != nil {
					return nil, false, err
				}
			}

			ns := s ^ mask
			if ns == w.goal {
				w.visited[ns] = step{prev: s, button: b}
				return nil, true, nil
			}
			if _, seen := w.visited[ns]; seen {
				continue
			}
			if w.opts.MaxStates > 0 && len(w.visited) >= w.opts.MaxStates {
				return nil, false, fmt.Errorf("%w: %d", ErrStateLimit, w.opts.MaxStates)
			}
			w.visited[ns] = step{prev: s, button: b}
			next = append(next, ns)
		}
	}

	return next, false, nil
}

// pathTo walks parent links back to the start and returns the buttons
// pressed, sorted ascending since press order is irrelevant.
func (w *walker) pathTo(dest uint64) []int {
	var buttons []int
	for cur := dest; ; {
		st := w.visited[cur]
		if st.button < 0 {
			break
		}
		buttons = append(buttons, st.button)
		cur = st.prev
	}
	slices.Sort(buttons)

	return buttons
}
