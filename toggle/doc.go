// Package toggle computes the minimum number of button presses that turns
// every light of a machine from off into its goal pattern, where each press
// flips the lights its button covers.
//
// What
//
//   - MinPresses: level-synchronous BFS over packed light patterns (uint64
//     keys). The frontier holds states reachable in exactly k presses; the
//     visited set holds every state seen at level ≤ k. The first time the goal
//     is produced, k+1 is the minimum.
//   - MinPressesSAT: the same minimum from a SAT formula (go-air/gini): XOR
//     parity per light plus a cardinality sorting network over the buttons.
//     Works for machines wider than 64 lights.
//   - Result.Buttons: one shortest press set; machine.Toggle(Result.Buttons)
//     equals the goal.
//
// Why it terminates
//
//	Pressing a button twice cancels out and presses commute, so the reachable
//	states form a subgroup of size ≤ 2^N. Each state enters the visited set at
//	most once; an empty frontier without the goal yields ErrUnreachable.
//
// Edge cases
//
//   - Goal all-off: 0 presses, checked before any expansion.
//   - No buttons and a non-trivial goal: ErrUnreachable.
//
// Options
//
//   - WithContext(ctx):   cancellation, checked per level and every 1024 expansions.
//   - WithMaxStates(n):   cap on the visited set (ErrStateLimit).
//   - WithOnLevel(fn):    hook before each level; returning an error aborts.
//
// Complexity (N = lights, B = buttons)
//
//   - BFS time:   O(B · 2^N) worst case.
//   - BFS memory: O(2^N) for the visited set.
//
// Errors
//
//   - ErrMachineNil, ErrOptionViolation, ErrUnreachable, ErrStateLimit,
//     ErrUnknownStrategy, machine.ErrTooManyLights (BFS only), ctx errors.
package toggle
