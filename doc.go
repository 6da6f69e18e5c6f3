// Package presslab computes minimum button presses for button machines: a
// row of indicator lights and a set of buttons, each wired to a subset of the
// lights.
//
// Two problems are solved per machine:
//
//   - Toggle: every press flips its lights. Find the fewest presses that turn
//     the all-off row into the goal pattern.
//   - Joltage: every press adds one to its lights' counters. Find non-negative
//     press counts that hit every requirement exactly with the smallest total.
//
// Layout:
//
//	machine/    Machine model, line parser and encoder
//	linesource/ lazy, single-pass line input
//	toggle/     breadth-first search over packed states, SAT cross-check
//	linsys/     joltage equation system, exact integer row reduction
//	ilp/        integer program solvers: branch-and-bound, enumeration, rounding
//	aggregate/  concurrent batch runner, totals, Prometheus metrics
//	config/     YAML configuration
//	cmd/presslab command-line entry point
//
// Quick start:
//
//	presslab solve input.txt
//	toggle presses: 7
//	joltage presses: 33
package presslab
