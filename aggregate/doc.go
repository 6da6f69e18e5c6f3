// Package aggregate runs both press-minimisation modes over a batch of
// machines and sums the results.
//
// Machines fan out over an errgroup bounded by Runner.Workers. Each worker
// fills its own result slot and the totals are folded once every worker has
// returned, so no counter is shared between goroutines.
//
// Failure policy
//
//   - FailFast: the first failing solve cancels the run and its
//     *MachineError is returned.
//   - Otherwise: every failure is collected into Totals.Failures and each
//     mode's total covers the machines that mode solved.
//
// Usage
//
//	r := &aggregate.Runner{FailFast: true, Logger: log}
//	totals, err := r.RunFile(ctx, "input.txt")
package aggregate
