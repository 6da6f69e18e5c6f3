package aggregate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/presslab/ilp"
	"github.com/katalvlaran/presslab/toggle"
)

func TestOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeSolved},
		{toggle.ErrUnreachable, OutcomeUnreachable},
		{toggle.ErrStateLimit, OutcomeLimit},
		{ilp.ErrTimeLimit, OutcomeLimit},
		{fmt.Errorf("wrapped: %w", ilp.ErrNodeLimit), OutcomeLimit},
		{ilp.ErrSolver, OutcomeError},
		{ilp.ErrNonIntegral, OutcomeInfeasible},
		{ilp.ErrInfeasible, OutcomeInfeasible},
		{context.Canceled, OutcomeCancelled},
		{context.DeadlineExceeded, OutcomeCancelled},
		{toggle.ErrMachineNil, OutcomeError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, outcome(tc.err), "err %v", tc.err)
	}
}

func TestMetricsObserve(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.observeToggle(toggle.BFS, toggle.Result{Presses: 2, StatesVisited: 9}, nil, time.Millisecond)
	m.observeToggle(toggle.BFS, toggle.Result{}, toggle.ErrUnreachable, time.Millisecond)
	m.observeJoltage(ilp.Solution{Objective: 10, Nodes: 3}, nil, time.Millisecond)

	require.Equal(t, float64(1), testutil.ToFloat64(m.solves.WithLabelValues("toggle", OutcomeSolved)))
	require.Equal(t, float64(1), testutil.ToFloat64(m.solves.WithLabelValues("toggle", OutcomeUnreachable)))
	require.Equal(t, float64(1), testutil.ToFloat64(m.solves.WithLabelValues("joltage", OutcomeSolved)))
	require.Equal(t, 3, testutil.CollectAndCount(m.solves))
	require.Equal(t, 2, testutil.CollectAndCount(m.duration))

	var nilMetrics *Metrics
	require.NotPanics(t, func() {
		nilMetrics.observeToggle(toggle.BFS, toggle.Result{}, nil, 0)
		nilMetrics.observeJoltage(ilp.Solution{}, nil, 0)
	})
}

// histogramCount returns how many observations h has taken.
func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, h.Write(&pb))

	return pb.GetHistogram().GetSampleCount()
}

func TestMetricsStatesOnlyFromBFS(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.observeToggle(toggle.SAT, toggle.Result{Presses: 2, StatesVisited: 3}, nil, time.Millisecond)
	require.Zero(t, histogramCount(t, m.statesVisited))
	require.Equal(t, float64(1), testutil.ToFloat64(m.solves.WithLabelValues("toggle", OutcomeSolved)))

	m.observeToggle(toggle.BFS, toggle.Result{Presses: 2, StatesVisited: 9}, nil, time.Millisecond)
	m.observeToggle("", toggle.Result{Presses: 1, StatesVisited: 4}, nil, time.Millisecond)
	require.Equal(t, uint64(2), histogramCount(t, m.statesVisited))
}

func TestFold(t *testing.T) {
	boom := fmt.Errorf("boom")
	got := fold([]slot{
		{toggle: 2, joltage: 10},
		{toggleErr: boom, joltage: 4},
		{toggle: 1, joltageErr: boom},
	})
	require.Equal(t, 3, got.Toggle)
	require.Equal(t, 14, got.Joltage)
	require.Equal(t, 3, got.Machines)
	require.Equal(t, []MachineError{
		{Index: 1, Mode: ModeToggle, Err: boom},
		{Index: 2, Mode: ModeJoltage, Err: boom},
	}, got.Failures)
}
