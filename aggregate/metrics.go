package aggregate

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/presslab/ilp"
	"github.com/katalvlaran/presslab/toggle"
)

// Label names and outcome values.
const (
	ModeLabel    = "mode"
	OutcomeLabel = "outcome"

	OutcomeSolved      = "solved"
	OutcomeUnreachable = "unreachable"
	OutcomeInfeasible  = "infeasible"
	OutcomeLimit       = "limit"
	OutcomeCancelled   = "cancelled"
	OutcomeError       = "error"
)

// Metrics records per-solve counters and distributions. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	solves        *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	statesVisited prometheus.Histogram
	ilpNodes      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "presslab_solves_total",
				Help: "Solve attempts by mode and outcome",
			},
			[]string{ModeLabel, OutcomeLabel},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "presslab_solve_duration_seconds",
				Help:    "Wall-clock duration of a single solve",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{ModeLabel},
		),
		statesVisited: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "presslab_toggle_states_visited",
				Help:    "Distinct light states discovered by a toggle search",
				Buckets: prometheus.ExponentialBuckets(1, 4, 12),
			},
		),
		ilpNodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "presslab_ilp_nodes",
				Help:    "Search nodes processed by a joltage solve",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.solves, m.duration, m.statesVisited, m.ilpNodes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// observeToggle records a toggle solve. The states histogram only takes BFS
// results; SAT reports solver calls in the same field.
func (m *Metrics) observeToggle(s toggle.Strategy, res toggle.Result, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.observe(ModeToggle, err, d)
	if s != toggle.SAT && res.StatesVisited > 0 {
		m.statesVisited.Observe(float64(res.StatesVisited))
	}
}

func (m *Metrics) observeJoltage(sol ilp.Solution, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.observe(ModeJoltage, err, d)
	if sol.Nodes > 0 {
		m.ilpNodes.Observe(float64(sol.Nodes))
	}
}

func (m *Metrics) observe(mode Mode, err error, d time.Duration) {
	m.solves.WithLabelValues(string(mode), outcome(err)).Inc()
	m.duration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

// outcome classifies a solve error for the outcome label.
func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSolved
	case errors.Is(err, toggle.ErrUnreachable):
		return OutcomeUnreachable
	case errors.Is(err, toggle.ErrStateLimit),
		errors.Is(err, ilp.ErrTimeLimit),
		errors.Is(err, ilp.ErrNodeLimit):
		return OutcomeLimit
	case errors.Is(err, ilp.ErrSolver):
		return OutcomeError
	case errors.Is(err, ilp.ErrInfeasible):
		return OutcomeInfeasible
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}
