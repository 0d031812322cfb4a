package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"grid-planner/planner"
)

var (
	// runsTotal counts planner runs by algorithm and status.
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridplan_runs_total",
		Help: "Total planner runs by algorithm and status",
	}, []string{"algorithm", "status"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridplan_run_duration_seconds",
		Help:    "Planner run duration",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"algorithm"})

	treeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridplan_tree_nodes",
		Help:    "Sampling tree size per run",
		Buckets: []float64{1, 10, 100, 1000, 10000, 16383},
	})

	mapsBuilt = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridplan_maps_built_total",
		Help: "Obstacle maps installed by source",
	}, []string{"source"})
)

func observe(out *planner.Outcome) {
	alg := string(out.Algorithm)
	runsTotal.WithLabelValues(alg, out.Status.String()).Inc()
	runDuration.WithLabelValues(alg).Observe(out.Elapsed.Seconds())
	if out.Tree != nil {
		treeNodes.Observe(float64(out.Stats.TreeSize))
	}
}
