package kdv

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const queryLabel = "query"

var (
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "segkd_kdv_build_duration_seconds",
		Help: "The time to build a kd-tree.",
	})

	treeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "segkd_kdv_nodes",
		Help: "The number of nodes in the last built kd-tree.",
	})

	queryResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "segkd_kdv_query_results_total",
		Help: "The number of results pulled from kd-tree queries.",
	}, []string{
		queryLabel,
	})

	intersectsResults = queryResults.With(prometheus.Labels{queryLabel: "intersects"})
	nearestResults    = queryResults.With(prometheus.Labels{queryLabel: "nearest"})
)

func instrumentBuild(start time.Time, s Stats) {
	buildDuration.Observe(time.Since(start).Seconds())
	treeNodes.Set(float64(s.Nodes))
}
