package dataprocessing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"shelterpulse/pkg/contracts/domain"
)

var (
	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shelterpulse",
		Subsystem: "pipeline",
		Name:      "stage_duration_seconds",
		Help:      "Duration of each cleaning pipeline stage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	datasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "shelterpulse",
		Subsystem: "pipeline",
		Name:      "dataset_rows",
		Help:      "Number of rows in the currently loaded cleaned dataset.",
	})

	datasetLoads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shelterpulse",
		Subsystem: "pipeline",
		Name:      "dataset_loads_total",
		Help:      "Number of completed pipeline runs since process start.",
	})
)

func observeStageDuration(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func observeDatasetLoaded(ds *domain.Dataset) {
	datasetRows.Set(float64(ds.Len()))
	datasetLoads.Inc()
}
