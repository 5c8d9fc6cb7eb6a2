// services/metrics.go
package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// coreComputeDuration tracks how long the pure recommendation/aggregation calls take
	coreComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boulder_core_compute_duration_seconds",
		Help:    "Duration of scoring, ranking, edge and analytics computations",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
	}, []string{"operation"})

	// coreInputRows tracks snapshot sizes fed into the core
	coreInputRows = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "boulder_core_input_rows",
		Help:    "Number of climbing log rows passed to a core computation",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
	}, []string{"operation"})

	// storeErrors counts failed store reads/writes by operation
	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boulder_store_errors_total",
		Help: "Store failures surfaced to clients, by operation",
	}, []string{"operation"})

	// recordsWritten counts created logs/plans/schedules by kind
	recordsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boulder_records_written_total",
		Help: "Records created through the API, by kind",
	}, []string{"kind"})

	// RetentionDeleted counts rows removed by the retention sweep
	RetentionDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "boulder_retention_deleted_total",
		Help: "Rows removed by the retention sweep, by table",
	}, []string{"table"})
)

// observe records the duration of a core call and the size of its input.
func observe(operation string, rows int, start time.Time) {
	coreComputeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	coreInputRows.WithLabelValues(operation).Observe(float64(rows))
}
