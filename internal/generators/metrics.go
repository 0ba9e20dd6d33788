package generators

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	metricFilesCreatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGenerator,
			Name:      "files_created_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricRecordsWrittenTotal = metrics.NewCounter(metrics.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.SubGenerator,
		Name:      "records_written_total",
	})
)
