package analyzers

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	metricRecordsBucketedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "records_bucketed_total",
		},
		[]string{metrics.FieldDimension},
	)

	// metricRecordsRejectedTotal counts records whose field fell outside the bucket range,
	// e.g. day 30 for the day dimension or year 2030 with base year 2018.
	metricRecordsRejectedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "records_rejected_total",
		},
		[]string{metrics.FieldDimension},
	)

	metricAnalysisRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "runs_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
