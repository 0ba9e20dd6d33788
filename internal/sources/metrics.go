package sources

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	metricRecordsReadTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "records_read_total",
		},
		[]string{metrics.FieldFormat},
	)

	// metricLinesSkippedTotal counts non-empty lines that did not become records.
	// reason is "malformed" for unparsable or out-of-guarantee lines and "filtered"
	// for records dropped by the bot filter.
	metricLinesSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSource,
			Name:      "lines_skipped_total",
		},
		[]string{metrics.FieldFormat, "reason"},
	)
)
