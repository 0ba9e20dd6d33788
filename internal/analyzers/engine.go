package analyzers

import (
	"context"
	"fmt"
	"io"

	"log-analyzer/internal/models"
	"log-analyzer/internal/reports"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/sources"
)

// twoHourWindow is the width, in hours, of the sliding window BusiestTwoHour scans.
const twoHourWindow = 2

// Engine aggregates access records from one RecordSource into hour, day, month and year
// buckets and answers extremal queries over them.
//
// Every Analyze* pass drains whatever the source still holds. Running two passes on the
// same engine therefore splits the records between the two dimensions instead of counting
// them twice; use AnalyzeAll, or one engine per pass, when several dimensions are needed.
//
// Queries never fail. A dimension whose pass has not run is all zero and its queries
// return the first key of the dimension; use Analyzed to tell the cases apart.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	source   sources.RecordSource
	baseYear int

	hours  *bucketArray
	days   *bucketArray
	months *bucketArray
	years  *bucketArray

	analyzed map[models.Dimension]bool
	rejected map[models.Dimension]int64
}

// NewEngine allocates zero-filled buckets over source. No records are read until a pass runs.
func NewEngine(source sources.RecordSource, baseYear int) *Engine {
	return &Engine{
		source:   source,
		baseYear: baseYear,
		hours:    newBucketArray(models.DimensionHour, baseYear),
		days:     newBucketArray(models.DimensionDay, baseYear),
		months:   newBucketArray(models.DimensionMonth, baseYear),
		years:    newBucketArray(models.DimensionYear, baseYear),
		analyzed: make(map[models.Dimension]bool, len(models.Dimensions)),
		rejected: make(map[models.Dimension]int64, len(models.Dimensions)),
	}
}

// AnalyzeHourly counts every remaining record by hour of day.
func (e *Engine) AnalyzeHourly(ctx context.Context) error {
	return e.drain(ctx, models.DimensionHour)
}

// AnalyzeDaily counts every remaining record by day of month (1-28).
func (e *Engine) AnalyzeDaily(ctx context.Context) error {
	return e.drain(ctx, models.DimensionDay)
}

// AnalyzeMonthly counts every remaining record by month (1-12).
func (e *Engine) AnalyzeMonthly(ctx context.Context) error {
	return e.drain(ctx, models.DimensionMonth)
}

// AnalyzeAnnual counts every remaining record by year within [baseYear, baseYear+6].
func (e *Engine) AnalyzeAnnual(ctx context.Context) error {
	return e.drain(ctx, models.DimensionYear)
}

// AnalyzeAll counts every remaining record in all four dimensions in a single pass.
func (e *Engine) AnalyzeAll(ctx context.Context) error {
	return e.drain(ctx, models.Dimensions...)
}

// Analyze runs one pass counting every remaining record into each of dims.
// With no dims it is AnalyzeAll.
func (e *Engine) Analyze(ctx context.Context, dims ...models.Dimension) error {
	if len(dims) == 0 {
		dims = models.Dimensions
	}
	for _, dim := range dims {
		dim.Size() // panics on an invalid dimension before any record is consumed
	}
	return e.drain(ctx, dims...)
}

// drain consumes the rest of the source, bucketing each record into dims. Records with a
// field outside a bucket range are skipped for that dimension only; once the source is
// exhausted the pass reports them as a single out_of_range error.
func (e *Engine) drain(ctx context.Context, dims ...models.Dimension) error {
	logger := loggers.Ctx(ctx)

	bucketed := make([]int64, len(dims))
	rejected := make([]int64, len(dims))
	var firstRejection error

	for e.source.HasNext() {
		if err := ctx.Err(); err != nil {
			return err
		}
		record, err := e.source.Next()
		if err != nil {
			return errInternalSourceReadFailed(err)
		}

		for i, dim := range dims {
			if err := e.buckets(dim).increment(dim.Key(record)); err != nil {
				rejected[i]++
				if firstRejection == nil {
					firstRejection = err
				}
				logger.Debug().Err(err).Str(loggers.FieldDimension, string(dim)).Msg("record out of range")
				continue
			}
			bucketed[i]++
		}
	}

	var totalRejected int64
	for i, dim := range dims {
		e.analyzed[dim] = true
		e.rejected[dim] += rejected[i]
		totalRejected += rejected[i]

		metricRecordsBucketedTotal.WithLabelValues(string(dim)).Add(float64(bucketed[i]))
		metricRecordsRejectedTotal.WithLabelValues(string(dim)).Add(float64(rejected[i]))
		logger.Debug().
			Str(loggers.FieldDimension, string(dim)).
			Int64(loggers.FieldBucketed, bucketed[i]).
			Int64(loggers.FieldRejected, rejected[i]).
			Msg("analysis pass completed")
	}

	if err := e.source.Err(); err != nil {
		return errInternalSourceReadFailed(err)
	}
	if totalRejected > 0 {
		return errRecordsOutOfRange(totalRejected, firstRejection)
	}
	return nil
}

func (e *Engine) buckets(dim models.Dimension) *bucketArray {
	switch dim {
	case models.DimensionHour:
		return e.hours
	case models.DimensionDay:
		return e.days
	case models.DimensionMonth:
		return e.months
	case models.DimensionYear:
		return e.years
	default:
		panic(fmt.Sprintf("invalid Dimension: %q", dim))
	}
}

// BaseYear is the first year of the annual window.
func (e *Engine) BaseYear() int {
	return e.baseYear
}

// Analyzed reports whether the pass for dim has run on this engine.
func (e *Engine) Analyzed(dim models.Dimension) bool {
	return e.analyzed[dim]
}

// Rejected returns how many records dim's passes skipped as out of range.
func (e *Engine) Rejected(dim models.Dimension) int64 {
	return e.rejected[dim]
}

// BusiestHour returns the hour (0-23) with the most accesses.
func (e *Engine) BusiestHour() int {
	return e.hours.busiest()
}

// QuietestHour returns the hour (0-23) with the fewest accesses.
func (e *Engine) QuietestHour() int {
	return e.hours.quietest()
}

// BusiestTwoHour returns the starting hour of the busiest two consecutive hours.
// The day is circular, so a window starting at 23 covers 23:00 and 00:00.
func (e *Engine) BusiestTwoHour() int {
	sums := circularWindowSums(e.hours.counts, twoHourWindow)
	return extremalIndex(sums, func(candidate, best int64) bool { return candidate > best })
}

// BusiestDay returns the day of month (1-28) with the most accesses.
func (e *Engine) BusiestDay() int {
	return e.days.busiest()
}

// QuietestDay returns the day of month (1-28) with the fewest accesses.
func (e *Engine) QuietestDay() int {
	return e.days.quietest()
}

// BusiestMonth returns the month (1-12) with the most accesses.
func (e *Engine) BusiestMonth() int {
	return e.months.busiest()
}

// QuietestMonth returns the month (1-12) with the fewest accesses.
func (e *Engine) QuietestMonth() int {
	return e.months.quietest()
}

// BusiestYear returns the year in the window with the most accesses.
func (e *Engine) BusiestYear() int {
	return e.years.busiest()
}

// QuietestYear returns the year in the window with the fewest accesses.
func (e *Engine) QuietestYear() int {
	return e.years.quietest()
}

// NumberOfAccesses sums the hourly buckets. It is only meaningful after an hourly pass.
func (e *Engine) NumberOfAccesses() int64 {
	return e.hours.total()
}

// AverageAccessesPerMonth divides NumberOfAccesses by every month of the seven-year
// window (84), whether or not the data covers all of them.
func (e *Engine) AverageAccessesPerMonth() float64 {
	return float64(e.NumberOfAccesses()) / float64(models.YearsInWindow*models.MonthsPerYear)
}

// HourlyCounts returns a copy of the 24 hourly buckets.
func (e *Engine) HourlyCounts() []int64 {
	return e.hours.snapshot()
}

// DailyCounts returns a copy of the 28 daily buckets; index 0 is day 1.
func (e *Engine) DailyCounts() []int64 {
	return e.days.snapshot()
}

// MonthlyTotals returns a copy of the 12 monthly buckets; index 0 is January.
func (e *Engine) MonthlyTotals() []int64 {
	return e.months.snapshot()
}

// AnnualCounts returns a copy of the 7 yearly buckets; index 0 is BaseYear.
func (e *Engine) AnnualCounts() []int64 {
	return e.years.snapshot()
}

// DimensionSummary returns the counts and extremal keys of one analyzed dimension.
func (e *Engine) DimensionSummary(dim models.Dimension) (models.DimensionSummary, error) {
	if !e.analyzed[dim] {
		return models.DimensionSummary{}, errNotYetAnalyzed(dim)
	}
	b := e.buckets(dim)
	return models.DimensionSummary{
		Dimension: dim,
		Origin:    b.origin,
		Counts:    b.snapshot(),
		Busiest:   b.busiest(),
		Quietest:  b.quietest(),
	}, nil
}

// Summary collects every analyzed dimension. The hour-derived totals are only set when
// the hourly data has been analyzed.
func (e *Engine) Summary() (*models.AnalysisSummary, error) {
	summary := &models.AnalysisSummary{
		BaseYear:   e.baseYear,
		Dimensions: make(map[models.Dimension]models.DimensionSummary, len(models.Dimensions)),
	}

	for _, dim := range models.Dimensions {
		ds, err := e.DimensionSummary(dim)
		if err != nil {
			continue
		}
		summary.Dimensions[dim] = ds
		if n := e.rejected[dim]; n > 0 {
			if summary.Rejected == nil {
				summary.Rejected = make(map[models.Dimension]int64)
			}
			summary.Rejected[dim] = n
		}
	}
	if len(summary.Dimensions) == 0 {
		return nil, errNotYetAnalyzed(models.DimensionHour)
	}

	if e.analyzed[models.DimensionHour] {
		summary.NumberOfAccesses = e.NumberOfAccesses()
		summary.AverageAccessesPerMonth = e.AverageAccessesPerMonth()
		summary.BusiestTwoHour = e.BusiestTwoHour()
	}
	return summary, nil
}

// PrintHourlyCounts writes the "Hr: Count" report of the hourly buckets.
func (e *Engine) PrintHourlyCounts(w io.Writer) error {
	return reports.PrintHourlyCounts(w, e.hours.counts)
}

// PrintData dumps the raw lines behind the source.
func (e *Engine) PrintData(w io.Writer) error {
	return e.source.Dump(w)
}

// Close releases the underlying source.
func (e *Engine) Close() error {
	return e.source.Close()
}
