package analyzers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"log-analyzer/internal/analyzers"
	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/sources"
	sourcemocks "log-analyzer/internal/sources/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const baseYear = 2018

func rec(year, month, day, hour int) models.AccessRecord {
	return models.AccessRecord{Year: year, Month: month, Day: day, Hour: hour}
}

func newEngine(records ...models.AccessRecord) *analyzers.Engine {
	return analyzers.NewEngine(sources.NewSliceSource(records), baseYear)
}

// scenarioRecords has hour 9, day 10, month 3 and year 2020 as the clear peaks.
func scenarioRecords() []models.AccessRecord {
	return []models.AccessRecord{
		rec(2020, 3, 10, 9),
		rec(2020, 3, 10, 9),
		rec(2020, 3, 10, 9),
		rec(2019, 4, 11, 10),
		rec(2021, 5, 12, 11),
	}
}

func TestEngine_EmptySource(t *testing.T) {
	t.Parallel()

	engine := newEngine()
	ctx := context.Background()
	require.NoError(t, engine.AnalyzeHourly(ctx))

	assert.Equal(t, int64(0), engine.NumberOfAccesses())
	assert.Equal(t, 0.0, engine.AverageAccessesPerMonth())
	assert.Equal(t, 0, engine.BusiestHour())
	assert.Equal(t, 0, engine.QuietestHour())
	assert.Equal(t, 0, engine.BusiestTwoHour())
}

func TestEngine_QueriesBeforeAnyPass(t *testing.T) {
	t.Parallel()

	engine := newEngine(scenarioRecords()...)

	assert.Equal(t, 0, engine.BusiestHour())
	assert.Equal(t, 1, engine.BusiestDay())
	assert.Equal(t, 1, engine.QuietestDay())
	assert.Equal(t, 1, engine.BusiestMonth())
	assert.Equal(t, 1, engine.QuietestMonth())
	assert.Equal(t, baseYear, engine.BusiestYear())
	assert.Equal(t, make([]int64, 12), engine.MonthlyTotals())
	for _, dim := range models.Dimensions {
		assert.False(t, engine.Analyzed(dim), dim)
	}
}

func TestEngine_HourlySumMatchesRecordCount(t *testing.T) {
	t.Parallel()

	var records []models.AccessRecord
	for i := 0; i < 1000; i++ {
		records = append(records, rec(baseYear+i%7, i%12+1, i%28+1, (i*7)%24))
	}
	engine := newEngine(records...)
	require.NoError(t, engine.AnalyzeHourly(context.Background()))

	var sum int64
	for _, c := range engine.HourlyCounts() {
		sum += c
	}
	assert.Equal(t, int64(len(records)), sum)
	assert.Equal(t, int64(len(records)), engine.NumberOfAccesses())
	assert.True(t, engine.Analyzed(models.DimensionHour))
}

func TestEngine_BusiestHourTieResolvesToLowest(t *testing.T) {
	t.Parallel()

	var records []models.AccessRecord
	for hour, n := range []int{5, 5, 3} {
		for i := 0; i < n; i++ {
			records = append(records, rec(2018, 1, 1, hour))
		}
	}
	engine := newEngine(records...)
	require.NoError(t, engine.AnalyzeHourly(context.Background()))

	assert.Equal(t, 0, engine.BusiestHour())
	assert.Equal(t, 3, engine.QuietestHour(), "hours 3..23 are empty")
}

func TestEngine_BusiestTwoHourWrapsMidnight(t *testing.T) {
	t.Parallel()

	records := []models.AccessRecord{rec(2018, 1, 1, 0), rec(2018, 1, 1, 1)}
	for i := 0; i < 9; i++ {
		records = append(records, rec(2018, 1, 1, 23))
	}
	engine := newEngine(records...)
	require.NoError(t, engine.AnalyzeHourly(context.Background()))

	assert.Equal(t, 23, engine.BusiestTwoHour())
	assert.Equal(t, 23, engine.BusiestHour())
}

func TestEngine_AverageOverFullWindow(t *testing.T) {
	t.Parallel()

	var records []models.AccessRecord
	for year := baseYear; year < baseYear+7; year++ {
		for month := 1; month <= 12; month++ {
			records = append(records, rec(year, month, 1, 12))
		}
	}
	require.Len(t, records, 84)

	engine := newEngine(records...)
	require.NoError(t, engine.AnalyzeHourly(context.Background()))

	assert.Equal(t, 1.0, engine.AverageAccessesPerMonth())
}

func TestEngine_AverageUsesFixedDenominator(t *testing.T) {
	t.Parallel()

	engine := newEngine(rec(2018, 1, 1, 0), rec(2018, 1, 1, 0))
	require.NoError(t, engine.AnalyzeHourly(context.Background()))

	assert.InDelta(t, 2.0/84.0, engine.AverageAccessesPerMonth(), 1e-12)
}

func TestEngine_BusiestDay(t *testing.T) {
	t.Parallel()

	engine := newEngine(rec(2018, 1, 15, 0), rec(2018, 2, 15, 0), rec(2018, 3, 15, 0))
	require.NoError(t, engine.AnalyzeDaily(context.Background()))

	assert.Equal(t, 15, engine.BusiestDay())
	assert.Equal(t, 1, engine.QuietestDay())
	assert.Equal(t, int64(3), engine.DailyCounts()[14])
}

func TestEngine_IndependentSourcesPerDimension(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	hourly := newEngine(scenarioRecords()...)
	require.NoError(t, hourly.AnalyzeHourly(ctx))
	daily := newEngine(scenarioRecords()...)
	require.NoError(t, daily.AnalyzeDaily(ctx))
	monthly := newEngine(scenarioRecords()...)
	require.NoError(t, monthly.AnalyzeMonthly(ctx))
	annual := newEngine(scenarioRecords()...)
	require.NoError(t, annual.AnalyzeAnnual(ctx))

	assert.Equal(t, 9, hourly.BusiestHour())
	assert.Equal(t, 10, daily.BusiestDay())
	assert.Equal(t, 3, monthly.BusiestMonth())
	assert.Equal(t, 2020, annual.BusiestYear())
	assert.Equal(t, int64(3), annual.AnnualCounts()[2])
	assert.Equal(t, []int64{0, 0, 3, 1, 1, 0, 0, 0, 0, 0, 0, 0}, monthly.MonthlyTotals())
}

func TestEngine_AnalyzeAllCountsEveryDimension(t *testing.T) {
	t.Parallel()

	engine := newEngine(scenarioRecords()...)
	require.NoError(t, engine.AnalyzeAll(context.Background()))

	assert.Equal(t, 9, engine.BusiestHour())
	assert.Equal(t, 10, engine.BusiestDay())
	assert.Equal(t, 3, engine.BusiestMonth())
	assert.Equal(t, 2020, engine.BusiestYear())
	assert.Equal(t, 2018, engine.QuietestYear())
	assert.Equal(t, int64(5), engine.NumberOfAccesses())
	for _, dim := range models.Dimensions {
		assert.True(t, engine.Analyzed(dim), dim)
	}
}

func TestEngine_SecondPassSeesOnlyRemainingRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	engine := newEngine(scenarioRecords()...)

	require.NoError(t, engine.AnalyzeHourly(ctx))
	require.NoError(t, engine.AnalyzeDaily(ctx))

	assert.Equal(t, int64(5), engine.NumberOfAccesses())
	assert.Equal(t, make([]int64, 28), engine.DailyCounts(), "the hourly pass drained the shared source")
	assert.Equal(t, 1, engine.BusiestDay())
	assert.True(t, engine.Analyzed(models.DimensionDay))
}

func TestEngine_PassesSplitAPartiallyConsumedStream(t *testing.T) {
	t.Parallel()

	records := scenarioRecords()
	source := sources.NewSliceSource(records)
	// consume the first two records before the engine sees the source
	for i := 0; i < 2; i++ {
		_, err := source.Next()
		require.NoError(t, err)
	}

	engine := analyzers.NewEngine(source, baseYear)
	require.NoError(t, engine.AnalyzeMonthly(context.Background()))

	assert.Equal(t, []int64{0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}, engine.MonthlyTotals())
}

func TestEngine_OutOfRangeRecordsAreRejected(t *testing.T) {
	t.Parallel()

	engine := newEngine(
		rec(2018, 1, 30, 4),
		rec(2030, 1, 2, 4),
		rec(2018, 1, 2, 5),
	)

	err := engine.AnalyzeAll(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, analyzers.ErrOutOfRange))
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ANL_1000", svcErr.Code)
	assert.Equal(t, "out_of_range", svcErr.Category)
	assert.Contains(t, svcErr.Message, "2 record(s)")

	assert.Equal(t, int64(3), engine.NumberOfAccesses(), "hours of every record are in range")
	assert.Equal(t, int64(1), engine.Rejected(models.DimensionDay))
	assert.Equal(t, int64(1), engine.Rejected(models.DimensionYear))
	assert.Equal(t, int64(0), engine.Rejected(models.DimensionHour))
	assert.Equal(t, []int64{2, 0, 0, 0, 0, 0, 0}, engine.AnnualCounts())
	assert.Equal(t, int64(2), engine.DailyCounts()[1])
	assert.True(t, engine.Analyzed(models.DimensionDay))
}

func TestEngine_PrintHourlyCounts(t *testing.T) {
	t.Parallel()

	engine := newEngine(rec(2018, 1, 1, 0), rec(2018, 1, 1, 0), rec(2018, 1, 1, 23))
	require.NoError(t, engine.AnalyzeHourly(context.Background()))

	var want strings.Builder
	want.WriteString("Hr: Count\n")
	for hour := 0; hour < 24; hour++ {
		count := 0
		switch hour {
		case 0:
			count = 2
		case 23:
			count = 1
		}
		fmt.Fprintf(&want, "%d: %d\n", hour, count)
	}

	var buf bytes.Buffer
	require.NoError(t, engine.PrintHourlyCounts(&buf))
	assert.Equal(t, want.String(), buf.String())
}

func TestEngine_PrintDataDoesNotConsumeSource(t *testing.T) {
	t.Parallel()

	engine := newEngine(rec(2018, 6, 1, 0), rec(2019, 2, 28, 23))

	var buf bytes.Buffer
	require.NoError(t, engine.PrintData(&buf))
	assert.Equal(t, "2018 06 01 00 00\n2019 02 28 23 00\n", buf.String())

	require.NoError(t, engine.AnalyzeHourly(context.Background()))
	assert.Equal(t, int64(2), engine.NumberOfAccesses())
}

func TestEngine_ReadFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := sourcemocks.NewMockRecordSource(ctrl)
	gomock.InOrder(
		source.EXPECT().HasNext().Return(true),
		source.EXPECT().Next().Return(models.AccessRecord{}, assert.AnError),
	)

	engine := analyzers.NewEngine(source, baseYear)
	err := engine.AnalyzeHourly(context.Background())

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ANL_9001", svcErr.Code)
	assert.True(t, errors.Is(err, assert.AnError))
}

func TestEngine_SourceErrorAfterDrain(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := sourcemocks.NewMockRecordSource(ctrl)
	gomock.InOrder(
		source.EXPECT().HasNext().Return(true),
		source.EXPECT().Next().Return(rec(2018, 1, 1, 7), nil),
		source.EXPECT().HasNext().Return(false),
		source.EXPECT().Err().Return(assert.AnError),
	)

	engine := analyzers.NewEngine(source, baseYear)
	err := engine.AnalyzeHourly(context.Background())

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ANL_9001", svcErr.Code)
	assert.Equal(t, int64(1), engine.NumberOfAccesses())
}

func TestEngine_CanceledContextStopsPass(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := newEngine(scenarioRecords()...)
	err := engine.AnalyzeHourly(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), engine.NumberOfAccesses())
	assert.False(t, engine.Analyzed(models.DimensionHour))
}

func TestEngine_Summary(t *testing.T) {
	t.Parallel()

	t.Run("nothing analyzed", func(t *testing.T) {
		t.Parallel()

		summary, err := newEngine().Summary()

		require.Error(t, err)
		assert.Nil(t, summary)
		svcErr, ok := svcerrors.AsServiceError(err)
		require.True(t, ok, "expected ServiceError")
		assert.Equal(t, "ANL_1001", svcErr.Code)
		assert.Equal(t, "failed_precondition", svcErr.Category)
	})

	t.Run("daily only", func(t *testing.T) {
		t.Parallel()

		engine := newEngine(scenarioRecords()...)
		require.NoError(t, engine.AnalyzeDaily(context.Background()))

		summary, err := engine.Summary()
		require.NoError(t, err)
		require.Len(t, summary.Dimensions, 1)
		assert.Equal(t, 10, summary.Dimensions[models.DimensionDay].Busiest)
		assert.Equal(t, int64(0), summary.NumberOfAccesses)

		_, err = engine.DimensionSummary(models.DimensionHour)
		assert.Error(t, err)
	})

	t.Run("all dimensions", func(t *testing.T) {
		t.Parallel()

		engine := newEngine(append(scenarioRecords(), rec(2018, 1, 29, 9))...)
		err := engine.AnalyzeAll(context.Background())
		require.ErrorIs(t, err, analyzers.ErrOutOfRange)

		summary, err := engine.Summary()
		require.NoError(t, err)
		assert.Equal(t, baseYear, summary.BaseYear)
		assert.Equal(t, int64(6), summary.NumberOfAccesses)
		assert.Equal(t, 9, summary.BusiestTwoHour)
		assert.Equal(t, map[models.Dimension]int64{models.DimensionDay: 1}, summary.Rejected)

		year := summary.Dimensions[models.DimensionYear]
		assert.Equal(t, baseYear, year.Origin)
		assert.Equal(t, 2020, year.Busiest)
		assert.Equal(t, int64(6), year.Total())
	})
}

func TestEngine_AnalyzeSelectedDimensions(t *testing.T) {
	t.Parallel()

	engine := newEngine(scenarioRecords()...)
	require.NoError(t, engine.Analyze(context.Background(), models.DimensionMonth, models.DimensionYear))

	assert.True(t, engine.Analyzed(models.DimensionMonth))
	assert.True(t, engine.Analyzed(models.DimensionYear))
	assert.False(t, engine.Analyzed(models.DimensionHour))
	assert.Equal(t, 3, engine.BusiestMonth())
	assert.Equal(t, 2020, engine.BusiestYear())

	assert.Panics(t, func() {
		_ = newEngine().Analyze(context.Background(), models.Dimension("week"))
	})
}
