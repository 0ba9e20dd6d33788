package analyzers

import (
	"errors"
	"testing"

	"log-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketArray_IncrementBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		dimension models.Dimension
		key       int
		wantIdx   int
		wantErr   bool
	}{
		{name: "first hour", dimension: models.DimensionHour, key: 0, wantIdx: 0},
		{name: "last hour", dimension: models.DimensionHour, key: 23, wantIdx: 23},
		{name: "hour 24", dimension: models.DimensionHour, key: 24, wantErr: true},
		{name: "day 1", dimension: models.DimensionDay, key: 1, wantIdx: 0},
		{name: "day 28", dimension: models.DimensionDay, key: 28, wantIdx: 27},
		{name: "day 29", dimension: models.DimensionDay, key: 29, wantErr: true},
		{name: "day 0", dimension: models.DimensionDay, key: 0, wantErr: true},
		{name: "december", dimension: models.DimensionMonth, key: 12, wantIdx: 11},
		{name: "month 13", dimension: models.DimensionMonth, key: 13, wantErr: true},
		{name: "base year", dimension: models.DimensionYear, key: 2018, wantIdx: 0},
		{name: "last year of window", dimension: models.DimensionYear, key: 2024, wantIdx: 6},
		{name: "year after window", dimension: models.DimensionYear, key: 2025, wantErr: true},
		{name: "year before window", dimension: models.DimensionYear, key: 2017, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newBucketArray(tt.dimension, 2018)
			err := b.increment(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrOutOfRange))
				assert.Zero(t, b.total(), "rejected key must not be counted")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), b.counts[tt.wantIdx])
		})
	}
}

func TestExtremalIndex(t *testing.T) {
	t.Parallel()

	greater := func(candidate, best int64) bool { return candidate > best }
	less := func(candidate, best int64) bool { return candidate < best }

	tests := []struct {
		name   string
		counts []int64
		better func(candidate, best int64) bool
		want   int
	}{
		{name: "tie resolves to lowest index", counts: []int64{5, 5, 3}, better: greater, want: 0},
		{name: "quietest tie resolves to lowest index", counts: []int64{3, 1, 1}, better: less, want: 1},
		{name: "all zero busiest", counts: make([]int64, 24), better: greater, want: 0},
		{name: "all zero quietest", counts: make([]int64, 24), better: less, want: 0},
		{name: "max at end", counts: []int64{1, 2, 3}, better: greater, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extremalIndex(tt.counts, tt.better))
		})
	}
}

func TestCircularWindowSums_Wraps(t *testing.T) {
	t.Parallel()

	counts := make([]int64, 24)
	counts[0] = 1
	counts[1] = 1
	counts[23] = 9

	sums := circularWindowSums(counts, 2)

	assert.Equal(t, int64(2), sums[0])
	assert.Equal(t, int64(1), sums[1])
	assert.Equal(t, int64(9), sums[22])
	assert.Equal(t, int64(10), sums[23])
}

func TestBucketArray_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	b := newBucketArray(models.DimensionMonth, 2018)
	require.NoError(t, b.increment(3))

	snap := b.snapshot()
	snap[2] = 100

	assert.Equal(t, int64(1), b.counts[2])
}
