package analyzers

import (
	"fmt"

	"log-analyzer/internal/models"
)

// bucketArray is a fixed-size counter array for one dimension. Bucket i counts key origin+i.
type bucketArray struct {
	dimension models.Dimension
	origin    int
	counts    []int64
}

func newBucketArray(dimension models.Dimension, baseYear int) *bucketArray {
	return &bucketArray{
		dimension: dimension,
		origin:    dimension.Origin(baseYear),
		counts:    make([]int64, dimension.Size()),
	}
}

// increment counts key, rejecting keys outside [origin, origin+size).
func (b *bucketArray) increment(key int) error {
	idx := key - b.origin
	if idx < 0 || idx >= len(b.counts) {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, b.dimension, key, b.origin, b.origin+len(b.counts)-1)
	}
	b.counts[idx]++
	return nil
}

func (b *bucketArray) busiest() int {
	return b.origin + extremalIndex(b.counts, func(candidate, best int64) bool { return candidate > best })
}

func (b *bucketArray) quietest() int {
	return b.origin + extremalIndex(b.counts, func(candidate, best int64) bool { return candidate < best })
}

func (b *bucketArray) total() int64 {
	var total int64
	for _, c := range b.counts {
		total += c
	}
	return total
}

func (b *bucketArray) snapshot() []int64 {
	out := make([]int64, len(b.counts))
	copy(out, b.counts)
	return out
}

// extremalIndex scans counts keeping the running best index. The comparison is strict,
// so ties resolve to the earliest index and an all-zero array yields 0.
func extremalIndex(counts []int64, better func(candidate, best int64) bool) int {
	best := 0
	for i := range counts {
		if better(counts[i], counts[best]) {
			best = i
		}
	}
	return best
}

// circularWindowSums returns, for each start index, the sum of width consecutive
// counts wrapping from the last index back to 0.
func circularWindowSums(counts []int64, width int) []int64 {
	sums := make([]int64, len(counts))
	for start := range counts {
		for offset := 0; offset < width; offset++ {
			sums[start] += counts[(start+offset)%len(counts)]
		}
	}
	return sums
}
