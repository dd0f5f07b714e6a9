package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// DefaultBins is the bin count used when none is requested.
const DefaultBins = 12

// Bucket is one equal-width histogram bin covering [RangeStart, RangeEnd).
type Bucket struct {
	RangeStart float64 `json:"rangeStart"`
	RangeEnd   float64 `json:"rangeEnd"`
	Range      string  `json:"range"`
	RangeLabel string  `json:"rangeLabel"`
	Count      int     `json:"count"`
}

// Histogram buckets metric into bins equal-width bins over the observed range.
// It returns an empty slice when there are no valid values and a single bucket when all
// values are identical. The observed maximum is counted in the last bin.
func Histogram(records []models.Record, metric models.Metric, bins int) []Bucket {
	if bins <= 0 {
		bins = DefaultBins
	}
	values := Values(records, metric)
	if len(values) == 0 {
		return []Bucket{}
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		label := fmt.Sprintf("%.2f", lo)
		return []Bucket{{RangeStart: lo, RangeEnd: hi, Range: label, RangeLabel: label, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	buckets := make([]Bucket, bins)
	for i := range buckets {
		start := lo + float64(i)*width
		end := lo + float64(i+1)*width
		buckets[i] = Bucket{
			RangeStart: start,
			RangeEnd:   end,
			Range:      fmt.Sprintf("%.1f", start),
			RangeLabel: fmt.Sprintf("%.2f - %.2f", start, end),
		}
	}

	for _, v := range values {
		idx := int(math.Floor((v - lo) / width))
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		buckets[idx].Count++
	}
	return buckets
}
