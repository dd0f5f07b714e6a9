package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// Values extracts the present, finite values of metric across records.
func Values(records []models.Record, metric models.Metric) []float64 {
	values := make([]float64, 0, len(records))
	for _, record := range records {
		v, ok := record.Value(metric)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Stats computes mean, population standard deviation, min and max of metric.
// With no valid values every field is zero.
func Stats(records []models.Record, metric models.Metric) models.MetricSummary {
	return summarize(Values(records, metric))
}

func summarize(values []float64) models.MetricSummary {
	if len(values) == 0 {
		return models.MetricSummary{}
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return models.MetricSummary{Mean: lo, Min: lo, Max: hi}
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	// Summation error can push the mean just past an extremum.
	mean = math.Max(lo, math.Min(hi, mean))
	return models.MetricSummary{
		Mean: mean,
		Std:  std,
		Min:  lo,
		Max:  hi,
	}
}
