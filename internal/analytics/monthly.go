package analytics

import (
	"math"
	"slices"
	"strings"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// MonthlyAverage holds per-metric averages for one calendar month.
type MonthlyAverage struct {
	Month  string                    `json:"date"`
	Label  string                    `json:"dateLabel"`
	Values map[models.Metric]float64 `json:"values"`
	Counts map[models.Metric]int     `json:"counts"`
}

type monthAccumulator struct {
	sums   map[models.Metric]float64
	counts map[models.Metric]int
}

// MonthlyAverages groups records by YYYY-MM and averages each metric within the
// month. Each metric uses its own count of valid values as divisor, so a value
// missing for one metric does not skew the others. Results are sorted by month
// ascending and rounded to two decimals.
func MonthlyAverages(records []models.Record, metrics []models.Metric) []MonthlyAverage {
	if len(records) == 0 {
		return nil
	}

	grouped := make(map[string]*monthAccumulator)
	for _, record := range records {
		key := monthKey(record)
		if key == "" {
			continue
		}
		acc, ok := grouped[key]
		if !ok {
			acc = &monthAccumulator{
				sums:   make(map[models.Metric]float64, len(metrics)),
				counts: make(map[models.Metric]int, len(metrics)),
			}
			grouped[key] = acc
		}
		for _, metric := range metrics {
			v, ok := record.Value(metric)
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			acc.sums[metric] += v
			acc.counts[metric]++
		}
	}

	out := make([]MonthlyAverage, 0, len(grouped))
	for key, acc := range grouped {
		avg := MonthlyAverage{
			Month:  key,
			Label:  strings.Replace(key, "-", "/", 1),
			Values: make(map[models.Metric]float64, len(metrics)),
			Counts: make(map[models.Metric]int, len(metrics)),
		}
		for _, metric := range metrics {
			n := acc.counts[metric]
			avg.Counts[metric] = n
			if n > 0 {
				avg.Values[metric] = round2(acc.sums[metric] / float64(n))
			} else {
				avg.Values[metric] = 0
			}
		}
		out = append(out, avg)
	}

	slices.SortFunc(out, func(a, b MonthlyAverage) int {
		return strings.Compare(a.Month, b.Month)
	})
	return out
}

func monthKey(record models.Record) string {
	if len(record.DateKey) >= 7 {
		return record.DateKey[:7]
	}
	if !record.Date.IsZero() {
		return record.Date.Format("2006-01")
	}
	return ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
