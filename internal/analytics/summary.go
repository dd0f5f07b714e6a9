package analytics

import (
	"fmt"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// ShedSummary holds per-metric statistics for a single shed.
type ShedSummary struct {
	Shed        string                                 `json:"shed"`
	RecordCount int                                    `json:"recordCount"`
	Metrics     map[models.Metric]models.MetricSummary `json:"metrics"`
}

// ShedSummaries computes statistics per distinct shed, in first-seen order.
// Records with an empty shed are ignored.
func ShedSummaries(records []models.Record, metrics []models.Metric) []ShedSummary {
	order := make([]string, 0)
	grouped := make(map[string][]models.Record)
	for _, record := range records {
		if record.Shed == "" {
			continue
		}
		if _, ok := grouped[record.Shed]; !ok {
			order = append(order, record.Shed)
		}
		grouped[record.Shed] = append(grouped[record.Shed], record)
	}

	out := make([]ShedSummary, 0, len(order))
	for _, shed := range order {
		group := grouped[shed]
		summary := ShedSummary{
			Shed:        shed,
			RecordCount: len(group),
			Metrics:     make(map[models.Metric]models.MetricSummary, len(metrics)),
		}
		for _, metric := range metrics {
			summary.Metrics[metric] = Stats(group, metric)
		}
		out = append(out, summary)
	}
	return out
}

// FilterOptions lists, per attribute, the wildcard followed by the distinct
// non-empty values in first-seen order.
func FilterOptions(records []models.Record) map[models.Attribute][]string {
	out := make(map[models.Attribute][]string, len(models.Attributes))
	for _, attr := range models.Attributes {
		seen := make(map[string]struct{})
		options := []string{models.WildcardTodos}
		for _, record := range records {
			v := record.Attribute(attr)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			options = append(options, v)
		}
		out[attr] = options
	}
	return out
}

// AllStats computes Stats for every metric.
func AllStats(records []models.Record, metrics []models.Metric) map[models.Metric]models.MetricSummary {
	out := make(map[models.Metric]models.MetricSummary, len(metrics))
	for _, metric := range metrics {
		out[metric] = Stats(records, metric)
	}
	return out
}

// GlobalAverages formats the mean of every metric with two decimals.
func GlobalAverages(records []models.Record, metrics []models.Metric) map[models.Metric]string {
	out := make(map[models.Metric]string, len(metrics))
	for _, metric := range metrics {
		out[metric] = fmt.Sprintf("%.2f", Stats(records, metric).Mean)
	}
	return out
}

// Trend is the change of metric between the last two months of series.
func Trend(series []MonthlyAverage, metric models.Metric) float64 {
	if len(series) < 2 {
		return 0
	}
	last := series[len(series)-1].Values[metric]
	prev := series[len(series)-2].Values[metric]
	return round2(last - prev)
}
