package analytics

import (
	"time"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

type constraint struct {
	attr  models.Attribute
	value string
}

// Filter returns the records whose date falls within the criteria range (end of
// day inclusive) and whose categorical attributes equal every non-wildcard
// constraint. Output preserves input order. A start date after the end date
// yields an empty result.
func Filter(records []models.Record, criteria models.FilterCriteria) []models.Record {
	var start, end time.Time
	if !criteria.Start.IsZero() {
		start = startOfDay(criteria.Start)
	}
	if !criteria.End.IsZero() {
		end = startOfDay(criteria.End).Add(24*time.Hour - time.Nanosecond)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return []models.Record{}
	}

	constraints := make([]constraint, 0, len(criteria.Match))
	for _, attr := range models.Attributes {
		if value, ok := criteria.Match[attr]; ok && !models.IsWildcard(value) {
			constraints = append(constraints, constraint{attr: attr, value: value})
		}
	}

	out := make([]models.Record, 0, len(records))
	for _, record := range records {
		if !start.IsZero() && record.Date.Before(start) {
			continue
		}
		if !end.IsZero() && record.Date.After(end) {
			continue
		}
		if matches(record, constraints) {
			out = append(out, record)
		}
	}
	return out
}

func matches(record models.Record, constraints []constraint) bool {
	for _, c := range constraints {
		if record.Attribute(c.attr) != c.value {
			return false
		}
	}
	return true
}

// startOfDay returns the UTC midnight of t's calendar date, matching how
// records are dated.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
