package models

import "time"

// MetricSummary is the descriptive statistics of one metric.
type MetricSummary struct {
	Mean float64 `bson:"mean" json:"mean"`
	Std  float64 `bson:"std" json:"std"`
	Min  float64 `bson:"min" json:"min"`
	Max  float64 `bson:"max" json:"max"`
}

// QualitySnapshot is the periodic aggregate persisted to MongoDB.
type QualitySnapshot struct {
	Date        time.Time                `bson:"date" json:"date"`
	Source      string                   `bson:"source" json:"source"`
	RecordCount int                      `bson:"record_count" json:"record_count"`
	Metrics     map[Metric]MetricSummary `bson:"metrics" json:"metrics"`
	CreatedAt   time.Time                `bson:"created_at" json:"created_at"`
}
