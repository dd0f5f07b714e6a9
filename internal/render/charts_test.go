package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestMonthlyLine(t *testing.T) {
	series := []analytics.MonthlyAverage{
		{Month: "2024-01", Values: map[models.Metric]float64{models.MetricWeight: 61}, Counts: map[models.Metric]int{models.MetricWeight: 2}},
		{Month: "2024-02", Values: map[models.Metric]float64{models.MetricWeight: 58}, Counts: map[models.Metric]int{models.MetricWeight: 1}},
	}
	var buf bytes.Buffer
	require.NoError(t, MonthlyLine(&buf, series, models.MetricWeight, Size{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestMonthlyLine_SinglePointAndEmpty(t *testing.T) {
	series := []analytics.MonthlyAverage{
		{Month: "2024-01", Values: map[models.Metric]float64{models.MetricWeight: 61}, Counts: map[models.Metric]int{models.MetricWeight: 2}},
	}
	var buf bytes.Buffer
	require.NoError(t, MonthlyLine(&buf, series, models.MetricWeight, Size{Width: 400, Height: 300}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, MonthlyLine(&bytes.Buffer{}, series, models.MetricHaughUnits, Size{}), ErrNoData)
}

func TestHistogramBars(t *testing.T) {
	buckets := []analytics.Bucket{
		{Range: "1.0", RangeStart: 1, RangeEnd: 2, Count: 3},
		{Range: "2.0", RangeStart: 2, RangeEnd: 3, Count: 3},
	}
	var buf bytes.Buffer
	require.NoError(t, HistogramBars(&buf, buckets, models.MetricYolkColor, Size{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, HistogramBars(&bytes.Buffer{}, nil, models.MetricYolkColor, Size{}), ErrNoData)
}

func TestShedBars(t *testing.T) {
	sheds := []analytics.ShedSummary{
		{Shed: "C1", RecordCount: 2, Metrics: map[models.Metric]models.MetricSummary{models.MetricWeight: {Mean: 61}}},
		{Shed: "C2", RecordCount: 1, Metrics: map[models.Metric]models.MetricSummary{models.MetricWeight: {Mean: 58}}},
	}
	var buf bytes.Buffer
	require.NoError(t, ShedBars(&buf, sheds, models.MetricWeight, Size{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.ErrorIs(t, ShedBars(&bytes.Buffer{}, nil, models.MetricWeight, Size{}), ErrNoData)
}
