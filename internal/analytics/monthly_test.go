package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

func TestMonthlyAverages_ConcreteScenario(t *testing.T) {
	got := MonthlyAverages(sampleRecords(), []models.Metric{models.MetricWeight})
	require.Len(t, got, 2)

	assert.Equal(t, "2024-01", got[0].Month)
	assert.Equal(t, "2024/01", got[0].Label)
	assert.Equal(t, 61.0, got[0].Values[models.MetricWeight])
	assert.Equal(t, "2024-02", got[1].Month)
	assert.Equal(t, 58.0, got[1].Values[models.MetricWeight])
}

func TestMonthlyAverages_SortedAcrossYears(t *testing.T) {
	records := []models.Record{
		rec("2025-01-03", ptr(1)),
		rec("2023-12-30", ptr(2)),
		rec("2024-11-15", ptr(3)),
	}
	got := MonthlyAverages(records, []models.Metric{models.MetricWeight})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"2023-12", "2024-11", "2025-01"}, []string{got[0].Month, got[1].Month, got[2].Month})
}

func TestMonthlyAverages_PerFieldDivisors(t *testing.T) {
	a := rec("2024-03-01", ptr(60))
	a.HaughUnits = ptr(90)
	b := rec("2024-03-02", ptr(64))

	got := MonthlyAverages([]models.Record{a, b}, []models.Metric{models.MetricWeight, models.MetricHaughUnits})
	require.Len(t, got, 1)
	assert.Equal(t, 62.0, got[0].Values[models.MetricWeight])
	assert.Equal(t, 90.0, got[0].Values[models.MetricHaughUnits])
	assert.Equal(t, 2, got[0].Counts[models.MetricWeight])
	assert.Equal(t, 1, got[0].Counts[models.MetricHaughUnits])
	assert.Equal(t, 0.0, got[0].Values[models.MetricYolkColor])
}

func TestMonthlyAverages_RoundsToTwoDecimals(t *testing.T) {
	records := []models.Record{rec("2024-04-01", ptr(1)), rec("2024-04-02", ptr(1)), rec("2024-04-03", ptr(2))}
	got := MonthlyAverages(records, []models.Metric{models.MetricWeight})
	require.Len(t, got, 1)
	assert.Equal(t, 1.33, got[0].Values[models.MetricWeight])
}

func TestMonthlyAverages_Empty(t *testing.T) {
	assert.Empty(t, MonthlyAverages(nil, models.Metrics))
}
