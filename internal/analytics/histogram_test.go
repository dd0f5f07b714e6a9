package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

func TestHistogram_NoValues(t *testing.T) {
	assert.Empty(t, Histogram(nil, models.MetricWeight, 12))
	assert.Empty(t, Histogram([]models.Record{rec("2024-01-01", nil)}, models.MetricWeight, 12))
}

func TestHistogram_NoValuesEncodesAsEmptyArray(t *testing.T) {
	got := Histogram(nil, models.MetricWeight, 12)
	require.NotNil(t, got)
	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHistogram_IdenticalValuesSingleBucket(t *testing.T) {
	got := Histogram(weights(61, 61, 61), models.MetricWeight, 12)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, "61.00", got[0].RangeLabel)
}

func TestHistogram_TenValuesFiveBins(t *testing.T) {
	got := Histogram(weights(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), models.MetricWeight, 5)
	require.Len(t, got, 5)

	counts := make([]int, 0, len(got))
	for _, b := range got {
		counts = append(counts, b.Count)
	}
	assert.Equal(t, []int{2, 2, 2, 2, 2}, counts)

	assert.InDelta(t, 1.0, got[0].RangeStart, 1e-9)
	assert.InDelta(t, 2.8, got[0].RangeEnd, 1e-9)
	assert.InDelta(t, 8.2, got[4].RangeStart, 1e-9)
	assert.InDelta(t, 10.0, got[4].RangeEnd, 1e-9)
	assert.Equal(t, "1.00 - 2.80", got[0].RangeLabel)
	assert.Equal(t, "8.20 - 10.00", got[4].RangeLabel)
}

func TestHistogram_MaxLandsInLastBucket(t *testing.T) {
	got := Histogram(weights(0, 0.1, 0.7), models.MetricWeight, 7)
	require.Len(t, got, 7)
	assert.Equal(t, 1, got[6].Count)
}

func TestHistogram_CountsSumToValidValues(t *testing.T) {
	records := weights(58.2, 61.7, 60.0, 63.9, 59.4, 66.1, 55.0, 62.3, 60.8, 57.5, 64.4)
	records = append(records, rec("2024-01-02", nil))

	got := Histogram(records, models.MetricWeight, 0)
	require.Len(t, got, DefaultBins)

	total := 0
	for i, b := range got {
		total += b.Count
		if i > 0 {
			assert.Greater(t, b.RangeStart, got[i-1].RangeStart)
		}
	}
	assert.Equal(t, 11, total)
}
