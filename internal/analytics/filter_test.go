package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

func sampleRecords() []models.Record {
	a := rec("2024-01-05", ptr(60))
	b := rec("2024-01-20", ptr(62))
	b.Shed = "C2"
	c := rec("2024-02-10", ptr(58))
	c.Farm = "Granja 2"
	c.Client = "Soriana"
	return []models.Record{a, b, c}
}

func TestFilter_AllWildcardsReturnsEverythingInOrder(t *testing.T) {
	records := sampleRecords()
	criteria := models.FilterCriteria{
		Start: day("2024-01-01"),
		End:   day("2024-12-31"),
		Match: map[models.Attribute]string{
			models.AttrFarm:   models.WildcardTodos,
			models.AttrShed:   models.WildcardAll,
			models.AttrClient: "",
		},
	}

	got := Filter(records, criteria)
	require.Len(t, got, 3)
	assert.Equal(t, records, got)
}

func TestFilter_EndDateIsInclusiveToEndOfDay(t *testing.T) {
	late := rec("2024-01-20", ptr(61))
	late.Date = day("2024-01-20").Add(23*time.Hour + 59*time.Minute)

	got := Filter([]models.Record{late}, models.FilterCriteria{
		Start: day("2024-01-20"),
		End:   day("2024-01-20"),
	})
	assert.Len(t, got, 1)
}

func TestFilter_NonUTCBoundsUseCalendarDate(t *testing.T) {
	zone := time.FixedZone("CST", -6*60*60)
	records := []models.Record{
		rec("2024-05-31", ptr(60)),
		rec("2024-06-30", ptr(61)),
		rec("2024-07-01", ptr(62)),
	}
	got := Filter(records, models.FilterCriteria{
		Start: time.Date(2024, 5, 31, 18, 0, 0, 0, zone),
		End:   time.Date(2024, 6, 30, 18, 0, 0, 0, zone),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "2024-05-31", got[0].DateKey)
	assert.Equal(t, "2024-06-30", got[1].DateKey)
}

func TestFilter_DateRangeExcludesOutside(t *testing.T) {
	got := Filter(sampleRecords(), models.FilterCriteria{
		Start: day("2024-01-06"),
		End:   day("2024-01-31"),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-20", got[0].DateKey)
}

func TestFilter_StartAfterEndIsEmptyNotError(t *testing.T) {
	got := Filter(sampleRecords(), models.FilterCriteria{
		Start: day("2024-03-01"),
		End:   day("2024-01-01"),
		Match: map[models.Attribute]string{models.AttrFarm: models.WildcardTodos},
	})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter_CategoricalMatchIsExactAndCaseSensitive(t *testing.T) {
	records := sampleRecords()

	got := Filter(records, models.FilterCriteria{Match: map[models.Attribute]string{models.AttrShed: "C2"}})
	require.Len(t, got, 1)
	assert.Equal(t, "C2", got[0].Shed)

	got = Filter(records, models.FilterCriteria{Match: map[models.Attribute]string{models.AttrShed: "c2"}})
	assert.Empty(t, got)

	got = Filter(records, models.FilterCriteria{Match: map[models.Attribute]string{
		models.AttrFarm:   "Granja 2",
		models.AttrClient: "Soriana",
	}})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-02-10", got[0].DateKey)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := append([]models.Record(nil), records...)

	_ = Filter(records, models.FilterCriteria{Match: map[models.Attribute]string{models.AttrShed: "C1"}})
	assert.Equal(t, before, records)
}
