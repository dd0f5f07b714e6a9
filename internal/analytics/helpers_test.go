package analytics

import (
	"time"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(date string, weight *float64) models.Record {
	return models.Record{
		Date:         day(date),
		DateKey:      date,
		Farm:         "Granja 1",
		Shed:         "C1",
		Age:          "40",
		Breed:        "Hy-Line",
		Client:       models.DefaultClient,
		MetaqualixID: models.DefaultCategory,
		Weight:       weight,
	}
}

func weights(vs ...float64) []models.Record {
	out := make([]models.Record, 0, len(vs))
	for _, v := range vs {
		out = append(out, rec("2024-01-01", ptr(v)))
	}
	return out
}
