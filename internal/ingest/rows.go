package ingest

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// RowError describes a source row rejected during ingestion.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result is the outcome of one ingestion: the accepted records sorted by date
// and the rows that were rejected.
type Result struct {
	Records []models.Record `json:"-"`
	Skipped []RowError      `json:"skipped,omitempty"`
}

// Cells holds the raw values of one row keyed by canonical field.
type Cells map[Field]string

var dateLayouts = []string{
	models.DateLayout,
	"2006/01/02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// excelEpoch is day zero of spreadsheet serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate interprets a source date cell as a calendar date in UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if len(s) > 10 && s[4] == '-' && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 200000 {
		return excelEpoch.AddDate(0, 0, int(serial)), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// ParseNumber interprets a metric cell. ok is false for empty, non-numeric or
// non-finite input; zero is a valid measurement.
func ParseNumber(raw string) (value float64, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func categorical(cells Cells, field Field, fallback string) string {
	if v := strings.TrimSpace(cells[field]); v != "" {
		return v
	}
	return fallback
}

// BuildRecord converts one row into a record. Rows without a valid date are rejected.
func BuildRecord(cells Cells) (models.Record, error) {
	date, err := ParseDate(cells[FieldDate])
	if err != nil {
		return models.Record{}, err
	}

	record := models.Record{
		Date:         date,
		DateKey:      date.Format(models.DateLayout),
		Farm:         categorical(cells, FieldFarm, models.DefaultCategory),
		Shed:         categorical(cells, FieldShed, models.DefaultCategory),
		Age:          categorical(cells, FieldAge, models.DefaultAge),
		Breed:        categorical(cells, FieldBreed, models.DefaultCategory),
		Client:       categorical(cells, FieldClient, models.DefaultClient),
		MetaqualixID: categorical(cells, FieldMetaqualix, models.DefaultCategory),
	}
	for _, metric := range models.Metrics {
		if v, ok := ParseNumber(cells[Field(metric)]); ok {
			record.SetValue(metric, v)
		}
	}
	return record, nil
}

// collector accumulates records and rejections and finalizes them into a Result.
type collector struct {
	result Result
}

func (c *collector) add(row int, cells Cells) {
	record, err := BuildRecord(cells)
	if err != nil {
		c.result.Skipped = append(c.result.Skipped, RowError{Row: row, Reason: err.Error()})
		return
	}
	c.result.Records = append(c.result.Records, record)
}

func (c *collector) finish() Result {
	slices.SortStableFunc(c.result.Records, func(a, b models.Record) int {
		return a.Date.Compare(b.Date)
	})
	if c.result.Records == nil {
		c.result.Records = []models.Record{}
	}
	return c.result
}

// FromTable converts a header row and data rows into records. Row numbers in
// rejections are 1-based and count the header as row 1.
func FromTable(header []string, rows [][]string) (Result, error) {
	columns, err := ResolveColumns(header)
	if err != nil {
		return Result{}, err
	}

	var c collector
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		cells := make(Cells, len(columns))
		for field, col := range columns {
			if col < len(row) {
				cells[field] = row[col]
			}
		}
		c.add(i+2, cells)
	}
	return c.finish(), nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// CellString renders a loosely typed cell from JSON or the Sheets API.
func CellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
