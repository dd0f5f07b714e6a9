package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RangeReader reads a rectangular range of cells.
type RangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// SheetsSource loads records from a spreadsheet range whose first row is the header.
type SheetsSource struct {
	repo       RangeReader
	sheetRange string
	logger     *zap.Logger
}

// NewSheetsSource builds a source over the given A1 range.
func NewSheetsSource(repo RangeReader, sheetRange string, logger *zap.Logger) *SheetsSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetsSource{repo: repo, sheetRange: sheetRange, logger: logger}
}

// Name returns the configured range.
func (s *SheetsSource) Name() string {
	return "sheets:" + s.sheetRange
}

// Load reads the range and converts it into records.
func (s *SheetsSource) Load(ctx context.Context) (Result, error) {
	values, err := s.repo.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return Result{}, fmt.Errorf("load sheet data: %w", err)
	}
	if len(values) == 0 {
		return Result{}, ErrEmptyInput
	}

	header := toStrings(values[0])
	rows := make([][]string, 0, len(values)-1)
	for _, row := range values[1:] {
		rows = append(rows, toStrings(row))
	}

	result, err := FromTable(header, rows)
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("sheet data loaded",
		zap.String("range", s.sheetRange),
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = CellString(v)
	}
	return out
}
