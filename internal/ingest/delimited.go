package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var candidateDelimiters = []rune{',', ';', '\t', '|'}

// DetectDelimiter picks the candidate delimiter occurring most often in the header line.
func DetectDelimiter(headerLine string) rune {
	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if n := strings.Count(headerLine, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// ParseDelimited reads a delimited text file whose first line is the header.
// The delimiter is detected from the header line.
func ParseDelimited(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read delimited input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	firstLine, _, _ := bufio.NewReader(bytes.NewReader(data)).ReadLine()
	if len(bytes.TrimSpace(firstLine)) == 0 {
		return Result{}, ErrEmptyInput
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectDelimiter(string(firstLine))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read delimited row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return FromTable(header, rows)
}
