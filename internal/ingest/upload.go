package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ParseUpload dispatches an uploaded file to the parser matching its extension.
func ParseUpload(filename string, r io.Reader) (Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".tsv":
		return ParseDelimited(r)
	case ".xlsx", ".xlsm":
		return ParseWorkbook(r, "")
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
}
