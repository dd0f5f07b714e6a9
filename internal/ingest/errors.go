package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDateColumn indicates the header row has no recognizable date column.
	ErrMissingDateColumn = errors.New("missing date column")
	// ErrEmptyInput indicates the source contained no header row.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnsupportedFile indicates an upload with an unknown extension.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrLoginPage indicates the endpoint answered with a Google sign-in page instead of JSON.
	ErrLoginPage = errors.New("endpoint returned a sign-in page")
	// ErrInvalidJSON indicates the endpoint body is not JSON.
	ErrInvalidJSON = errors.New("response is not valid JSON")
	// ErrNotArray indicates the endpoint JSON is not an array of rows.
	ErrNotArray = errors.New("response is not a JSON array")
	// ErrScriptError indicates the Apps Script returned an explicit error object.
	ErrScriptError = errors.New("script error")
	// ErrUnreachable indicates the endpoint could not be contacted.
	ErrUnreachable = errors.New("data source unreachable")
)

// HTTPStatusError reports a non-success status from a remote source.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("Error HTTP %d", e.Code)
}
