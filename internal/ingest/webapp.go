package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebAppSource loads records from a Google Apps Script web app that answers
// with a JSON array of row objects.
type WebAppSource struct {
	url        string
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewWebAppSource builds a source for the given endpoint URL.
func NewWebAppSource(url string, logger *zap.Logger) *WebAppSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)

	return &WebAppSource{url: url, httpClient: client, logger: logger}
}

// Name returns the endpoint URL.
func (s *WebAppSource) Name() string {
	return s.url
}

// Load fetches and parses the endpoint payload.
func (s *WebAppSource) Load(ctx context.Context) (Result, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.IsError() {
		return Result{}, &HTTPStatusError{Code: resp.StatusCode()}
	}

	result, err := ParseWebAppPayload(resp.Body())
	if err != nil {
		return Result{}, err
	}

	s.logger.Info("web app data loaded",
		zap.Int("records", len(result.Records)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

var loginMarkers = [][]byte{[]byte("<!DOCTYPE html"), []byte("Google Drive"), []byte("Sign in")}

// ParseWebAppPayload decodes the JSON array produced by the Apps Script endpoint.
func ParseWebAppPayload(body []byte) (Result, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		for _, marker := range loginMarkers {
			if bytes.Contains(body, marker) {
				return Result{}, ErrLoginPage
			}
		}
		return Result{}, ErrInvalidJSON
	}

	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["error"]; ok && msg != nil {
			return Result{}, fmt.Errorf("%w: %s", ErrScriptError, CellString(msg))
		}
	}

	rows, ok := payload.([]any)
	if !ok {
		return Result{}, ErrNotArray
	}

	fields := make(map[string]Field)
	var c collector
	for i, raw := range rows {
		obj, ok := raw.(map[string]any)
		if !ok {
			c.result.Skipped = append(c.result.Skipped, RowError{Row: i + 1, Reason: "row is not an object"})
			continue
		}
		cells := make(Cells, len(obj))
		for key, value := range obj {
			field, known := fields[key]
			if !known {
				field, _ = LookupField(key)
				fields[key] = field
			}
			if field != "" {
				cells[field] = CellString(value)
			}
		}
		c.add(i+1, cells)
	}
	return c.finish(), nil
}
