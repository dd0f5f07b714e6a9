package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
	"github.com/mamadbah2/eggmonitor/internal/ingest"
	"github.com/mamadbah2/eggmonitor/internal/repository/store"
)

var (
	// ErrNoDataSource indicates neither a web app URL nor a spreadsheet is configured.
	ErrNoDataSource = errors.New("no data source configured")
	// ErrInvalidURL indicates a data source URL that is not absolute http(s).
	ErrInvalidURL = errors.New("invalid data source url")
)

// State is the dataset currently held in memory. It is replaced wholesale on
// every successful ingestion.
type State struct {
	Records   []models.Record   `json:"-"`
	Source    string            `json:"source"`
	LoadedAt  time.Time         `json:"loadedAt"`
	Skipped   []ingest.RowError `json:"skipped,omitempty"`
	LastError string            `json:"lastError,omitempty"`
}

// LoadSummary describes the outcome of an ingestion.
type LoadSummary struct {
	Source   string            `json:"source"`
	Records  int               `json:"records"`
	Skipped  []ingest.RowError `json:"skipped,omitempty"`
	LoadedAt time.Time         `json:"loadedAt"`
}

// Options configures where remote data comes from.
type Options struct {
	// DefaultURL is used when no URL has been saved through the API.
	DefaultURL string
	// Sheets is used when no web app URL is known.
	Sheets ingest.Source
	// NewWebApp builds the source for a web app URL.
	NewWebApp func(url string) ingest.Source
}

// Service owns the application state: the active dataset and its origin.
type Service struct {
	mu         sync.RWMutex
	state      State
	kv         store.KeyValue
	defaultURL string
	sheets     ingest.Source
	newWebApp  func(url string) ingest.Source
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a dashboard service.
func NewService(kv store.KeyValue, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if kv == nil {
		kv = store.NewMemoryStore()
	}
	newWebApp := opts.NewWebApp
	if newWebApp == nil {
		newWebApp = func(u string) ingest.Source { return ingest.NewWebAppSource(u, logger.Named("webapp")) }
	}
	return &Service{
		kv:         kv,
		defaultURL: opts.DefaultURL,
		sheets:     opts.Sheets,
		newWebApp:  newWebApp,
		logger:     logger,
		now:        time.Now,
	}
}

// DataSourceURL returns the saved web app URL, falling back to the configured default.
func (s *Service) DataSourceURL(ctx context.Context) (string, error) {
	v, err := s.kv.Get(ctx, store.KeyDataSourceURL)
	if errors.Is(err, store.ErrNotFound) {
		return s.defaultURL, nil
	}
	if err != nil {
		return "", fmt.Errorf("load data source url: %w", err)
	}
	return v, nil
}

// SetDataSource saves a new web app URL and loads data from it.
func (s *Service) SetDataSource(ctx context.Context, rawURL string) (LoadSummary, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return LoadSummary{}, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if err := s.kv.Set(ctx, store.KeyDataSourceURL, rawURL); err != nil {
		return LoadSummary{}, fmt.Errorf("save data source url: %w", err)
	}
	s.logger.Info("data source updated", zap.String("url", rawURL))
	return s.load(ctx, s.newWebApp(rawURL))
}

// ClearDataSource forgets the saved web app URL.
func (s *Service) ClearDataSource(ctx context.Context) error {
	if err := s.kv.Delete(ctx, store.KeyDataSourceURL); err != nil {
		return fmt.Errorf("clear data source url: %w", err)
	}
	return nil
}

// Refresh reloads the dataset from the current remote source.
func (s *Service) Refresh(ctx context.Context) (LoadSummary, error) {
	src, err := s.currentSource(ctx)
	if err != nil {
		return LoadSummary{}, err
	}
	return s.load(ctx, src)
}

func (s *Service) currentSource(ctx context.Context) (ingest.Source, error) {
	u, err := s.DataSourceURL(ctx)
	if err != nil {
		return nil, err
	}
	if u != "" {
		return s.newWebApp(u), nil
	}
	if s.sheets != nil {
		return s.sheets, nil
	}
	return nil, ErrNoDataSource
}

func (s *Service) load(ctx context.Context, src ingest.Source) (LoadSummary, error) {
	result, err := src.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.state.LastError = err.Error()
		s.mu.Unlock()
		s.logger.Error("data source load failed", zap.String("source", src.Name()), zap.Error(err))
		return LoadSummary{}, err
	}
	return s.Replace(result, src.Name()), nil
}

// Ingest parses an uploaded file and replaces the dataset with its records.
func (s *Service) Ingest(filename string, r io.Reader) (LoadSummary, error) {
	result, err := ingest.ParseUpload(filename, r)
	if err != nil {
		s.logger.Warn("upload rejected", zap.String("file", filename), zap.Error(err))
		return LoadSummary{}, err
	}
	return s.Replace(result, "upload:"+filename), nil
}

// Replace swaps the in-memory dataset for result.
func (s *Service) Replace(result ingest.Result, source string) LoadSummary {
	loadedAt := s.now().UTC()

	s.mu.Lock()
	s.state = State{
		Records:  result.Records,
		Source:   source,
		LoadedAt: loadedAt,
		Skipped:  result.Skipped,
	}
	s.mu.Unlock()

	if len(result.Skipped) > 0 {
		s.logger.Warn("rows skipped during ingestion",
			zap.String("source", source),
			zap.Int("skipped", len(result.Skipped)),
			zap.Int("first_row", result.Skipped[0].Row),
			zap.String("first_reason", result.Skipped[0].Reason))
	}
	s.logger.Info("dataset replaced", zap.String("source", source), zap.Int("records", len(result.Records)))

	return LoadSummary{Source: source, Records: len(result.Records), Skipped: result.Skipped, LoadedAt: loadedAt}
}

// State returns the current state. Records are shared and must not be mutated.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Records returns the current dataset.
func (s *Service) Records() []models.Record {
	return s.State().Records
}

// Query returns the records matching criteria.
func (s *Service) Query(criteria models.FilterCriteria) []models.Record {
	return analytics.Filter(s.Records(), criteria)
}

// Overview is the dashboard landing view.
type Overview struct {
	RecordCount int                                 `json:"recordCount"`
	Averages    map[models.Metric]string            `json:"averages"`
	Trends      map[models.Metric]float64           `json:"trends"`
	Monthly     []analytics.MonthlyAverage          `json:"monthly"`
	Metrics     map[models.Metric]models.MetricInfo `json:"metrics"`
}

// Overview computes the landing view for criteria.
func (s *Service) Overview(criteria models.FilterCriteria) Overview {
	records := s.Query(criteria)
	monthly := analytics.MonthlyAverages(records, models.Metrics)

	out := Overview{
		RecordCount: len(records),
		Averages:    analytics.GlobalAverages(records, models.Metrics),
		Trends:      make(map[models.Metric]float64, len(models.Metrics)),
		Monthly:     monthly,
		Metrics:     make(map[models.Metric]models.MetricInfo, len(models.Metrics)),
	}
	for _, metric := range models.Metrics {
		out.Trends[metric] = analytics.Trend(monthly, metric)
		out.Metrics[metric] = metric.Info()
	}
	return out
}
