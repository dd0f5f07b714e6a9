package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/config"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
	"github.com/mamadbah2/eggmonitor/internal/repository/store"
	"github.com/mamadbah2/eggmonitor/internal/service/dashboard"
	"github.com/mamadbah2/eggmonitor/internal/service/reporting"
	"github.com/mamadbah2/eggmonitor/pkg/clients/whatsapp"
)

const (
	jobTimeout   = 2 * time.Minute
	digestWindow = 7 * 24 * time.Hour
)

// RowWriter appends a row to a spreadsheet range.
type RowWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// Deps are the collaborators used by the scheduled jobs. Sheets and
// Messenger are optional.
type Deps struct {
	Dashboard *dashboard.Service
	Reporting *reporting.Service
	Snapshots store.Snapshots
	Sheets    RowWriter
	Messenger whatsapp.Client
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	deps   Deps
	cfg    config.Config
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduler creates a new scheduler running in the configured timezone.
func NewScheduler(cfg config.Config, deps Deps, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		deps:   deps,
		cfg:    cfg,
		logger: logger,
		now:    func() time.Time { return time.Now().In(loc) },
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	type job struct {
		name     string
		schedule string
		run      func(context.Context) error
	}
	jobs := []job{
		{"refresh", s.cfg.Schedule.RefreshCron, s.RunRefresh},
		{"snapshot", s.cfg.Schedule.SnapshotCron, s.RunSnapshot},
	}
	if s.deps.Messenger != nil && s.cfg.WhatsApp.Enabled() {
		jobs = append(jobs, job{"digest", s.cfg.Schedule.DigestCron, s.RunDigest})
	}

	for _, j := range jobs {
		if j.schedule == "" {
			continue
		}
		if _, err := s.cron.AddFunc(j.schedule, s.wrap(j.name, j.run)); err != nil {
			return fmt.Errorf("schedule %s job: %w", j.name, err)
		}
		s.logger.Info("job scheduled", zap.String("job", j.name), zap.String("schedule", j.schedule))
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) wrap(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := run(ctx); err != nil {
			s.logger.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("job completed", zap.String("job", name), zap.Duration("duration", time.Since(start)))
	}
}

// RunRefresh reloads the dataset from the configured remote source.
func (s *Scheduler) RunRefresh(ctx context.Context) error {
	summary, err := s.deps.Dashboard.Refresh(ctx)
	if errors.Is(err, dashboard.ErrNoDataSource) {
		s.logger.Debug("refresh skipped, no data source")
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info("dataset refreshed", zap.String("source", summary.Source), zap.Int("records", summary.Records))
	return nil
}

// RunSnapshot persists the aggregate quality of the current dataset.
func (s *Scheduler) RunSnapshot(ctx context.Context) error {
	state := s.deps.Dashboard.State()
	if len(state.Records) == 0 {
		s.logger.Debug("snapshot skipped, empty dataset")
		return nil
	}

	snapshot := s.deps.Reporting.Snapshot(state.Records, state.Source)
	if s.deps.Snapshots != nil {
		if err := s.deps.Snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	if s.deps.Sheets != nil && s.cfg.Sheets.SnapshotRange != "" {
		if err := s.deps.Sheets.WriteRow(ctx, s.cfg.Sheets.SnapshotRange, reporting.SnapshotRow(snapshot)); err != nil {
			return fmt.Errorf("append snapshot row: %w", err)
		}
	}
	return nil
}

// RunDigest sends the quality summary of the last week over WhatsApp.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	if s.deps.Messenger == nil {
		return nil
	}

	now := s.now()
	criteria := models.FilterCriteria{Start: now.Add(-digestWindow), End: now}
	report := s.deps.Reporting.Build(s.deps.Dashboard.Query(criteria), criteria)
	body := s.deps.Reporting.Digest(report)

	var errs []error
	for _, to := range whatsapp.Recipients(s.cfg.WhatsApp.DigestTo) {
		if _, err := s.deps.Messenger.SendText(ctx, to, body); err != nil {
			errs = append(errs, fmt.Errorf("send digest to %s: %w", to, err))
		}
	}
	return errors.Join(errs...)
}
