package reporting

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

const fileDateLayout = "2006-01-02"

// Gauge positions a value on the half-circle scale of its quality standard.
type Gauge struct {
	Value  float64              `json:"value"`
	Angle  float64              `json:"angle"`
	Status models.QualityStatus `json:"status"`
}

// MetricReport is the evaluation of one metric.
type MetricReport struct {
	Metric  models.Metric        `json:"metric"`
	Info    models.MetricInfo    `json:"info"`
	Summary models.MetricSummary `json:"summary"`
	Gauge   Gauge                `json:"gauge"`
}

// ShedReport is the individual analysis of one shed.
type ShedReport struct {
	Shed        string         `json:"shed"`
	RecordCount int            `json:"recordCount"`
	Metrics     []MetricReport `json:"metrics"`
}

// Report is the quality report for a filtered dataset.
type Report struct {
	GeneratedAt time.Time                  `json:"generatedAt"`
	Criteria    models.FilterCriteria      `json:"criteria"`
	RecordCount int                        `json:"recordCount"`
	Overall     []MetricReport             `json:"overall"`
	Comparison  []analytics.ShedSummary    `json:"comparison"`
	Sheds       []ShedReport               `json:"sheds"`
	Monthly     []analytics.MonthlyAverage `json:"monthly"`
}

// Service builds quality reports, snapshots and digests.
type Service struct {
	standards models.QualityStandards
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(standards models.QualityStandards, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if standards == nil {
		standards = models.DefaultQualityStandards()
	}
	return &Service{standards: standards, logger: logger, now: time.Now}
}

// Standards returns the quality standards used for diagnosis.
func (s *Service) Standards() models.QualityStandards {
	return s.standards
}

// Build evaluates records, already filtered by criteria, into a report.
func (s *Service) Build(records []models.Record, criteria models.FilterCriteria) Report {
	comparison := analytics.ShedSummaries(records, models.Metrics)

	report := Report{
		GeneratedAt: s.now(),
		Criteria:    criteria,
		RecordCount: len(records),
		Overall:     s.evaluate(analytics.AllStats(records, models.Metrics)),
		Comparison:  comparison,
		Sheds:       make([]ShedReport, 0, len(comparison)),
		Monthly:     analytics.MonthlyAverages(records, models.Metrics),
	}
	for _, shed := range comparison {
		report.Sheds = append(report.Sheds, ShedReport{
			Shed:        shed.Shed,
			RecordCount: shed.RecordCount,
			Metrics:     s.evaluate(shed.Metrics),
		})
	}

	s.logger.Debug("report built", zap.Int("records", len(records)), zap.Int("sheds", len(report.Sheds)))
	return report
}

func (s *Service) evaluate(summaries map[models.Metric]models.MetricSummary) []MetricReport {
	out := make([]MetricReport, 0, len(models.Metrics))
	for _, metric := range models.Metrics {
		summary := summaries[metric]
		out = append(out, MetricReport{
			Metric:  metric,
			Info:    metric.Info(),
			Summary: summary,
			Gauge:   s.gauge(metric, summary.Mean),
		})
	}
	return out
}

func (s *Service) gauge(metric models.Metric, value float64) Gauge {
	standard, ok := s.standards[metric]
	if !ok {
		return Gauge{Value: value}
	}
	return Gauge{Value: value, Angle: standard.Angle(value), Status: standard.Diagnose(value)}
}

// Snapshot condenses records into a persisted quality snapshot.
func (s *Service) Snapshot(records []models.Record, source string) models.QualitySnapshot {
	now := s.now().UTC()
	return models.QualitySnapshot{
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Source:      source,
		RecordCount: len(records),
		Metrics:     analytics.AllStats(records, models.Metrics),
		CreatedAt:   now,
	}
}

// SnapshotRow flattens a snapshot for a spreadsheet append.
func SnapshotRow(snapshot models.QualitySnapshot) []interface{} {
	row := []interface{}{snapshot.Date.Format(fileDateLayout), snapshot.Source, snapshot.RecordCount}
	for _, metric := range models.Metrics {
		row = append(row, round2(snapshot.Metrics[metric].Mean))
	}
	return row
}

// Digest renders a short text summary of report for messaging channels.
func (s *Service) Digest(report Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Reporte de Calidad de Huevo* (%s)\n", report.GeneratedAt.Format("02/01/2006"))
	fmt.Fprintf(&b, "Periodo: %s a %s\n", dateOrOpen(report.Criteria.Start), dateOrOpen(report.Criteria.End))
	if report.RecordCount == 0 {
		b.WriteString("Sin registros en el periodo.")
		return b.String()
	}
	fmt.Fprintf(&b, "Muestras: %d\n", report.RecordCount)
	for _, m := range report.Overall {
		fmt.Fprintf(&b, "- %s: %.2f %s", m.Info.Name, m.Summary.Mean, m.Info.Unit)
		if m.Gauge.Status != "" {
			fmt.Fprintf(&b, " (%s)", m.Gauge.Status)
		}
		b.WriteString("\n")
	}
	if len(report.Sheds) > 0 {
		fmt.Fprintf(&b, "Casetas evaluadas: %d", len(report.Sheds))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FileName is the download name of a report generated at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("Reporte_Calidad_Huevo_%s.pdf", t.Format(fileDateLayout))
}

func dateOrOpen(t time.Time) string {
	if t.IsZero() {
		return "sin límite"
	}
	return t.Format("02/01/2006")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
