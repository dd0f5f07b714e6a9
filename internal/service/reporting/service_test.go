package reporting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

func ptr(v float64) *float64 { return &v }

func sampleRecords() []models.Record {
	return []models.Record{
		{DateKey: "2024-01-05", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Shed: "C1", Weight: ptr(66), HaughUnits: ptr(92)},
		{DateKey: "2024-01-06", Date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), Shed: "C1", Weight: ptr(64), HaughUnits: ptr(88)},
		{DateKey: "2024-02-02", Date: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), Shed: "C2", Weight: ptr(50)},
	}
}

func newTestService() *Service {
	svc := NewService(nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestBuild(t *testing.T) {
	report := newTestService().Build(sampleRecords(), models.FilterCriteria{})

	assert.Equal(t, 3, report.RecordCount)
	require.Len(t, report.Sheds, 2)
	require.Len(t, report.Monthly, 2)

	c1 := report.Sheds[0]
	assert.Equal(t, "C1", c1.Shed)
	assert.Equal(t, 2, c1.RecordCount)
	require.Len(t, c1.Metrics, len(models.Metrics))

	weight := c1.Metrics[0]
	assert.Equal(t, models.MetricWeight, weight.Metric)
	assert.InDelta(t, 65.0, weight.Summary.Mean, 1e-9)
	assert.Equal(t, models.StatusOptimal, weight.Gauge.Status)
	assert.InDelta(t, 102.857, weight.Gauge.Angle, 1e-3)

	c2Weight := report.Sheds[1].Metrics[0]
	assert.Equal(t, models.StatusPoor, c2Weight.Gauge.Status)

	haugh := c1.Metrics[4]
	assert.Equal(t, models.MetricHaughUnits, haugh.Metric)
	assert.Equal(t, models.StatusOptimal, haugh.Gauge.Status)
}

func TestSnapshot(t *testing.T) {
	snapshot := newTestService().Snapshot(sampleRecords(), "webapp")

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), snapshot.Date)
	assert.Equal(t, 3, snapshot.RecordCount)
	assert.InDelta(t, 60.0, snapshot.Metrics[models.MetricWeight].Mean, 1e-9)

	row := SnapshotRow(snapshot)
	require.Len(t, row, 3+len(models.Metrics))
	assert.Equal(t, "2024-03-01", row[0])
	assert.Equal(t, 60.0, row[3])
}

func TestDigest(t *testing.T) {
	svc := newTestService()
	digest := svc.Digest(svc.Build(sampleRecords(), models.FilterCriteria{}))

	assert.True(t, strings.HasPrefix(digest, "*Reporte de Calidad de Huevo* (01/03/2024)"))
	assert.Contains(t, digest, "Muestras: 3")
	assert.Contains(t, digest, "- Peso Huevo: 60.00 g (Aceptable)")
	assert.Contains(t, digest, "Casetas evaluadas: 2")

	empty := svc.Digest(svc.Build(nil, models.FilterCriteria{}))
	assert.Contains(t, empty, "Sin registros en el periodo.")
}

func TestWritePDF(t *testing.T) {
	svc := newTestService()

	var buf bytes.Buffer
	require.NoError(t, svc.WritePDF(&buf, svc.Build(sampleRecords(), models.FilterCriteria{})))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, svc.WritePDF(&buf, svc.Build(nil, models.FilterCriteria{})))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Reporte_Calidad_Huevo_2024-03-01.pdf", FileName(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)))
}
