// Package render draws dashboard charts as PNG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to plot")

// Chart kinds served by the API.
const (
	KindMonthly   = "monthly"
	KindHistogram = "histogram"
	KindSheds     = "sheds"
)

const (
	defaultWidth  = 960
	defaultHeight = 480
	monthLayout   = "2006-01"
)

// Size is the canvas of a chart in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = defaultWidth
	}
	if s.Height <= 0 {
		s.Height = defaultHeight
	}
	return s
}

func metricColor(metric models.Metric) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(metric.Info().Color, "#"))
}

func axisName(metric models.Metric) string {
	info := metric.Info()
	return fmt.Sprintf("%s (%s)", info.Name, info.Unit)
}

// MonthlyLine plots the monthly averages of metric. Months without values are skipped.
func MonthlyLine(w io.Writer, series []analytics.MonthlyAverage, metric models.Metric, size Size) error {
	var xs []time.Time
	var ys []float64
	for _, point := range series {
		if point.Counts[metric] == 0 {
			continue
		}
		month, err := time.Parse(monthLayout, point.Month)
		if err != nil {
			continue
		}
		xs = append(xs, month)
		ys = append(ys, point.Values[metric])
	}
	if len(xs) == 0 {
		return ErrNoData
	}
	if len(xs) == 1 {
		// a time series needs two points to span the x range
		xs = append(xs, xs[0].AddDate(0, 1, 0))
		ys = append(ys, ys[0])
	}

	lo, hi := ys[0], ys[0]
	for _, y := range ys {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}

	color := metricColor(metric)
	size = size.orDefault()
	ch := chart.Chart{
		Title:      "Tendencia mensual: " + metric.Info().Name,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 28}},
		XAxis:      chart.XAxis{Name: "Mes", ValueFormatter: chart.TimeValueFormatterWithFormat("2006/01")},
		YAxis:      chart.YAxis{Name: axisName(metric), Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    metric.Info().Name,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: color, StrokeWidth: 3, DotColor: color, DotWidth: 4},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render monthly chart: %w", err)
	}
	return nil
}

// HistogramBars plots the distribution buckets of metric.
func HistogramBars(w io.Writer, buckets []analytics.Bucket, metric models.Metric, size Size) error {
	if len(buckets) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, 0, len(buckets))
	maxCount := 0.0
	for _, b := range buckets {
		bars = append(bars, chart.Value{Label: b.Range, Value: float64(b.Count)})
		maxCount = max(maxCount, float64(b.Count))
	}
	return renderBars(w, "Distribución: "+metric.Info().Name, bars, maxCount, metricColor(metric), size)
}

// ShedBars compares the mean of metric across sheds.
func ShedBars(w io.Writer, sheds []analytics.ShedSummary, metric models.Metric, size Size) error {
	bars := make([]chart.Value, 0, len(sheds))
	maxMean := 0.0
	for _, shed := range sheds {
		summary, ok := shed.Metrics[metric]
		if !ok {
			continue
		}
		bars = append(bars, chart.Value{Label: shed.Shed, Value: summary.Mean})
		maxMean = max(maxMean, summary.Mean)
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	return renderBars(w, "Comparativa entre Casetas: "+axisName(metric), bars, maxMean, metricColor(metric), size)
}

func renderBars(w io.Writer, title string, bars []chart.Value, top float64, color drawing.Color, size Size) error {
	size = size.orDefault()
	style := chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1}
	for i := range bars {
		bars[i].Style = style
	}
	if top <= 0 {
		top = 1
	}

	slot := (size.Width - 80) / len(bars)
	barWidth := max(slot*2/3, 4)
	spacing := max(slot-barWidth, 1)

	bc := chart.BarChart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}
