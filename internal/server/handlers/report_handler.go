package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
	"github.com/mamadbah2/eggmonitor/internal/render"
	"github.com/mamadbah2/eggmonitor/internal/service/reporting"
)

// Report returns the quality report as JSON.
func (h *Handler) Report(c *gin.Context) {
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.reporting.Build(h.dashboard.Query(criteria), criteria))
}

// ReportPDF streams the quality report as a PDF download.
func (h *Handler) ReportPDF(c *gin.Context) {
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	report := h.reporting.Build(h.dashboard.Query(criteria), criteria)

	var buf bytes.Buffer
	if err := h.reporting.WritePDF(&buf, report); err != nil {
		h.fail(c, http.StatusInternalServerError, "Error al generar el PDF.", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, reporting.FileName(report.GeneratedAt)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Chart renders a PNG chart of one metric.
func (h *Handler) Chart(c *gin.Context) {
	key, isPNG := strings.CutSuffix(c.Param("file"), ".png")
	if !isPNG {
		h.fail(c, http.StatusNotFound, "Solo se sirven imágenes PNG.", nil)
		return
	}
	metric, ok := h.metricParam(c, key)
	if !ok {
		return
	}
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	records := h.dashboard.Query(criteria)

	var buf bytes.Buffer
	var err error
	switch c.Param("kind") {
	case render.KindMonthly:
		err = render.MonthlyLine(&buf, analytics.MonthlyAverages(records, []models.Metric{metric}), metric, render.Size{})
	case render.KindHistogram:
		bins, ok := h.binsParam(c)
		if !ok {
			return
		}
		err = render.HistogramBars(&buf, analytics.Histogram(records, metric, bins), metric, render.Size{})
	case render.KindSheds:
		err = render.ShedBars(&buf, analytics.ShedSummaries(records, []models.Metric{metric}), metric, render.Size{})
	default:
		h.fail(c, http.StatusNotFound, "Tipo de gráfico desconocido: "+c.Param("kind"), nil)
		return
	}
	if errors.Is(err, render.ErrNoData) {
		h.fail(c, http.StatusNotFound, "Sin datos para graficar.", err)
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Error al generar el gráfico.", err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
