package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

const maxBins = 200

// Filters lists the selectable values of every attribute over the whole dataset.
func (h *Handler) Filters(c *gin.Context) {
	c.JSON(http.StatusOK, analytics.FilterOptions(h.dashboard.Records()))
}

// Records returns the records matching the criteria.
func (h *Handler) Records(c *gin.Context) {
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	records := h.dashboard.Query(criteria)
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

// Dashboard returns the landing view: count, averages, trends and the monthly series.
func (h *Handler) Dashboard(c *gin.Context) {
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.dashboard.Overview(criteria))
}

// Stats returns the summary of every metric.
func (h *Handler) Stats(c *gin.Context) {
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.AllStats(h.dashboard.Query(criteria), models.Metrics))
}

// Histogram returns the distribution of one metric.
func (h *Handler) Histogram(c *gin.Context) {
	metric, ok := h.metricParam(c, c.Param("metric"))
	if !ok {
		return
	}
	bins, ok := h.binsParam(c)
	if !ok {
		return
	}
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":  metric,
		"info":    metric.Info(),
		"buckets": analytics.Histogram(h.dashboard.Query(criteria), metric, bins),
	})
}

// Monthly returns the monthly averages of every metric.
func (h *Handler) Monthly(c *gin.Context) {
	criteria, ok := h.withCriteria(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.MonthlyAverages(h.dashboard.Query(criteria), models.Metrics))
}

func (h *Handler) metricParam(c *gin.Context, key string) (models.Metric, bool) {
	metric, ok := models.ParseMetric(key)
	if !ok {
		h.fail(c, http.StatusNotFound, "Métrica desconocida: "+key, nil)
	}
	return metric, ok
}

func (h *Handler) binsParam(c *gin.Context) (int, bool) {
	raw := c.Query("bins")
	if raw == "" {
		return analytics.DefaultBins, true
	}
	bins, err := strconv.Atoi(raw)
	if err != nil || bins < 1 || bins > maxBins {
		h.fail(c, http.StatusBadRequest, "El parámetro 'bins' debe estar entre 1 y 200.", err)
		return 0, false
	}
	return bins, true
}
