package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type dataSourceRequest struct {
	URL string `json:"url" binding:"required"`
}

// GetDataSource returns the configured source and the state of the dataset.
func (h *Handler) GetDataSource(c *gin.Context) {
	u, err := h.dashboard.DataSourceURL(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "No se pudo leer la fuente de datos.", err)
		return
	}
	state := h.dashboard.State()
	c.JSON(http.StatusOK, gin.H{
		"url":         u,
		"source":      state.Source,
		"loadedAt":    state.LoadedAt,
		"recordCount": len(state.Records),
		"skipped":     state.Skipped,
		"lastError":   state.LastError,
	})
}

// PutDataSource saves a new Apps Script URL and loads its data.
func (h *Handler) PutDataSource(c *gin.Context) {
	var req dataSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "URL requerida.", err)
		return
	}
	summary, err := h.dashboard.SetDataSource(c.Request.Context(), req.URL)
	if err != nil {
		h.ingestFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteDataSource forgets the saved URL.
func (h *Handler) DeleteDataSource(c *gin.Context) {
	if err := h.dashboard.ClearDataSource(c.Request.Context()); err != nil {
		h.fail(c, http.StatusInternalServerError, "No se pudo borrar la fuente de datos.", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RefreshDataSource reloads the dataset from the current source.
func (h *Handler) RefreshDataSource(c *gin.Context) {
	summary, err := h.dashboard.Refresh(c.Request.Context())
	if err != nil {
		h.ingestFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Upload replaces the dataset with the records of an uploaded file.
func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Archivo requerido en el campo 'file'.", err)
		return
	}
	f, err := header.Open()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "No se pudo leer el archivo.", err)
		return
	}
	defer f.Close()

	summary, err := h.dashboard.Ingest(header.Filename, f)
	if err != nil {
		h.ingestFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
