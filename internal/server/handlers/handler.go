package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/ingest"
	"github.com/mamadbah2/eggmonitor/internal/service/auth"
	"github.com/mamadbah2/eggmonitor/internal/service/chat"
	"github.com/mamadbah2/eggmonitor/internal/service/dashboard"
	"github.com/mamadbah2/eggmonitor/internal/service/reporting"
)

// Handler exposes the dashboard over HTTP.
type Handler struct {
	dashboard *dashboard.Service
	auth      *auth.Service
	chat      *chat.Service
	reporting *reporting.Service
	logger    *zap.Logger
	now       func() time.Time
}

// NewHandler wires the HTTP handlers to the services.
func NewHandler(dashboardSvc *dashboard.Service, authSvc *auth.Service, chatSvc *chat.Service, reportingSvc *reporting.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		dashboard: dashboardSvc,
		auth:      authSvc,
		chat:      chatSvc,
		reporting: reportingSvc,
		logger:    logger,
		now:       time.Now,
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) fail(c *gin.Context, status int, message string, err error) {
	if err != nil && status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// ingestFailure translates ingestion errors into user facing messages.
func (h *Handler) ingestFailure(c *gin.Context, err error) {
	var statusErr *ingest.HTTPStatusError
	switch {
	case errors.As(err, &statusErr):
		h.fail(c, http.StatusBadGateway, statusErr.Error(), err)
	case errors.Is(err, ingest.ErrLoginPage):
		h.fail(c, http.StatusBadGateway, "La URL devolvió una página de inicio de sesión de Google en lugar de datos JSON. Esto sucede cuando el script no está público. Asegúrate de configurar 'Quién tiene acceso' como 'Cualquier persona' (Anyone) en la implementación.", err)
	case errors.Is(err, ingest.ErrInvalidJSON):
		h.fail(c, http.StatusBadGateway, "La respuesta recibida no es un JSON válido.", err)
	case errors.Is(err, ingest.ErrScriptError):
		h.fail(c, http.StatusBadGateway, "Google Script Error: "+strings.TrimPrefix(err.Error(), ingest.ErrScriptError.Error()+": "), err)
	case errors.Is(err, ingest.ErrNotArray):
		h.fail(c, http.StatusBadGateway, "Los datos recibidos no son una lista válida. Revisa que tu función doGet devuelva un JSON array.", err)
	case errors.Is(err, ingest.ErrUnreachable):
		h.fail(c, http.StatusBadGateway, "No se pudo contactar la fuente de datos.", err)
	case errors.Is(err, ingest.ErrMissingDateColumn):
		h.fail(c, http.StatusUnprocessableEntity, "No se encontró una columna de fecha (Fecha/Date).", err)
	case errors.Is(err, ingest.ErrEmptyInput):
		h.fail(c, http.StatusUnprocessableEntity, "El archivo no contiene datos.", err)
	case errors.Is(err, ingest.ErrUnsupportedFile):
		h.fail(c, http.StatusUnsupportedMediaType, "Tipo de archivo no soportado. Usa .csv, .txt, .tsv o .xlsx.", err)
	case errors.Is(err, dashboard.ErrNoDataSource):
		h.fail(c, http.StatusConflict, "No hay una fuente de datos configurada.", err)
	case errors.Is(err, dashboard.ErrInvalidURL):
		h.fail(c, http.StatusBadRequest, "La URL de la fuente de datos no es válida.", err)
	default:
		h.fail(c, http.StatusInternalServerError, "Error al cargar datos.", err)
	}
}
