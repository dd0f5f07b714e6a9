package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/server/handlers"
)

// maxUploadMemory bounds the multipart form kept in memory.
const maxUploadMemory = 32 << 20

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	api.POST("/login", handler.Login)

	secured := api.Group("")
	secured.Use(handler.RequireSession())
	{
		secured.POST("/logout", handler.Logout)

		secured.GET("/datasource", handler.GetDataSource)
		secured.PUT("/datasource", handler.PutDataSource)
		secured.DELETE("/datasource", handler.DeleteDataSource)
		secured.POST("/datasource/refresh", handler.RefreshDataSource)
		secured.POST("/upload", handler.Upload)

		secured.GET("/filters", handler.Filters)
		secured.GET("/records", handler.Records)
		secured.GET("/dashboard", handler.Dashboard)
		secured.GET("/stats", handler.Stats)
		secured.GET("/histograms/:metric", handler.Histogram)
		secured.GET("/monthly", handler.Monthly)

		secured.GET("/report", handler.Report)
		secured.GET("/report.pdf", handler.ReportPDF)
		secured.GET("/charts/:kind/:file", handler.Chart)

		secured.POST("/chat", handler.Ask)
		secured.GET("/chat", handler.ChatHistory)
		secured.DELETE("/chat", handler.ClearChat)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		if c.Writer.Status() >= 500 {
			logger.Warn("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
