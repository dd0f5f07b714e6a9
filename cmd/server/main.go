package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/config"
	"github.com/mamadbah2/eggmonitor/internal/ingest"
	"github.com/mamadbah2/eggmonitor/internal/repository/mongodb"
	"github.com/mamadbah2/eggmonitor/internal/repository/sheets"
	"github.com/mamadbah2/eggmonitor/internal/repository/store"
	"github.com/mamadbah2/eggmonitor/internal/scheduler"
	"github.com/mamadbah2/eggmonitor/internal/server/handlers"
	"github.com/mamadbah2/eggmonitor/internal/server/router"
	authsvc "github.com/mamadbah2/eggmonitor/internal/service/auth"
	chatsvc "github.com/mamadbah2/eggmonitor/internal/service/chat"
	dashboardsvc "github.com/mamadbah2/eggmonitor/internal/service/dashboard"
	reportingsvc "github.com/mamadbah2/eggmonitor/internal/service/reporting"
	"github.com/mamadbah2/eggmonitor/pkg/clients/anthropic"
	"github.com/mamadbah2/eggmonitor/pkg/clients/gemini"
	whatsappclient "github.com/mamadbah2/eggmonitor/pkg/clients/whatsapp"
	"github.com/mamadbah2/eggmonitor/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	standards, err := config.LoadQualityStandards(cfg.Quality.StandardsFile)
	if err != nil {
		baseLogger.Fatal("failed to load quality standards", zap.Error(err))
	}

	var (
		kv        store.KeyValue
		snapshots store.Snapshots
	)
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		kv, snapshots = mongoRepo, mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, application state kept in memory")
		mem := store.NewMemoryStore()
		kv, snapshots = mem, mem
	}

	dashboardOpts := dashboardsvc.Options{DefaultURL: cfg.DataSource.URL}
	schedDeps := scheduler.Deps{Snapshots: snapshots}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		dashboardOpts.Sheets = ingest.NewSheetsSource(sheetsRepo, cfg.Sheets.Range, baseLogger.Named("ingest.sheets"))
		schedDeps.Sheets = sheetsRepo
	}

	dashboardSvc := dashboardsvc.NewService(kv, dashboardOpts, baseLogger.Named("svc.dashboard"))
	reportingSvc := reportingsvc.NewService(standards, baseLogger.Named("svc.reporting"))
	authSvc := authsvc.NewService(cfg.Auth.AccessCode, cfg.Auth.SessionTTL, kv, baseLogger.Named("svc.auth"))

	var transport chatsvc.Transport
	switch {
	case !cfg.AI.Enabled():
		baseLogger.Warn("ai api key missing, chat assistant disabled", zap.String("provider", cfg.AI.Provider))
	case cfg.AI.Provider == config.ProviderAnthropic:
		transport = anthropic.NewClient(cfg.AI.AnthropicKey, cfg.AI.AnthropicModel, "")
		baseLogger.Info("anthropic chat transport enabled")
	default:
		geminiClient, err := gemini.NewClient(context.Background(), cfg.AI.GeminiKey, cfg.AI.GeminiModel)
		if err != nil {
			baseLogger.Fatal("failed to init gemini client", zap.Error(err))
		}
		transport = geminiClient
		baseLogger.Info("gemini chat transport enabled", zap.String("model", cfg.AI.GeminiModel))
	}
	chatSvc := chatsvc.NewService(transport, chatsvc.NewSessionManager(0), baseLogger.Named("svc.chat"))

	handler := handlers.NewHandler(dashboardSvc, authSvc, chatSvc, reportingSvc, baseLogger.Named("handlers"))
	engine := router.New(handler, baseLogger.Named("router"))

	schedDeps.Dashboard = dashboardSvc
	schedDeps.Reporting = reportingSvc
	if cfg.WhatsApp.Enabled() {
		schedDeps.Messenger = whatsappclient.NewClient(cfg.WhatsApp)
	}
	sched, err := scheduler.NewScheduler(*cfg, schedDeps, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := sched.RunRefresh(ctx); err != nil {
			baseLogger.Warn("initial data load failed", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
