package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-gva/internal/config"
	"github.com/mamadbah2/livestock-gva/internal/gva"
	"github.com/mamadbah2/livestock-gva/internal/render/pdf"
	"github.com/mamadbah2/livestock-gva/internal/repository/memory"
	"github.com/mamadbah2/livestock-gva/internal/repository/mongodb"
	"github.com/mamadbah2/livestock-gva/internal/repository/sheets"
	"github.com/mamadbah2/livestock-gva/internal/repository/sqlite"
	"github.com/mamadbah2/livestock-gva/internal/scheduler"
	"github.com/mamadbah2/livestock-gva/internal/server/handlers"
	"github.com/mamadbah2/livestock-gva/internal/server/router"
	reportingsvc "github.com/mamadbah2/livestock-gva/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/livestock-gva/pkg/clients/whatsapp"
	"github.com/mamadbah2/livestock-gva/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	coeffs, err := gva.LoadCoefficients(cfg.GVA.CoefficientsFile)
	if err != nil {
		baseLogger.Fatal("failed to load gva coefficients", zap.Error(err))
	}

	engine, err := gva.NewEngine(coeffs)
	if err != nil {
		baseLogger.Fatal("failed to init gva engine", zap.Error(err))
	}

	store, closeStore := openStore(cfg, baseLogger)
	defer closeStore()

	opts := []reportingsvc.Option{reportingsvc.WithRenderer(pdf.NewRenderer())}
	if cfg.Sheets.Enabled() {
		ledger, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		opts = append(opts, reportingsvc.WithLedger(ledger))
		baseLogger.Info("sheets ledger enabled")
	}

	reportingSvc := reportingsvc.NewService(engine, store, logger.Named(baseLogger, "svc.reporting"), opts...)
	gvaHandler := handlers.NewGVAHandler(reportingSvc, logger.Named(baseLogger, "handlers.gva"))
	httpEngine := router.New(gvaHandler, logger.Named(baseLogger, "router"))

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		sched, err := scheduler.NewScheduler(*cfg, reportingSvc, whatsClient, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("whatsapp credentials missing, weekly digest disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpEngine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
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

func openStore(cfg *config.Config, log *zap.Logger) (reportingsvc.Store, func()) {
	switch cfg.Store.Driver {
	case config.StoreMongoDB:
		repo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(log, "repo.mongodb"))
		if err != nil {
			log.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		return repo, func() {
			if err := repo.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
	case config.StoreSQLite:
		repo, err := sqlite.NewSQLiteRepository(context.Background(), cfg.Store.SQLitePath, logger.Named(log, "repo.sqlite"))
		if err != nil {
			log.Fatal("failed to init sqlite repository", zap.Error(err))
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error("failed to close sqlite database", zap.Error(err))
			}
		}
	default:
		log.Warn("using in-memory report store, reports are lost on restart")
		return memory.NewRepository(), func() {}
	}
}
