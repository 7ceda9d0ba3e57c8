package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/market/internal/config"
	"github.com/mamadbah2/market/internal/domain/models"
	"github.com/mamadbah2/market/internal/repository/mongodb"
	"github.com/mamadbah2/market/internal/repository/sheets"
	"github.com/mamadbah2/market/internal/scheduler"
	"github.com/mamadbah2/market/internal/server/handlers"
	"github.com/mamadbah2/market/internal/server/router"
	marketsvc "github.com/mamadbah2/market/internal/service/market"
	reportingsvc "github.com/mamadbah2/market/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/market/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/market/pkg/clients/whatsapp"
	"github.com/mamadbah2/market/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	market := models.NewMarket(cfg.Market.Name, func() time.Time { return time.Now().In(loc) })
	marketService := marketsvc.NewService(market, logger.Named(baseLogger, "svc.market"))
	baseLogger.Info("market opened", zap.String("name", market.Name()), zap.String("date", market.Date()))

	var sheetRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetRepo = repo

		importCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		rows, err := sheets.NewStockSheet(repo, cfg.Sheets.StockRange, logger.Named(baseLogger, "repo.stock")).ReadStockRows(importCtx)
		cancel()
		if err != nil {
			baseLogger.Error("stock import failed", zap.Error(err))
		} else {
			marketService.ImportRows(rows)
		}
	} else {
		baseLogger.Warn("google sheets not configured, starting with an empty market")
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	reportingSvc := reportingsvc.NewService(marketService, mongoRepo, sheetRepo, logger.Named(baseLogger, "svc.reporting"))

	var delivery scheduler.ReportDeliverer
	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		delivery = whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, logger.Named(baseLogger, "svc.whatsapp"))
		baseLogger.Info("whatsapp report delivery enabled")
	} else {
		baseLogger.Warn("whatsapp token missing, reports will only be stored")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, delivery, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	marketHandler := handlers.NewMarketHandler(marketService, reportingSvc, logger.Named(baseLogger, "handlers.market"))
	engine := router.New(marketHandler, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
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
