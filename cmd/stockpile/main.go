package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stockpile-wms/stockpile/internal/adjustments"
	"github.com/stockpile-wms/stockpile/internal/app"
	"github.com/stockpile-wms/stockpile/internal/auth"
	"github.com/stockpile-wms/stockpile/internal/observability"
	"github.com/stockpile-wms/stockpile/internal/platform/cache"
	"github.com/stockpile-wms/stockpile/internal/platform/db"
	"github.com/stockpile-wms/stockpile/internal/products"
	"github.com/stockpile-wms/stockpile/internal/receipts"
	"github.com/stockpile-wms/stockpile/internal/shared"
	"github.com/stockpile-wms/stockpile/internal/transfers"
	"github.com/stockpile-wms/stockpile/internal/warehouses"
	"github.com/stockpile-wms/stockpile/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := shared.NewTokenStore(redisClient, "stockpile_token", cfg.TokenTTL)
	auditLogger := shared.NewAuditLogger(pool)

	authHandler := auth.NewHandler(logger, auth.NewService(auth.NewRepository(pool)), tokens)

	warehousesService := warehouses.NewService(warehouses.NewRepository(pool))
	warehousesHandler := warehouses.NewHandler(logger, warehousesService)

	productsService := products.NewService(products.NewRepository(pool), auditLogger, logger)
	productsHandler := products.NewHandler(logger, productsService)

	metrics := observability.NewMetrics()

	receiptsService := receipts.NewService(receipts.NewRepository(pool), auditLogger, logger)
	receiptsHandler := receipts.NewHandler(logger, receiptsService, metrics)

	adjustmentsService := adjustments.NewService(adjustments.NewRepository(pool), auditLogger, logger)
	adjustmentsHandler := adjustments.NewHandler(logger, adjustmentsService, metrics)

	transfersService := transfers.NewService(transfers.NewRepository(pool), auditLogger, logger)
	transfersHandler := transfers.NewHandler(logger, transfersService, metrics)

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, jobsClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Tokens:             tokens,
		AuthHandler:        authHandler,
		ProductsHandler:    productsHandler,
		WarehousesHandler:  warehousesHandler,
		ReceiptsHandler:    receiptsHandler,
		AdjustmentsHandler: adjustmentsHandler,
		TransfersHandler:   transfersHandler,
		JobsHandler:        jobsHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
