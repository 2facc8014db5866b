package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hypotest/adapters/memory"
	"hypotest/adapters/postgres"
	"hypotest/app"
	"hypotest/internal"
	"hypotest/internal/api"
	"hypotest/internal/config"
	"hypotest/ports"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	logger := internal.DefaultLogger.WithComponent("main")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger = internal.NewLogger(cfg.Log.Level)
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo ports.RunRepository = memory.NewRunRepository()
	if cfg.Database.Enabled() {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database: %v", err)
			os.Exit(1)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.Database.MaxConn)

		if err := postgres.NewMigrator(db, logger).Up(ctx); err != nil {
			logger.Error("failed to migrate database: %v", err)
			os.Exit(1)
		}
		repo = postgres.NewRunRepository(db)
		logger.Info("storing runs in PostgreSQL")
	} else {
		logger.Info("DATABASE_URL not set, storing runs in memory")
	}

	metrics := api.NewMetrics()
	svc := app.NewStatTestService(
		app.WithSink(repo),
		app.WithObserver(metrics),
		app.WithLogger(logger),
		app.WithWorkers(cfg.Engine.Workers),
		app.WithBatchSize(cfg.Engine.BatchSize),
	)
	server := api.NewServer(api.NewRunHandler(svc, repo, cfg.Engine.RunTimeout, logger), metrics, logger)

	if err := server.ListenAndServe(ctx, ":"+cfg.Server.Port); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}
