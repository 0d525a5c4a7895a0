package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"cinerate/proj/internal/api/tasks"
	"cinerate/proj/internal/config"
	"cinerate/proj/internal/lib/logger"
	"cinerate/proj/internal/lib/validator"
	"cinerate/proj/internal/services"
	"cinerate/proj/internal/storage/memory"
	"cinerate/proj/internal/storage/postgres"
	pgmodels "cinerate/proj/internal/storage/postgres/models"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	// .env is optional, real environment variables win over it
	_ = godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	storage, health, closeStorage, err := setupStorage(cfg, log)
	if err != nil {
		log.Error("failed to set up storage", "driver", cfg.Storage.Driver, "errMsg", err.Error())
		os.Exit(1)
	}
	defer closeStorage()

	bgTasks := tasks.New(log, cfg.Tasks.Workers, cfg.Tasks.QueueSize)
	bgTasks.Run()

	v := validator.New()
	svcs, err := services.New(log, cfg, storage, bgTasks, v)
	if err != nil {
		log.Error("failed to set up services", "errMsg", err.Error())
		os.Exit(1)
	}
	defer svcs.Close()
	if cfg.Aggregator.ReconcileOnStart && !svcs.Aggregator.ScheduleReconcile() {
		log.Warn("startup reconciliation of movie ratings was not scheduled")
	}

	app := NewApplication(cfg, log, svcs, v, health)
	serveErr := app.serve()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := bgTasks.Shutdown(ctx); err != nil {
		log.Warn("background tasks did not finish", "errMsg", err.Error())
	}
	if serveErr != nil {
		log.Error("shutting down the server", "reason", serveErr.Error())
		os.Exit(1)
	}
}

func setupStorage(cfg *config.Config, log *slog.Logger) (services.Storage, HealthChecker, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		db := memory.NewDB()
		return services.NewMemoryStorage(memory.New(db)), db, func() {}, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		return services.Storage{}, nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return services.Storage{}, nil, nil, err
	}
	log.Info("database connection established")
	return services.NewPostgresStorage(pgmodels.New(db)), db, db.Close, nil
}
