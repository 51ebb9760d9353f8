package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/anuragmoyde/mentor4all-sub000/internal/config"
	"github.com/anuragmoyde/mentor4all-sub000/internal/logging"
	"github.com/anuragmoyde/mentor4all-sub000/internal/reminders"
	"github.com/anuragmoyde/mentor4all-sub000/internal/server"
	"github.com/anuragmoyde/mentor4all-sub000/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	defer store.Close()

	scanner := reminders.NewScanner(store, logger.Named("reminders"), cfg.ReminderWindow)
	if cfg.ReminderInterval > 0 {
		scheduler, err := reminders.StartScheduler(scanner, cfg.ReminderInterval, logger.Named("reminders"))
		if err != nil {
			logger.Fatal("start reminder scheduler", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	srv := server.New(cfg, store, scanner, logger)

	go func() {
		logger.Info("Mentor4All backend listening", zap.String("addr", cfg.HTTPAddress()), zap.String("env", cfg.Env))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
