// cmd/historian/main.go is an asynchronous historian service that pops game actions
// from a Redis queue and persists them to PostgreSQL.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/qydan/unoflip/internal/cache"
	"github.com/qydan/unoflip/internal/config"
	"github.com/qydan/unoflip/internal/database"
	"github.com/qydan/unoflip/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger()
	if cfg.RedisAddr == "" || cfg.DatabaseURL == "" {
		logger.Fatal("historian needs REDIS_ADDR and DATABASE_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatalf("database schema: %v", err)
	}

	svc := historian.New(
		cache.NewConsumer(rdb, cfg.HistorianQueueName),
		database.NewActionStore(pool),
		historian.Options{
			BatchSize:     cfg.HistorianBatchSize,
			FlushInterval: cfg.FlushInterval(),
			Inactivity:    cfg.Inactivity(),
		},
		logrus.NewEntry(logger),
	)

	logger.Info("unoflip-historian service started.")
	if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Errorf("historian: %v", err)
		os.Exit(1)
	}
	logger.Info("Historian shutdown complete.")
}
