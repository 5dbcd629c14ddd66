// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qydan/unoflip/internal/cache"
	"github.com/qydan/unoflip/internal/config"
	"github.com/qydan/unoflip/internal/database"
	"github.com/qydan/unoflip/internal/handlers"
	"github.com/qydan/unoflip/internal/storage/sqlite"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger()

	rules, _ := cfg.HouseRules()
	srv := handlers.NewGameServer(logger, rules)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// save slots: Postgres when configured, otherwise a local SQLite file
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("database: %v", err)
		}
		defer pool.Close()
		if err := database.EnsureSchema(ctx, pool); err != nil {
			logger.Fatalf("database schema: %v", err)
		}
		srv.Slots = database.NewSlotStore(pool)
	} else {
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			logger.Fatalf("sqlite: %v", err)
		}
		defer store.Close()
		srv.Slots = store
		logger.Infof("Save slots in %s", cfg.SQLitePath)
	}

	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		srv.Publisher = cache.NewPublisher(rdb, cfg.HistorianQueueName)
		logger.Infof("Publishing game actions to %s", cfg.HistorianQueueName)
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Running on %s", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("server exited: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped.")
}
