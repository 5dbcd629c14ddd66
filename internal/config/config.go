// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/qydan/unoflip/internal/models"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the binaries read. Empty connection strings disable the
// matching backend.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	RedisAddr          string `env:"REDIS_ADDR"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	HistorianQueueName string `env:"HISTORIAN_QUEUE_NAME" envDefault:"unoflip_actions"`

	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"UNOFLIP_SQLITE_PATH" envDefault:"unoflip.db"`

	HistorianBatchSize int `env:"HISTORIAN_BATCH_SIZE" envDefault:"20"`
	HistorianFlushMs   int `env:"HISTORIAN_FLUSH_MS" envDefault:"500"`
	InactivitySec      int `env:"GAME_INACTIVITY_TIMEOUT_SEC" envDefault:"600"`

	HandSize     int `env:"UNOFLIP_HAND_SIZE"`
	WinningScore int `env:"UNOFLIP_WINNING_SCORE"`
	UndoLimit    int `env:"UNOFLIP_UNDO_LIMIT"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.HouseRules(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// HouseRules builds the default table rules, with unset values falling back to
// the models defaults.
func (c Config) HouseRules() (models.HouseRules, error) {
	rules := models.HouseRules{
		HandSize:     c.HandSize,
		WinningScore: c.WinningScore,
		UndoLimit:    c.UndoLimit,
	}.WithDefaults()
	if err := rules.Validate(); err != nil {
		return models.HouseRules{}, fmt.Errorf("house rules: %w", err)
	}
	return rules, nil
}

func (c Config) FlushInterval() time.Duration {
	return time.Duration(c.HistorianFlushMs) * time.Millisecond
}

func (c Config) Inactivity() time.Duration {
	return time.Duration(c.InactivitySec) * time.Second
}

// NewLogger returns a logrus logger at the configured level, falling back to info.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logger.Warnf("unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
