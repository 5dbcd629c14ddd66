package config

import (
	"os"
	"testing"
	"time"

	"github.com/qydan/unoflip/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "REDIS_ADDR", "DATABASE_URL", "UNOFLIP_HAND_SIZE", "UNOFLIP_WINNING_SCORE", "UNOFLIP_UNDO_LIMIT", "HISTORIAN_FLUSH_MS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "unoflip_actions", cfg.HistorianQueueName)
	assert.Equal(t, 500*time.Millisecond, cfg.FlushInterval())

	rules, err := cfg.HouseRules()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultHouseRules(), rules)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("UNOFLIP_HAND_SIZE", "5")
	t.Setenv("UNOFLIP_WINNING_SCORE", "200")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	rules, _ := cfg.HouseRules()
	assert.Equal(t, 5, rules.HandSize)
	assert.Equal(t, 200, rules.WinningScore)
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("UNOFLIP_HAND_SIZE", "lots")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("UNOFLIP_HAND_SIZE", "40")
	_, err = Load()
	assert.Error(t, err)
}
