package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayasakashogo/worklog/internal/config"
	"github.com/hayasakashogo/worklog/internal/crypto"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/events"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv(crypto.EnvKey, "test-key")

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "data", "worklog.db")
	cfg.Log.File = filepath.Join(dir, "state", "worklog.log")
	cfg.Report.OutputDir = filepath.Join(dir, "reports")
	cfg.Holidays.OverridesFile = filepath.Join(dir, "holidays.yaml")
	return cfg
}

func TestNewWithConfig_LocalBroker(t *testing.T) {
	ctx := context.Background()
	a, err := NewWithConfig(ctx, testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &events.LocalBroker{}, a.Broker)

	name, ok := a.Holidays.NationalHolidayName(time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "成人の日", name)

	client := domain.NewClient("ACME")
	require.NoError(t, a.ClientService.Create(ctx, client))

	got, err := a.ClientService.Resolve(ctx, "ACME")
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ID)
}

func TestNewWithConfig_RedisBroker(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Sync.RedisAddr = mr.Addr()

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &events.RedisBroker{}, a.Broker)
}

func TestNewWithConfig_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sync.RedisAddr = "127.0.0.1:1"

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &events.LocalBroker{}, a.Broker)
}
