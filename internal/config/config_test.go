package config

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFromDefaults(t *testing.T) {
	s := LoadFrom(envOf(nil), zap.NewNop())
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, 12, s.PageSize)
	assert.Equal(t, 125, s.LiveOnlineBase)
	assert.Equal(t, 25, s.LiveOnlineVar)
	assert.Equal(t, "ayush rai", s.AdminHandle)
}

func TestLoadFromOverrides(t *testing.T) {
	s := LoadFrom(envOf(map[string]string{
		"APP_PORT":             "9090",
		"PAGE_SIZE":            "20",
		"LIVE_ONLINE_VARIANCE": "0",
		"STORAGE":              "SQLite",
		"LIKE_LEDGER":          "redis",
		"REDIS_DB":             "2",
		"SEED_POSTS":           "30",
		"AUTO_LIKE_POLL":       "250ms",
		"ADMIN_LIKE_TICKER":    "false",
		"SIM_SEED":             "77",
	}), zap.NewNop())

	assert.Equal(t, "9090", s.AppPort)
	assert.Equal(t, 20, s.PageSize)
	assert.Equal(t, 0, s.LiveOnlineVar)
	assert.Equal(t, StorageSQLite, s.Storage)
	assert.Equal(t, LedgerRedis, s.LikeLedger)
	assert.Equal(t, 2, s.RedisDB)
	assert.Equal(t, 30, s.SeedPosts)
	assert.Equal(t, 250*time.Millisecond, s.AutoLikePoll)
	assert.False(t, s.AdminLikeTicker)
	assert.Equal(t, int64(77), s.SimSeed)
}

func TestLoadFromInvalidValuesWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := LoadFrom(envOf(map[string]string{
		"PAGE_SIZE":         "0",
		"LIVE_ONLINE_BASE":  "lots",
		"STORAGE":           "postgres",
		"AUTO_LIKE_POLL":    "soon",
		"ADMIN_LIKE_TICKER": "maybe",
	}), zap.New(core))

	d := Defaults()
	assert.Equal(t, d.PageSize, s.PageSize)
	assert.Equal(t, d.LiveOnlineBase, s.LiveOnlineBase)
	assert.Equal(t, d.Storage, s.Storage)
	assert.Equal(t, d.AutoLikePoll, s.AutoLikePoll)
	assert.Equal(t, d.AdminLikeTicker, s.AdminLikeTicker)
	assert.Equal(t, 5, logs.Len())
}

func TestOpenSQLite(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	client, err := OpenRedis(context.Background(), addr, "", 0)
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = OpenRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
