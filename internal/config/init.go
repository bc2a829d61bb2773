package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"

	LedgerMemory = "memory"
	LedgerRedis  = "redis"
)

// Settings همه تنظیمات برنامه که از env خوانده می‌شوند
type Settings struct {
	AppPort          string
	AppEnv           string
	AppName          string
	AdminHandle      string
	AdminDisplayName string
	PageSize         int
	LiveOnlineBase   int
	LiveOnlineVar    int
	Storage          string
	DBDSN            string
	LikeLedger       string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SeedPosts        int
	AutoLikePoll     time.Duration
	AdminLikeTicker  bool
	SimSeed          int64
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		AppPort:          "8080",
		AppEnv:           "development",
		AppName:          "iyouConnect",
		AdminHandle:      "ayush rai",
		AdminDisplayName: "Ayush Rai",
		PageSize:         12,
		LiveOnlineBase:   125,
		LiveOnlineVar:    25,
		Storage:          StorageMemory,
		DBDSN:            "file::memory:?cache=shared",
		LikeLedger:       LedgerMemory,
		RedisAddr:        "localhost:6379",
		AutoLikePoll:     5 * time.Second,
		AdminLikeTicker:  true,
	}
}

// Load بارگذاری .env و خواندن تنظیمات از محیط
func Load() Settings {
	logger := Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}
	return LoadFrom(os.Getenv, logger)
}

// LoadFrom reads settings through getenv. Invalid values fall back to the
// default with a warning.
func LoadFrom(getenv func(string) string, logger *zap.Logger) Settings {
	s := Defaults()
	r := reader{getenv: getenv, logger: logger}

	s.AppPort = r.str("APP_PORT", s.AppPort)
	s.AppEnv = r.str("APP_ENV", s.AppEnv)
	s.AppName = r.str("APP_NAME", s.AppName)
	s.AdminHandle = r.str("ADMIN_HANDLE", s.AdminHandle)
	s.AdminDisplayName = r.str("ADMIN_DISPLAY_NAME", s.AdminDisplayName)
	s.PageSize = r.positive("PAGE_SIZE", s.PageSize)
	s.LiveOnlineBase = r.positive("LIVE_ONLINE_BASE", s.LiveOnlineBase)
	s.LiveOnlineVar = r.nonNegative("LIVE_ONLINE_VARIANCE", s.LiveOnlineVar)
	s.Storage = r.oneOf("STORAGE", s.Storage, StorageMemory, StorageSQLite)
	s.DBDSN = r.str("DB_DSN", s.DBDSN)
	s.LikeLedger = r.oneOf("LIKE_LEDGER", s.LikeLedger, LedgerMemory, LedgerRedis)
	s.RedisAddr = r.str("REDIS_ADDR", s.RedisAddr)
	s.RedisPassword = getenv("REDIS_PASSWORD")
	s.RedisDB = r.nonNegative("REDIS_DB", s.RedisDB)
	s.SeedPosts = r.nonNegative("SEED_POSTS", s.SeedPosts)
	s.AutoLikePoll = r.duration("AUTO_LIKE_POLL", s.AutoLikePoll)
	s.AdminLikeTicker = r.boolean("ADMIN_LIKE_TICKER", s.AdminLikeTicker)
	s.SimSeed = int64(r.nonNegative("SIM_SEED", int(s.SimSeed)))
	return s
}

type reader struct {
	getenv func(string) string
	logger *zap.Logger
}

func (r reader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r reader) invalid(key, value string, def any) {
	r.logger.Warn("⚠️ Invalid config value, using default", zap.String("key", key), zap.String("value", value), zap.Any("default", def))
}

func (r reader) integer(key string, def int, ok func(int) bool) int {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !ok(n) {
		r.invalid(key, raw, def)
		return def
	}
	return n
}

func (r reader) positive(key string, def int) int {
	return r.integer(key, def, func(n int) bool { return n > 0 })
}

func (r reader) nonNegative(key string, def int) int {
	return r.integer(key, def, func(n int) bool { return n >= 0 })
}

func (r reader) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		r.invalid(key, raw, def)
		return def
	}
	return d
}

func (r reader) boolean(key string, def bool) bool {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		r.invalid(key, raw, def)
		return def
	}
	return b
}

func (r reader) oneOf(key, def string, allowed ...string) string {
	raw := strings.ToLower(strings.TrimSpace(r.getenv(key)))
	if raw == "" {
		return def
	}
	for _, a := range allowed {
		if raw == a {
			return raw
		}
	}
	r.invalid(key, raw, def)
	return def
}
