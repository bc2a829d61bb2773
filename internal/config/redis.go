package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisClient متغیر برای دسترسی به Redis
var RedisClient *redis.Client

// OpenRedis builds a client and checks it with a ping.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,     // آدرس Redis
		Password: password, // رمز عبور
		DB:       db,       // شماره دیتابیس
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// InitRedis اتصال به Redis را راه‌اندازی می‌کند
func InitRedis(s Settings) {
	var err error
	RedisClient, err = OpenRedis(context.Background(), s.RedisAddr, s.RedisPassword, s.RedisDB)
	if err != nil {
		Logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	Logger.Info("✅ Connected to Redis", zap.String("addr", s.RedisAddr))
}

// CloseResources بستن اتصالات به Redis و دیتابیس
func CloseResources() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			Logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if DB != nil {
		sqlDB, err := DB.DB() // گرفتن *sql.DB از *gorm.DB
		if err != nil {
			Logger.Error("Error getting raw DB", zap.Error(err))
			return
		}
		if err := sqlDB.Close(); err != nil {
			Logger.Error("Error closing database connection", zap.Error(err))
		}
	}
}
