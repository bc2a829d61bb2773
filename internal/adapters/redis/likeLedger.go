package redis

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const likeKeyPrefix = "likes:"

// LikeLedgerRedis ثبت لایک هر کلاینت در یک SET جداگانه برای هر پست
type LikeLedgerRedis struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewLikeLedgerRedis(client *redis.Client, logger *zap.Logger) *LikeLedgerRedis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LikeLedgerRedis{
		Client: client,
		Logger: logger,
	}
}

// MarkLiked: SADD returns 1 only for the first like of a client on a post.
func (r *LikeLedgerRedis) MarkLiked(ctx context.Context, postID, clientID string) (bool, error) {
	key := likeKeyPrefix + postID
	added, err := r.Client.SAdd(ctx, key, clientID).Result()
	if err != nil {
		r.Logger.Error("❌ Error recording like", zap.String("key", key), zap.Error(err))
		return false, err
	}
	if added == 0 {
		r.Logger.Debug("Duplicate like ignored", zap.String("postID", postID), zap.String("clientID", clientID))
	}
	return added == 1, nil
}

func (r *LikeLedgerRedis) HasLiked(ctx context.Context, postID, clientID string) (bool, error) {
	return r.Client.SIsMember(ctx, likeKeyPrefix+postID, clientID).Result()
}

func (r *LikeLedgerRedis) Unmark(ctx context.Context, postID, clientID string) error {
	return r.Client.SRem(ctx, likeKeyPrefix+postID, clientID).Err()
}

func (r *LikeLedgerRedis) Forget(ctx context.Context, postID string) error {
	return r.Client.Del(ctx, likeKeyPrefix+postID).Err()
}
