package cache

import (
	"context"
	"time"

	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/redis"
)

const messagePrefix = "mq:msg"

// TryMarkMessageProcessing 消费者幂等标记，同一 MessageID 只放行一次
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().SetNX(ctx, key, "processing", ttl).Result()
}

// MarkMessageProcessed 处理完成后延长标记寿命
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().Set(ctx, key, "done", ttl).Err()
}

// UnmarkMessageProcessing 处理失败时释放标记，允许重投
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().Del(ctx, key).Err()
}
