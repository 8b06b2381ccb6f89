package cache

import (
	"context"
	"time"

	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/redis"
)

// 通过 SetNX 实现的分布式锁，消费者防重发用
const (
	lockPrefix = "lock"
)

func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {

	fullkey := redis.Key(lockPrefix, key)

	result, err := redis.Client().SetNX(ctx, fullkey, 1, ttl).Result()

	if err != nil {
		return false, err
	}

	return result, err
}

func Unlock(ctx context.Context, key string) error {
	fullkey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullkey).Err()
}
