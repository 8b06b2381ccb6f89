package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/redis"
)

const (
	// 每人每日签到的快路径去重标记；数据库唯一索引才是最终裁决
	checkinGuardPrefix = "attendance:checkin"

	guardTTL = 24 * time.Hour
)

// TryMarkCheckIn 原子标记 (worker, date) 的签到意图（SETNX）
// 返回 false 表示同键已有在途或已完成的签到，调用方直接报重复
func TryMarkCheckIn(ctx context.Context, workerID int64, date string) (bool, error) {
	key := redis.Key(checkinGuardPrefix, date, fmt.Sprintf("%d", workerID))

	result, err := redis.Client().SetNX(ctx, key, "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark check-in guard: %w", err)
	}
	return result, nil
}

// UnmarkCheckIn 落库失败时回收标记，允许整次重试
func UnmarkCheckIn(ctx context.Context, workerID int64, date string) error {
	key := redis.Key(checkinGuardPrefix, date, fmt.Sprintf("%d", workerID))
	return redis.Client().Del(ctx, key).Err()
}
