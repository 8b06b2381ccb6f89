package service

import (
	"context"
	"time"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/cache"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/geofence"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
)

func distanceToSite(latitude, longitude float64, site *model.Site) float64 {
	return geofence.Evaluate(latitude, longitude, site.Latitude, site.Longitude, site.RadiusM).DistanceMeters
}

// redisCheckInGuard 把 cache 包的 SETNX 标记适配到 CheckInGuard 接口
type redisCheckInGuard struct{}

func (redisCheckInGuard) TryMark(ctx context.Context, workerID int64, date string) (bool, error) {
	return cache.TryMarkCheckIn(ctx, workerID, date)
}

func (redisCheckInGuard) Unmark(ctx context.Context, workerID int64, date string) error {
	return cache.UnmarkCheckIn(ctx, workerID, date)
}

// nopCheckInGuard 不做去重，全部交给数据库唯一索引
type nopCheckInGuard struct{}

func (nopCheckInGuard) TryMark(ctx context.Context, workerID int64, date string) (bool, error) {
	return true, nil
}

func (nopCheckInGuard) Unmark(ctx context.Context, workerID int64, date string) error {
	return nil
}

func serviceLocation() *time.Location {
	loc, err := time.LoadLocation(config.Cfg.Timezone)
	if err != nil {
		panic("failed to load timezone " + config.Cfg.Timezone + ": " + err.Error())
	}
	return loc
}
