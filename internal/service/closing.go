package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/queue"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/repository"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/database"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// ClosingService 日终对账：把考勤系统扫出的出勤人数和预期人数做差
type ClosingService struct {
	workers WorkerStore
	sites   SiteStore
	logs    AttendanceStore
	store   ClosingStore
	events  Events

	loc *time.Location
}

var (
	closingService *ClosingService
	closingOnce    sync.Once
)

func Closing() *ClosingService {
	closingOnce.Do(func() {
		db := database.DB()
		closingService = NewClosingService(
			repository.NewWorkerRepo(db),
			repository.NewSiteRepo(db),
			repository.NewAttendanceRepo(db),
			repository.NewClosingRepo(db),
			queue.Events(),
			serviceLocation(),
		)
	})

	return closingService
}

func NewClosingService(
	workers WorkerStore,
	sites SiteStore,
	logs AttendanceStore,
	store ClosingStore,
	events Events,
	loc *time.Location,
) *ClosingService {
	return &ClosingService{
		workers: workers,
		sites:   sites,
		logs:    logs,
		store:   store,
		events:  events,
		loc:     loc,
	}
}

// Compute 生成一条日终对账。expectedCount 为空时取站点在册人数，
// 差值 = 实到 - 预期，非零即 MISMATCH 并广播告警。
func (s *ClosingService) Compute(ctx context.Context, siteID int64, date string, expectedCount *int, note string, adminID int64, now time.Time) (*model.DailyClosing, error) {
	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	closingDate, err := utils.ParseDate(date, s.loc)
	if err != nil {
		return nil, pkgerrors.InvalidDate
	}
	if closingDate.After(utils.DateOf(now, s.loc)) {
		// 未来日期没有可扫描的考勤
		return nil, pkgerrors.InvalidDate
	}

	scanned, err := s.logs.CountDistinctWorkers(ctx, site.ID, closingDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance for closing: %w", err)
	}

	expected, source, err := s.resolveExpected(ctx, site.ID, expectedCount)
	if err != nil {
		return nil, err
	}

	difference := scanned - expected
	status := model.DeriveClosingStatus(difference)

	closingID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate closing id: %w", err)
	}

	closing := &model.DailyClosing{
		SiteID:         site.ID,
		ClosingDate:    closingDate,
		ExpectedCount:  expected,
		ExpectedSource: source,
		ScannedCount:   scanned,
		Difference:     difference,
		Status:         status,
		ClosedBy:       adminID,
	}
	if note != "" {
		closing.Note = &note
	}
	closing.ID = closingID

	if err := s.store.Create(ctx, closing); err != nil {
		return nil, fmt.Errorf("failed to create daily closing: %w", err)
	}

	if status == model.ClosingStatusMismatch {
		if err := s.events.ClosingMismatch(ctx, closing); err != nil {
			logger.Logger.Warn("Failed to publish closing mismatch event",
				zap.Int64("closing_id", closing.ID),
				zap.Error(err),
			)
		}
	}

	logger.Logger.Info("Daily closing computed",
		zap.Int64("site_id", site.ID),
		zap.String("closing_date", date),
		zap.Int("expected", expected),
		zap.Int("scanned", scanned),
		zap.String("status", string(status)),
	)

	return closing, nil
}

// SetNote 给已生成的对账补写备注
func (s *ClosingService) SetNote(ctx context.Context, closingID int64, note string) (*model.DailyClosing, error) {
	affected, err := s.store.UpdateNote(ctx, closingID, note)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, pkgerrors.ClosingNotFound
	}

	return s.store.GetByID(ctx, closingID)
}

// List 按站点和日期范围翻页
func (s *ClosingService) List(ctx context.Context, siteID int64, fromDate, toDate string, cursorID int64, limit int) ([]*model.DailyClosing, int64, error) {
	from, err := utils.ParseDate(fromDate, s.loc)
	if err != nil {
		return nil, 0, pkgerrors.InvalidDate
	}
	to, err := utils.ParseDate(toDate, s.loc)
	if err != nil {
		return nil, 0, pkgerrors.InvalidDate
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	closings, err := s.store.List(ctx, siteID, from, to, cursorID, limit+1)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list closings: %w", err)
	}

	var nextCursor int64
	if len(closings) > limit {
		nextCursor = closings[limit].ID
		closings = closings[:limit]
	}

	return closings, nextCursor, nil
}

// BulkDelete 批量清理历史对账，按 ID 列表或保留天数二选一
func (s *ClosingService) BulkDelete(ctx context.Context, ids []int64, olderThanDays int, now time.Time) (int64, error) {
	if len(ids) == 0 && olderThanDays <= 0 {
		return 0, pkgerrors.EmptyDeleteScope
	}

	var total int64

	if len(ids) > 0 {
		deleted, err := s.store.DeleteByIDs(ctx, ids)
		if err != nil {
			return 0, fmt.Errorf("failed to delete closings by ids: %w", err)
		}
		total += deleted
	}

	if olderThanDays > 0 {
		cutoff := utils.DateOf(now, s.loc).AddDate(0, 0, -olderThanDays)
		deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return 0, fmt.Errorf("failed to delete closings older than cutoff: %w", err)
		}
		total += deleted
	}

	logger.Logger.Info("Closings bulk deleted",
		zap.Int64("deleted", total),
		zap.Int("by_ids", len(ids)),
		zap.Int("older_than_days", olderThanDays),
	)

	return total, nil
}

// resolveExpected 手填人数优先，否则回退到站点当前在册的派驻人数
func (s *ClosingService) resolveExpected(ctx context.Context, siteID int64, expectedCount *int) (int, model.ExpectedSource, error) {
	if expectedCount != nil {
		if *expectedCount < 0 {
			return 0, "", pkgerrors.InvalidCount
		}
		return *expectedCount, model.ExpectedSourceManual, nil
	}

	assigned, err := s.workers.CountActiveBySite(ctx, siteID)
	if err != nil {
		return 0, "", fmt.Errorf("failed to count assigned workers: %w", err)
	}

	return assigned, model.ExpectedSourceAssigned, nil
}

// PendingReminderSites 返回指定日期还没做对账的活跃站点，调度器用
func (s *ClosingService) PendingReminderSites(ctx context.Context, date time.Time) ([]*model.Site, error) {
	sites, err := s.sites.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sites: %w", err)
	}

	pending := make([]*model.Site, 0, len(sites))
	for _, site := range sites {
		exists, err := s.store.ExistsForDate(ctx, site.ID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to check closing existence: %w", err)
		}
		if !exists {
			pending = append(pending, site)
		}
	}

	return pending, nil
}
