package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/biometric"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/geofence"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/queue"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/repository"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/database"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// AttendanceService 每人每日的考勤状态机：
// 无记录 -> 已签到 -> 已签退（当日终态），新的一天从头开始。
type AttendanceService struct {
	workers WorkerStore
	sites   SiteStore
	logs    AttendanceStore
	access  AccessRequestStore
	events  Events
	guard   CheckInGuard

	threshold float64
	loc       *time.Location
}

var (
	attendanceService *AttendanceService
	attendanceOnce    sync.Once
)

func Attendance() *AttendanceService {
	attendanceOnce.Do(func() {
		db := database.DB()
		var guard CheckInGuard = redisCheckInGuard{}
		if !config.Cfg.CheckInGuardEnabled {
			guard = nopCheckInGuard{}
		}
		attendanceService = NewAttendanceService(
			repository.NewWorkerRepo(db),
			repository.NewSiteRepo(db),
			repository.NewAttendanceRepo(db),
			repository.NewAccessRequestRepo(db),
			queue.Events(),
			guard,
			config.Cfg.MatchThreshold,
			serviceLocation(),
		)
	})

	return attendanceService
}

func NewAttendanceService(
	workers WorkerStore,
	sites SiteStore,
	logs AttendanceStore,
	access AccessRequestStore,
	events Events,
	guard CheckInGuard,
	threshold float64,
	loc *time.Location,
) *AttendanceService {
	return &AttendanceService{
		workers:   workers,
		sites:     sites,
		logs:      logs,
		access:    access,
		events:    events,
		guard:     guard,
		threshold: threshold,
		loc:       loc,
	}
}

// CheckInParams 一次签到尝试的全部输入，now 显式传入保证可测
type CheckInParams struct {
	WorkerID        int64 // public_id
	SiteID          int64 // 0 时用工人的派驻站点
	Latitude        float64
	Longitude       float64
	Descriptor      model.Descriptor
	AccessRequestID *int64 // 已批准的补卡申请，携带时跳过围栏校验
	Now             time.Time
}

// CheckIn 签到：围栏 -> 身份 -> 落库
// 围栏失败时自动创建补卡申请并随 OUT_OF_RANGE 一起返回，
// 供前端直接引导工人走审批流。
func (s *AttendanceService) CheckIn(ctx context.Context, params CheckInParams) (*model.AttendanceLog, *model.AccessRequest, error) {
	if !utils.ValidateCoordinates(params.Latitude, params.Longitude) {
		return nil, nil, pkgerrors.InvalidCoords
	}

	worker, err := s.workers.GetByPublicID(ctx, params.WorkerID)
	if err != nil {
		return nil, nil, err
	}
	if !worker.Active {
		return nil, nil, pkgerrors.WorkerInactive
	}

	site, err := s.resolveSite(ctx, worker, params.SiteID)
	if err != nil {
		return nil, nil, err
	}

	fence := geofence.Evaluate(params.Latitude, params.Longitude, site.Latitude, site.Longitude, site.RadiusM)

	if params.AccessRequestID != nil {
		// 补卡放行：批准的申请顶替围栏判定，身份比对照常
		if err := s.verifyApprovedAccess(ctx, *params.AccessRequestID, worker.ID, site.ID); err != nil {
			return nil, nil, err
		}
	} else if !fence.WithinRadius {
		request, err := s.createAccessRequest(ctx, worker, site, params, fence)
		if err != nil {
			return nil, nil, err
		}
		return nil, request, pkgerrors.OutOfRange
	}

	match, err := biometric.Match(params.Descriptor, worker.EnrolledDescriptor, s.threshold)
	if err != nil {
		return nil, nil, err
	}
	if !match.IsMatch {
		return nil, nil, pkgerrors.IdentityMismatch
	}

	workDate := utils.DateOf(params.Now, s.loc)
	dateKey := utils.FormatDate(workDate)

	// 快路径去重；数据库唯一索引兜底
	marked, err := s.guard.TryMark(ctx, worker.ID, dateKey)
	if err != nil {
		logger.Logger.Warn("Check-in guard unavailable, falling back to database constraint",
			zap.Int64("worker_id", worker.ID),
			zap.Error(err),
		)
	} else if !marked {
		return nil, nil, pkgerrors.DuplicateCheckIn
	}

	logID, err := snowflake.NextID()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate attendance log id: %w", err)
	}

	log := &model.AttendanceLog{
		WorkerID:          worker.ID,
		SiteID:            site.ID,
		WorkDate:          workDate,
		CheckInAt:         params.Now,
		Status:            model.AttendanceStatusCheckedIn,
		GeofenceDistanceM: fence.DistanceMeters,
		MatchDistance:     match.Distance,
		ViaAccessRequest:  params.AccessRequestID,
	}
	log.ID = logID

	if err := s.logs.Create(ctx, log); err != nil {
		if unmarkErr := s.guard.Unmark(ctx, worker.ID, dateKey); unmarkErr != nil {
			logger.Logger.Warn("Failed to release check-in guard",
				zap.Int64("worker_id", worker.ID),
				zap.Error(unmarkErr),
			)
		}
		return nil, nil, err
	}

	logger.Logger.Info("Worker checked in",
		zap.Int64("worker_id", worker.PublicID),
		zap.Int64("site_id", site.ID),
		zap.String("work_date", dateKey),
		zap.Float64("distance_m", fence.DistanceMeters),
	)

	return log, nil, nil
}

// CheckOut 签退：关闭当日开放记录，计算工时
func (s *AttendanceService) CheckOut(ctx context.Context, workerPublicID int64, now time.Time) (*model.AttendanceLog, error) {
	worker, err := s.workers.GetByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, err
	}

	workDate := utils.DateOf(now, s.loc)

	open, err := s.logs.GetOpenByWorkerAndDate(ctx, worker.ID, workDate)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, pkgerrors.NoOpenSession
	}

	hours := open.HoursWorked
	if hours == nil {
		// 外部工时调整未介入时按打卡间隔计算
		computed := now.Sub(open.CheckInAt).Hours()
		hours = &computed
	}

	affected, err := s.logs.CloseSession(ctx, open.ID, now, *hours)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 条件更新落空说明另一个并发签退抢先关闭了记录
		return nil, pkgerrors.NoOpenSession
	}

	open.CheckOutAt = &now
	open.HoursWorked = hours
	open.Status = model.AttendanceStatusCheckedOut

	logger.Logger.Info("Worker checked out",
		zap.Int64("worker_id", worker.PublicID),
		zap.Float64("hours_worked", *hours),
	)

	return open, nil
}

// History 按日期范围翻页查询考勤记录
func (s *AttendanceService) History(ctx context.Context, workerPublicID int64, fromDate, toDate string, cursorID int64, limit int) ([]*model.AttendanceLog, int64, error) {
	worker, err := s.workers.GetByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, 0, err
	}

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

	logs, err := s.logs.ListByWorker(ctx, worker.ID, from, to, cursorID, limit+1)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance logs: %w", err)
	}

	var nextCursor int64
	if len(logs) > limit {
		nextCursor = logs[limit].ID
		logs = logs[:limit]
	}

	return logs, nextCursor, nil
}

func (s *AttendanceService) resolveSite(ctx context.Context, worker *model.Worker, siteID int64) (*model.Site, error) {
	if siteID == 0 {
		if worker.AssignedSiteID == nil {
			return nil, pkgerrors.SiteNotFound
		}
		siteID = *worker.AssignedSiteID
	}

	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if !site.Active {
		return nil, pkgerrors.SiteInactive
	}
	return site, nil
}

func (s *AttendanceService) verifyApprovedAccess(ctx context.Context, requestID, workerID, siteID int64) error {
	request, err := s.access.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != model.AccessRequestStatusApproved ||
		request.WorkerID != workerID || request.SiteID != siteID {
		return pkgerrors.AccessNotApproved
	}
	return nil
}

func (s *AttendanceService) createAccessRequest(ctx context.Context, worker *model.Worker, site *model.Site, params CheckInParams, fence geofence.Result) (*model.AccessRequest, error) {
	requestID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access request id: %w", err)
	}

	request := &model.AccessRequest{
		WorkerID:  worker.ID,
		SiteID:    site.ID,
		Latitude:  params.Latitude,
		Longitude: params.Longitude,
		DistanceM: fence.DistanceMeters,
		Status:    model.AccessRequestStatusPending,
	}
	request.ID = requestID

	if err := s.access.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create access request: %w", err)
	}

	if err := s.events.AccessRequestCreated(ctx, request); err != nil {
		logger.Logger.Warn("Failed to publish access request event",
			zap.Int64("request_id", request.ID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Out-of-fence check-in routed to access request",
		zap.Int64("worker_id", worker.PublicID),
		zap.Int64("site_id", site.ID),
		zap.Float64("distance_m", fence.DistanceMeters),
	)

	return request, nil
}
