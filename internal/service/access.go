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

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// AccessService 补卡申请工作流：pending -> approved/rejected，终态不可再变
type AccessService struct {
	workers WorkerStore
	sites   SiteStore
	access  AccessRequestStore
	events  Events
}

var (
	accessService *AccessService
	accessOnce    sync.Once
)

func Access() *AccessService {
	accessOnce.Do(func() {
		db := database.DB()
		accessService = NewAccessService(
			repository.NewWorkerRepo(db),
			repository.NewSiteRepo(db),
			repository.NewAccessRequestRepo(db),
			queue.Events(),
		)
	})

	return accessService
}

func NewAccessService(workers WorkerStore, sites SiteStore, access AccessRequestStore, events Events) *AccessService {
	return &AccessService{
		workers: workers,
		sites:   sites,
		access:  access,
		events:  events,
	}
}

// Submit 工人主动提交补卡申请（区别于签到失败时的自动创建）
func (s *AccessService) Submit(ctx context.Context, workerPublicID, siteID int64, latitude, longitude float64) (*model.AccessRequest, error) {
	if !utils.ValidateCoordinates(latitude, longitude) {
		return nil, pkgerrors.InvalidCoords
	}

	worker, err := s.workers.GetByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, err
	}
	if !worker.Active {
		return nil, pkgerrors.WorkerInactive
	}

	site, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}

	requestID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access request id: %w", err)
	}

	request := &model.AccessRequest{
		WorkerID:  worker.ID,
		SiteID:    site.ID,
		Latitude:  latitude,
		Longitude: longitude,
		DistanceM: distanceToSite(latitude, longitude, site),
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

	return request, nil
}

// Resolve 审批补卡申请。条件更新保证并发下恰好一个决定生效，
// 后到的一律 ALREADY_RESOLVED。
func (s *AccessService) Resolve(ctx context.Context, requestID int64, decision string, adminID int64, now time.Time) (*model.AccessRequest, error) {
	var status model.AccessRequestStatus
	switch decision {
	case DecisionApprove:
		status = model.AccessRequestStatusApproved
	case DecisionReject:
		status = model.AccessRequestStatusRejected
	default:
		return nil, pkgerrors.InvalidDecision
	}

	affected, err := s.access.Resolve(ctx, requestID, status, adminID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 没更新到行，要区分“不存在”和“已被别人裁决”
		request, err := s.access.GetByID(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if request.Resolved() {
			return nil, pkgerrors.AlreadyResolved
		}
		return nil, pkgerrors.AccessRequestNotFound
	}

	request, err := s.access.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Access request resolved",
		zap.Int64("request_id", requestID),
		zap.String("decision", decision),
		zap.Int64("admin_id", adminID),
	)

	return request, nil
}

// List 按站点和状态过滤翻页
func (s *AccessService) List(ctx context.Context, siteID int64, status string, cursorID int64, limit int) ([]*model.AccessRequest, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	requests, err := s.access.List(ctx, siteID, status, cursorID, limit+1)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list access requests: %w", err)
	}

	var nextCursor int64
	if len(requests) > limit {
		nextCursor = requests[limit].ID
		requests = requests[:limit]
	}

	return requests, nextCursor, nil
}
