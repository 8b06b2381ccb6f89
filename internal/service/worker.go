package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/repository"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/database"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// WorkerService 工人档案与特征录入
type WorkerService struct {
	workers WorkerStore
	sites   SiteStore

	descriptorLength int
}

var (
	workerService *WorkerService
	workerOnce    sync.Once
)

func Workers() *WorkerService {
	workerOnce.Do(func() {
		db := database.DB()
		workerService = NewWorkerService(
			repository.NewWorkerRepo(db),
			repository.NewSiteRepo(db),
			config.Cfg.DescriptorLength,
		)
	})

	return workerService
}

func NewWorkerService(workers WorkerStore, sites SiteStore, descriptorLength int) *WorkerService {
	return &WorkerService{
		workers:          workers,
		sites:            sites,
		descriptorLength: descriptorLength,
	}
}

type CreateWorkerParams struct {
	DisplayName    string
	Phone          string
	DailyRatePaise int64
	AssignedSiteID *int64
	Shift          *string
}

func (s *WorkerService) Create(ctx context.Context, params CreateWorkerParams) (*model.Worker, error) {
	if params.AssignedSiteID != nil {
		if _, err := s.sites.GetByID(ctx, *params.AssignedSiteID); err != nil {
			return nil, err
		}
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate worker id: %w", err)
	}

	worker := &model.Worker{
		PublicID:       publicID,
		DisplayName:    params.DisplayName,
		DailyRatePaise: params.DailyRatePaise,
		AssignedSiteID: params.AssignedSiteID,
		Shift:          params.Shift,
		Active:         true,
	}
	worker.ID = publicID

	// 手机号选填，填了就密文落库
	if params.Phone != "" {
		if !utils.ValidatePhone(params.Phone) {
			return nil, pkgerrors.InvalidPhone
		}
		cipher, err := utils.EncryptPhone(params.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt worker phone: %w", err)
		}
		hash := utils.HashPhone(params.Phone)
		worker.PhoneCipher = cipher
		worker.PhoneHash = &hash
	}

	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}

	logger.Logger.Info("Worker created",
		zap.Int64("worker_id", worker.PublicID),
		zap.String("display_name", worker.DisplayName),
	)

	return worker, nil
}

type UpdateWorkerParams struct {
	DisplayName    *string
	Phone          *string
	DailyRatePaise *int64
	AssignedSiteID *int64
	Shift          *string
	Active         *bool
}

func (s *WorkerService) Update(ctx context.Context, workerPublicID int64, params UpdateWorkerParams) (*model.Worker, error) {
	worker, err := s.workers.GetByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if params.DisplayName != nil {
		fields["display_name"] = *params.DisplayName
	}
	if params.Phone != nil {
		if !utils.ValidatePhone(*params.Phone) {
			return nil, pkgerrors.InvalidPhone
		}
		cipher, err := utils.EncryptPhone(*params.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt worker phone: %w", err)
		}
		fields["phone_cipher"] = cipher
		fields["phone_hash"] = utils.HashPhone(*params.Phone)
	}
	if params.DailyRatePaise != nil {
		fields["daily_rate_paise"] = *params.DailyRatePaise
	}
	if params.AssignedSiteID != nil {
		if _, err := s.sites.GetByID(ctx, *params.AssignedSiteID); err != nil {
			return nil, err
		}
		fields["assigned_site_id"] = *params.AssignedSiteID
	}
	if params.Shift != nil {
		fields["shift"] = *params.Shift
	}
	if params.Active != nil {
		fields["active"] = *params.Active
	}

	if len(fields) == 0 {
		return worker, nil
	}

	if err := s.workers.Updates(ctx, worker.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update worker: %w", err)
	}

	return s.workers.GetByPublicID(ctx, workerPublicID)
}

// Enroll 录入人脸特征向量，长度必须与配置一致
func (s *WorkerService) Enroll(ctx context.Context, workerPublicID int64, descriptor model.Descriptor) (*model.Worker, error) {
	if len(descriptor) != s.descriptorLength {
		return nil, pkgerrors.BadDescriptor
	}

	worker, err := s.workers.GetByPublicID(ctx, workerPublicID)
	if err != nil {
		return nil, err
	}
	if !worker.Active {
		return nil, pkgerrors.WorkerInactive
	}

	if err := s.workers.SetDescriptor(ctx, worker.ID, descriptor); err != nil {
		return nil, fmt.Errorf("failed to set descriptor: %w", err)
	}

	worker.EnrolledDescriptor = descriptor

	logger.Logger.Info("Worker descriptor enrolled",
		zap.Int64("worker_id", worker.PublicID),
		zap.Int("descriptor_length", len(descriptor)),
	)

	return worker, nil
}

// ForceReEnroll 清除特征，下次比对前必须重新录入。
// 单向操作，清除后没有恢复入口。
func (s *WorkerService) ForceReEnroll(ctx context.Context, workerPublicID int64) error {
	worker, err := s.workers.GetByPublicID(ctx, workerPublicID)
	if err != nil {
		return err
	}

	if err := s.workers.ClearDescriptor(ctx, worker.ID); err != nil {
		return fmt.Errorf("failed to clear descriptor: %w", err)
	}

	logger.Logger.Info("Worker descriptor cleared for re-enrollment",
		zap.Int64("worker_id", worker.PublicID),
	)

	return nil
}

func (s *WorkerService) Get(ctx context.Context, workerPublicID int64) (*model.Worker, error) {
	return s.workers.GetByPublicID(ctx, workerPublicID)
}

func (s *WorkerService) List(ctx context.Context, cursorID int64, limit int) ([]*model.Worker, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	workers, err := s.workers.List(ctx, cursorID, limit+1)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}

	var nextCursor int64
	if len(workers) > limit {
		nextCursor = workers[limit].ID
		workers = workers[:limit]
	}

	return workers, nextCursor, nil
}
