package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/queue"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/repository"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/sms"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/database"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// NotificationService 消费侧的短信通知，收件人统一是站点工头。
// 站点没配工头手机号时静默跳过，不算失败。
type NotificationService struct {
	workers WorkerStore
	sites   SiteStore
}

var (
	notificationService *NotificationService
	notificationOnce    sync.Once
)

func Notifications() *NotificationService {
	notificationOnce.Do(func() {
		db := database.DB()
		notificationService = NewNotificationService(
			repository.NewWorkerRepo(db),
			repository.NewSiteRepo(db),
		)
	})

	return notificationService
}

func NewNotificationService(workers WorkerStore, sites SiteStore) *NotificationService {
	return &NotificationService{
		workers: workers,
		sites:   sites,
	}
}

// HandleAccessRequestCreated 围栏外申请告警
func (s *NotificationService) HandleAccessRequestCreated(ctx context.Context, msg queue.AccessRequestCreatedMessage) error {
	siteName, phone, err := s.supervisorPhone(ctx, msg.SiteID)
	if err != nil {
		return err
	}
	if phone == "" {
		logger.Logger.Info("Site has no supervisor phone, skipping access alert",
			zap.Int64("site_id", msg.SiteID),
			zap.Int64("request_id", msg.RequestID),
		)
		return nil
	}

	workerName := fmt.Sprintf("#%d", msg.WorkerID)
	if worker, err := s.workers.GetByPublicID(ctx, msg.WorkerID); err == nil {
		workerName = worker.DisplayName
	}

	if err := sms.SendAccessAlert(ctx, phone, workerName, siteName, msg.DistanceM); err != nil {
		return fmt.Errorf("failed to send access alert: %w", err)
	}

	logger.Logger.Info("Access alert sent",
		zap.Int64("request_id", msg.RequestID),
		zap.Int64("site_id", msg.SiteID),
	)

	return nil
}

// HandleClosingMismatch 日结差异告警
func (s *NotificationService) HandleClosingMismatch(ctx context.Context, msg queue.ClosingMismatchMessage) error {
	siteName, phone, err := s.supervisorPhone(ctx, msg.SiteID)
	if err != nil {
		return err
	}
	if phone == "" {
		logger.Logger.Info("Site has no supervisor phone, skipping mismatch alert",
			zap.Int64("site_id", msg.SiteID),
			zap.Int64("closing_id", msg.ClosingID),
		)
		return nil
	}

	if err := sms.SendClosingMismatch(ctx, phone, siteName, msg.ClosingDate, msg.ExpectedCount, msg.ScannedCount); err != nil {
		return fmt.Errorf("failed to send closing mismatch alert: %w", err)
	}

	logger.Logger.Info("Closing mismatch alert sent",
		zap.Int64("closing_id", msg.ClosingID),
		zap.Int64("site_id", msg.SiteID),
		zap.Int("difference", msg.Difference),
	)

	return nil
}

// HandleClosingReminder 未日结提醒
func (s *NotificationService) HandleClosingReminder(ctx context.Context, msg queue.ClosingReminderMessage) error {
	siteName, phone, err := s.supervisorPhone(ctx, msg.SiteID)
	if err != nil {
		return err
	}
	if phone == "" {
		return nil
	}

	if err := sms.SendClosingReminder(ctx, phone, siteName, msg.ClosingDate); err != nil {
		return fmt.Errorf("failed to send closing reminder: %w", err)
	}

	logger.Logger.Info("Closing reminder sent",
		zap.Int64("site_id", msg.SiteID),
		zap.String("closing_date", msg.ClosingDate),
	)

	return nil
}

func (s *NotificationService) supervisorPhone(ctx context.Context, siteID int64) (siteName, phone string, err error) {
	record, err := s.sites.GetByID(ctx, siteID)
	if err != nil {
		return "", "", err
	}

	if len(record.SupervisorPhoneCipher) == 0 {
		return record.Name, "", nil
	}

	plain, err := utils.DecryptPhone(record.SupervisorPhoneCipher)
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt supervisor phone: %w", err)
	}

	return record.Name, plain, nil
}
