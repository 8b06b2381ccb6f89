package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/snowflake"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/mq"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// Publisher 把核验引擎的领域事件发到 RabbitMQ topic 交换机
type Publisher struct{}

var (
	publisher     *Publisher
	publisherOnce sync.Once
)

func Events() *Publisher {
	publisherOnce.Do(func() {
		publisher = &Publisher{}
	})

	return publisher
}

// AccessRequestCreated 补卡申请创建事件
func (p *Publisher) AccessRequestCreated(ctx context.Context, req *model.AccessRequest) error {
	messageID, err := nextMessageID("access_request")
	if err != nil {
		return err
	}

	msg := AccessRequestCreatedMessage{
		MessageID:  messageID,
		RequestID:  req.ID,
		WorkerID:   req.WorkerID,
		SiteID:     req.SiteID,
		DistanceM:  req.DistanceM,
		OccurredAt: time.Now().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(mq.ExchangeEvents, mq.RoutingKeyAccessRequestCreated, msg); err != nil {
		logger.Logger.Error("Failed to publish access request event",
			zap.String("message_id", messageID),
			zap.Int64("request_id", req.ID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published access request event",
		zap.String("message_id", messageID),
		zap.Int64("request_id", req.ID),
		zap.Int64("site_id", req.SiteID),
	)

	return nil
}

// ClosingMismatch 日结差异告警事件
func (p *Publisher) ClosingMismatch(ctx context.Context, closing *model.DailyClosing) error {
	messageID, err := nextMessageID("closing_mismatch")
	if err != nil {
		return err
	}

	msg := ClosingMismatchMessage{
		MessageID:     messageID,
		ClosingID:     closing.ID,
		SiteID:        closing.SiteID,
		ClosingDate:   utils.FormatDate(closing.ClosingDate),
		ExpectedCount: closing.ExpectedCount,
		ScannedCount:  closing.ScannedCount,
		Difference:    closing.Difference,
		OccurredAt:    time.Now().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(mq.ExchangeEvents, mq.RoutingKeyClosingMismatch, msg); err != nil {
		logger.Logger.Error("Failed to publish closing mismatch event",
			zap.String("message_id", messageID),
			zap.Int64("closing_id", closing.ID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published closing mismatch event",
		zap.String("message_id", messageID),
		zap.Int64("closing_id", closing.ID),
		zap.Int("difference", closing.Difference),
	)

	return nil
}

// ClosingReminder 未日结站点提醒事件
func (p *Publisher) ClosingReminder(ctx context.Context, site *model.Site, closingDate time.Time) error {
	messageID, err := nextMessageID("closing_reminder")
	if err != nil {
		return err
	}

	msg := ClosingReminderMessage{
		MessageID:   messageID,
		SiteID:      site.ID,
		SiteName:    site.Name,
		ClosingDate: utils.FormatDate(closingDate),
		OccurredAt:  time.Now().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(mq.ExchangeEvents, mq.RoutingKeyClosingReminder, msg); err != nil {
		logger.Logger.Error("Failed to publish closing reminder",
			zap.String("message_id", messageID),
			zap.Int64("site_id", site.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func nextMessageID(prefix string) (string, error) {
	id, err := snowflake.NextID()
	if err != nil {
		return "", fmt.Errorf("failed to generate message ID: %w", err)
	}
	return fmt.Sprintf("%s_%d", prefix, id), nil
}
