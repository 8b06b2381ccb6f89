package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/cache"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/logger"
	"github.com/veertradingvadi-ship-it/laboros-sub001/storage/mq"
)

// NotificationService 消费侧回调，worker 进程启动时注入，避免包环
type NotificationService interface {
	HandleAccessRequestCreated(ctx context.Context, msg AccessRequestCreatedMessage) error
	HandleClosingMismatch(ctx context.Context, msg ClosingMismatchMessage) error
	HandleClosingReminder(ctx context.Context, msg ClosingReminderMessage) error
}

var notificationService NotificationService

// SetNotificationService 设置通知服务（在 worker 启动时调用）
func SetNotificationService(s NotificationService) {
	notificationService = s
}

// StartAccessAlertConsumer 消费补卡申请事件，短信告警工头
func StartAccessAlertConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg AccessRequestCreatedMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal access request message: %w", err)
		}

		if skip := markProcessing(ctx, msg.MessageID); skip {
			return nil
		}

		if err := notificationService.HandleAccessRequestCreated(ctx, msg); err != nil {
			// 释放幂等标记，等重投
			unmarkProcessing(ctx, msg.MessageID)
			return err
		}

		markProcessed(ctx, msg.MessageID)
		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueAccessAlerts,
		ConsumerTag:   "access_alert_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartClosingAlertConsumer 消费日结差异事件
func StartClosingAlertConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg ClosingMismatchMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal closing mismatch message: %w", err)
		}

		if skip := markProcessing(ctx, msg.MessageID); skip {
			return nil
		}

		if err := notificationService.HandleClosingMismatch(ctx, msg); err != nil {
			unmarkProcessing(ctx, msg.MessageID)
			return err
		}

		markProcessed(ctx, msg.MessageID)
		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueClosingAlerts,
		ConsumerTag:   "closing_alert_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartClosingReminderConsumer 消费未日结提醒
func StartClosingReminderConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg ClosingReminderMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal closing reminder message: %w", err)
		}

		if skip := markProcessing(ctx, msg.MessageID); skip {
			return nil
		}

		if err := notificationService.HandleClosingReminder(ctx, msg); err != nil {
			unmarkProcessing(ctx, msg.MessageID)
			return err
		}

		markProcessed(ctx, msg.MessageID)
		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueClosingReminder,
		ConsumerTag:   "closing_reminder_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// StartAllConsumers 启动全部消费者，每个各占一个 goroutine
func StartAllConsumers(ctx context.Context) {
	if notificationService == nil {
		panic("notification service not set, call SetNotificationService first")
	}

	consumers := map[string]func(context.Context) error{
		"access_alert":     StartAccessAlertConsumer,
		"closing_alert":    StartClosingAlertConsumer,
		"closing_reminder": StartClosingReminderConsumer,
	}

	for name, start := range consumers {
		go func(name string, start func(context.Context) error) {
			if err := start(ctx); err != nil {
				logger.Logger.Error("Consumer exited",
					zap.String("consumer", name),
					zap.Error(err),
				)
			}
		}(name, start)
	}
}

// markProcessing 返回 true 表示消息已处理过，直接跳过
func markProcessing(ctx context.Context, messageID string) bool {
	if messageID == "" {
		return false
	}

	ok, err := cache.TryMarkMessageProcessing(ctx, messageID, 24*time.Hour)
	if err != nil {
		logger.Logger.Warn("Failed to check message processed status",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		// 检查失败不阻塞业务，宁可重复发一条
		return false
	}

	if !ok {
		logger.Logger.Info("Message already processed, skipping",
			zap.String("message_id", messageID),
		)
		return true
	}

	return false
}

func unmarkProcessing(ctx context.Context, messageID string) {
	if messageID == "" {
		return
	}
	if err := cache.UnmarkMessageProcessing(ctx, messageID); err != nil {
		logger.Logger.Warn("Failed to release message mark",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}

func markProcessed(ctx context.Context, messageID string) {
	if messageID == "" {
		return
	}
	if err := cache.MarkMessageProcessed(ctx, messageID, 48*time.Hour); err != nil {
		logger.Logger.Warn("Failed to mark message as processed",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
