package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/metrics"
)

// 业务短信的模板封装，模板代码都来自配置

// SendAccessAlert 通知工头有工人在围栏外申请打卡
func SendAccessAlert(ctx context.Context, phone, workerName, siteName string, distanceM float64) error {
	cfg := config.Cfg
	if cfg.SMSAccessAlertTemplate == "" {
		return fmt.Errorf("SMS_ACCESS_ALERT_TEMPLATE is not configured")
	}

	return sendTemplated(ctx, phone, cfg.SMSAccessAlertTemplate, map[string]string{
		"worker":   workerName,
		"site":     siteName,
		"distance": fmt.Sprintf("%.0f", distanceM),
	})
}

// SendClosingMismatch 日结对不上账时告警
func SendClosingMismatch(ctx context.Context, phone, siteName, date string, expected, scanned int) error {
	cfg := config.Cfg
	if cfg.SMSClosingMismatchTemplate == "" {
		return fmt.Errorf("SMS_CLOSING_MISMATCH_TEMPLATE is not configured")
	}

	return sendTemplated(ctx, phone, cfg.SMSClosingMismatchTemplate, map[string]string{
		"site":     siteName,
		"date":     date,
		"expected": fmt.Sprintf("%d", expected),
		"scanned":  fmt.Sprintf("%d", scanned),
	})
}

// SendClosingReminder 提醒站点当日还没做日结
func SendClosingReminder(ctx context.Context, phone, siteName, date string) error {
	cfg := config.Cfg
	if cfg.SMSClosingReminderTemplate == "" {
		return fmt.Errorf("SMS_CLOSING_REMINDER_TEMPLATE is not configured")
	}

	return sendTemplated(ctx, phone, cfg.SMSClosingReminderTemplate, map[string]string{
		"site": siteName,
		"date": date,
	})
}

func sendTemplated(ctx context.Context, phone, templateCode string, params map[string]string) error {
	param, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal template param: %w", err)
	}

	start := time.Now()
	err = SendSingle(ctx, phone, config.Cfg.SMSSignName, templateCode, string(param))

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordSMS(ctx, templateCode, status, time.Since(start).Seconds())

	return err
}
