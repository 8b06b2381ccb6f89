package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 考勤核验指标
	CheckInTotal       metric.Int64Counter
	CheckInDuration    metric.Float64Histogram
	GeofenceDistance   metric.Float64Histogram
	AccessRequestTotal metric.Int64Counter
	ClosingTotal       metric.Int64Counter

	// 短信相关指标
	SMSSentTotal    metric.Int64Counter
	SMSSendDuration metric.Float64Histogram
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("laboros")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	m := &OTelMetrics{}

	m.CheckInTotal, err = meter.Int64Counter(
		"attendance_check_in_total",
		metric.WithDescription("Total number of check-in attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return err
	}

	m.CheckInDuration, err = meter.Float64Histogram(
		"attendance_check_in_duration_seconds",
		metric.WithDescription("Time spent verifying a check-in"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	m.GeofenceDistance, err = meter.Float64Histogram(
		"attendance_geofence_distance_meters",
		metric.WithDescription("Distance from site center at check-in"),
		metric.WithUnit("m"),
		metric.WithExplicitBucketBoundaries(10, 25, 50, 100, 200, 500, 1000, 5000),
	)
	if err != nil {
		return err
	}

	m.AccessRequestTotal, err = meter.Int64Counter(
		"access_request_total",
		metric.WithDescription("Total number of access requests by status transition"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	m.ClosingTotal, err = meter.Int64Counter(
		"daily_closing_total",
		metric.WithDescription("Total number of daily closings by status"),
		metric.WithUnit("{closing}"),
	)
	if err != nil {
		return err
	}

	m.SMSSentTotal, err = meter.Int64Counter(
		"sms_sent_total",
		metric.WithDescription("Total number of SMS sent"),
		metric.WithUnit("{sms}"),
	)
	if err != nil {
		return err
	}

	m.SMSSendDuration, err = meter.Float64Histogram(
		"sms_send_duration_seconds",
		metric.WithDescription("Time spent sending SMS in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics = m
	return nil
}

// GetMetrics 获取全局指标实例，未初始化时返回 nil
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordCheckIn 记录一次签到尝试，outcome 取错误码或 success
func RecordCheckIn(ctx context.Context, outcome string, durationSeconds, distanceM float64) {
	m := metrics
	if m == nil {
		return
	}

	m.CheckInTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.CheckInDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	if distanceM >= 0 {
		m.GeofenceDistance.Record(ctx, distanceM)
	}
}

// RecordAccessRequest 记录补卡申请的状态流转
func RecordAccessRequest(ctx context.Context, transition string) {
	m := metrics
	if m == nil {
		return
	}
	m.AccessRequestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transition", transition),
	))
}

// RecordClosing 记录一次日结
func RecordClosing(ctx context.Context, status string) {
	m := metrics
	if m == nil {
		return
	}
	m.ClosingTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordSMS 记录短信发送结果
func RecordSMS(ctx context.Context, template, status string, durationSeconds float64) {
	m := metrics
	if m == nil {
		return
	}
	m.SMSSentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("status", status),
	))
	m.SMSSendDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("template", template),
	))
}
