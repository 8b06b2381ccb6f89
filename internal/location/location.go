package location

import (
	"context"
	"time"

	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// Position 设备上报的一次定位
type Position struct {
	Latitude  float64
	Longitude float64
}

// Provider 定位采集的外部协作方抽象，移动端或测试桩实现。
// Current 必须尊重 ctx 超时与取消。
type Provider interface {
	Current(ctx context.Context) (Position, error)
}

// 设备侧上报的失败原因编码
const (
	FailurePermissionDenied = "permission_denied"
	FailureUnavailable      = "unavailable"
	FailureTimeout          = "timeout"
)

// FailureError 将设备上报的失败原因映射为业务错误
// 三种失败各有专属错误码，未知原因按 unavailable 处理，
// 任何一种都不允许降级为“在围栏内”。
func FailureError(reason string) error {
	switch reason {
	case FailurePermissionDenied:
		return pkgerrors.LocationPermissionDenied
	case FailureTimeout:
		return pkgerrors.LocationTimeout
	default:
		return pkgerrors.LocationUnavailable
	}
}

// reportedReading 终端随请求上报的一次已完成读取
type reportedReading struct {
	pos Position
	err error
}

func (r reportedReading) Current(ctx context.Context) (Position, error) {
	return r.pos, r.err
}

// FromReport 把终端上报的读取结果包装成 Provider。
// 失败原因优先于坐标，缺坐标按非法坐标处理。
func FromReport(latitude, longitude *float64, failureReason string) Provider {
	switch {
	case failureReason != "":
		return reportedReading{err: FailureError(failureReason)}
	case latitude == nil || longitude == nil:
		return reportedReading{err: pkgerrors.InvalidCoords}
	default:
		return reportedReading{pos: Position{Latitude: *latitude, Longitude: *longitude}}
	}
}

// Acquire 在限定时长内向 provider 拉取当前定位
// 超时返回 LOCATION_TIMEOUT，调用方重试必须是整次重来而非静默续用旧值。
func Acquire(ctx context.Context, provider Provider, timeout time.Duration) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		pos Position
		err error
	}

	done := make(chan outcome, 1)
	go func() {
		pos, err := provider.Current(ctx)
		done <- outcome{pos: pos, err: err}
	}()

	select {
	case <-ctx.Done():
		return Position{}, pkgerrors.LocationTimeout
	case out := <-done:
		return out.pos, out.err
	}
}
