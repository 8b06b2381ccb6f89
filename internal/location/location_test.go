package location

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

type stubProvider struct {
	pos   Position
	err   error
	delay time.Duration
}

func (p stubProvider) Current(ctx context.Context) (Position, error) {
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return Position{}, ctx.Err()
		case <-time.After(p.delay):
		}
	}
	return p.pos, p.err
}

func TestFailureErrorMapping(t *testing.T) {
	assert.ErrorIs(t, FailureError(FailurePermissionDenied), pkgerrors.LocationPermissionDenied)
	assert.ErrorIs(t, FailureError(FailureTimeout), pkgerrors.LocationTimeout)
	assert.ErrorIs(t, FailureError(FailureUnavailable), pkgerrors.LocationUnavailable)
}

func TestFailureErrorUnknownReason(t *testing.T) {
	// 未知原因按 unavailable 处理，不允许落回围栏内
	assert.ErrorIs(t, FailureError("gps_exploded"), pkgerrors.LocationUnavailable)
}

func TestAcquireSuccess(t *testing.T) {
	provider := stubProvider{pos: Position{Latitude: 23.0225, Longitude: 72.5714}}

	pos, err := Acquire(context.Background(), provider, time.Second)

	require.NoError(t, err)
	assert.Equal(t, 23.0225, pos.Latitude)
	assert.Equal(t, 72.5714, pos.Longitude)
}

func TestAcquireTimeout(t *testing.T) {
	provider := stubProvider{delay: time.Second}

	_, err := Acquire(context.Background(), provider, 10*time.Millisecond)

	assert.ErrorIs(t, err, pkgerrors.LocationTimeout)
}

func TestFromReportCoordinates(t *testing.T) {
	lat, lng := 23.0225, 72.5714

	pos, err := Acquire(context.Background(), FromReport(&lat, &lng, ""), time.Second)

	require.NoError(t, err)
	assert.Equal(t, lat, pos.Latitude)
	assert.Equal(t, lng, pos.Longitude)
}

func TestFromReportFailureReason(t *testing.T) {
	lat, lng := 23.0225, 72.5714

	// 失败原因优先于坐标
	_, err := Acquire(context.Background(), FromReport(&lat, &lng, FailurePermissionDenied), time.Second)

	assert.ErrorIs(t, err, pkgerrors.LocationPermissionDenied)
}

func TestFromReportMissingCoordinates(t *testing.T) {
	lat := 23.0225

	_, err := Acquire(context.Background(), FromReport(&lat, nil, ""), time.Second)

	assert.ErrorIs(t, err, pkgerrors.InvalidCoords)
}

func TestAcquireProviderError(t *testing.T) {
	provider := stubProvider{err: pkgerrors.LocationPermissionDenied}

	_, err := Acquire(context.Background(), provider, time.Second)

	assert.ErrorIs(t, err, pkgerrors.LocationPermissionDenied)
}
