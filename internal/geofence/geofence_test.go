package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 围栏圆心用阿默达巴德市区坐标
const (
	siteLat = 23.0225
	siteLon = 72.5714
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	assert.Zero(t, Distance(siteLat, siteLon, siteLat, siteLon))
}

func TestDistanceSymmetry(t *testing.T) {
	d1 := Distance(siteLat, siteLon, 23.03, 72.58)
	d2 := Distance(23.03, 72.58, siteLat, siteLon)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceKnownOffset(t *testing.T) {
	// 纬度方向 0.001 度约 111.2 米
	d := Distance(siteLat, siteLon, siteLat+0.001, siteLon)

	assert.InDelta(t, 111.2, d, 1.0)
}

func TestEvaluateWithinRadius(t *testing.T) {
	result := Evaluate(siteLat+0.001, siteLon, siteLat, siteLon, 150)

	assert.True(t, result.WithinRadius)
	assert.InDelta(t, 111, result.DistanceMeters, 1.0)
}

func TestEvaluateOutsideRadius(t *testing.T) {
	result := Evaluate(siteLat+0.001, siteLon, siteLat, siteLon, 100)

	assert.False(t, result.WithinRadius)
}

func TestEvaluateBoundaryInclusive(t *testing.T) {
	// 距离恰好等于半径算在围栏内
	result := Evaluate(siteLat, siteLon, siteLat, siteLon, 0)

	assert.True(t, result.WithinRadius)
	assert.Zero(t, result.DistanceMeters)
}

func TestEvaluateFarAway(t *testing.T) {
	// 孟买到阿默达巴德，远超任何工地围栏
	result := Evaluate(19.0760, 72.8777, siteLat, siteLon, 5000)

	assert.False(t, result.WithinRadius)
	assert.Greater(t, result.DistanceMeters, 400000.0)
}
