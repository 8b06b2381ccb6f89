package biometric

import (
	"math"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// Result 比对结果
type Result struct {
	IsMatch  bool    `json:"is_match"`
	Distance float64 `json:"distance"`
}

// Match 比对现场采集特征与已录入特征
// 欧氏距离，IsMatch 当且仅当 distance <= threshold。
// enrolled 为空是独立失败模式（未录入），必须短路报 NOT_ENROLLED，
// 绝不允许退化成一次“碰巧通过”的比对。
func Match(captured, enrolled model.Descriptor, threshold float64) (Result, error) {
	if len(enrolled) == 0 {
		return Result{}, pkgerrors.NotEnrolled
	}

	if len(captured) == 0 || len(captured) != len(enrolled) {
		return Result{}, pkgerrors.BadDescriptor
	}

	distance := Distance(captured, enrolled)

	return Result{
		IsMatch:  distance <= threshold,
		Distance: distance,
	}, nil
}

// Distance 两特征向量间欧氏距离，调用方保证等长
func Distance(a, b model.Descriptor) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
