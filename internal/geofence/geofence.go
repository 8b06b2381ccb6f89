package geofence

import "math"

// EarthRadiusM 球面近似地球半径
const EarthRadiusM = 6371000.0

// Result 围栏判定结果
// DistanceMeters 已按米取整，仅用于展示；判定用未取整距离，避免边界上差一米翻转
type Result struct {
	WithinRadius   bool    `json:"within_radius"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Evaluate 判断坐标是否落在站点围栏内
// haversine 大圆距离，角度先转弧度。对一切有限输入都有定义，
// 坐标范围校验属于调用方契约，在进入本函数前完成。
func Evaluate(userLat, userLon, siteLat, siteLon, radiusMeters float64) Result {
	distance := Distance(userLat, userLon, siteLat, siteLon)

	return Result{
		WithinRadius:   distance <= radiusMeters,
		DistanceMeters: math.Round(distance),
	}
}

// Distance 两坐标间大圆距离，单位米，未取整
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlon := (lon2 - lon1) * math.Pi / 180

	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)

	a := sinLat*sinLat + math.Cos(rlat1)*math.Cos(rlat2)*sinLon*sinLon

	return 2 * EarthRadiusM * math.Asin(math.Sqrt(a))
}
