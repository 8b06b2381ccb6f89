package dto

import "time"

// CheckInRequest 签到请求
// 设备定位失败时不带坐标，改带 location_error，三种失败原因原样上抛
type CheckInRequest struct {
	WorkerID  int64     `json:"worker_id"`
	SiteID    int64     `json:"site_id"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	LocationError string `json:"location_error,omitempty"` // permission_denied, unavailable, timeout

	Descriptor []float64 `json:"descriptor"`

	// 补卡放行：携带已批准的申请 ID 时跳过围栏校验，身份比对照常
	AccessRequestID *int64 `json:"access_request_id,omitempty"`
}

// CheckOutRequest 签退请求
type CheckOutRequest struct {
	WorkerID int64 `json:"worker_id"`
}

// AttendanceItem 考勤记录视图
type AttendanceItem struct {
	ID                string     `json:"id"`
	WorkerID          int64      `json:"worker_id"`
	SiteID            int64      `json:"site_id"`
	WorkDate          string     `json:"work_date"`
	CheckInAt         time.Time  `json:"check_in_at"`
	CheckOutAt        *time.Time `json:"check_out_at,omitempty"`
	HoursWorked       *float64   `json:"hours_worked,omitempty"`
	Status            string     `json:"status"`
	GeofenceDistanceM float64    `json:"geofence_distance_m"`
}

// AttendanceHistoryQuery 考勤历史查询参数
type AttendanceHistoryQuery struct {
	WorkerID int64  `query:"worker_id"`
	SiteID   int64  `query:"site_id"`
	FromDate string `query:"from_date"`
	ToDate   string `query:"to_date"`
	Limit    int    `query:"limit"`
	CursorID int64  `query:"cursor_id"`
}
