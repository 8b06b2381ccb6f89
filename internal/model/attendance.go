package model

import "time"

// AttendanceStatus 考勤状态枚举
type AttendanceStatus string

const (
	AttendanceStatusCheckedIn  AttendanceStatus = "checked_in"  // 已签到
	AttendanceStatusCheckedOut AttendanceStatus = "checked_out" // 已签退，当日终态
)

// AttendanceLog 考勤记录模型
// (worker_id, work_date) 的唯一索引守住“每人每天最多一条开放记录”，
// 并发签到时数据库裁决，败者收到 DUPLICATE_CHECK_IN。
type AttendanceLog struct {
	BaseModel
	WorkerID int64     `gorm:"not null;uniqueIndex:idx_attendance_worker_date;index:idx_attendance_worker_status" json:"worker_id"`
	SiteID   int64     `gorm:"not null;index:idx_attendance_site_date" json:"site_id"`
	WorkDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_worker_date;index:idx_attendance_site_date" json:"work_date"`

	CheckInAt   time.Time        `gorm:"type:timestamptz;not null" json:"check_in_at"`
	CheckOutAt  *time.Time       `gorm:"type:timestamptz" json:"check_out_at,omitempty"`
	HoursWorked *float64         `json:"hours_worked,omitempty"`
	Status      AttendanceStatus `gorm:"type:varchar(16);not null;default:'checked_in';index:idx_attendance_worker_status" json:"status"`

	// 核验留痕，供稽核回放
	GeofenceDistanceM float64 `gorm:"not null" json:"geofence_distance_m"`
	MatchDistance     float64 `gorm:"not null" json:"match_distance"`
	ViaAccessRequest  *int64  `json:"via_access_request,omitempty"` // 经补卡批准放行时记录申请 ID
}

// TableName 指定表名
func (AttendanceLog) TableName() string {
	return "attendance_logs"
}

// Open 是否仍是开放记录（已签到未签退）
func (l *AttendanceLog) Open() bool {
	return l.Status == AttendanceStatusCheckedIn
}
