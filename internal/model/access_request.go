package model

import "time"

// AccessRequestStatus 补卡申请状态枚举
type AccessRequestStatus string

const (
	AccessRequestStatusPending  AccessRequestStatus = "pending"
	AccessRequestStatusApproved AccessRequestStatus = "approved" // 终态
	AccessRequestStatusRejected AccessRequestStatus = "rejected" // 终态
)

// AccessRequest 围栏外打卡申请
// 围栏校验失败时自动创建，记录申请瞬间的出栏坐标。
// 批准只代表放行授权，不代表已记考勤。
type AccessRequest struct {
	BaseModel
	WorkerID int64 `gorm:"not null;index:idx_access_requests_worker" json:"worker_id"`
	SiteID   int64 `gorm:"not null;index:idx_access_requests_site_status" json:"site_id"`

	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	DistanceM float64 `gorm:"not null" json:"distance_m"` // 申请时距围栏圆心的距离

	Status     AccessRequestStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_access_requests_site_status" json:"status"`
	ResolvedBy *int64              `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time          `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
}

// TableName 指定表名
func (AccessRequest) TableName() string {
	return "access_requests"
}

// Resolved 是否已到达终态
func (r *AccessRequest) Resolved() bool {
	return r.Status != AccessRequestStatusPending
}
