package dto

import "time"

// SubmitAccessRequest 手动提交补卡申请（围栏失败时服务端也会自动创建）
type SubmitAccessRequest struct {
	WorkerID  int64   `json:"worker_id"`
	SiteID    int64   `json:"site_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolveAccessRequest 审批动作
type ResolveAccessRequest struct {
	Decision string `json:"decision"` // approve, reject
}

// AccessRequestItem 补卡申请视图
type AccessRequestItem struct {
	ID         string     `json:"id"`
	WorkerID   int64      `json:"worker_id"`
	SiteID     int64      `json:"site_id"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	DistanceM  float64    `json:"distance_m"`
	Status     string     `json:"status"`
	ResolvedBy *int64     `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AccessRequestListQuery 补卡申请列表查询参数
type AccessRequestListQuery struct {
	SiteID   int64  `query:"site_id"`
	Status   string `query:"status"`
	Limit    int    `query:"limit"`
	CursorID int64  `query:"cursor_id"`
}
