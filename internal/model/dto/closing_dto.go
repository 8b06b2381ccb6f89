package dto

import "time"

// ComputeClosingRequest 日结请求
// expected_count 缺省时按站点在册工人数计算
type ComputeClosingRequest struct {
	SiteID        int64  `json:"site_id"`
	Date          string `json:"date"` // YYYY-MM-DD
	ExpectedCount *int   `json:"expected_count,omitempty"`
	Note          string `json:"note,omitempty"`
}

// ClosingNoteRequest 日结差异说明补录
type ClosingNoteRequest struct {
	Note string `json:"note"`
}

// BulkDeleteClosingsRequest 日结批量删除，按 ID 集或按账龄二选一
type BulkDeleteClosingsRequest struct {
	IDs           []int64 `json:"ids,omitempty"`
	OlderThanDays *int    `json:"older_than_days,omitempty"`
}

// ClosingItem 日结记录视图
type ClosingItem struct {
	ID             string    `json:"id"`
	SiteID         int64     `json:"site_id"`
	ClosingDate    string    `json:"closing_date"`
	ExpectedCount  int       `json:"expected_count"`
	ScannedCount   int       `json:"scanned_count"`
	ExpectedSource string    `json:"expected_source"`
	Difference     int       `json:"difference"`
	Status         string    `json:"status"`
	Note           *string   `json:"note,omitempty"`
	ClosedBy       int64     `json:"closed_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// ClosingListQuery 日结列表查询参数
type ClosingListQuery struct {
	SiteID   int64  `query:"site_id"`
	FromDate string `query:"from_date"`
	ToDate   string `query:"to_date"`
	Limit    int    `query:"limit"`
	CursorID int64  `query:"cursor_id"`
}
