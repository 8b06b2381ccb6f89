package model

import "time"

// ClosingStatus 日结状态枚举，必须由两数之差推导，绝不独立落库
type ClosingStatus string

const (
	ClosingStatusMatched  ClosingStatus = "matched"
	ClosingStatusMismatch ClosingStatus = "mismatch"
)

// ExpectedSource 预期人数的来源
type ExpectedSource string

const (
	ExpectedSourceAssigned ExpectedSource = "assigned" // 按站点在册工人数
	ExpectedSourceManual   ExpectedSource = "manual"   // 手工录入（点名簿）
)

// DailyClosing 日结对账记录，追加式，重跑产生新记录而不是改写历史
type DailyClosing struct {
	BaseModel
	SiteID      int64     `gorm:"not null;index:idx_closings_site_date" json:"site_id"`
	ClosingDate time.Time `gorm:"type:date;not null;index:idx_closings_site_date" json:"closing_date"`

	ExpectedCount  int            `gorm:"not null" json:"expected_count"`
	ScannedCount   int            `gorm:"not null" json:"scanned_count"`
	ExpectedSource ExpectedSource `gorm:"type:varchar(16);not null;default:'assigned'" json:"expected_source"`

	Difference int           `gorm:"not null" json:"difference"` // scanned - expected
	Status     ClosingStatus `gorm:"type:varchar(16);not null" json:"status"`

	Note     *string `gorm:"type:text" json:"note,omitempty"` // 差异说明，事后可补
	ClosedBy int64   `gorm:"not null" json:"closed_by"`
}

// TableName 指定表名
func (DailyClosing) TableName() string {
	return "daily_closings"
}

// DeriveClosingStatus 由两数之差推导状态，MISMATCH 当且仅当两数不等
func DeriveClosingStatus(difference int) ClosingStatus {
	if difference == 0 {
		return ClosingStatusMatched
	}
	return ClosingStatusMismatch
}
