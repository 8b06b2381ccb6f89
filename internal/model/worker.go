package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Descriptor 人脸特征向量，由外部提取模型产出的定长实数向量。
// jsonb 存储，nil 表示未录入或被管理员强制重录。
type Descriptor []float64

// Value 实现 driver.Valuer，序列化为 jsonb
func (d Descriptor) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan 实现 sql.Scanner
func (d *Descriptor) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("descriptor: unsupported scan source")
	}

	return json.Unmarshal(raw, d)
}

// Worker 工人模型
type Worker struct {
	BaseModel
	PublicID    int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	DisplayName string `gorm:"type:varchar(64);not null" json:"display_name"`

	PhoneCipher []byte  `gorm:"type:bytea" json:"-"`                // 手机号密文，不对外暴露
	PhoneHash   *string `gorm:"uniqueIndex;type:char(64)" json:"-"` // 手机号哈希，用于查询

	DailyRatePaise int64 `gorm:"not null;default:0" json:"daily_rate_paise"` // 日薪，以 paise 计

	// 录入的特征向量；nil 时任何比对都必须以 NOT_ENROLLED 失败
	EnrolledDescriptor Descriptor `gorm:"type:jsonb" json:"-"`

	AssignedSiteID *int64  `gorm:"index:idx_workers_site" json:"assigned_site_id,omitempty"`
	Shift          *string `gorm:"type:varchar(32)" json:"shift,omitempty"`

	Active bool `gorm:"not null;default:true;index:idx_workers_active" json:"active"`
}

// TableName 指定表名
func (Worker) TableName() string {
	return "workers"
}

// Enrolled 是否已录入特征
func (w *Worker) Enrolled() bool {
	return len(w.EnrolledDescriptor) > 0
}
