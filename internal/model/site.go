package model

// Site 工地模型，围栏圆心与半径都存在站点上
type Site struct {
	BaseModel
	Name      string  `gorm:"type:varchar(128);not null" json:"name"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	RadiusM   float64 `gorm:"not null" json:"radius_m"` // 必须 > 0，service 层校验

	// 工头手机号，密文存储，哈希用于查询
	SupervisorPhoneCipher []byte  `gorm:"type:bytea" json:"-"`
	SupervisorPhoneHash   *string `gorm:"type:char(64)" json:"-"`

	Active bool `gorm:"not null;default:true;index:idx_sites_active" json:"active"`
}

// TableName 指定表名
func (Site) TableName() string {
	return "sites"
}
