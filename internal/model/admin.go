package model

// AdminRole 管理员角色枚举
type AdminRole string

const (
	AdminRoleOwner   AdminRole = "owner"   // 老板，可删日结
	AdminRoleManager AdminRole = "manager" // 现场管理，审批补卡
)

// Admin 管理端账号，补卡审批人与日结关账人
type Admin struct {
	BaseModel
	PublicID    int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	DisplayName string `gorm:"type:varchar(64);not null" json:"display_name"`

	PhoneCipher []byte  `gorm:"type:bytea" json:"-"`
	PhoneHash   *string `gorm:"uniqueIndex;type:char(64)" json:"-"`

	PasswordHash string    `gorm:"type:char(64);not null" json:"-"`
	Role         AdminRole `gorm:"type:varchar(16);not null;default:'manager'" json:"role"`

	Active bool `gorm:"not null;default:true" json:"active"`
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
