package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（身份由网关注入，此处仅存业务档案）
type User struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`      // 邮箱
	Name        string         `gorm:"type:varchar(120)" json:"name"`          // 姓名
	Phone       string         `gorm:"type:varchar(40)" json:"phone"`          // 电话
	Address     string         `gorm:"type:varchar(500)" json:"address"`       // 默认收件地址
	City        string         `gorm:"type:varchar(120)" json:"city"`          // 城市
	PostalCode  string         `gorm:"type:varchar(20)" json:"postal_code"`    // 邮编
	Status      string         `gorm:"default:'active'" json:"status"`         // 账号状态
	LastLoginAt *time.Time     `json:"last_login_at"`                          // 最后登录时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
