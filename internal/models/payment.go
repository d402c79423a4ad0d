package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付记录（一单一条）
type Payment struct {
	ID             uint           `gorm:"primarykey" json:"id"`                             // 主键
	OrderID        uint           `gorm:"uniqueIndex;not null" json:"order_id"`             // 订单ID
	Method         string         `gorm:"not null" json:"method"`                           // 支付方式（bank_transfer/cod/card）
	Status         string         `gorm:"index;not null" json:"status"`                     // 支付状态
	Amount         Money          `gorm:"type:decimal(20,2);not null" json:"amount"`        // 支付金额
	Currency       string         `gorm:"not null" json:"currency"`                         // 币种
	SlipReference  string         `gorm:"type:varchar(500)" json:"slip_reference"`          // 转账凭证引用（外部存储的标识）
	BankReference  string         `gorm:"type:varchar(120)" json:"bank_reference"`          // 银行流水参考号
	SlipUploadedAt *time.Time     `gorm:"index" json:"slip_uploaded_at"`                    // 凭证上传时间
	RejectReason   string         `gorm:"type:varchar(500)" json:"reject_reason,omitempty"` // 凭证驳回原因
	VerifiedBy     *uint          `gorm:"index" json:"verified_by,omitempty"`               // 审核管理员ID
	VerifiedAt     *time.Time     `gorm:"index" json:"verified_at"`                         // 审核时间
	PaidAt         *time.Time     `gorm:"index" json:"paid_at"`                             // 到账时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                          // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
