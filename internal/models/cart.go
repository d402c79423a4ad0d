package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车（每个用户一条）
type Cart struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	UserID         uint           `gorm:"not null;uniqueIndex" json:"user_id"`                           // 用户ID
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`                              // 已应用优惠券ID
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`         // 商品小计
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`  // 优惠金额
	ShippingAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`  // 运费
	TaxAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`       // 税费（当前恒为 0）
	TotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 应付合计
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	// 关联
	Items  []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"`  // 购物车项
	Coupon *Coupon    `gorm:"foreignKey:CouponID" json:"coupon,omitempty"` // 已应用优惠券
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
