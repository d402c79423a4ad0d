package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNumber     string         `gorm:"uniqueIndex;not null" json:"order_number"`                      // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                                 // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                                  // 订单状态
	PaymentStatus   string         `gorm:"index;not null;default:'pending'" json:"payment_status"`        // 收款状态
	Currency        string         `gorm:"not null" json:"currency"`                                      // 币种
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`         // 商品小计
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`  // 优惠金额
	ShippingAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`  // 运费
	TaxAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_amount"`       // 税费（当前恒为 0）
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`     // 实付金额
	CouponID        *uint          `gorm:"index" json:"coupon_id,omitempty"`                              // 优惠券ID
	CouponCode      string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`                 // 优惠码快照
	ShippingName    string         `gorm:"type:varchar(120);not null" json:"shipping_name"`               // 收件人姓名
	ShippingPhone   string         `gorm:"type:varchar(40);not null" json:"shipping_phone"`               // 收件人电话
	ShippingAddress string         `gorm:"type:varchar(500);not null" json:"shipping_address"`            // 收件地址
	ShippingCity    string         `gorm:"type:varchar(120)" json:"shipping_city"`                        // 城市
	ShippingPostal  string         `gorm:"type:varchar(20)" json:"shipping_postal_code"`                  // 邮编
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`                              // 买家备注
	TrackingNumber  string         `gorm:"type:varchar(120)" json:"tracking_number,omitempty"`            // 物流单号
	ShippedAt       *time.Time     `gorm:"index" json:"shipped_at"`                                       // 发货时间
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at"`                                     // 签收时间
	CancelledAt     *time.Time     `gorm:"index" json:"cancelled_at"`                                     // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	// 关联
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`   // 订单项
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"` // 支付记录
	Coupon  *Coupon     `gorm:"foreignKey:CouponID" json:"coupon,omitempty"` // 优惠券
	User    *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`     // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
