package models

import "time"

// Review 商品评价（买家提交，需后台审核后公开）
type Review struct {
	ID                 uint      `gorm:"primarykey" json:"id"`                                               // 主键
	ProductID          uint      `gorm:"not null;uniqueIndex:uniq_review_product_user" json:"product_id"`    // 商品ID
	UserID             uint      `gorm:"not null;uniqueIndex:uniq_review_product_user" json:"user_id"`       // 用户ID
	OrderID            *uint     `gorm:"index" json:"order_id,omitempty"`                                    // 关联订单ID（可选）
	Rating             int       `gorm:"not null" json:"rating"`                                             // 评分（1-5）
	Title              string    `gorm:"type:varchar(255)" json:"title"`                                     // 标题
	Comment            string    `gorm:"type:text" json:"comment"`                                           // 评价内容
	IsVerifiedPurchase bool      `gorm:"default:false" json:"is_verified_purchase"`                          // 是否已核实购买
	IsApproved         bool      `gorm:"default:false;index:idx_review_approved_created" json:"is_approved"` // 是否已审核通过
	CreatedAt          time.Time `gorm:"index:idx_review_approved_created" json:"created_at"`                // 创建时间
	UpdatedAt          time.Time `json:"updated_at"`                                                         // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`       // 用户
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
