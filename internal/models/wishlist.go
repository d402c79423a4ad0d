package models

import "time"

// WishlistItem 用户收藏的商品
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                              // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_wishlist_user_product" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:uniq_wishlist_user_product" json:"product_id"` // 商品ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                           // 收藏时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlists"
}
