package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem 购物车项（商品行或专辑行）
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                         // 主键
	CartID    uint           `gorm:"not null;index" json:"cart_id"`                                // 购物车ID
	ItemType  string         `gorm:"type:varchar(20);not null;default:'product'" json:"item_type"` // 行类型（product/album）
	ProductID *uint          `gorm:"index" json:"product_id,omitempty"`                            // 商品ID（商品行）
	VariantID *uint          `gorm:"index" json:"variant_id,omitempty"`                            // 变体ID（可为空）
	AlbumID   *uint          `gorm:"index" json:"album_id,omitempty"`                              // 专辑ID（专辑行）
	Quantity  int            `gorm:"not null" json:"quantity"`                                     // 数量
	UnitPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`      // 加入时锁定的单价
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	// 关联
	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联变体
	Album   *Album          `gorm:"foreignKey:AlbumID" json:"album,omitempty"`     // 关联专辑
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal 行小计 = 锁定单价 × 数量
func (ci *CartItem) LineTotal() Money {
	return NewMoneyFromDecimal(ci.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity))))
}
