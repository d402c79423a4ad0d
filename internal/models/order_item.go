package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（下单时刻的商品快照）
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderID     uint           `gorm:"index;not null" json:"order_id"`                               // 订单ID
	ItemType    string         `gorm:"type:varchar(20);not null;default:'product'" json:"item_type"` // 行类型（product/album）
	ProductID   *uint          `gorm:"index" json:"product_id,omitempty"`                            // 商品ID
	VariantID   *uint          `gorm:"index" json:"variant_id,omitempty"`                            // 变体ID
	AlbumID     *uint          `gorm:"index" json:"album_id,omitempty"`                              // 专辑ID
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                       // 名称快照
	SKU         string         `gorm:"type:varchar(64)" json:"sku"`                                  // 编码快照
	VariantName string         `gorm:"type:varchar(200)" json:"variant_name,omitempty"`              // 变体名称快照
	MetaJSON    JSON           `gorm:"type:json" json:"meta_data"`                                   // 变体规格等描述快照
	UnitPrice   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`      // 单价快照
	Quantity    int            `gorm:"not null" json:"quantity"`                                     // 数量
	TotalPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`     // 小计
	WeightKg    float64        `gorm:"type:decimal(10,3);not null;default:0" json:"weight_kg"`       // 单件重量快照（千克）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
