package models

import (
	"time"

	"gorm.io/gorm"
)

// Inventory 库存表（商品级或变体级，一行一个库存位）
type Inventory struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                            // 主键
	ProductID         uint           `gorm:"not null;index;uniqueIndex:idx_inventory_slot" json:"product_id"` // 商品ID
	VariantID         *uint          `gorm:"uniqueIndex:idx_inventory_slot" json:"variant_id,omitempty"`      // 变体ID（为空表示商品级库存）
	Quantity          int            `gorm:"not null;default:0" json:"quantity"`                              // 在库总量
	ReservedQuantity  int            `gorm:"not null;default:0" json:"reserved_quantity"`                     // 已预占量（待收款订单）
	LowStockThreshold int            `gorm:"not null;default:0" json:"low_stock_threshold"`                   // 低库存告警阈值
	TrackInventory    bool           `gorm:"not null;default:true" json:"track_inventory"`                    // 是否跟踪库存（关闭后视为永远有货）
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	// 关联
	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联变体
}

// TableName 指定表名
func (Inventory) TableName() string {
	return "inventories"
}

// Available 可售量 = 在库总量 - 已预占量（不为负）
func (i *Inventory) Available() int {
	available := i.Quantity - i.ReservedQuantity
	if available < 0 {
		return 0
	}
	return available
}

// InStock 是否有货（不跟踪库存时恒为有货）
func (i *Inventory) InStock() bool {
	return !i.TrackInventory || i.Available() > 0
}

// IsLowStock 可售量是否低于告警阈值
func (i *Inventory) IsLowStock() bool {
	return i.LowStockThreshold > 0 && i.Available() <= i.LowStockThreshold
}
