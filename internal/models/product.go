package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                         // 分类ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                          // 唯一标识
	SKU         string         `gorm:"type:varchar(64);uniqueIndex" json:"sku"`                   // 商品编码
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`                    // 商品名称
	Description string         `gorm:"type:text" json:"description"`                              // 商品描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 标准售价
	SalePrice   *Money         `gorm:"type:decimal(20,2)" json:"sale_price,omitempty"`            // 促销价（为空表示无促销）
	WeightKg    float64        `gorm:"type:decimal(10,3);not null;default:0" json:"weight_kg"`    // 重量（千克，0 表示使用默认重量）
	Images      StringArray    `gorm:"type:json" json:"images"`                                   // 图片数组
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                       // 是否上架
	IsFeatured  bool           `gorm:"default:false;index" json:"is_featured"`                    // 是否推荐位展示
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                         // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	// 关联
	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`  // 变体列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 返回生效售价（促销价存在且低于标准价时取促销价）
func (p *Product) EffectivePrice() Money {
	if p.SalePrice != nil && p.SalePrice.IsPositive() && p.SalePrice.LessThan(p.Price.Decimal) {
		return *p.SalePrice
	}
	return p.Price
}
