package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品变体表
type ProductVariant struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                                 // 主键
	ProductID       uint           `gorm:"not null;index;uniqueIndex:idx_product_variant_sku" json:"product_id"` // 商品ID
	SKU             string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_variant_sku" json:"sku"` // 变体编码（同商品内唯一）
	Name            string         `gorm:"type:varchar(200);not null" json:"name"`                               // 变体名称（如 红色 / L）
	PriceAdjustment Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_adjustment"`        // 价格调整量（叠加在商品生效售价上，可为负）
	WeightKg        float64        `gorm:"type:decimal(10,3);not null;default:0" json:"weight_kg"`               // 变体重量（千克，0 表示沿用商品重量）
	Image           string         `gorm:"type:varchar(500)" json:"image"`                                       // 变体图片
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`                                  // 是否启用
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                                    // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                              // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                           // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                       // 软删除时间

	// 关联
	Product *Product          `gorm:"foreignKey:ProductID" json:"product,omitempty"`                                              // 关联商品
	Options []VariationOption `gorm:"many2many:product_variant_options;joinForeignKey:VariantID;joinReferences:VariationOptionID" json:"options,omitempty"` // 规格选项
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}

// EffectiveWeightKg 返回变体生效重量（未设置时回退到商品重量）
func (v *ProductVariant) EffectiveWeightKg() float64 {
	if v.WeightKg > 0 {
		return v.WeightKg
	}
	if v.Product != nil {
		return v.Product.WeightKg
	}
	return 0
}
