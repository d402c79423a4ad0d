package models

import (
	"time"

	"gorm.io/gorm"
)

// VariationType 规格类型表（如 颜色 / 尺码）
type VariationType struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                       // 主键
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	Name       string         `gorm:"type:varchar(120);not null" json:"name"`                     // 规格名称
	InputType  string         `gorm:"type:varchar(20);not null;default:'select'" json:"input_type"` // 前端输入形态（select/color_picker/text）
	IsRequired bool           `gorm:"default:false" json:"is_required"`                           // 下单时是否必选
	IsActive   bool           `gorm:"default:true;index" json:"is_active"`                        // 是否启用
	SortOrder  int            `gorm:"default:0;index" json:"sort_order"`                          // 排序权重
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	Options []VariationOption `gorm:"foreignKey:VariationTypeID" json:"options,omitempty"` // 规格选项
}

// TableName 指定表名
func (VariationType) TableName() string {
	return "variation_types"
}

// VariationOption 规格选项表（如 红色 / XL）
type VariationOption struct {
	ID              uint           `gorm:"primarykey" json:"id"`                     // 主键
	VariationTypeID uint           `gorm:"not null;index" json:"variation_type_id"` // 规格类型ID
	Value           string         `gorm:"type:varchar(120);not null" json:"value"` // 选项值
	Label           string         `gorm:"type:varchar(120)" json:"label"`          // 展示文案（为空时取 Value）
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`     // 是否启用
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`       // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间

	VariationType *VariationType `gorm:"foreignKey:VariationTypeID" json:"variation_type,omitempty"` // 规格类型
}

// TableName 指定表名
func (VariationOption) TableName() string {
	return "variation_options"
}

// ProductVariantOption 变体与规格选项关联表
type ProductVariantOption struct {
	VariantID         uint `gorm:"primarykey;autoIncrement:false" json:"variant_id"`          // 变体ID
	VariationOptionID uint `gorm:"primarykey;autoIncrement:false" json:"variation_option_id"` // 规格选项ID
}

// TableName 指定表名
func (ProductVariantOption) TableName() string {
	return "product_variant_options"
}
