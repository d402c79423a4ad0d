package models

import (
	"time"

	"gorm.io/gorm"
)

// Album 专辑表（多个商品打包售卖）
type Album struct {
	ID          uint           `gorm:"primarykey" json:"id"`                           // 主键
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`               // 唯一标识
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`        // 专辑标题
	Description string         `gorm:"type:text" json:"description"`                   // 专辑描述
	CoverImage  string         `gorm:"type:varchar(500)" json:"cover_image"`           // 封面图
	Price           *Money     `gorm:"type:decimal(20,2)" json:"price,omitempty"`                      // 固定打包价（为空时按成员商品合计计价）
	DiscountPercent float64    `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percentage"` // 打包折扣百分比（0 表示不打折）
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`            // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`              // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                        // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                     // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                 // 软删除时间

	Products []AlbumProduct `gorm:"foreignKey:AlbumID" json:"products,omitempty"` // 成员商品
}

// TableName 指定表名
func (Album) TableName() string {
	return "albums"
}

// AlbumProduct 专辑成员商品表
type AlbumProduct struct {
	ID        uint  `gorm:"primarykey" json:"id"`                                         // 主键
	AlbumID   uint  `gorm:"not null;index;uniqueIndex:idx_album_product" json:"album_id"` // 专辑ID
	ProductID uint  `gorm:"not null;uniqueIndex:idx_album_product" json:"product_id"`     // 商品ID
	VariantID *uint `gorm:"uniqueIndex:idx_album_product" json:"variant_id,omitempty"`    // 指定变体（可为空）
	Quantity  int   `gorm:"not null;default:1" json:"quantity"`                           // 打包数量

	// 关联
	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联变体
}

// TableName 指定表名
func (AlbumProduct) TableName() string {
	return "album_products"
}
