package repository

import (
	"errors"

	"github.com/shelora/shelora/internal/models"

	"gorm.io/gorm"
)

// ProductVariantRepository 商品变体数据访问接口
type ProductVariantRepository interface {
	ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error)
	GetByID(id uint) (*models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	Delete(id uint) error
	ReplaceOptions(variantID uint, optionIDs []uint) error
	WithTx(tx *gorm.DB) ProductVariantRepository
}

// GormProductVariantRepository GORM 实现
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewProductVariantRepository 创建变体仓库
func NewProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductVariantRepository) WithTx(tx *gorm.DB) ProductVariantRepository {
	if tx == nil {
		return r
	}
	return &GormProductVariantRepository{db: tx}
}

// ListByProduct 根据商品获取变体列表
func (r *GormProductVariantRepository) ListByProduct(productID uint, onlyActive bool) ([]models.ProductVariant, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	query := r.db.Model(&models.ProductVariant{}).Where("product_id = ?", productID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var variants []models.ProductVariant
	if err := query.Preload("Options").Order("sort_order DESC, id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID 根据 ID 获取变体
func (r *GormProductVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	if id == 0 {
		return nil, errors.New("invalid variant id")
	}
	var variant models.ProductVariant
	if err := r.db.Preload("Product").Preload("Options").First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Create 创建变体
func (r *GormProductVariantRepository) Create(variant *models.ProductVariant) error {
	if variant == nil {
		return errors.New("variant is nil")
	}
	return r.db.Create(variant).Error
}

// Update 更新变体
func (r *GormProductVariantRepository) Update(variant *models.ProductVariant) error {
	if variant == nil {
		return errors.New("variant is nil")
	}
	return r.db.Save(variant).Error
}

// Delete 删除变体
func (r *GormProductVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// ReplaceOptions 重建变体与规格选项的关联
func (r *GormProductVariantRepository) ReplaceOptions(variantID uint, optionIDs []uint) error {
	if variantID == 0 {
		return errors.New("invalid variant id")
	}
	if err := r.db.Where("variant_id = ?", variantID).Delete(&models.ProductVariantOption{}).Error; err != nil {
		return err
	}
	if len(optionIDs) == 0 {
		return nil
	}
	rows := make([]models.ProductVariantOption, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		rows = append(rows, models.ProductVariantOption{VariantID: variantID, VariationOptionID: optionID})
	}
	return r.db.Create(&rows).Error
}
