package repository

import (
	"errors"

	"github.com/shelora/shelora/internal/models"

	"gorm.io/gorm"
)

// VariationRepository 规格类型与选项数据访问接口
type VariationRepository interface {
	ListTypes(onlyActive bool) ([]models.VariationType, error)
	GetTypeByID(id uint) (*models.VariationType, error)
	GetTypeBySlug(slug string) (*models.VariationType, error)
	CreateType(item *models.VariationType) error
	UpdateType(item *models.VariationType) error
	DeleteType(id uint) error
	ListOptionsByType(typeID uint, onlyActive bool) ([]models.VariationOption, error)
	GetOptionByID(id uint) (*models.VariationOption, error)
	ListOptionsByIDs(ids []uint) ([]models.VariationOption, error)
	CreateOption(item *models.VariationOption) error
	UpdateOption(item *models.VariationOption) error
	DeleteOption(id uint) error
}

// GormVariationRepository GORM 实现
type GormVariationRepository struct {
	db *gorm.DB
}

// NewVariationRepository 创建规格仓库
func NewVariationRepository(db *gorm.DB) *GormVariationRepository {
	return &GormVariationRepository{db: db}
}

// ListTypes 规格类型列表
func (r *GormVariationRepository) ListTypes(onlyActive bool) ([]models.VariationType, error) {
	query := r.db.Model(&models.VariationType{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var types []models.VariationType
	if err := query.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order DESC, id ASC")
	}).Order("sort_order DESC, id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetTypeByID 根据 ID 获取规格类型
func (r *GormVariationRepository) GetTypeByID(id uint) (*models.VariationType, error) {
	var item models.VariationType
	if err := r.db.Preload("Options").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetTypeBySlug 根据唯一标识获取规格类型
func (r *GormVariationRepository) GetTypeBySlug(slug string) (*models.VariationType, error) {
	var item models.VariationType
	if err := r.db.Preload("Options").Where("slug = ?", slug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateType 创建规格类型
func (r *GormVariationRepository) CreateType(item *models.VariationType) error {
	return r.db.Create(item).Error
}

// UpdateType 更新规格类型
func (r *GormVariationRepository) UpdateType(item *models.VariationType) error {
	return r.db.Save(item).Error
}

// DeleteType 删除规格类型（选项一并删除）
func (r *GormVariationRepository) DeleteType(id uint) error {
	if err := r.db.Where("variation_type_id = ?", id).Delete(&models.VariationOption{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.VariationType{}, id).Error
}

// ListOptionsByType 根据规格类型获取选项列表
func (r *GormVariationRepository) ListOptionsByType(typeID uint, onlyActive bool) ([]models.VariationOption, error) {
	if typeID == 0 {
		return nil, errors.New("invalid variation type id")
	}
	query := r.db.Model(&models.VariationOption{}).Where("variation_type_id = ?", typeID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	var options []models.VariationOption
	if err := query.Order("sort_order DESC, id ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// GetOptionByID 根据 ID 获取规格选项
func (r *GormVariationRepository) GetOptionByID(id uint) (*models.VariationOption, error) {
	var item models.VariationOption
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListOptionsByIDs 批量获取规格选项
func (r *GormVariationRepository) ListOptionsByIDs(ids []uint) ([]models.VariationOption, error) {
	if len(ids) == 0 {
		return []models.VariationOption{}, nil
	}
	var options []models.VariationOption
	if err := r.db.Where("id IN ?", ids).Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// CreateOption 创建规格选项
func (r *GormVariationRepository) CreateOption(item *models.VariationOption) error {
	return r.db.Create(item).Error
}

// UpdateOption 更新规格选项
func (r *GormVariationRepository) UpdateOption(item *models.VariationOption) error {
	return r.db.Save(item).Error
}

// DeleteOption 删除规格选项
func (r *GormVariationRepository) DeleteOption(id uint) error {
	if err := r.db.Where("variation_option_id = ?", id).Delete(&models.ProductVariantOption{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.VariationOption{}, id).Error
}
