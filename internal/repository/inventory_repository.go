package repository

import (
	"errors"

	"github.com/shelora/shelora/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存数据访问接口
type InventoryRepository interface {
	List(filter InventoryListFilter) ([]models.Inventory, int64, error)
	GetByID(id uint) (*models.Inventory, error)
	GetSlot(productID uint, variantID *uint) (*models.Inventory, error)
	ListByProduct(productID uint) ([]models.Inventory, error)
	Create(item *models.Inventory) error
	Update(item *models.Inventory) error
	Reserve(id uint, quantity int) (int64, error)
	Release(id uint, quantity int) (int64, error)
	Deduct(id uint, quantity int) (int64, error)
	Adjust(id uint, delta int) (int64, error)
	WithTx(tx *gorm.DB) InventoryRepository
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// List 库存列表
func (r *GormInventoryRepository) List(filter InventoryListFilter) ([]models.Inventory, int64, error) {
	query := r.db.Model(&models.Inventory{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.LowStock {
		query = query.Where("low_stock_threshold > 0 AND quantity - reserved_quantity <= low_stock_threshold")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Inventory
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Product").Preload("Variant").Order("id ASC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID 根据 ID 获取库存
func (r *GormInventoryRepository) GetByID(id uint) (*models.Inventory, error) {
	var item models.Inventory
	if err := r.db.Preload("Product").Preload("Variant").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetSlot 获取商品/变体对应的库存位
func (r *GormInventoryRepository) GetSlot(productID uint, variantID *uint) (*models.Inventory, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	query := r.db.Where("product_id = ?", productID)
	if variantID != nil && *variantID > 0 {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}
	var item models.Inventory
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByProduct 获取商品下全部库存位
func (r *GormInventoryRepository) ListByProduct(productID uint) ([]models.Inventory, error) {
	if productID == 0 {
		return nil, errors.New("invalid product id")
	}
	var items []models.Inventory
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建库存位
func (r *GormInventoryRepository) Create(item *models.Inventory) error {
	if item == nil {
		return errors.New("inventory is nil")
	}
	return r.db.Create(item).Error
}

// Update 更新库存位
func (r *GormInventoryRepository) Update(item *models.Inventory) error {
	if item == nil {
		return errors.New("inventory is nil")
	}
	return r.db.Save(item).Error
}

// Reserve 预占库存（可售量不足时不更新任何行）
func (r *GormInventoryRepository) Reserve(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid inventory reserve params")
	}
	result := r.db.Model(&models.Inventory{}).
		Where("id = ? AND quantity - reserved_quantity >= ?", id, quantity).
		Update("reserved_quantity", gorm.Expr("reserved_quantity + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Release 释放预占（不足量时收敛到 0，不会出现负数）
func (r *GormInventoryRepository) Release(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid inventory release params")
	}
	result := r.db.Model(&models.Inventory{}).
		Where("id = ?", id).
		Update("reserved_quantity", gorm.Expr(
			"CASE WHEN reserved_quantity >= ? THEN reserved_quantity - ? ELSE 0 END", quantity, quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Deduct 扣减库存（签收后预占转出库，在库不足时不更新任何行）
func (r *GormInventoryRepository) Deduct(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid inventory deduct params")
	}
	result := r.db.Model(&models.Inventory{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"quantity":          gorm.Expr("quantity - ?", quantity),
			"reserved_quantity": gorm.Expr("CASE WHEN reserved_quantity >= ? THEN reserved_quantity - ? ELSE 0 END", quantity, quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Adjust 调整在库总量（调整后为负时不更新任何行）
func (r *GormInventoryRepository) Adjust(id uint, delta int) (int64, error) {
	if id == 0 || delta == 0 {
		return 0, errors.New("invalid inventory adjust params")
	}
	result := r.db.Model(&models.Inventory{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
