package service

import (
	"github.com/shelora/shelora/internal/logger"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

// InventoryService 库存管理服务（后台）
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService 创建库存服务
func NewInventoryService(inventoryRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// List 库存列表（支持低库存过滤）
func (s *InventoryService) List(filter repository.InventoryListFilter) ([]models.Inventory, int64, error) {
	return s.inventoryRepo.List(filter)
}

// GetByID 库存位详情
func (s *InventoryService) GetByID(id uint) (*models.Inventory, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryNotFound
	}
	return item, nil
}

// Adjust 调整在库总量（delta 可正可负，调整后为负则拒绝）
func (s *InventoryService) Adjust(id uint, delta int) (*models.Inventory, error) {
	if delta == 0 {
		return nil, ErrInvalidAdjustment
	}
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	affected, err := s.inventoryRepo.Adjust(item.ID, delta)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNegativeInventory
	}

	updated, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	logger.Infow("inventory_adjusted",
		"inventory_id", id,
		"delta", delta,
		"quantity", updated.Quantity,
	)
	if updated.IsLowStock() {
		logger.Warnw("inventory_low_stock",
			"inventory_id", updated.ID,
			"product_id", updated.ProductID,
			"available", updated.Available(),
			"threshold", updated.LowStockThreshold,
		)
	}
	return updated, nil
}

// SetLowStockThreshold 设置低库存告警阈值
func (s *InventoryService) SetLowStockThreshold(id uint, threshold int) (*models.Inventory, error) {
	if threshold < 0 {
		return nil, ErrInvalidAdjustment
	}
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.LowStockThreshold = threshold
	if err := s.inventoryRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetTracking 开关库存跟踪（关闭后视为无限量可售）
func (s *InventoryService) SetTracking(id uint, track bool) (*models.Inventory, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	item.TrackInventory = track
	if err := s.inventoryRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// EnsureSlot 确保商品/变体存在库存位，不存在则以零库存创建
func (s *InventoryService) EnsureSlot(productID uint, variantID *uint) (*models.Inventory, error) {
	slot, err := s.inventoryRepo.GetSlot(productID, variantID)
	if err != nil {
		return nil, err
	}
	if slot != nil {
		return slot, nil
	}
	slot = &models.Inventory{
		ProductID:      productID,
		VariantID:      variantID,
		TrackInventory: true,
	}
	if err := s.inventoryRepo.Create(slot); err != nil {
		return nil, err
	}
	return slot, nil
}
