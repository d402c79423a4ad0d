package service

import (
	"fmt"
	"strings"

	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	variantRepo   repository.ProductVariantRepository
	variationRepo repository.VariationRepository
	inventoryRepo repository.InventoryRepository
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	variantRepo repository.ProductVariantRepository,
	variationRepo repository.VariationRepository,
	inventoryRepo repository.InventoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		variantRepo:   variantRepo,
		variationRepo: variationRepo,
		inventoryRepo: inventoryRepo,
	}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID  uint
	Slug        string
	SKU         string
	Name        string
	Description string
	Price       models.Money
	SalePrice   *models.Money
	WeightKg    float64
	Images      []string
	IsActive    *bool
	IsFeatured  *bool
	SortOrder   int
	InitialQty  int
}

// VariantInput 创建/更新变体输入
type VariantInput struct {
	SKU             string
	Name            string
	PriceAdjustment models.Money
	WeightKg        float64
	Image           string
	IsActive        *bool
	SortOrder       int
	OptionIDs       []uint
	InitialQty      int
}

// StockInfo 商品/变体的库存口径
type StockInfo struct {
	Available int  `json:"available"`
	InStock   bool `json:"in_stock"`
	Tracked   bool `json:"tracked"`
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 商品详情（买家侧）
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByID 商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// StockFor 返回商品/变体的可售口径（无库存位或未跟踪视为可售）
func (s *ProductService) StockFor(productID uint, variantID *uint) (StockInfo, error) {
	slot, err := s.inventoryRepo.GetSlot(productID, variantID)
	if err != nil {
		return StockInfo{}, err
	}
	if slot == nil || !slot.TrackInventory {
		return StockInfo{Available: 0, InStock: true, Tracked: false}, nil
	}
	return StockInfo{Available: slot.Available(), InStock: slot.InStock(), Tracked: true}, nil
}

// Create 创建商品并初始化主库存位
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if input.InitialQty < 0 {
		return nil, ErrInvalidAdjustment
	}

	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	existing, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	product := models.Product{
		CategoryID:  input.CategoryID,
		Slug:        slug,
		SKU:         strings.TrimSpace(input.SKU),
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		WeightKg:    input.WeightKg,
		Images:      models.StringArray(input.Images),
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).Create(&product); err != nil {
			return err
		}
		slot := models.Inventory{
			ProductID:      product.ID,
			Quantity:       input.InitialQty,
			TrackInventory: true,
		}
		return s.inventoryRepo.WithTx(tx).Create(&slot)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != product.Slug {
		existing, err := s.productRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, ErrSlugExists
		}
		product.Slug = slug
	}
	if input.CategoryID > 0 && input.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		product.CategoryID = input.CategoryID
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.SKU = strings.TrimSpace(input.SKU)
	product.Description = input.Description
	product.Price = input.Price
	product.SalePrice = input.SalePrice
	product.WeightKg = input.WeightKg
	product.Images = models.StringArray(input.Images)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.GetByID(product.ID)
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(product.ID)
}

// CreateVariant 为商品创建变体并初始化变体库存位
func (s *ProductService) CreateVariant(productID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.GetByID(productID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if input.InitialQty < 0 {
		return nil, ErrInvalidAdjustment
	}
	if err := s.validateVariantOptions(input.OptionIDs); err != nil {
		return nil, err
	}

	variant := models.ProductVariant{
		ProductID:       product.ID,
		SKU:             strings.TrimSpace(input.SKU),
		Name:            name,
		PriceAdjustment: input.PriceAdjustment,
		WeightKg:        input.WeightKg,
		Image:           strings.TrimSpace(input.Image),
		IsActive:        true,
		SortOrder:       input.SortOrder,
	}
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		if err := variantRepo.Create(&variant); err != nil {
			return err
		}
		if err := variantRepo.ReplaceOptions(variant.ID, input.OptionIDs); err != nil {
			return err
		}
		slot := models.Inventory{
			ProductID:      product.ID,
			VariantID:      &variant.ID,
			Quantity:       input.InitialQty,
			TrackInventory: true,
		}
		return s.inventoryRepo.WithTx(tx).Create(&slot)
	})
	if err != nil {
		return nil, err
	}
	return s.variantRepo.GetByID(variant.ID)
}

// UpdateVariant 更新变体
func (s *ProductService) UpdateVariant(variantID uint, input VariantInput) (*models.ProductVariant, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	if err := s.validateVariantOptions(input.OptionIDs); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		variant.Name = name
	}
	variant.SKU = strings.TrimSpace(input.SKU)
	variant.PriceAdjustment = input.PriceAdjustment
	variant.WeightKg = input.WeightKg
	variant.Image = strings.TrimSpace(input.Image)
	variant.SortOrder = input.SortOrder
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		if err := variantRepo.Update(variant); err != nil {
			return err
		}
		return variantRepo.ReplaceOptions(variant.ID, input.OptionIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.variantRepo.GetByID(variant.ID)
}

// DeleteVariant 删除变体
func (s *ProductService) DeleteVariant(variantID uint) error {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrVariantNotFound
	}
	return s.variantRepo.Delete(variant.ID)
}

// validateVariantOptions 校验规格选项存在且同一规格类型至多出现一次
func (s *ProductService) validateVariantOptions(optionIDs []uint) error {
	if len(optionIDs) == 0 {
		return nil
	}
	options, err := s.variationRepo.ListOptionsByIDs(optionIDs)
	if err != nil {
		return err
	}
	if len(options) != len(optionIDs) {
		return ErrVariationNotFound
	}
	seen := make(map[uint]bool, len(options))
	for _, option := range options {
		if seen[option.VariationTypeID] {
			return fmt.Errorf("%w: duplicate option for one variation type", ErrInvalidInput)
		}
		seen[option.VariationTypeID] = true
	}
	return nil
}
