package repository

import (
	"errors"

	"github.com/shelora/shelora/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetOrCreateByUser(userID uint) (*models.Cart, error)
	Save(cart *models.Cart) error
	GetItem(cartID, itemID uint) (*models.CartItem, error)
	FindLine(cartID uint, itemType string, productID, variantID, albumID *uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItem(item *models.CartItem) error
	DeleteItem(cartID, itemID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func (r *GormCartRepository) preloadItems(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Variant").
		Preload("Items.Album").
		Preload("Items.Album.Products").
		Preload("Items.Album.Products.Product").
		Preload("Items.Album.Products.Variant").
		Preload("Coupon")
}

// GetByUser 获取用户购物车（不存在返回 nil）
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}
	var cart models.Cart
	if err := r.preloadItems(r.db).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateByUser 获取用户购物车，不存在时创建空车
func (r *GormCartRepository) GetOrCreateByUser(userID uint) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// Save 保存购物车汇总字段
func (r *GormCartRepository) Save(cart *models.Cart) error {
	if cart == nil {
		return errors.New("cart is nil")
	}
	return r.db.Omit("Items", "Coupon").Save(cart).Error
}

// GetItem 获取购物车项（校验归属）
func (r *GormCartRepository) GetItem(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Preload("Product").Preload("Variant").Preload("Album").
		Where("cart_id = ? AND id = ?", cartID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindLine 按行类型与目标查找已有购物车行（用于合并数量）
func (r *GormCartRepository) FindLine(cartID uint, itemType string, productID, variantID, albumID *uint) (*models.CartItem, error) {
	query := r.db.Where("cart_id = ? AND item_type = ?", cartID, itemType)
	if productID != nil {
		query = query.Where("product_id = ?", *productID)
	} else {
		query = query.Where("product_id IS NULL")
	}
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}
	if albumID != nil {
		query = query.Where("album_id = ?", *albumID)
	} else {
		query = query.Where("album_id IS NULL")
	}

	var item models.CartItem
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	if item == nil {
		return errors.New("cart item is nil")
	}
	return r.db.Create(item).Error
}

// UpdateItem 更新购物车项
func (r *GormCartRepository) UpdateItem(item *models.CartItem) error {
	if item == nil {
		return errors.New("cart item is nil")
	}
	return r.db.Omit("Product", "Variant", "Album").Save(item).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(cartID, itemID uint) error {
	return r.db.Where("cart_id = ? AND id = ?", cartID, itemID).Delete(&models.CartItem{}).Error
}

// ClearItems 清空购物车项
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
