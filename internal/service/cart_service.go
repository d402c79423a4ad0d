package service

import (
	"fmt"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/logger"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车业务服务
type CartService struct {
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	variantRepo   repository.ProductVariantRepository
	albumRepo     repository.AlbumRepository
	inventoryRepo repository.InventoryRepository
	couponSvc     *CouponService
	settingSvc    *SettingService
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	albumRepo repository.AlbumRepository,
	inventoryRepo repository.InventoryRepository,
	couponSvc *CouponService,
	settingSvc *SettingService,
) *CartService {
	return &CartService{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		albumRepo:     albumRepo,
		inventoryRepo: inventoryRepo,
		couponSvc:     couponSvc,
		settingSvc:    settingSvc,
	}
}

// GetCart 获取用户购物车（不存在时创建空车）
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	return s.cartRepo.GetOrCreateByUser(userID)
}

// AddProduct 添加商品行。已有相同行时合并数量并沿用加入时锁定的单价。
func (s *CartService) AddProduct(userID, productID uint, variantID *uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	var variant *models.ProductVariant
	if variantID != nil && *variantID > 0 {
		variant, err = s.variantRepo.GetByID(*variantID)
		if err != nil {
			return nil, err
		}
		if variant == nil || variant.ProductID != product.ID || !variant.IsActive {
			return nil, ErrVariantNotFound
		}
	} else {
		variantID = nil
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindLine(cart.ID, constants.CartItemTypeProduct, &productID, variantID, nil)
	if err != nil {
		return nil, err
	}

	requested := quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if err := s.checkProductStock(product.ID, variantID, requested, product.Name); err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ItemType:  constants.CartItemTypeProduct,
			ProductID: &productID,
			VariantID: variantID,
			Quantity:  quantity,
			UnitPrice: models.NewMoneyFromDecimal(VariantUnitPrice(product, variant)),
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.recalculateAndReload(userID)
}

// AddAlbum 添加专辑行
func (s *CartService) AddAlbum(userID, albumID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	album, err := s.albumRepo.GetByID(albumID)
	if err != nil {
		return nil, err
	}
	if album == nil || !album.IsActive {
		return nil, ErrAlbumNotFound
	}
	if err := s.checkAlbumStock(album); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindLine(cart.ID, constants.CartItemTypeAlbum, nil, nil, &albumID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ItemType:  constants.CartItemTypeAlbum,
			AlbumID:   &albumID,
			Quantity:  quantity,
			UnitPrice: models.NewMoneyFromDecimal(AlbumUnitPrice(album)),
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.recalculateAndReload(userID)
}

// UpdateItemQuantity 修改行数量（至少为 1）
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if item.ItemType == constants.CartItemTypeProduct && item.ProductID != nil {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		if err := s.checkProductStock(*item.ProductID, item.VariantID, quantity, name); err != nil {
			return nil, err
		}
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return s.recalculateAndReload(userID)
}

// RemoveItem 删除购物车行
func (s *CartService) RemoveItem(userID, itemID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.recalculateAndReload(userID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return nil, err
	}
	return s.recalculateAndReload(userID)
}

// ApplyCoupon 应用优惠码。此处只要求优惠码存在，完整可用性在重算与下单时校验。
func (s *CartService) ApplyCoupon(userID uint, code string) (*models.Cart, error) {
	coupon, err := s.couponSvc.GetByCode(code)
	if err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	cart.CouponID = &coupon.ID
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.recalculateAndReload(userID)
}

// RemoveCoupon 移除优惠码
func (s *CartService) RemoveCoupon(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	cart.CouponID = nil
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.recalculateAndReload(userID)
}

// Recalculate 重算购物车汇总并落库。所有变更操作完成前必须经过此函数。
// 合计恒等式：total = subtotal - discount + shipping（税费恒为 0，价格均为含税价）。
func (s *CartService) Recalculate(cart *models.Cart) error {
	if cart == nil {
		return ErrInvalidInput
	}

	subtotal := decimal.Zero
	lines := make([]ShippingLine, 0, len(cart.Items))
	cfg := s.settingSvc.ShippingConfig()

	for i := range cart.Items {
		item := &cart.Items[i]
		subtotal = subtotal.Add(LineSubtotal(item.UnitPrice.Decimal, item.Quantity))
		lines = append(lines, ShippingLine{
			UnitWeightKg: s.lineUnitWeight(item, cfg.DefaultWeightKg),
			Quantity:     item.Quantity,
		})
	}

	shipping := decimal.Zero
	if len(cart.Items) > 0 {
		shipping = CalculateShipping(subtotal, lines, cfg)
	}

	discount := decimal.Zero
	if cart.CouponID != nil {
		coupon := cart.Coupon
		if coupon == nil {
			loaded, err := s.couponSvc.couponRepo.GetByID(*cart.CouponID)
			if err != nil {
				return err
			}
			coupon = loaded
		}
		if err := s.couponSvc.Validate(coupon, subtotal, cart.UserID); err == nil {
			discount = s.couponSvc.CalculateDiscount(coupon, subtotal)
		} else {
			logger.Debugw("cart_coupon_invalid_on_recalculate",
				"user_id", cart.UserID,
				"coupon_id", *cart.CouponID,
				"reason", err.Error(),
			)
		}
	}

	cart.Subtotal = models.NewMoneyFromDecimal(subtotal)
	cart.DiscountAmount = models.NewMoneyFromDecimal(discount)
	cart.ShippingAmount = models.NewMoneyFromDecimal(shipping)
	cart.TaxAmount = models.ZeroMoney()
	cart.TotalAmount = models.NewMoneyFromDecimal(subtotal.Sub(discount).Add(shipping))
	return s.cartRepo.Save(cart)
}

func (s *CartService) recalculateAndReload(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return s.cartRepo.GetOrCreateByUser(userID)
	}
	if err := s.Recalculate(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) lineUnitWeight(item *models.CartItem, defaultWeightKg float64) float64 {
	switch item.ItemType {
	case constants.CartItemTypeAlbum:
		return AlbumUnitWeightKg(item.Album, defaultWeightKg)
	default:
		if item.Variant != nil && item.Variant.WeightKg > 0 {
			return item.Variant.WeightKg
		}
		return ProductUnitWeightKg(item.Product, defaultWeightKg)
	}
}

// checkProductStock 校验商品/变体库存位可售量
func (s *CartService) checkProductStock(productID uint, variantID *uint, quantity int, name string) error {
	slot, err := s.inventoryRepo.GetSlot(productID, variantID)
	if err != nil {
		return err
	}
	if slot == nil || !slot.TrackInventory {
		return nil
	}
	if slot.Available() < quantity {
		return fmt.Errorf("%w: %s", ErrOutOfStock, name)
	}
	return nil
}

// checkAlbumStock 校验专辑成员商品全部有货（成员打包数量为粒度）
func (s *CartService) checkAlbumStock(album *models.Album) error {
	for i := range album.Products {
		member := album.Products[i]
		slot, err := s.inventoryRepo.GetSlot(member.ProductID, member.VariantID)
		if err != nil {
			return err
		}
		if slot == nil || !slot.TrackInventory {
			continue
		}
		qty := member.Quantity
		if qty <= 0 {
			qty = 1
		}
		if slot.Available() < qty {
			name := album.Title
			if member.Product != nil {
				name = member.Product.Name
			}
			return fmt.Errorf("%w: %s", ErrOutOfStock, name)
		}
	}
	return nil
}
