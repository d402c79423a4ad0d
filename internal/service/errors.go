package service

import "errors"

// 业务错误定义（处理层据此映射响应码）
var (
	// 校验类
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidAdjustment = errors.New("adjustment quantity is invalid")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSlugExists        = errors.New("slug already exists")
	ErrSKUExists         = errors.New("sku already exists")

	// 未找到类
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrAlbumNotFound     = errors.New("album not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInventoryNotFound = errors.New("inventory not found")
	ErrBannerNotFound    = errors.New("banner not found")
	ErrVariationNotFound = errors.New("variation not found")
	ErrReviewNotFound    = errors.New("review not found")

	// 评价/收藏类
	ErrReviewExists      = errors.New("product already reviewed by this user")
	ErrWishlistDuplicate = errors.New("product already in wishlist")

	// 库存类
	ErrOutOfStock         = errors.New("item out of stock")
	ErrStockConflict      = errors.New("insufficient stock to reserve")
	ErrNegativeInventory  = errors.New("inventory cannot go negative")
	ErrInventoryUntracked = errors.New("inventory is not tracked")

	// 优惠券类
	ErrCouponCodeExists       = errors.New("coupon code already exists")
	ErrCouponTypeInvalid      = errors.New("coupon type is invalid")
	ErrCouponInactive         = errors.New("coupon is not active")
	ErrCouponNotStarted       = errors.New("coupon is not yet valid")
	ErrCouponExpired          = errors.New("coupon has expired")
	ErrCouponMinAmount        = errors.New("order amount below coupon minimum")
	ErrCouponUsageLimit       = errors.New("coupon usage limit reached")
	ErrCouponPerUserLimit     = errors.New("coupon per-user limit reached")

	// 购物车/下单类
	ErrCartEmpty         = errors.New("cart is empty")
	ErrOrderCreateFailed = errors.New("order create failed")

	// 状态冲突类
	ErrOrderStatusInvalid    = errors.New("order status transition not allowed")
	ErrOrderNotCancellable   = errors.New("order cannot be cancelled in current status")
	ErrPaymentStateConflict  = errors.New("payment is not in a verifiable state")
	ErrPaymentMethodInvalid  = errors.New("payment method does not support this operation")
	ErrCategoryInUse         = errors.New("category still has products")

	// 权限类
	ErrPermissionDenied = errors.New("permission denied")
)
