package service

import (
	"errors"
	"testing"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"

	"github.com/shopspring/decimal"
)

func TestCartAddProductLocksUnitPrice(t *testing.T) {
	env := newServiceTestEnv(t, "cart_lock")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	product := createTestProduct(t, env.db, category.ID, "sihina-lowak-lp", "6500", 0.35)
	createTestSlot(t, env.db, product.ID, nil, 40)

	cart, err := env.cart.AddProduct(user.ID, product.ID, nil, 1)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if !cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("6500")) {
		t.Fatalf("expected unit price 6500, got %s", cart.Items[0].UnitPrice)
	}

	// 目录调价后，已入车的行沿用加入时锁定的单价
	if err := env.db.Model(product).Update("price", "9000").Error; err != nil {
		t.Fatalf("reprice product: %v", err)
	}
	cart, err = env.cart.UpdateItemQuantity(user.ID, cart.Items[0].ID, 2)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if !cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("6500")) {
		t.Fatalf("expected frozen unit price 6500, got %s", cart.Items[0].UnitPrice)
	}
	if !cart.Subtotal.Equal(decimal.RequireFromString("13000")) {
		t.Fatalf("expected subtotal 13000, got %s", cart.Subtotal)
	}
}

func TestCartAddProductMergesLines(t *testing.T) {
	env := newServiceTestEnv(t, "cart_merge")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "cassettes")
	product := createTestProduct(t, env.db, category.ID, "live-88", "1800", 0.08)
	createTestSlot(t, env.db, product.ID, nil, 10)

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := env.cart.AddProduct(user.ID, product.ID, nil, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
		t.Fatalf("expected single merged line of 5, got %+v", cart.Items)
	}
}

func TestCartAddProductStockAndStateChecks(t *testing.T) {
	env := newServiceTestEnv(t, "cart_checks")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "merch")
	product := createTestProduct(t, env.db, category.ID, "logo-tee", "3500", 0.25)
	createTestSlot(t, env.db, product.ID, nil, 3)

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 4); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	// 合并后的总量同样受库存约束
	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 2); err != nil {
		t.Fatalf("add within stock: %v", err)
	}
	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 2); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected merged quantity to exceed stock, got %v", err)
	}

	if err := env.db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product: %v", err)
	}
	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for inactive product, got %v", err)
	}
}

func TestCartAddProductVariant(t *testing.T) {
	env := newServiceTestEnv(t, "cart_variant")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "merch")
	product := createTestProduct(t, env.db, category.ID, "logo-tee", "3500", 0.25)
	other := createTestProduct(t, env.db, category.ID, "other-tee", "3000", 0.25)
	variant := createTestVariant(t, env.db, product.ID, "logo-tee-xl", "250", 0)
	createTestSlot(t, env.db, product.ID, &variant.ID, 5)

	cart, err := env.cart.AddProduct(user.ID, product.ID, &variant.ID, 1)
	if err != nil {
		t.Fatalf("add variant line: %v", err)
	}
	if !cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("3750")) {
		t.Fatalf("expected variant price 3750, got %s", cart.Items[0].UnitPrice)
	}

	// 变体必须挂在所选商品之下
	if _, err := env.cart.AddProduct(user.ID, other.ID, &variant.ID, 1); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestCartAddAlbum(t *testing.T) {
	env := newServiceTestEnv(t, "cart_album")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	lp := createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)
	cassette := createTestProduct(t, env.db, category.ID, "cassette", "1800", 0.08)
	createTestSlot(t, env.db, lp.ID, nil, 10)
	cassetteSlot := createTestSlot(t, env.db, cassette.ID, nil, 10)

	album := createTestAlbum(t, env.db, &models.Album{
		Slug:            "collector-bundle",
		Title:           "Collector Bundle",
		DiscountPercent: 10,
		IsActive:        true,
		Products: []models.AlbumProduct{
			{ProductID: lp.ID, Quantity: 1},
			{ProductID: cassette.ID, Quantity: 1},
		},
	})

	cart, err := env.cart.AddAlbum(user.ID, album.ID, 1)
	if err != nil {
		t.Fatalf("add album: %v", err)
	}
	// (6500 + 1800) × 0.9
	if !cart.Items[0].UnitPrice.Equal(decimal.RequireFromString("7470")) {
		t.Fatalf("expected album price 7470, got %s", cart.Items[0].UnitPrice)
	}
	if cart.Items[0].ItemType != constants.CartItemTypeAlbum {
		t.Fatalf("expected album line, got %q", cart.Items[0].ItemType)
	}

	// 任一成员缺货则整张专辑不可加购
	if err := env.db.Model(cassetteSlot).Update("quantity", 0).Error; err != nil {
		t.Fatalf("drain member stock: %v", err)
	}
	if _, err := env.cart.AddAlbum(user.ID, album.ID, 1); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock for drained member, got %v", err)
	}
}

func TestCartRecalculateTotalsIdentity(t *testing.T) {
	env := newServiceTestEnv(t, "cart_totals")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	product := createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)
	createTestSlot(t, env.db, product.ID, nil, 10)

	createTestCoupon(t, env.db, &models.Coupon{
		Code:     "FLAT500",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromString("500"),
		IsActive: true,
	})

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 1); err != nil {
		t.Fatalf("add product: %v", err)
	}
	cart, err := env.cart.ApplyCoupon(user.ID, "FLAT500")
	if err != nil {
		t.Fatalf("apply coupon: %v", err)
	}

	// 0.35kg -> 1kg 档，默认费率 500/kg
	if !cart.Subtotal.Equal(decimal.RequireFromString("6500")) {
		t.Fatalf("expected subtotal 6500, got %s", cart.Subtotal)
	}
	if !cart.DiscountAmount.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected discount 500, got %s", cart.DiscountAmount)
	}
	if !cart.ShippingAmount.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected shipping 500, got %s", cart.ShippingAmount)
	}
	if !cart.TaxAmount.IsZero() {
		t.Fatalf("expected zero tax, got %s", cart.TaxAmount)
	}
	want := cart.Subtotal.Sub(cart.DiscountAmount.Decimal).Add(cart.ShippingAmount.Decimal)
	if !cart.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, cart.TotalAmount)
	}

	cart, err = env.cart.RemoveCoupon(user.ID)
	if err != nil {
		t.Fatalf("remove coupon: %v", err)
	}
	if cart.CouponID != nil || !cart.DiscountAmount.IsZero() {
		t.Fatalf("expected coupon cleared, got %+v", cart)
	}
}

func TestCartInvalidCouponKeptWithZeroDiscount(t *testing.T) {
	env := newServiceTestEnv(t, "cart_coupon_zero")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "cassettes")
	product := createTestProduct(t, env.db, category.ID, "cassette", "1800", 0.08)
	createTestSlot(t, env.db, product.ID, nil, 10)

	createTestCoupon(t, env.db, &models.Coupon{
		Code:           "BIGSPEND",
		Type:           constants.CouponTypeFixed,
		Value:          models.NewMoneyFromString("500"),
		MinOrderAmount: models.NewMoneyFromString("5000"),
		IsActive:       true,
	})

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 1); err != nil {
		t.Fatalf("add product: %v", err)
	}
	cart, err := env.cart.ApplyCoupon(user.ID, "BIGSPEND")
	if err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	// 门槛未达时保留优惠码，折扣按 0 计
	if cart.CouponID == nil {
		t.Fatalf("expected coupon to stay applied")
	}
	if !cart.DiscountAmount.IsZero() {
		t.Fatalf("expected zero discount below threshold, got %s", cart.DiscountAmount)
	}

	if _, err := env.cart.ApplyCoupon(user.ID, "NOSUCH"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	env := newServiceTestEnv(t, "cart_clear")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	product := createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)
	createTestSlot(t, env.db, product.ID, nil, 10)

	cart, err := env.cart.AddProduct(user.ID, product.ID, nil, 2)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}

	if _, err := env.cart.RemoveItem(user.ID, cart.Items[0].ID+999); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}

	cart, err = env.cart.RemoveItem(user.ID, cart.Items[0].ID)
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(cart.Items) != 0 || !cart.TotalAmount.IsZero() {
		t.Fatalf("expected empty cart with zero total, got %+v", cart)
	}

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 1); err != nil {
		t.Fatalf("re-add product: %v", err)
	}
	cart, err = env.cart.Clear(user.ID)
	if err != nil {
		t.Fatalf("clear cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected cleared cart, got %d lines", len(cart.Items))
	}
}

func TestCartUntrackedInventoryUnlimited(t *testing.T) {
	env := newServiceTestEnv(t, "cart_untracked")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "merch")
	product := createTestProduct(t, env.db, category.ID, "digital-art", "1000", 0)

	slot := createTestSlot(t, env.db, product.ID, nil, 0)
	if err := env.db.Model(slot).Update("track_inventory", false).Error; err != nil {
		t.Fatalf("untrack slot: %v", err)
	}

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 99); err != nil {
		t.Fatalf("expected untracked slot to allow any quantity, got %v", err)
	}
}
