package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// serviceTestEnv 组装一套完整的服务依赖图，供各服务测试复用
type serviceTestEnv struct {
	db *gorm.DB

	userRepo      repository.UserRepository
	productRepo   repository.ProductRepository
	variantRepo   repository.ProductVariantRepository
	inventoryRepo repository.InventoryRepository
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	couponRepo    repository.CouponRepository
	paymentRepo   repository.PaymentRepository

	setting   *SettingService
	coupon    *CouponService
	cart      *CartService
	order     *OrderService
	payment   *PaymentService
	inventory *InventoryService
	product   *ProductService
	category  *CategoryService
	album     *AlbumService
	variation *VariationService
	review    *ReviewService
	wishlist  *WishlistService
}

func newServiceTestEnv(t *testing.T, name string) *serviceTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	env := &serviceTestEnv{
		db:            db,
		userRepo:      repository.NewUserRepository(db),
		productRepo:   repository.NewProductRepository(db),
		variantRepo:   repository.NewProductVariantRepository(db),
		inventoryRepo: repository.NewInventoryRepository(db),
		cartRepo:      repository.NewCartRepository(db),
		orderRepo:     repository.NewOrderRepository(db),
		couponRepo:    repository.NewCouponRepository(db),
		paymentRepo:   repository.NewPaymentRepository(db),
	}
	albumRepo := repository.NewAlbumRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	variationRepo := repository.NewVariationRepository(db)

	env.setting = NewSettingService(settingRepo)
	env.coupon = NewCouponService(env.couponRepo, env.orderRepo)
	env.cart = NewCartService(env.cartRepo, env.productRepo, env.variantRepo, albumRepo, env.inventoryRepo, env.coupon, env.setting)
	env.order = NewOrderService(env.orderRepo, env.cartRepo, env.inventoryRepo, env.couponRepo, env.paymentRepo, env.cart, env.coupon, env.setting)
	env.payment = NewPaymentService(env.paymentRepo, env.orderRepo, env.setting)
	env.inventory = NewInventoryService(env.inventoryRepo)
	env.product = NewProductService(env.productRepo, categoryRepo, env.variantRepo, variationRepo, env.inventoryRepo)
	env.category = NewCategoryService(categoryRepo, env.productRepo)
	env.album = NewAlbumService(albumRepo, env.productRepo, env.variantRepo, env.setting)
	env.variation = NewVariationService(variationRepo)
	env.review = NewReviewService(repository.NewReviewRepository(db), env.productRepo, env.orderRepo)
	env.wishlist = NewWishlistService(repository.NewWishlistRepository(db), env.productRepo)
	return env
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Status: "active"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Slug: slug, Name: slug, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create test category: %v", err)
	}
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, categoryID uint, slug, price string, weightKg float64) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: categoryID,
		Slug:       slug,
		SKU:        slug,
		Name:       slug,
		Price:      models.NewMoneyFromString(price),
		WeightKg:   weightKg,
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create test product: %v", err)
	}
	return product
}

func createTestVariant(t *testing.T, db *gorm.DB, productID uint, sku, adjustment string, weightKg float64) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:       productID,
		SKU:             sku,
		Name:            sku,
		PriceAdjustment: models.NewMoneyFromString(adjustment),
		WeightKg:        weightKg,
		IsActive:        true,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create test variant: %v", err)
	}
	return variant
}

func createTestSlot(t *testing.T, db *gorm.DB, productID uint, variantID *uint, quantity int) *models.Inventory {
	t.Helper()
	slot := &models.Inventory{
		ProductID:      productID,
		VariantID:      variantID,
		Quantity:       quantity,
		TrackInventory: true,
	}
	if err := db.Create(slot).Error; err != nil {
		t.Fatalf("create test inventory slot: %v", err)
	}
	return slot
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon *models.Coupon) *models.Coupon {
	t.Helper()
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create test coupon: %v", err)
	}
	return coupon
}

func createTestAlbum(t *testing.T, db *gorm.DB, album *models.Album) *models.Album {
	t.Helper()
	if err := db.Create(album).Error; err != nil {
		t.Fatalf("create test album: %v", err)
	}
	return album
}

func setTestSetting(t *testing.T, db *gorm.DB, key string, value interface{}) {
	t.Helper()
	setting := &models.Setting{Key: key, ValueJSON: models.JSON{"value": value}}
	if err := db.Create(setting).Error; err != nil {
		t.Fatalf("create test setting %s: %v", key, err)
	}
}
