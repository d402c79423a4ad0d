package provider

import (
	"github.com/shelora/shelora/internal/cache"
	"github.com/shelora/shelora/internal/config"
	"github.com/shelora/shelora/internal/logger"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo      repository.UserRepository
	CategoryRepo  repository.CategoryRepository
	ProductRepo   repository.ProductRepository
	VariantRepo   repository.ProductVariantRepository
	VariationRepo repository.VariationRepository
	InventoryRepo repository.InventoryRepository
	AlbumRepo     repository.AlbumRepository
	CartRepo      repository.CartRepository
	CouponRepo    repository.CouponRepository
	OrderRepo     repository.OrderRepository
	PaymentRepo   repository.PaymentRepository
	BannerRepo    repository.BannerRepository
	SettingRepo   repository.SettingRepository
	ReviewRepo    repository.ReviewRepository
	WishlistRepo  repository.WishlistRepository

	// Services
	SettingService   *service.SettingService
	UserService      *service.UserService
	CategoryService  *service.CategoryService
	ProductService   *service.ProductService
	VariationService *service.VariationService
	InventoryService *service.InventoryService
	AlbumService     *service.AlbumService
	CouponService    *service.CouponService
	CartService      *service.CartService
	OrderService     *service.OrderService
	PaymentService   *service.PaymentService
	BannerService    *service.BannerService
	ReviewService    *service.ReviewService
	WishlistService  *service.WishlistService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewProductVariantRepository(db)
	c.VariationRepo = repository.NewVariationRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.AlbumRepo = repository.NewAlbumRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.BannerRepo = repository.NewBannerRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
}

func (c *Container) initServices() {
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.VariantRepo, c.VariationRepo, c.InventoryRepo)
	c.VariationService = service.NewVariationService(c.VariationRepo)
	c.InventoryService = service.NewInventoryService(c.InventoryRepo)
	c.AlbumService = service.NewAlbumService(c.AlbumRepo, c.ProductRepo, c.VariantRepo, c.SettingService)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.OrderRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.VariantRepo, c.AlbumRepo, c.InventoryRepo, c.CouponService, c.SettingService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.InventoryRepo, c.CouponRepo, c.PaymentRepo, c.CartService, c.CouponService, c.SettingService)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo, c.SettingService)
	c.BannerService = service.NewBannerService(c.BannerRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.OrderRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
}
