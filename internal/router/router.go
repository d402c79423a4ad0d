package router

import (
	"fmt"
	"strings"

	"github.com/shelora/shelora/internal/cache"
	"github.com/shelora/shelora/internal/config"
	adminhandlers "github.com/shelora/shelora/internal/http/handlers/admin"
	publichandlers "github.com/shelora/shelora/internal/http/handlers/public"
	"github.com/shelora/shelora/internal/logger"
	"github.com/shelora/shelora/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sl"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		Message:       "too many checkout attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProductBySlug)
			public.GET("/products/:slug/reviews", publicHandler.GetProductReviews)
			public.GET("/albums", publicHandler.GetAlbums)
			public.GET("/albums/:slug", publicHandler.GetAlbumBySlug)
			public.GET("/banners", publicHandler.GetPublicBanners)
			public.GET("/bank-account", publicHandler.GetBankAccount)
		}

		// 用户接口（身份由前置网关注入）
		user := apiV1.Group("")
		user.Use(UserIdentityMiddleware(c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/coupon", publicHandler.ApplyCoupon)
			user.DELETE("/cart/coupon", publicHandler.RemoveCoupon)
			user.POST("/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyByUserID), publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.GET("/orders/by-order-no/:order_number", publicHandler.GetOrderByNumber)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.GET("/orders/:id/payment", publicHandler.GetOrderPayment)
			user.POST("/orders/:id/payment/slip", publicHandler.SubmitPaymentSlip)
			user.POST("/products/:slug/reviews", publicHandler.SubmitReview)
			user.PUT("/reviews/:id", publicHandler.UpdateReview)
			user.DELETE("/reviews/:id", publicHandler.DeleteReview)
			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist", publicHandler.AddWishlistItem)
			user.DELETE("/wishlist/:product_id", publicHandler.RemoveWishlistItem)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		admin.Use(AdminIdentityMiddleware())
		{
			admin.GET("/categories", adminHandler.ListCategories)
			admin.GET("/categories/:id", adminHandler.GetCategory)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/products/:id/variants", adminHandler.CreateVariant)
			admin.PUT("/products/:id/variants/:variant_id", adminHandler.UpdateVariant)
			admin.DELETE("/products/:id/variants/:variant_id", adminHandler.DeleteVariant)

			admin.GET("/albums", adminHandler.ListAlbums)
			admin.GET("/albums/:id", adminHandler.GetAlbum)
			admin.POST("/albums", adminHandler.CreateAlbum)
			admin.PUT("/albums/:id", adminHandler.UpdateAlbum)
			admin.DELETE("/albums/:id", adminHandler.DeleteAlbum)

			admin.GET("/variation-types", adminHandler.ListVariationTypes)
			admin.GET("/variation-types/:id", adminHandler.GetVariationType)
			admin.POST("/variation-types", adminHandler.CreateVariationType)
			admin.PUT("/variation-types/:id", adminHandler.UpdateVariationType)
			admin.DELETE("/variation-types/:id", adminHandler.DeleteVariationType)
			admin.POST("/variation-types/:id/options", adminHandler.CreateVariationOption)
			admin.PUT("/variation-types/:id/options/:option_id", adminHandler.UpdateVariationOption)
			admin.DELETE("/variation-types/:id/options/:option_id", adminHandler.DeleteVariationOption)

			admin.GET("/inventory", adminHandler.ListInventory)
			admin.GET("/inventory/:id", adminHandler.GetInventory)
			admin.POST("/inventory/:id/adjust", adminHandler.AdjustInventory)
			admin.PUT("/inventory/:id/threshold", adminHandler.SetInventoryThreshold)
			admin.PUT("/inventory/:id/tracking", adminHandler.SetInventoryTracking)

			admin.GET("/coupons", adminHandler.ListCoupons)
			admin.GET("/coupons/:id", adminHandler.GetCoupon)
			admin.POST("/coupons", adminHandler.CreateCoupon)
			admin.PUT("/coupons/:id", adminHandler.UpdateCoupon)
			admin.DELETE("/coupons/:id", adminHandler.DeleteCoupon)

			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.PUT("/orders/:id/tracking", adminHandler.UpdateOrderTracking)

			admin.GET("/payments", adminHandler.ListPayments)
			admin.GET("/payments/:id", adminHandler.GetPayment)
			admin.POST("/payments/:id/verify", adminHandler.VerifyPayment)
			admin.POST("/payments/:id/reject", adminHandler.RejectPayment)

			admin.GET("/reviews", adminHandler.ListReviews)
			admin.GET("/reviews/:id", adminHandler.GetReview)
			admin.POST("/reviews/:id/approve", adminHandler.ApproveReview)
			admin.POST("/reviews/:id/reject", adminHandler.RejectReview)
			admin.DELETE("/reviews/:id", adminHandler.DeleteReview)

			admin.GET("/banners", adminHandler.ListBanners)
			admin.GET("/banners/:id", adminHandler.GetBanner)
			admin.POST("/banners", adminHandler.CreateBanner)
			admin.PUT("/banners/:id", adminHandler.UpdateBanner)
			admin.DELETE("/banners/:id", adminHandler.DeleteBanner)

			admin.GET("/settings", adminHandler.ListSettings)
			admin.GET("/settings/:key", adminHandler.GetSetting)
			admin.PUT("/settings", adminHandler.UpdateSetting)
		}
	}

	return r
}
