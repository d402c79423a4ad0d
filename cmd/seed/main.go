package main

import (
	"time"

	"github.com/shelora/shelora/internal/config"
	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/logger"
	"github.com/shelora/shelora/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	seedSettings(stdLog.Printf)
	categoryIDs := seedCategories(stdLog.Printf)
	optionIDs := seedVariations(stdLog.Printf)
	productIDs := seedProducts(stdLog.Printf, categoryIDs, optionIDs)
	seedAlbums(stdLog.Printf, productIDs)
	seedCoupons(stdLog.Printf)
	seedBanners(stdLog.Printf)

	stdLog.Printf("Seed completed")
}

type printf func(format string, args ...interface{})

func seedSettings(logf printf) {
	settings := map[string]interface{}{
		constants.SettingKeySiteName:              "Shelora",
		constants.SettingKeySiteCurrency:          "LKR",
		constants.SettingKeyOrderNumberPrefix:     "ORD",
		constants.SettingKeyShippingRatePerKg:     500,
		constants.SettingKeyFreeShippingThreshold: 10000,
		constants.SettingKeyDefaultWeight:         0.5,
		constants.SettingKeyCODEnabled:            true,
		constants.SettingKeyBankTransferEnabled:   true,
		constants.SettingKeyCardEnabled:           false,
		constants.SettingKeyBankName:              "Commercial Bank",
		constants.SettingKeyBankAccountName:       "Shelora (Pvt) Ltd",
		constants.SettingKeyBankAccountNumber:     "8001234567",
		constants.SettingKeyBankBranch:            "Colombo 03",
	}
	for key, value := range settings {
		var existing models.Setting
		if err := models.DB.Where("key = ?", key).First(&existing).Error; err == nil {
			continue
		}
		row := models.Setting{Key: key, ValueJSON: models.JSON{"value": value}}
		if err := models.DB.Create(&row).Error; err != nil {
			logf("Failed to create setting %s: %v", key, err)
		} else {
			logf("Created setting: %s", key)
		}
	}
}

func seedCategories(logf printf) map[string]uint {
	categories := []models.Category{
		{Slug: "sinhala-vinyl", Name: "Sinhala Vinyl", Description: "Pressings of classic Sinhala recordings", SortOrder: 1},
		{Slug: "cassettes", Name: "Cassettes", Description: "Original and reissued cassette tapes", SortOrder: 2},
		{Slug: "merchandise", Name: "Merchandise", Description: "Shirts, posters and collectibles", SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				logf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				logf("Created category: %s", cat.Slug)
			}
		} else {
			logf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"sinhala-vinyl", "cassettes", "merchandise"}).Find(&categoryList).Error; err != nil {
		logf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	return categoryIDs
}

func seedVariations(logf printf) map[string]uint {
	size := models.VariationType{
		Slug:       "shirt-size",
		Name:       "Size",
		InputType:  constants.VariationInputSelect,
		IsRequired: true,
		IsActive:   true,
	}
	var existing models.VariationType
	if err := models.DB.Where("slug = ?", size.Slug).First(&existing).Error; err != nil {
		if err := models.DB.Create(&size).Error; err != nil {
			logf("Failed to create variation type %s: %v", size.Slug, err)
			return nil
		}
		logf("Created variation type: %s", size.Slug)
	} else {
		size = existing
	}

	optionIDs := map[string]uint{}
	for i, value := range []string{"S", "M", "L", "XL"} {
		var option models.VariationOption
		if err := models.DB.Where("variation_type_id = ? AND value = ?", size.ID, value).First(&option).Error; err != nil {
			option = models.VariationOption{
				VariationTypeID: size.ID,
				Value:           value,
				Label:           value,
				IsActive:        true,
				SortOrder:       i,
			}
			if err := models.DB.Create(&option).Error; err != nil {
				logf("Failed to create variation option %s: %v", value, err)
				continue
			}
			logf("Created variation option: %s", value)
		}
		optionIDs[value] = option.ID
	}
	return optionIDs
}

func seedProducts(logf printf, categoryIDs map[string]uint, optionIDs map[string]uint) map[string]uint {
	sale := models.NewMoneyFromDecimal(decimal.NewFromInt(5200))
	products := []models.Product{
		{
			CategoryID:  categoryIDs["sinhala-vinyl"],
			Slug:        "sihina-lowak-lp",
			SKU:         "VIN-001",
			Name:        "Sihina Lowak LP",
			Description: "180g remastered pressing",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(6500)),
			SalePrice:   &sale,
			WeightKg:    0.35,
			IsActive:    true,
			IsFeatured:  true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["cassettes"],
			Slug:        "master-sir-live-88",
			SKU:         "CAS-001",
			Name:        "Master Sir Live '88",
			Description: "Live concert recording, chrome tape",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(1800)),
			WeightKg:    0.08,
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["merchandise"],
			Slug:        "logo-tee",
			SKU:         "MER-001",
			Name:        "Shelora Logo Tee",
			Description: "Screen printed cotton tee",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(3500)),
			WeightKg:    0.25,
			IsActive:    true,
			SortOrder:   3,
		},
	}

	productIDs := map[string]uint{}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			logf("Product already exists: %s", product.Slug)
			productIDs[product.Slug] = existing.ID
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			logf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		productIDs[product.Slug] = product.ID
		logf("Created product: %s", product.Slug)

		slot := models.Inventory{
			ProductID:         product.ID,
			Quantity:          40,
			LowStockThreshold: 5,
			TrackInventory:    true,
		}
		if err := models.DB.Create(&slot).Error; err != nil {
			logf("Failed to create inventory for %s: %v", product.Slug, err)
		}
	}

	// 为 T 恤建立尺码变体
	teeID, ok := productIDs["logo-tee"]
	if !ok {
		return productIDs
	}
	for i, value := range []string{"S", "M", "L", "XL"} {
		sku := "MER-001-" + value
		var existing models.ProductVariant
		if err := models.DB.Where("product_id = ? AND sku = ?", teeID, sku).First(&existing).Error; err == nil {
			continue
		}
		variant := models.ProductVariant{
			ProductID:       teeID,
			SKU:             sku,
			Name:            value,
			PriceAdjustment: models.NewMoneyFromDecimal(decimal.Zero),
			IsActive:        true,
			SortOrder:       i,
		}
		if value == "XL" {
			variant.PriceAdjustment = models.NewMoneyFromDecimal(decimal.NewFromInt(250))
		}
		if err := models.DB.Create(&variant).Error; err != nil {
			logf("Failed to create variant %s: %v", sku, err)
			continue
		}
		if optionID, ok := optionIDs[value]; ok {
			link := models.ProductVariantOption{VariantID: variant.ID, VariationOptionID: optionID}
			if err := models.DB.Create(&link).Error; err != nil {
				logf("Failed to link variant option %s: %v", sku, err)
			}
		}
		slot := models.Inventory{
			ProductID:         teeID,
			VariantID:         &variant.ID,
			Quantity:          15,
			LowStockThreshold: 3,
			TrackInventory:    true,
		}
		if err := models.DB.Create(&slot).Error; err != nil {
			logf("Failed to create variant inventory %s: %v", sku, err)
		}
		logf("Created variant: %s", sku)
	}
	return productIDs
}

func seedAlbums(logf printf, productIDs map[string]uint) {
	var existing models.Album
	if err := models.DB.Where("slug = ?", "collector-bundle").First(&existing).Error; err == nil {
		logf("Album already exists: collector-bundle")
		return
	}

	album := models.Album{
		Slug:            "collector-bundle",
		Title:           "Collector Bundle",
		Description:     "LP and live cassette together",
		DiscountPercent: 10,
		IsActive:        true,
	}
	if err := models.DB.Create(&album).Error; err != nil {
		logf("Failed to create album: %v", err)
		return
	}
	members := []models.AlbumProduct{
		{AlbumID: album.ID, ProductID: productIDs["sihina-lowak-lp"], Quantity: 1},
		{AlbumID: album.ID, ProductID: productIDs["master-sir-live-88"], Quantity: 1},
	}
	for _, member := range members {
		if member.ProductID == 0 {
			continue
		}
		if err := models.DB.Create(&member).Error; err != nil {
			logf("Failed to create album member: %v", err)
		}
	}
	logf("Created album: collector-bundle")
}

func seedCoupons(logf printf) {
	expires := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:           "WELCOME10",
			Type:           constants.CouponTypePercentage,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
			MaxDiscount:    models.NewMoneyFromDecimal(decimal.NewFromInt(1500)),
			PerUserLimit:   1,
			ExpiresAt:      &expires,
			IsActive:       true,
		},
		{
			Code:           "FLAT500",
			Type:           constants.CouponTypeFixed,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			UsageLimit:     200,
			IsActive:       true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err == nil {
			logf("Coupon already exists: %s", coupon.Code)
			continue
		}
		if err := models.DB.Create(&coupon).Error; err != nil {
			logf("Failed to create coupon %s: %v", coupon.Code, err)
		} else {
			logf("Created coupon: %s", coupon.Code)
		}
	}
}

func seedBanners(logf printf) {
	banners := []models.Banner{
		{
			Name:      "home-hero-reissue",
			Position:  constants.BannerPositionHomeHero,
			Title:     "Remastered Classics",
			Subtitle:  "New vinyl pressings every month",
			Image:     "/uploads/banners/hero-reissue.jpg",
			LinkType:  constants.BannerLinkTypeInternal,
			LinkValue: "/products/sihina-lowak-lp",
			IsActive:  true,
			SortOrder: 1,
		},
		{
			Name:      "home-strip-bundle",
			Position:  constants.BannerPositionHomeStrip,
			Title:     "Collector Bundle",
			Image:     "/uploads/banners/strip-bundle.jpg",
			LinkType:  constants.BannerLinkTypeInternal,
			LinkValue: "/albums/collector-bundle",
			IsActive:  true,
			SortOrder: 1,
		},
	}
	for _, banner := range banners {
		var existing models.Banner
		if err := models.DB.Where("name = ?", banner.Name).First(&existing).Error; err == nil {
			logf("Banner already exists: %s", banner.Name)
			continue
		}
		if err := models.DB.Create(&banner).Error; err != nil {
			logf("Failed to create banner %s: %v", banner.Name, err)
		} else {
			logf("Created banner: %s", banner.Name)
		}
	}
}
