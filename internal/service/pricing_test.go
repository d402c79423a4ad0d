package service

import (
	"math"
	"testing"

	"github.com/shelora/shelora/internal/models"

	"github.com/shopspring/decimal"
)

func moneyPtr(s string) *models.Money {
	m := models.NewMoneyFromString(s)
	return &m
}

func TestProductUnitPrice(t *testing.T) {
	product := &models.Product{Price: models.NewMoneyFromString("6500")}
	if got := ProductUnitPrice(product); !got.Equal(decimal.RequireFromString("6500")) {
		t.Fatalf("expected 6500, got %s", got)
	}

	product.SalePrice = moneyPtr("5200")
	if got := ProductUnitPrice(product); !got.Equal(decimal.RequireFromString("5200")) {
		t.Fatalf("expected sale price 5200, got %s", got)
	}

	// 促销价不低于标准价时不生效
	product.SalePrice = moneyPtr("7000")
	if got := ProductUnitPrice(product); !got.Equal(decimal.RequireFromString("6500")) {
		t.Fatalf("expected regular price to win, got %s", got)
	}

	if got := ProductUnitPrice(nil); !got.IsZero() {
		t.Fatalf("expected zero for nil product, got %s", got)
	}
}

func TestVariantUnitPrice(t *testing.T) {
	product := &models.Product{Price: models.NewMoneyFromString("3500")}
	variant := &models.ProductVariant{PriceAdjustment: models.NewMoneyFromString("250")}

	if got := VariantUnitPrice(product, variant); !got.Equal(decimal.RequireFromString("3750")) {
		t.Fatalf("expected 3750, got %s", got)
	}

	// 负调整量不做零值钳制
	variant.PriceAdjustment = models.NewMoneyFromString("-4000")
	if got := VariantUnitPrice(product, variant); !got.Equal(decimal.RequireFromString("-500")) {
		t.Fatalf("expected -500, got %s", got)
	}

	if got := VariantUnitPrice(product, nil); !got.Equal(decimal.RequireFromString("3500")) {
		t.Fatalf("expected base price without variant, got %s", got)
	}
}

func TestAlbumBasePrice(t *testing.T) {
	lp := &models.Product{Price: models.NewMoneyFromString("6500")}
	cassette := &models.Product{Price: models.NewMoneyFromString("1800")}

	album := &models.Album{
		Products: []models.AlbumProduct{
			{Product: lp, Quantity: 2},
			{Product: cassette, Quantity: 0}, // 非法数量按 1 计
		},
	}
	if got := AlbumBasePrice(album); !got.Equal(decimal.RequireFromString("14800")) {
		t.Fatalf("expected member sum 14800, got %s", got)
	}

	album.Price = moneyPtr("12000")
	if got := AlbumBasePrice(album); !got.Equal(decimal.RequireFromString("12000")) {
		t.Fatalf("expected fixed price to win, got %s", got)
	}
}

func TestAlbumUnitPriceDiscount(t *testing.T) {
	album := &models.Album{Price: moneyPtr("8000"), DiscountPercent: 10}
	if got := AlbumUnitPrice(album); !got.Equal(decimal.RequireFromString("7200")) {
		t.Fatalf("expected 7200 after 10%% discount, got %s", got)
	}

	album.DiscountPercent = 0
	if got := AlbumUnitPrice(album); !got.Equal(decimal.RequireFromString("8000")) {
		t.Fatalf("expected base price without discount, got %s", got)
	}

	// 非整除折扣四舍五入到分
	album.Price = moneyPtr("999")
	album.DiscountPercent = 7.5
	if got := AlbumUnitPrice(album); !got.Equal(decimal.RequireFromString("924.08")) {
		t.Fatalf("expected 924.08, got %s", got)
	}
}

func TestLineSubtotal(t *testing.T) {
	unit := decimal.RequireFromString("1800")
	if got := LineSubtotal(unit, 3); !got.Equal(decimal.RequireFromString("5400")) {
		t.Fatalf("expected 5400, got %s", got)
	}
	if got := LineSubtotal(unit, 0); !got.IsZero() {
		t.Fatalf("expected zero for non-positive quantity, got %s", got)
	}
}

func TestProductUnitWeightKg(t *testing.T) {
	product := &models.Product{WeightKg: 0.35}
	if got := ProductUnitWeightKg(product, 0.5); got != 0.35 {
		t.Fatalf("expected 0.35, got %v", got)
	}
	product.WeightKg = 0
	if got := ProductUnitWeightKg(product, 0.5); got != 0.5 {
		t.Fatalf("expected default weight, got %v", got)
	}
	if got := ProductUnitWeightKg(nil, 0.5); got != 0.5 {
		t.Fatalf("expected default weight for nil product, got %v", got)
	}
}

func TestAlbumUnitWeightKg(t *testing.T) {
	album := &models.Album{
		Products: []models.AlbumProduct{
			{Product: &models.Product{WeightKg: 0.35}, Quantity: 2},
			{Product: &models.Product{WeightKg: 0.08}},
		},
	}
	// 成员打包数量不参与求重
	if got := AlbumUnitWeightKg(album, 0.5); math.Abs(got-0.43) > 1e-9 {
		t.Fatalf("expected 0.43, got %v", got)
	}

	empty := &models.Album{}
	if got := AlbumUnitWeightKg(empty, 0.5); got != 0.5 {
		t.Fatalf("expected default weight for empty album, got %v", got)
	}
}
