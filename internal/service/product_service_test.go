package service

import (
	"errors"
	"testing"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"

	"github.com/shopspring/decimal"
)

func TestProductCreateInitializesInventory(t *testing.T) {
	env := newServiceTestEnv(t, "product_create")
	category := createTestCategory(t, env.db, "vinyl")

	product, err := env.product.Create(ProductInput{
		CategoryID: category.ID,
		Slug:       "sihina-lowak-lp",
		SKU:        "VIN-001",
		Name:       "Sihina Lowak LP",
		Price:      models.NewMoneyFromString("6500"),
		WeightKg:   0.35,
		InitialQty: 40,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	stock, err := env.product.StockFor(product.ID, nil)
	if err != nil {
		t.Fatalf("stock for product: %v", err)
	}
	if !stock.Tracked || stock.Available != 40 || !stock.InStock {
		t.Fatalf("unexpected stock info: %+v", stock)
	}
}

func TestProductCreateValidation(t *testing.T) {
	env := newServiceTestEnv(t, "product_validation")
	category := createTestCategory(t, env.db, "vinyl")
	createTestProduct(t, env.db, category.ID, "taken", "1000", 0)

	cases := []struct {
		name  string
		input ProductInput
		want  error
	}{
		{
			name:  "missing name",
			input: ProductInput{CategoryID: category.ID, Slug: "x", Price: models.NewMoneyFromString("100")},
			want:  ErrInvalidInput,
		},
		{
			name: "unknown category",
			input: ProductInput{
				CategoryID: category.ID + 999, Slug: "x", Name: "X",
				Price: models.NewMoneyFromString("100"),
			},
			want: ErrCategoryNotFound,
		},
		{
			name: "duplicate slug",
			input: ProductInput{
				CategoryID: category.ID, Slug: "taken", Name: "X",
				Price: models.NewMoneyFromString("100"),
			},
			want: ErrSlugExists,
		},
		{
			name: "negative price",
			input: ProductInput{
				CategoryID: category.ID, Slug: "x", Name: "X",
				Price: models.NewMoneyFromString("-1"),
			},
			want: ErrInvalidInput,
		},
		{
			name: "negative initial quantity",
			input: ProductInput{
				CategoryID: category.ID, Slug: "x", Name: "X",
				Price: models.NewMoneyFromString("100"), InitialQty: -1,
			},
			want: ErrInvalidAdjustment,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.product.Create(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestProductUpdateSlugConflict(t *testing.T) {
	env := newServiceTestEnv(t, "product_update")
	category := createTestCategory(t, env.db, "vinyl")
	first := createTestProduct(t, env.db, category.ID, "first", "1000", 0)
	second := createTestProduct(t, env.db, category.ID, "second", "2000", 0)

	_, err := env.product.Update(second.ID, ProductInput{
		Slug:  first.Slug,
		Price: models.NewMoneyFromString("2000"),
	})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	sale := models.NewMoneyFromString("1500")
	updated, err := env.product.Update(second.ID, ProductInput{
		Slug:      "second-reissue",
		Price:     models.NewMoneyFromString("2000"),
		SalePrice: &sale,
	})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Slug != "second-reissue" {
		t.Fatalf("expected new slug, got %q", updated.Slug)
	}
	if !updated.EffectivePrice().Equal(decimal.RequireFromString("1500")) {
		t.Fatalf("expected sale price effective, got %s", updated.EffectivePrice())
	}
}

func TestProductVariantLifecycle(t *testing.T) {
	env := newServiceTestEnv(t, "product_variant")
	category := createTestCategory(t, env.db, "merch")
	product := createTestProduct(t, env.db, category.ID, "logo-tee", "3500", 0.25)

	size, err := env.variation.CreateType(VariationTypeInput{
		Slug: "shirt-size", Name: "Size", InputType: constants.VariationInputSelect,
	})
	if err != nil {
		t.Fatalf("create variation type: %v", err)
	}
	medium, err := env.variation.CreateOption(size.ID, VariationOptionInput{Value: "M"})
	if err != nil {
		t.Fatalf("create option M: %v", err)
	}
	large, err := env.variation.CreateOption(size.ID, VariationOptionInput{Value: "L"})
	if err != nil {
		t.Fatalf("create option L: %v", err)
	}

	// 同一规格类型只能选择一个选项
	_, err = env.product.CreateVariant(product.ID, VariantInput{
		Name:      "Logo Tee M+L",
		OptionIDs: []uint{medium.ID, large.ID},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate type, got %v", err)
	}
	_, err = env.product.CreateVariant(product.ID, VariantInput{
		Name:      "Logo Tee ?",
		OptionIDs: []uint{medium.ID + 999},
	})
	if !errors.Is(err, ErrVariationNotFound) {
		t.Fatalf("expected ErrVariationNotFound, got %v", err)
	}

	variant, err := env.product.CreateVariant(product.ID, VariantInput{
		SKU:             "MER-001-M",
		Name:            "Logo Tee M",
		PriceAdjustment: models.NewMoneyFromString("250"),
		OptionIDs:       []uint{medium.ID},
		InitialQty:      15,
	})
	if err != nil {
		t.Fatalf("create variant: %v", err)
	}
	if len(variant.Options) != 1 || variant.Options[0].Value != "M" {
		t.Fatalf("expected option M linked, got %+v", variant.Options)
	}

	stock, err := env.product.StockFor(product.ID, &variant.ID)
	if err != nil {
		t.Fatalf("variant stock: %v", err)
	}
	if !stock.Tracked || stock.Available != 15 {
		t.Fatalf("unexpected variant stock: %+v", stock)
	}

	updated, err := env.product.UpdateVariant(variant.ID, VariantInput{
		SKU:             "MER-001-L",
		Name:            "Logo Tee L",
		PriceAdjustment: models.NewMoneyFromString("300"),
		OptionIDs:       []uint{large.ID},
	})
	if err != nil {
		t.Fatalf("update variant: %v", err)
	}
	if len(updated.Options) != 1 || updated.Options[0].Value != "L" {
		t.Fatalf("expected option replaced with L, got %+v", updated.Options)
	}

	if err := env.product.DeleteVariant(variant.ID); err != nil {
		t.Fatalf("delete variant: %v", err)
	}
	if err := env.product.DeleteVariant(variant.ID); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound after delete, got %v", err)
	}
}

func TestProductStockForUntracked(t *testing.T) {
	env := newServiceTestEnv(t, "product_untracked")
	category := createTestCategory(t, env.db, "merch")
	product := createTestProduct(t, env.db, category.ID, "digital", "1000", 0)

	// 无库存位视为可售
	stock, err := env.product.StockFor(product.ID, nil)
	if err != nil {
		t.Fatalf("stock for product: %v", err)
	}
	if stock.Tracked || !stock.InStock {
		t.Fatalf("unexpected stock info: %+v", stock)
	}
}
