package service

import (
	"github.com/shelora/shelora/internal/models"

	"github.com/shopspring/decimal"
)

// 定价引擎：全部为纯函数，不读写任何状态。

// ProductUnitPrice 商品生效单价（促销价存在且低于标准价时生效）
func ProductUnitPrice(product *models.Product) decimal.Decimal {
	if product == nil {
		return decimal.Zero
	}
	return product.EffectivePrice().Decimal
}

// VariantUnitPrice 变体生效单价 = 商品生效单价 + 价格调整量。
// 调整量可为负，结果不做零值钳制。
func VariantUnitPrice(product *models.Product, variant *models.ProductVariant) decimal.Decimal {
	base := ProductUnitPrice(product)
	if variant == nil {
		return base
	}
	return base.Add(variant.PriceAdjustment.Decimal)
}

// AlbumBasePrice 专辑基础价：固定打包价优先，否则成员商品生效单价 × 打包数量求和
func AlbumBasePrice(album *models.Album) decimal.Decimal {
	if album == nil {
		return decimal.Zero
	}
	if album.Price != nil {
		return album.Price.Decimal
	}
	sum := decimal.Zero
	for i := range album.Products {
		member := album.Products[i]
		if member.Product == nil {
			continue
		}
		qty := member.Quantity
		if qty <= 0 {
			qty = 1
		}
		sum = sum.Add(ProductUnitPrice(member.Product).Mul(decimal.NewFromInt(int64(qty))))
	}
	return sum
}

// AlbumUnitPrice 专辑生效单价 = 基础价 ×（1 - 折扣百分比/100）
func AlbumUnitPrice(album *models.Album) decimal.Decimal {
	base := AlbumBasePrice(album)
	if album == nil || album.DiscountPercent <= 0 {
		return base
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(album.DiscountPercent).Div(decimal.NewFromInt(100)))
	return base.Mul(factor).Round(2)
}

// LineSubtotal 行小计 = 单价 × 数量
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ProductUnitWeightKg 商品计费重量（未设置时取默认重量）
func ProductUnitWeightKg(product *models.Product, defaultWeightKg float64) float64 {
	if product == nil || product.WeightKg <= 0 {
		return defaultWeightKg
	}
	return product.WeightKg
}

// AlbumUnitWeightKg 专辑计费重量 = 成员商品重量之和。
// 成员打包数量不参与求重，只有购物车行数量参与。
func AlbumUnitWeightKg(album *models.Album, defaultWeightKg float64) float64 {
	if album == nil {
		return defaultWeightKg
	}
	total := 0.0
	for i := range album.Products {
		total += ProductUnitWeightKg(album.Products[i].Product, defaultWeightKg)
	}
	if total <= 0 {
		return defaultWeightKg
	}
	return total
}
