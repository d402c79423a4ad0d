package service

import (
	"math"

	"github.com/shelora/shelora/internal/constants"

	"github.com/shopspring/decimal"
)

// ShippingConfig 运费配置
type ShippingConfig struct {
	RatePerKg             decimal.Decimal // 每千克运费
	FreeShippingThreshold decimal.Decimal // 免运费门槛（0 表示关闭）
	DefaultWeightKg       float64         // 商品默认重量（千克）
}

// ShippingLine 运费计算输入行
type ShippingLine struct {
	UnitWeightKg float64 // 单件重量（千克）
	Quantity     int     // 件数
}

// CalculateShipping 计算运费。
// 规则：达到免运费门槛（含等于）直接为 0；否则按总重量向上取整到整千克计费。
func CalculateShipping(subtotal decimal.Decimal, lines []ShippingLine, cfg ShippingConfig) decimal.Decimal {
	if cfg.FreeShippingThreshold.GreaterThan(decimal.Zero) &&
		subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold) {
		return decimal.Zero
	}

	totalWeight := 0.0
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		unit := line.UnitWeightKg
		if unit <= 0 {
			unit = cfg.DefaultWeightKg
		}
		totalWeight += unit * float64(line.Quantity)
	}

	// 避免零重量购物车免费走运费通道
	chargeable := totalWeight
	if chargeable < constants.MinChargeableWeightKg {
		chargeable = constants.MinChargeableWeightKg
	}

	billableKg := int64(math.Ceil(chargeable))
	return cfg.RatePerKg.Mul(decimal.NewFromInt(billableKg)).Round(2)
}
