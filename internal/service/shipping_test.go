package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testShippingConfig() ShippingConfig {
	return ShippingConfig{
		RatePerKg:             decimal.RequireFromString("500"),
		FreeShippingThreshold: decimal.RequireFromString("10000"),
		DefaultWeightKg:       0.5,
	}
}

func TestCalculateShippingRoundsUpToWholeKg(t *testing.T) {
	cfg := testShippingConfig()
	lines := []ShippingLine{
		{UnitWeightKg: 0.5, Quantity: 3}, // 1.5kg -> 2kg
	}
	got := CalculateShipping(decimal.RequireFromString("4500"), lines, cfg)
	if !got.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("expected 1000, got %s", got)
	}
}

func TestCalculateShippingFreeThresholdInclusive(t *testing.T) {
	cfg := testShippingConfig()
	lines := []ShippingLine{{UnitWeightKg: 2, Quantity: 1}}

	got := CalculateShipping(decimal.RequireFromString("10000"), lines, cfg)
	if !got.IsZero() {
		t.Fatalf("expected free shipping at threshold, got %s", got)
	}

	got = CalculateShipping(decimal.RequireFromString("9999.99"), lines, cfg)
	if !got.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("expected 1000 below threshold, got %s", got)
	}
}

func TestCalculateShippingThresholdDisabled(t *testing.T) {
	cfg := testShippingConfig()
	cfg.FreeShippingThreshold = decimal.Zero

	lines := []ShippingLine{{UnitWeightKg: 1, Quantity: 1}}
	got := CalculateShipping(decimal.RequireFromString("999999"), lines, cfg)
	if !got.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected shipping charged when threshold disabled, got %s", got)
	}
}

func TestCalculateShippingMinimumChargeableWeight(t *testing.T) {
	cfg := testShippingConfig()
	lines := []ShippingLine{{UnitWeightKg: 0.07, Quantity: 1}}

	got := CalculateShipping(decimal.RequireFromString("200"), lines, cfg)
	if !got.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected minimum 1kg bucket, got %s", got)
	}
}

func TestCalculateShippingDefaultWeightFallback(t *testing.T) {
	cfg := testShippingConfig()
	lines := []ShippingLine{
		{UnitWeightKg: 0, Quantity: 4},   // 4 x 0.5kg
		{UnitWeightKg: 0.1, Quantity: 0}, // 非法数量行忽略
	}
	got := CalculateShipping(decimal.RequireFromString("1000"), lines, cfg)
	if !got.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("expected 2kg at 500/kg, got %s", got)
	}
}
