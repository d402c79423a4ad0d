package service

import (
	"errors"
	"testing"

	"github.com/shelora/shelora/internal/constants"

	"github.com/shopspring/decimal"
)

func TestSettingTypedReads(t *testing.T) {
	env := newServiceTestEnv(t, "setting_reads")

	setTestSetting(t, env.db, constants.SettingKeySiteName, "Shelora")
	setTestSetting(t, env.db, constants.SettingKeyShippingRatePerKg, 750)
	setTestSetting(t, env.db, constants.SettingKeyCardEnabled, true)

	if got := env.setting.GetString(constants.SettingKeySiteName, "fallback"); got != "Shelora" {
		t.Fatalf("expected Shelora, got %q", got)
	}
	if got := env.setting.GetString("missing_key", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	rate := env.setting.GetDecimal(constants.SettingKeyShippingRatePerKg, decimal.Zero)
	if !rate.Equal(decimal.RequireFromString("750")) {
		t.Fatalf("expected 750, got %s", rate)
	}

	if !env.setting.GetBool(constants.SettingKeyCardEnabled, false) {
		t.Fatalf("expected card enabled override")
	}
	if env.setting.GetBool("missing_bool", false) {
		t.Fatalf("expected bool fallback")
	}
}

func TestSettingShippingConfigDefaults(t *testing.T) {
	env := newServiceTestEnv(t, "setting_shipping")

	cfg := env.setting.ShippingConfig()
	if !cfg.RatePerKg.Equal(decimal.RequireFromString(constants.DefaultShippingRatePerKg)) {
		t.Fatalf("expected default rate, got %s", cfg.RatePerKg)
	}
	if !cfg.FreeShippingThreshold.IsZero() {
		t.Fatalf("expected threshold disabled by default, got %s", cfg.FreeShippingThreshold)
	}
	if cfg.DefaultWeightKg != 0.5 {
		t.Fatalf("expected default weight 0.5, got %v", cfg.DefaultWeightKg)
	}

	setTestSetting(t, env.db, constants.SettingKeyFreeShippingThreshold, 10000)
	cfg = env.setting.ShippingConfig()
	if !cfg.FreeShippingThreshold.Equal(decimal.RequireFromString("10000")) {
		t.Fatalf("expected configured threshold, got %s", cfg.FreeShippingThreshold)
	}

	if constants.SettingKeyDefaultWeight != "default_weight" {
		t.Fatalf("unexpected default weight key %q", constants.SettingKeyDefaultWeight)
	}
	setTestSetting(t, env.db, constants.SettingKeyDefaultWeight, 0.75)
	cfg = env.setting.ShippingConfig()
	if cfg.DefaultWeightKg != 0.75 {
		t.Fatalf("expected configured default weight 0.75, got %v", cfg.DefaultWeightKg)
	}
}

func TestSettingPaymentMethodToggles(t *testing.T) {
	env := newServiceTestEnv(t, "setting_payments")

	// 默认：转账与货到付款开启，刷卡关闭
	if !env.setting.PaymentMethodEnabled(constants.PaymentMethodBankTransfer) {
		t.Fatalf("expected bank transfer enabled by default")
	}
	if !env.setting.PaymentMethodEnabled(constants.PaymentMethodCOD) {
		t.Fatalf("expected COD enabled by default")
	}
	if env.setting.PaymentMethodEnabled(constants.PaymentMethodCard) {
		t.Fatalf("expected card disabled by default")
	}
	if env.setting.PaymentMethodEnabled("bogus") {
		t.Fatalf("expected unknown method disabled")
	}

	setTestSetting(t, env.db, constants.SettingKeyCODEnabled, false)
	if env.setting.PaymentMethodEnabled(constants.PaymentMethodCOD) {
		t.Fatalf("expected COD disabled by setting")
	}
}

func TestSettingUpdateAndListAll(t *testing.T) {
	env := newServiceTestEnv(t, "setting_update")

	if err := env.setting.Update("  ", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank key, got %v", err)
	}

	if err := env.setting.Update(constants.SettingKeySiteName, "Shelora Records"); err != nil {
		t.Fatalf("update setting: %v", err)
	}
	if err := env.setting.Update(constants.SettingKeySiteName, "Shelora"); err != nil {
		t.Fatalf("overwrite setting: %v", err)
	}

	all, err := env.setting.ListAll()
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	if all[constants.SettingKeySiteName] != "Shelora" {
		t.Fatalf("expected latest value in listing, got %v", all[constants.SettingKeySiteName])
	}
}

func TestSettingBankAccountConfig(t *testing.T) {
	env := newServiceTestEnv(t, "setting_bank")

	setTestSetting(t, env.db, constants.SettingKeyBankName, "Bank of Ceylon")
	setTestSetting(t, env.db, constants.SettingKeyBankAccountNumber, "001-234567")

	account := env.setting.BankAccountConfig()
	if account.BankName != "Bank of Ceylon" || account.AccountNumber != "001-234567" {
		t.Fatalf("unexpected bank account: %+v", account)
	}
	if account.AccountName != "" {
		t.Fatalf("expected empty default account name, got %q", account.AccountName)
	}
}
