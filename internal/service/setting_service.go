package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shelora/shelora/internal/cache"
	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"github.com/shopspring/decimal"
)

// settingValueField 每个配置键在 JSON 值中的取值字段
const settingValueField = "value"

// SettingService 设置业务服务（键值存储 + 类型化读取）
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// ListAll 获取全部设置
func (s *SettingService) ListAll() (map[string]interface{}, error) {
	settings, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}
	data := make(map[string]interface{}, len(settings))
	for _, setting := range settings {
		data[setting.Key] = setting.ValueJSON[settingValueField]
	}
	return data, nil
}

// Get 获取设置原始值（未配置返回 nil），优先读 Redis 缓存
func (s *SettingService) Get(key string) (interface{}, error) {
	ctx := context.Background()
	if cached, hit, err := cache.GetSetting(ctx, key); err == nil && hit {
		return cached, nil
	}

	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		_ = cache.SetSetting(ctx, key, nil, false)
		return nil, nil
	}
	value := setting.ValueJSON[settingValueField]
	_ = cache.SetSetting(ctx, key, value, true)
	return value, nil
}

// Update 写入设置值并使缓存失效
func (s *SettingService) Update(key string, value interface{}) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty setting key", ErrInvalidInput)
	}
	if _, err := s.repo.Upsert(key, models.JSON{settingValueField: value}); err != nil {
		return err
	}
	_ = cache.DelSetting(context.Background(), key)
	return nil
}

// GetString 读取字符串设置（未配置或解析失败返回默认值）
func (s *SettingService) GetString(key, defaultValue string) string {
	raw, err := s.Get(key)
	if err != nil || raw == nil {
		return defaultValue
	}
	if str, ok := raw.(string); ok {
		trimmed := strings.TrimSpace(str)
		if trimmed == "" {
			return defaultValue
		}
		return trimmed
	}
	return fmt.Sprintf("%v", raw)
}

// GetDecimal 读取金额/数值设置
func (s *SettingService) GetDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	raw, err := s.Get(key)
	if err != nil || raw == nil {
		return defaultValue
	}
	parsed, err := parseSettingDecimal(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetFloat 读取浮点设置
func (s *SettingService) GetFloat(key string, defaultValue float64) float64 {
	raw, err := s.Get(key)
	if err != nil || raw == nil {
		return defaultValue
	}
	parsed, err := parseSettingDecimal(raw)
	if err != nil {
		return defaultValue
	}
	f, _ := parsed.Float64()
	return f
}

// GetBool 读取布尔设置
func (s *SettingService) GetBool(key string, defaultValue bool) bool {
	raw, err := s.Get(key)
	if err != nil || raw == nil {
		return defaultValue
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return defaultValue
		}
		return parsed
	default:
		return defaultValue
	}
}

// ShippingConfig 读取运费配置（未配置的键回退默认值）
func (s *SettingService) ShippingConfig() ShippingConfig {
	return ShippingConfig{
		RatePerKg: s.GetDecimal(constants.SettingKeyShippingRatePerKg,
			decimal.RequireFromString(constants.DefaultShippingRatePerKg)),
		FreeShippingThreshold: s.GetDecimal(constants.SettingKeyFreeShippingThreshold,
			decimal.RequireFromString(constants.DefaultFreeShippingThreshold)),
		DefaultWeightKg: s.GetFloat(constants.SettingKeyDefaultWeight, 0.5),
	}
}

// BankAccount 银行转账收款信息
type BankAccount struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Branch        string `json:"branch"`
}

// BankAccountConfig 读取银行收款配置
func (s *SettingService) BankAccountConfig() BankAccount {
	return BankAccount{
		BankName:      s.GetString(constants.SettingKeyBankName, ""),
		AccountName:   s.GetString(constants.SettingKeyBankAccountName, ""),
		AccountNumber: s.GetString(constants.SettingKeyBankAccountNumber, ""),
		Branch:        s.GetString(constants.SettingKeyBankBranch, ""),
	}
}

// OrderNumberPrefix 订单编号前缀
func (s *SettingService) OrderNumberPrefix() string {
	return s.GetString(constants.SettingKeyOrderNumberPrefix, constants.OrderNumberPrefixDefault)
}

// SiteCurrency 站点币种
func (s *SettingService) SiteCurrency() string {
	return s.GetString(constants.SettingKeySiteCurrency, constants.SiteCurrencyDefault)
}

// PaymentMethodEnabled 支付方式是否开启
func (s *SettingService) PaymentMethodEnabled(method string) bool {
	switch method {
	case constants.PaymentMethodBankTransfer:
		return s.GetBool(constants.SettingKeyBankTransferEnabled, true)
	case constants.PaymentMethodCOD:
		return s.GetBool(constants.SettingKeyCODEnabled, true)
	case constants.PaymentMethodCard:
		return s.GetBool(constants.SettingKeyCardEnabled, false)
	default:
		return false
	}
}

func parseSettingDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Zero, fmt.Errorf("empty string")
		}
		return decimal.NewFromString(trimmed)
	default:
		return decimal.Zero, fmt.Errorf("unsupported value type")
	}
}
