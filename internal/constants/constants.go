package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// 订单收款状态常量
const (
	OrderPaymentStatusPending  = "pending"
	OrderPaymentStatusPaid     = "paid"
	OrderPaymentStatusFailed   = "failed"
	OrderPaymentStatusRefunded = "refunded"
)

// 支付状态常量
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// 支付方式常量
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCOD          = "cod"
	PaymentMethodCard         = "card"
)

// 订单项类型常量
const (
	OrderItemTypeProduct = "product"
	OrderItemTypeAlbum   = "album"
)

// 购物车项类型常量
const (
	CartItemTypeProduct = "product"
	CartItemTypeAlbum   = "album"
)

// 优惠券类型常量
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// 专辑定价模式常量
const (
	AlbumPricingFixed      = "fixed"
	AlbumPricingCalculated = "calculated"
)

// 变体属性输入类型常量
const (
	VariationInputSelect      = "select"
	VariationInputColorPicker = "color_picker"
	VariationInputText        = "text"
)

// 库存台账变动原因常量
const (
	StockChangeReserve = "reserve"
	StockChangeRelease = "release"
	StockChangeDeduct  = "deduct"
	StockChangeAdjust  = "adjust"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sl"
)

// 设置键常量
const (
	SettingKeyShippingRatePerKg      = "shipping_rate_per_kg"
	SettingKeyFreeShippingThreshold  = "free_shipping_threshold"
	SettingKeyDefaultWeight          = "default_weight"
	SettingKeyBankName               = "bank_name"
	SettingKeyBankAccountName        = "bank_account_name"
	SettingKeyBankAccountNumber      = "bank_account_number"
	SettingKeyBankBranch             = "bank_branch"
	SettingKeySiteName               = "site_name"
	SettingKeySiteCurrency           = "site_currency"
	SettingKeyOrderNumberPrefix      = "order_number_prefix"
	SettingKeyCODEnabled             = "cod_enabled"
	SettingKeyBankTransferEnabled    = "bank_transfer_enabled"
	SettingKeyCardEnabled            = "card_enabled"
)

// 运费默认值常量
const (
	DefaultShippingRatePerKg     = "500"
	DefaultFreeShippingThreshold = "0"
	DefaultProductWeightKg       = "0.5"
	MinChargeableWeightKg        = 0.1
)

// 订单号常量
const (
	OrderNumberPrefixDefault = "ORD"
	OrderNumberMaxAttempts   = 5
)

// 币种常量
const (
	SiteCurrencyDefault = "LKR"
)

// Banner 位置常量
const (
	BannerPositionHomeHero  = "home_hero"
	BannerPositionHomeStrip = "home_strip"
)

// Banner 跳转类型常量
const (
	BannerLinkTypeNone     = "none"
	BannerLinkTypeInternal = "internal"
	BannerLinkTypeExternal = "external"
)
