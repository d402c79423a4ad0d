package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/shelora/shelora/internal/cache"
	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取站点公开配置（币种、运费、可用支付方式、转账收款账户）
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	shipping := h.SettingService.ShippingConfig()

	methods := make([]string, 0, 3)
	for _, method := range []string{
		constants.PaymentMethodBankTransfer,
		constants.PaymentMethodCOD,
		constants.PaymentMethodCard,
	} {
		if h.SettingService.PaymentMethodEnabled(method) {
			methods = append(methods, method)
		}
	}

	data := map[string]interface{}{
		"site_name":               h.SettingService.GetString(constants.SettingKeySiteName, ""),
		"currency":                h.SettingService.SiteCurrency(),
		"shipping_rate_per_kg":    shipping.RatePerKg.StringFixed(2),
		"free_shipping_threshold": shipping.FreeShippingThreshold.StringFixed(2),
		"payment_methods":         methods,
	}
	if h.SettingService.PaymentMethodEnabled(constants.PaymentMethodBankTransfer) {
		data["bank_account"] = h.SettingService.BankAccountConfig()
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	page, pageSize = normalizePagination(page, pageSize)

	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "category fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, categories, pagination)
}
