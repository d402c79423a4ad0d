package admin

import (
	"strings"

	"github.com/shelora/shelora/internal/cache"
	"github.com/shelora/shelora/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 公共站点配置缓存键，设置变更时一并失效
const publicConfigCacheKey = "public:config"

// UpdateSettingRequest 更新设置请求
type UpdateSettingRequest struct {
	Key   string      `json:"key" binding:"required"`
	Value interface{} `json:"value"`
}

// ListSettings 获取全部设置 (Admin)
func (h *Handler) ListSettings(c *gin.Context) {
	settings, err := h.SettingService.ListAll()
	if err != nil {
		respondError(c, response.CodeInternal, "settings fetch failed", err)
		return
	}
	response.Success(c, settings)
}

// GetSetting 获取单个设置 (Admin)
func (h *Handler) GetSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		respondError(c, response.CodeBadRequest, "invalid setting key", nil)
		return
	}

	value, err := h.SettingService.Get(key)
	if err != nil {
		respondError(c, response.CodeInternal, "settings fetch failed", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}

// UpdateSetting 更新设置 (Admin)
func (h *Handler) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	key := strings.TrimSpace(req.Key)
	if key == "" {
		respondError(c, response.CodeBadRequest, "invalid setting key", nil)
		return
	}

	if err := h.SettingService.Update(key, req.Value); err != nil {
		respondError(c, response.CodeInternal, "settings save failed", err)
		return
	}

	_ = cache.Del(c.Request.Context(), publicConfigCacheKey)
	response.Success(c, gin.H{"key": key, "value": req.Value})
}
