package public

import (
	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 修改用户档案请求
type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// GetProfile 获取当前用户档案
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserService.EnsureProfile(uid, c.GetString("user_email"))
	if err != nil {
		respondError(c, response.CodeInternal, "profile fetch failed", err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile 修改当前用户档案
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	if _, err := h.UserService.EnsureProfile(uid, c.GetString("user_email")); err != nil {
		respondError(c, response.CodeInternal, "profile update failed", err)
		return
	}

	user, err := h.UserService.UpdateProfile(uid, service.ProfileInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "profile update failed", err)
		return
	}
	response.Success(c, user)
}
