package admin

import (
	"errors"
	"strings"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// VariationTypeRequest 创建/更新规格类型请求
type VariationTypeRequest struct {
	Slug       string `json:"slug" binding:"required"`
	Name       string `json:"name" binding:"required"`
	InputType  string `json:"input_type"`
	IsRequired *bool  `json:"is_required"`
	IsActive   *bool  `json:"is_active"`
	SortOrder  int    `json:"sort_order"`
}

// VariationOptionRequest 创建/更新规格选项请求
type VariationOptionRequest struct {
	Value     string `json:"value" binding:"required"`
	Label     string `json:"label"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order"`
}

// ListVariationTypes 规格类型列表 (Admin)
func (h *Handler) ListVariationTypes(c *gin.Context) {
	types, err := h.VariationService.ListTypes(false)
	if err != nil {
		respondError(c, response.CodeInternal, "variation fetch failed", err)
		return
	}
	response.Success(c, types)
}

// GetVariationType 规格类型详情 (Admin)
func (h *Handler) GetVariationType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.VariationService.GetType(id)
	if err != nil {
		respondVariationError(c, err)
		return
	}
	response.Success(c, item)
}

// CreateVariationType 创建规格类型
func (h *Handler) CreateVariationType(c *gin.Context) {
	var req VariationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	item, err := h.VariationService.CreateType(service.VariationTypeInput{
		Slug:       strings.TrimSpace(req.Slug),
		Name:       strings.TrimSpace(req.Name),
		InputType:  req.InputType,
		IsRequired: req.IsRequired,
		IsActive:   req.IsActive,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		respondVariationError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateVariationType 更新规格类型
func (h *Handler) UpdateVariationType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	item, err := h.VariationService.UpdateType(id, service.VariationTypeInput{
		Slug:       strings.TrimSpace(req.Slug),
		Name:       strings.TrimSpace(req.Name),
		InputType:  req.InputType,
		IsRequired: req.IsRequired,
		IsActive:   req.IsActive,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		respondVariationError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteVariationType 删除规格类型
func (h *Handler) DeleteVariationType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.VariationService.DeleteType(id); err != nil {
		respondVariationError(c, err)
		return
	}
	response.Success(c, nil)
}

// CreateVariationOption 创建规格选项
func (h *Handler) CreateVariationOption(c *gin.Context) {
	typeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariationOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	option, err := h.VariationService.CreateOption(typeID, service.VariationOptionInput{
		Value:     strings.TrimSpace(req.Value),
		Label:     strings.TrimSpace(req.Label),
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondVariationError(c, err)
		return
	}
	response.Success(c, option)
}

// UpdateVariationOption 更新规格选项
func (h *Handler) UpdateVariationOption(c *gin.Context) {
	optionID, ok := parseIDParam(c, "option_id")
	if !ok {
		return
	}

	var req VariationOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	option, err := h.VariationService.UpdateOption(optionID, service.VariationOptionInput{
		Value:     strings.TrimSpace(req.Value),
		Label:     strings.TrimSpace(req.Label),
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		respondVariationError(c, err)
		return
	}
	response.Success(c, option)
}

// DeleteVariationOption 删除规格选项
func (h *Handler) DeleteVariationOption(c *gin.Context) {
	optionID, ok := parseIDParam(c, "option_id")
	if !ok {
		return
	}

	if err := h.VariationService.DeleteOption(optionID); err != nil {
		respondVariationError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondVariationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVariationNotFound):
		respondError(c, response.CodeNotFound, "variation not found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "slug already exists", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "variation save failed", err)
	}
}
