package admin

import (
	"errors"
	"strconv"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// AdjustInventoryRequest 库存调整请求
type AdjustInventoryRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// InventoryThresholdRequest 低库存阈值请求
type InventoryThresholdRequest struct {
	Threshold int `json:"threshold"`
}

// InventoryTrackingRequest 库存跟踪开关请求
type InventoryTrackingRequest struct {
	Track *bool `json:"track" binding:"required"`
}

// ListInventory 库存列表 (Admin)
func (h *Handler) ListInventory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)

	slots, total, err := h.InventoryService.List(repository.InventoryListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		LowStock:  c.Query("low_stock") == "1",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "inventory fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, slots, pagination)
}

// GetInventory 库存详情 (Admin)
func (h *Handler) GetInventory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	slot, err := h.InventoryService.GetByID(id)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, slot)
}

// AdjustInventory 调整库存数量
func (h *Handler) AdjustInventory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	slot, err := h.InventoryService.Adjust(id, req.Delta)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, slot)
}

// SetInventoryThreshold 设置低库存阈值
func (h *Handler) SetInventoryThreshold(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req InventoryThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	slot, err := h.InventoryService.SetLowStockThreshold(id, req.Threshold)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, slot)
}

// SetInventoryTracking 设置库存跟踪开关
func (h *Handler) SetInventoryTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req InventoryTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	slot, err := h.InventoryService.SetTracking(id, *req.Track)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, slot)
}

func respondInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInventoryNotFound):
		respondError(c, response.CodeNotFound, "inventory not found", nil)
	case errors.Is(err, service.ErrInvalidAdjustment):
		respondError(c, response.CodeBadRequest, "invalid adjustment", nil)
	case errors.Is(err, service.ErrNegativeInventory):
		respondError(c, response.CodeConflict, "inventory cannot go negative", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "inventory save failed", err)
	}
}
