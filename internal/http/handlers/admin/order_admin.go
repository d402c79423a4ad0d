package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态流转请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTrackingRequest 物流单号更新请求
type UpdateTrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// ListOrders 订单列表 (Admin)
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)

	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      uint(userID),
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNumber: strings.TrimSpace(c.Query("order_number")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 订单详情 (Admin)
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderForAdmin(id)
	if err != nil {
		respondAdminOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 订单状态流转 (Admin)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(id, req.Status)
	if err != nil {
		respondAdminOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderTracking 更新物流单号并流转发货 (Admin)
func (h *Handler) UpdateOrderTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	order, err := h.OrderService.UpdateTracking(id, strings.TrimSpace(req.TrackingNumber))
	if err != nil {
		respondAdminOrderError(c, err)
		return
	}
	response.Success(c, order)
}

func respondAdminOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "order not found", nil)
	case errors.Is(err, service.ErrOrderStatusInvalid):
		respondError(c, response.CodeConflict, "order status transition not allowed", nil)
	case errors.Is(err, service.ErrStockConflict):
		respondError(c, response.CodeConflict, "insufficient stock for delivery", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "order update failed", err)
	}
}
