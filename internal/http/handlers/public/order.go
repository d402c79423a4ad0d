package public

import (
	"strconv"
	"strings"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算下单请求
type CheckoutRequest struct {
	ShippingName     string `json:"shipping_name" binding:"required"`
	ShippingPhone    string `json:"shipping_phone" binding:"required"`
	ShippingAddress  string `json:"shipping_address" binding:"required"`
	ShippingCity     string `json:"shipping_city"`
	ShippingPostal   string `json:"shipping_postal_code"`
	Notes            string `json:"notes"`
	PaymentMethod    string `json:"payment_method" binding:"required"`
	BankReference    string `json:"bank_reference"`
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	order, err := h.OrderService.PlaceOrder(uid, service.PlaceOrderInput{
		ShippingName:       strings.TrimSpace(req.ShippingName),
		ShippingPhone:      strings.TrimSpace(req.ShippingPhone),
		ShippingAddress:    strings.TrimSpace(req.ShippingAddress),
		ShippingCity:       strings.TrimSpace(req.ShippingCity),
		ShippingPostalCode: strings.TrimSpace(req.ShippingPostal),
		Notes:              req.Notes,
		PaymentMethod:      req.PaymentMethod,
		BankReference:      strings.TrimSpace(req.BankReference),
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 获取当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   c.Query("status"),
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

// GetOrder 获取当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	order, err := h.OrderService.GetOrderByUser(uint(orderID), uid)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderByNumber 根据订单号获取当前用户订单详情
func (h *Handler) GetOrderByNumber(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderByUserOrderNumber(c.Param("order_number"), uid)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 用户取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	order, err := h.OrderService.CancelOrderByCustomer(uint(orderID), uid)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}
