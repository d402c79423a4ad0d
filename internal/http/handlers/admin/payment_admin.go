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

// RejectPaymentRequest 拒绝转账凭证请求
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListPayments 支付列表 (Admin)
func (h *Handler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	payments, total, err := h.PaymentService.List(repository.PaymentListFilter{
		Page:     page,
		PageSize: pageSize,
		OrderID:  uint(orderID),
		Method:   strings.TrimSpace(c.Query("method")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, payments, pagination)
}

// GetPayment 支付详情 (Admin)
func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.PaymentService.GetByID(id)
	if err != nil {
		respondAdminPaymentError(c, err)
		return
	}
	response.Success(c, payment)
}

// VerifyPayment 确认银行转账 (Admin)
func (h *Handler) VerifyPayment(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.PaymentService.VerifyBankTransfer(id, adminID)
	if err != nil {
		respondAdminPaymentError(c, err)
		return
	}
	response.Success(c, payment)
}

// RejectPayment 拒绝银行转账 (Admin)
func (h *Handler) RejectPayment(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	payment, err := h.PaymentService.RejectBankTransfer(id, adminID, strings.TrimSpace(req.Reason))
	if err != nil {
		respondAdminPaymentError(c, err)
		return
	}
	response.Success(c, payment)
}

func respondAdminPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		respondError(c, response.CodeNotFound, "payment not found", nil)
	case errors.Is(err, service.ErrPaymentStateConflict):
		respondError(c, response.CodeConflict, "payment is not in a verifiable state", nil)
	case errors.Is(err, service.ErrPaymentMethodInvalid):
		respondError(c, response.CodeBadRequest, "payment method does not support this operation", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "payment update failed", err)
	}
}
