package public

import (
	"strconv"
	"strings"

	"github.com/shelora/shelora/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SubmitSlipRequest 提交转账凭证请求
type SubmitSlipRequest struct {
	SlipReference string `json:"slip_reference" binding:"required"`
	BankReference string `json:"bank_reference"`
}

// GetOrderPayment 获取订单支付记录
func (h *Handler) GetOrderPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	payment, err := h.PaymentService.GetByOrderForUser(uint(orderID), uid)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, payment)
}

// GetBankAccount 获取收款银行账户信息
func (h *Handler) GetBankAccount(c *gin.Context) {
	response.Success(c, h.PaymentService.BankAccount())
}

// SubmitPaymentSlip 提交银行转账凭证
func (h *Handler) SubmitPaymentSlip(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	var req SubmitSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	payment, err := h.PaymentService.SubmitSlip(uid, uint(orderID), strings.TrimSpace(req.SlipReference), strings.TrimSpace(req.BankReference))
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, payment)
}
