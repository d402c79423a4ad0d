package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponRequest 创建/更新优惠券请求
type CouponRequest struct {
	Code           string  `json:"code" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	Value          float64 `json:"value" binding:"required"`
	MinOrderAmount float64 `json:"min_order_amount"`
	MaxDiscount    float64 `json:"max_discount"`
	UsageLimit     int     `json:"usage_limit"`
	PerUserLimit   int     `json:"per_user_limit"`
	StartsAt       string  `json:"starts_at"`
	ExpiresAt      string  `json:"expires_at"`
	IsActive       *bool   `json:"is_active"`
}

func (r CouponRequest) toInput() (service.CouponInput, error) {
	startsAt, err := parseTimeNullable(r.StartsAt)
	if err != nil {
		return service.CouponInput{}, err
	}
	expiresAt, err := parseTimeNullable(r.ExpiresAt)
	if err != nil {
		return service.CouponInput{}, err
	}

	return service.CouponInput{
		Code:           strings.TrimSpace(r.Code),
		Type:           r.Type,
		Value:          decimal.NewFromFloat(r.Value),
		MinOrderAmount: decimal.NewFromFloat(r.MinOrderAmount),
		MaxDiscount:    decimal.NewFromFloat(r.MaxDiscount),
		UsageLimit:     r.UsageLimit,
		PerUserLimit:   r.PerUserLimit,
		StartsAt:       startsAt,
		ExpiresAt:      expiresAt,
		IsActive:       r.IsActive,
	}, nil
}

func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListCoupons 优惠券列表 (Admin)
func (h *Handler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	coupons, total, err := h.CouponService.List(repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "coupon fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, coupons, pagination)
}

// GetCoupon 优惠券详情 (Admin)
func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.CouponService.GetByID(id)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, coupon)
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}

	coupon, err := h.CouponService.Create(input)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}

	coupon, err := h.CouponService.Update(id, input)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券（软删除）
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CouponService.Delete(id); err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "coupon not found", nil)
	case errors.Is(err, service.ErrCouponCodeExists):
		respondError(c, response.CodeBadRequest, "coupon code already exists", nil)
	case errors.Is(err, service.ErrCouponTypeInvalid):
		respondError(c, response.CodeBadRequest, "coupon type is invalid", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "coupon save failed", err)
	}
}
