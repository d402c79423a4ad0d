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

// ListReviews 评价列表 (Admin)
func (h *Handler) ListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	rating, _ := strconv.Atoi(c.Query("rating"))

	filter := repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: uint(productID),
		Rating:    rating,
		Search:    strings.TrimSpace(c.Query("search")),
	}
	if raw := c.Query("is_approved"); raw != "" {
		approved := raw == "1" || raw == "true"
		filter.IsApproved = &approved
	}

	reviews, total, err := h.ReviewService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "review fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, reviews, pagination)
}

// GetReview 评价详情 (Admin)
func (h *Handler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.ReviewService.GetByID(id)
	if err != nil {
		respondAdminReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// ApproveReview 审核通过评价 (Admin)
func (h *Handler) ApproveReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.ReviewService.SetApproval(id, true)
	if err != nil {
		respondAdminReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// RejectReview 驳回评价 (Admin)
func (h *Handler) RejectReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.ReviewService.SetApproval(id, false)
	if err != nil {
		respondAdminReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteReview 删除评价 (Admin)
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ReviewService.AdminDelete(id); err != nil {
		respondAdminReviewError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondAdminReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		respondError(c, response.CodeNotFound, "review not found", nil)
	default:
		respondError(c, response.CodeInternal, "review operation failed", err)
	}
}
