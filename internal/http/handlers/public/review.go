package public

import (
	"strconv"
	"time"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 提交/修改评价请求
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// ReviewView 评价公开响应（不暴露用户联系方式）
type ReviewView struct {
	ID                 uint      `json:"id"`
	Rating             int       `json:"rating"`
	Title              string    `json:"title"`
	Comment            string    `json:"comment"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	Reviewer           string    `json:"reviewer"`
	CreatedAt          time.Time `json:"created_at"`
}

func buildReviewView(review *models.Review) ReviewView {
	view := ReviewView{
		ID:                 review.ID,
		Rating:             review.Rating,
		Title:              review.Title,
		Comment:            review.Comment,
		IsVerifiedPurchase: review.IsVerifiedPurchase,
		CreatedAt:          review.CreatedAt,
	}
	if review.User != nil {
		view.Reviewer = review.User.Name
	}
	return view
}

// GetProductReviews 商品的已审核评价列表
func (h *Handler) GetProductReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	reviews, total, err := h.ReviewService.ListForProduct(c.Param("slug"), page, pageSize)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	views := make([]ReviewView, 0, len(reviews))
	for i := range reviews {
		views = append(views, buildReviewView(&reviews[i]))
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, views, pagination)
}

// SubmitReview 提交评价（审核通过后公开）
func (h *Handler) SubmitReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	review, err := h.ReviewService.Submit(uid, c.Param("slug"), toReviewInput(req))
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// UpdateReview 修改自己的评价
func (h *Handler) UpdateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid review id", err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	review, err := h.ReviewService.Update(uint(reviewID), uid, toReviewInput(req))
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteReview 删除自己的评价
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid review id", err)
		return
	}

	if err := h.ReviewService.Delete(uint(reviewID), uid); err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, nil)
}

func toReviewInput(req ReviewRequest) service.ReviewInput {
	return service.ReviewInput{
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	}
}
