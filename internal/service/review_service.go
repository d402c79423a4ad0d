package service

import (
	"fmt"
	"strings"

	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// ReviewInput 提交/修改评价输入
type ReviewInput struct {
	Rating  int
	Title   string
	Comment string
}

func validateReviewInput(input ReviewInput) error {
	if input.Rating < 1 || input.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	return nil
}

// ListForProduct 商品的已审核评价（买家侧）
func (s *ReviewService) ListForProduct(slug string, page, pageSize int) ([]models.Review, int64, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, 0, err
	}
	if product == nil {
		return nil, 0, ErrProductNotFound
	}
	return s.reviewRepo.ListApprovedByProduct(product.ID, page, pageSize)
}

// Submit 提交评价。每个用户对每个商品只能评价一次；
// 已送达订单里买过该商品的记为核实购买，审核通过前不公开。
func (s *ReviewService) Submit(userID uint, slug string, input ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}

	existing, err := s.reviewRepo.GetByProductAndUser(product.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	verified, err := s.orderRepo.UserHasDeliveredProduct(userID, product.ID)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ProductID:          product.ID,
		UserID:             userID,
		Rating:             input.Rating,
		Title:              strings.TrimSpace(input.Title),
		Comment:            strings.TrimSpace(input.Comment),
		IsVerifiedPurchase: verified,
		IsApproved:         false,
	}
	if err := s.reviewRepo.Create(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Update 修改自己的评价。内容变更后退回待审核。
func (s *ReviewService) Update(reviewID, userID uint, input ReviewInput) (*models.Review, error) {
	if err := validateReviewInput(input); err != nil {
		return nil, err
	}

	review, err := s.getOwned(reviewID, userID)
	if err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Title = strings.TrimSpace(input.Title)
	review.Comment = strings.TrimSpace(input.Comment)
	review.IsApproved = false
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete 删除自己的评价
func (s *ReviewService) Delete(reviewID, userID uint) error {
	review, err := s.getOwned(reviewID, userID)
	if err != nil {
		return err
	}
	return s.reviewRepo.Delete(review.ID)
}

// getOwned 按归属取评价；他人评价视同不存在
func (s *ReviewService) getOwned(reviewID, userID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil || review.UserID != userID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// List 后台评价列表
func (s *ReviewService) List(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// GetByID 后台评价详情
func (s *ReviewService) GetByID(reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// SetApproval 后台审核（通过/驳回）
func (s *ReviewService) SetApproval(reviewID uint, approved bool) (*models.Review, error) {
	review, err := s.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	review.IsApproved = approved
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// AdminDelete 后台删除评价
func (s *ReviewService) AdminDelete(reviewID uint) error {
	review, err := s.GetByID(reviewID)
	if err != nil {
		return err
	}
	return s.reviewRepo.Delete(review.ID)
}
