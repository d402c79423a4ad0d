package service

import (
	"strings"
	"time"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券业务服务
type CouponService struct {
	couponRepo repository.CouponRepository
	orderRepo  repository.OrderRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, orderRepo repository.OrderRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo, orderRepo: orderRepo}
}

// CouponInput 创建/更新优惠券入参
type CouponInput struct {
	Code           string
	Type           string
	Value          decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxDiscount    decimal.Decimal
	UsageLimit     int
	PerUserLimit   int
	StartsAt       *time.Time
	ExpiresAt      *time.Time
	IsActive       *bool
}

// List 查询优惠券列表
func (s *CouponService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.couponRepo.List(filter)
}

// GetByID 根据 ID 获取优惠券
func (s *CouponService) GetByID(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Create 创建优惠券
func (s *CouponService) Create(input CouponInput) (*models.Coupon, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.couponRepo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeExists
	}

	coupon := &models.Coupon{
		Code:           strings.ToUpper(strings.TrimSpace(input.Code)),
		Type:           input.Type,
		Value:          models.NewMoneyFromDecimal(input.Value),
		MinOrderAmount: models.NewMoneyFromDecimal(input.MinOrderAmount),
		MaxDiscount:    models.NewMoneyFromDecimal(input.MaxDiscount),
		UsageLimit:     input.UsageLimit,
		PerUserLimit:   input.PerUserLimit,
		StartsAt:       input.StartsAt,
		ExpiresAt:      input.ExpiresAt,
		IsActive:       true,
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update 更新优惠券
func (s *CouponService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code != coupon.Code {
		existing, err := s.couponRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCouponCodeExists
		}
	}

	coupon.Code = code
	coupon.Type = input.Type
	coupon.Value = models.NewMoneyFromDecimal(input.Value)
	coupon.MinOrderAmount = models.NewMoneyFromDecimal(input.MinOrderAmount)
	coupon.MaxDiscount = models.NewMoneyFromDecimal(input.MaxDiscount)
	coupon.UsageLimit = input.UsageLimit
	coupon.PerUserLimit = input.PerUserLimit
	coupon.StartsAt = input.StartsAt
	coupon.ExpiresAt = input.ExpiresAt
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete 删除优惠券（软删除）
func (s *CouponService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.couponRepo.Delete(id)
}

func (s *CouponService) validateInput(input CouponInput) error {
	if strings.TrimSpace(input.Code) == "" {
		return ErrInvalidInput
	}
	switch input.Type {
	case constants.CouponTypePercentage:
		if input.Value.LessThanOrEqual(decimal.Zero) || input.Value.GreaterThan(decimal.NewFromInt(100)) {
			return ErrInvalidInput
		}
	case constants.CouponTypeFixed:
		if input.Value.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidInput
		}
	default:
		return ErrCouponTypeInvalid
	}
	if input.MinOrderAmount.IsNegative() || input.MaxDiscount.IsNegative() {
		return ErrInvalidInput
	}
	if input.UsageLimit < 0 || input.PerUserLimit < 0 {
		return ErrInvalidInput
	}
	if input.StartsAt != nil && input.ExpiresAt != nil && input.ExpiresAt.Before(*input.StartsAt) {
		return ErrInvalidInput
	}
	return nil
}

// GetByCode 根据优惠码获取优惠券
func (s *CouponService) GetByCode(code string) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Validate 校验优惠券在给定金额与用户下是否可用。
// userID 为 0 时跳过每人限额检查（预览场景）。
func (s *CouponService) Validate(coupon *models.Coupon, amount decimal.Decimal, userID uint) error {
	if coupon == nil {
		return ErrCouponNotFound
	}
	if !coupon.IsActive {
		return ErrCouponInactive
	}
	now := time.Now()
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return ErrCouponNotStarted
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return ErrCouponExpired
	}
	if amount.LessThan(coupon.MinOrderAmount.Decimal) {
		return ErrCouponMinAmount
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return ErrCouponUsageLimit
	}
	if userID > 0 && coupon.PerUserLimit > 0 {
		used, err := s.orderRepo.CountUserOrdersWithCoupon(userID, coupon.ID)
		if err != nil {
			return err
		}
		if used >= int64(coupon.PerUserLimit) {
			return ErrCouponPerUserLimit
		}
	}
	return nil
}

// CalculateDiscount 计算优惠金额。
// 百分比类型按金额比例计算并受最大优惠封顶；固定类型不超过被优惠金额本身。
func (s *CouponService) CalculateDiscount(coupon *models.Coupon, amount decimal.Decimal) decimal.Decimal {
	if coupon == nil || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if amount.LessThan(coupon.MinOrderAmount.Decimal) {
		return decimal.Zero
	}

	switch coupon.Type {
	case constants.CouponTypePercentage:
		discount := amount.Mul(coupon.Value.Decimal).Div(decimal.NewFromInt(100)).Round(2)
		if coupon.MaxDiscount.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
		return discount
	case constants.CouponTypeFixed:
		if coupon.Value.GreaterThan(amount) {
			return amount
		}
		return coupon.Value.Decimal
	default:
		return decimal.Zero
	}
}
