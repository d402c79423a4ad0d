package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/logger"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"gorm.io/gorm"
)

// PaymentService 支付业务服务：转账凭证提交与人工核款
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	settingSvc  *SettingService
}

// NewPaymentService 创建支付服务
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	settingSvc *SettingService,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		settingSvc:  settingSvc,
	}
}

// GetByOrderForUser 获取用户订单的支付记录
func (s *PaymentService) GetByOrderForUser(orderID, userID uint) (*models.Payment, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	payment, err := s.paymentRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// GetByID 后台按 ID 获取支付记录
func (s *PaymentService) GetByID(paymentID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// List 后台支付列表
func (s *PaymentService) List(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(filter)
}

// BankAccount 返回转账收款账户（给待付款订单展示）
func (s *PaymentService) BankAccount() BankAccount {
	return s.settingSvc.BankAccountConfig()
}

// SubmitSlip 买家提交转账凭证。重复提交覆盖旧凭证，已核款的支付拒绝修改。
func (s *PaymentService) SubmitSlip(userID, orderID uint, slipReference, bankReference string) (*models.Payment, error) {
	slip := strings.TrimSpace(slipReference)
	if slip == "" {
		return nil, fmt.Errorf("%w: slip reference is required", ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	payment, err := s.paymentRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Method != constants.PaymentMethodBankTransfer {
		return nil, ErrPaymentMethodInvalid
	}
	if payment.Status == constants.PaymentStatusCompleted {
		return nil, ErrPaymentStateConflict
	}

	now := time.Now()
	payment.SlipReference = slip
	payment.BankReference = strings.TrimSpace(bankReference)
	payment.SlipUploadedAt = &now
	payment.Status = constants.PaymentStatusProcessing
	payment.RejectReason = ""
	payment.UpdatedAt = now

	if err := s.paymentRepo.Update(payment); err != nil {
		return nil, err
	}

	logger.Infow("payment_slip_submitted",
		"user_id", userID,
		"order_id", order.ID,
		"payment_id", payment.ID,
	)
	return payment, nil
}

// VerifyBankTransfer 管理员核款通过：支付完成，订单进入备货
func (s *PaymentService) VerifyBankTransfer(paymentID, adminID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Method != constants.PaymentMethodBankTransfer {
		return nil, ErrPaymentMethodInvalid
	}
	if payment.Status == constants.PaymentStatusCompleted {
		return nil, ErrPaymentStateConflict
	}

	order, err := s.orderRepo.GetByID(payment.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = constants.PaymentStatusCompleted
		payment.VerifiedBy = &adminID
		payment.VerifiedAt = &now
		payment.PaidAt = &now
		payment.RejectReason = ""
		payment.UpdatedAt = now
		if err := s.paymentRepo.WithTx(tx).Update(payment); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"payment_status": constants.OrderPaymentStatusPaid,
			"updated_at":     now,
		}
		status := order.Status
		if status == constants.OrderStatusPending {
			status = constants.OrderStatusProcessing
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, status, updates)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("payment_verified",
		"payment_id", payment.ID,
		"order_id", payment.OrderID,
		"admin_id", adminID,
		"amount", payment.Amount.String(),
	)
	return payment, nil
}

// RejectBankTransfer 管理员驳回凭证，买家可重新提交
func (s *PaymentService) RejectBankTransfer(paymentID, adminID uint, reason string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Method != constants.PaymentMethodBankTransfer {
		return nil, ErrPaymentMethodInvalid
	}
	if payment.Status == constants.PaymentStatusCompleted {
		return nil, ErrPaymentStateConflict
	}

	order, err := s.orderRepo.GetByID(payment.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = constants.PaymentStatusFailed
		payment.RejectReason = strings.TrimSpace(reason)
		payment.VerifiedBy = &adminID
		payment.VerifiedAt = &now
		payment.UpdatedAt = now
		if err := s.paymentRepo.WithTx(tx).Update(payment); err != nil {
			return err
		}

		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, order.Status, map[string]interface{}{
			"payment_status": constants.OrderPaymentStatusFailed,
			"updated_at":     now,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("payment_rejected",
		"payment_id", payment.ID,
		"order_id", payment.OrderID,
		"admin_id", adminID,
		"reason", payment.RejectReason,
	)
	return payment, nil
}
