package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/logger"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单业务服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	inventoryRepo repository.InventoryRepository
	couponRepo    repository.CouponRepository
	paymentRepo   repository.PaymentRepository
	cartSvc       *CartService
	couponSvc     *CouponService
	settingSvc    *SettingService
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	inventoryRepo repository.InventoryRepository,
	couponRepo repository.CouponRepository,
	paymentRepo repository.PaymentRepository,
	cartSvc *CartService,
	couponSvc *CouponService,
	settingSvc *SettingService,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		inventoryRepo: inventoryRepo,
		couponRepo:    couponRepo,
		paymentRepo:   paymentRepo,
		cartSvc:       cartSvc,
		couponSvc:     couponSvc,
		settingSvc:    settingSvc,
	}
}

// PlaceOrderInput 下单请求
type PlaceOrderInput struct {
	ShippingName       string
	ShippingPhone      string
	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	Notes              string
	PaymentMethod      string
	BankReference      string
}

// PlaceOrder 将购物车转为订单：快照订单项、预占库存、创建支付记录、清空购物车。
// 整个过程在单个数据库事务内完成，任何一步失败全部回滚。
func (s *OrderService) PlaceOrder(userID uint, input PlaceOrderInput) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrPermissionDenied
	}
	method := strings.TrimSpace(input.PaymentMethod)
	if !s.settingSvc.PaymentMethodEnabled(method) {
		return nil, ErrPaymentMethodInvalid
	}
	if strings.TrimSpace(input.ShippingName) == "" ||
		strings.TrimSpace(input.ShippingPhone) == "" ||
		strings.TrimSpace(input.ShippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping name, phone and address are required", ErrInvalidInput)
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	// 下单前以权威口径重算一次，避免读取到陈旧汇总
	if err := s.cartSvc.Recalculate(cart); err != nil {
		return nil, err
	}

	// 库存预检（下单与加购之间可能已售罄）
	for i := range cart.Items {
		if err := s.checkLineStock(&cart.Items[i]); err != nil {
			return nil, err
		}
	}

	appliedCoupon, err := s.resolveAppliedCoupon(cart)
	if err != nil {
		return nil, err
	}

	orderStatus := constants.OrderStatusPending
	if method == constants.PaymentMethodCOD {
		// 货到付款无需事前核款，直接进入备货
		orderStatus = constants.OrderStatusProcessing
	}

	orderNumber, err := s.generateOrderNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:     orderNumber,
		UserID:          userID,
		Status:          orderStatus,
		PaymentStatus:   constants.OrderPaymentStatusPending,
		Currency:        s.settingSvc.SiteCurrency(),
		Subtotal:        cart.Subtotal,
		DiscountAmount:  cart.DiscountAmount,
		ShippingAmount:  cart.ShippingAmount,
		TaxAmount:       cart.TaxAmount,
		TotalAmount:     cart.TotalAmount,
		ShippingName:    strings.TrimSpace(input.ShippingName),
		ShippingPhone:   strings.TrimSpace(input.ShippingPhone),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		ShippingCity:    strings.TrimSpace(input.ShippingCity),
		ShippingPostal:  strings.TrimSpace(input.ShippingPostalCode),
		Notes:           strings.TrimSpace(input.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if appliedCoupon != nil {
		order.CouponID = &appliedCoupon.ID
		order.CouponCode = appliedCoupon.Code
	}

	cfg := s.settingSvc.ShippingConfig()
	items := buildOrderItems(cart, cfg.DefaultWeightKg)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		inventoryRepo := s.inventoryRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		// 逐行预占库存，任何一行不足即整体回滚
		for i := range cart.Items {
			item := &cart.Items[i]
			if item.ItemType != constants.CartItemTypeProduct || item.ProductID == nil {
				continue
			}
			slot, err := inventoryRepo.GetSlot(*item.ProductID, item.VariantID)
			if err != nil {
				return err
			}
			if slot == nil || !slot.TrackInventory {
				continue
			}
			affected, err := inventoryRepo.Reserve(slot.ID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockConflict
			}
		}

		payment := &models.Payment{
			OrderID:       order.ID,
			Method:        method,
			Status:        constants.PaymentStatusPending,
			Amount:        order.TotalAmount,
			Currency:      order.Currency,
			BankReference: strings.TrimSpace(input.BankReference),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}

		// 使用计数只在真正下单时累加一次，应用/预览不计
		if appliedCoupon != nil {
			if err := s.couponRepo.WithTx(tx).IncrementUsedCount(appliedCoupon.ID, 1); err != nil {
				return err
			}
		}

		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}
		cart.CouponID = nil
		cart.Subtotal = models.ZeroMoney()
		cart.DiscountAmount = models.ZeroMoney()
		cart.ShippingAmount = models.ZeroMoney()
		cart.TaxAmount = models.ZeroMoney()
		cart.TotalAmount = models.ZeroMoney()
		return cartRepo.Save(cart)
	})
	if err != nil {
		if errors.Is(err, ErrStockConflict) {
			return nil, ErrStockConflict
		}
		logger.Errorw("order_place_failed",
			"user_id", userID,
			"order_number", orderNumber,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	logger.Infow("order_placed",
		"user_id", userID,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"payment_method", method,
		"total_amount", order.TotalAmount.String(),
	)

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

// CancelOrderByCustomer 买家取消订单，仅限待收款或备货中的订单
func (s *OrderService) CancelOrderByCustomer(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !customerCancellableStatuses[order.Status] {
		return nil, ErrOrderNotCancellable
	}
	return s.transition(order, constants.OrderStatusCancelled)
}

// UpdateOrderStatus 管理端推进订单状态，带库存侧效应
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	target := strings.TrimSpace(strings.ToLower(targetStatus))
	if !canTransition(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}
	return s.transition(order, target)
}

// UpdateTracking 录入物流单号。录入即视为已发货。
func (s *OrderService) UpdateTracking(orderID uint, trackingNumber string) (*models.Order, error) {
	number := strings.TrimSpace(trackingNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: tracking number is required", ErrInvalidInput)
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.Status == constants.OrderStatusShipped {
		if err := s.orderRepo.UpdateStatus(order.ID, order.Status, map[string]interface{}{
			"tracking_number": number,
			"updated_at":      time.Now(),
		}); err != nil {
			return nil, err
		}
		return s.orderRepo.GetByID(order.ID)
	}

	if !canTransition(order.Status, constants.OrderStatusShipped) {
		return nil, ErrOrderStatusInvalid
	}
	order.TrackingNumber = number
	return s.transitionWithUpdates(order, constants.OrderStatusShipped, map[string]interface{}{
		"tracking_number": number,
	})
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderByUserOrderNumber 根据订单编号获取用户订单
func (s *OrderService) GetOrderByUserOrderNumber(orderNumber string, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNumberAndUser(orderNumber, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin 后台订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin 后台订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) transition(order *models.Order, target string) (*models.Order, error) {
	return s.transitionWithUpdates(order, target, nil)
}

func (s *OrderService) transitionWithUpdates(order *models.Order, target string, extra map[string]interface{}) (*models.Order, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	for k, v := range extra {
		updates[k] = v
	}

	switch target {
	case constants.OrderStatusShipped:
		updates["shipped_at"] = now
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	case constants.OrderStatusRefunded:
		updates["payment_status"] = constants.OrderPaymentStatusRefunded
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		inventoryRepo := s.inventoryRepo.WithTx(tx)

		switch target {
		case constants.OrderStatusDelivered:
			// 签收：预占转为真实出库
			if err := s.applyInventory(inventoryRepo, order, func(slotID uint, qty int) (int64, error) {
				return inventoryRepo.Deduct(slotID, qty)
			}, true); err != nil {
				return err
			}
		case constants.OrderStatusCancelled:
			// 取消：仅释放预占，不触碰在库量
			if err := s.applyInventory(inventoryRepo, order, func(slotID uint, qty int) (int64, error) {
				return inventoryRepo.Release(slotID, qty)
			}, false); err != nil {
				return err
			}
		}

		if target == constants.OrderStatusRefunded {
			payment, err := s.paymentRepo.WithTx(tx).GetByOrderID(order.ID)
			if err != nil {
				return err
			}
			if payment != nil {
				payment.Status = constants.PaymentStatusRefunded
				payment.UpdatedAt = now
				if err := s.paymentRepo.WithTx(tx).Update(payment); err != nil {
					return err
				}
			}
		}

		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, target, updates)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"from", order.Status,
		"to", target,
	)
	return s.orderRepo.GetByID(order.ID)
}

// applyInventory 遍历订单商品行并应用库存操作。strict 时要求操作行生效。
func (s *OrderService) applyInventory(
	inventoryRepo repository.InventoryRepository,
	order *models.Order,
	op func(slotID uint, qty int) (int64, error),
	strict bool,
) error {
	for i := range order.Items {
		item := &order.Items[i]
		if item.ItemType != constants.OrderItemTypeProduct || item.ProductID == nil {
			continue
		}
		slot, err := inventoryRepo.GetSlot(*item.ProductID, item.VariantID)
		if err != nil {
			return err
		}
		if slot == nil || !slot.TrackInventory {
			continue
		}
		affected, err := op(slot.ID, item.Quantity)
		if err != nil {
			return err
		}
		if strict && affected == 0 {
			return fmt.Errorf("%w: %s", ErrStockConflict, item.Name)
		}
	}
	return nil
}

func (s *OrderService) resolveAppliedCoupon(cart *models.Cart) (*models.Coupon, error) {
	if cart.CouponID == nil || !cart.DiscountAmount.IsPositive() {
		return nil, nil
	}
	coupon := cart.Coupon
	if coupon == nil {
		loaded, err := s.couponRepo.GetByID(*cart.CouponID)
		if err != nil {
			return nil, err
		}
		coupon = loaded
	}
	if coupon == nil {
		return nil, nil
	}
	if err := s.couponSvc.Validate(coupon, cart.Subtotal.Decimal, cart.UserID); err != nil {
		return nil, nil
	}
	return coupon, nil
}

// checkLineStock 逐行库存预检，失败时携带商品名返回
func (s *OrderService) checkLineStock(item *models.CartItem) error {
	switch item.ItemType {
	case constants.CartItemTypeAlbum:
		if item.Album == nil {
			return ErrAlbumNotFound
		}
		return s.cartSvc.checkAlbumStock(item.Album)
	default:
		if item.ProductID == nil {
			return ErrProductNotFound
		}
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		return s.cartSvc.checkProductStock(*item.ProductID, item.VariantID, item.Quantity, name)
	}
}

// buildOrderItems 将购物车行快照为订单项（按值拷贝，后续目录变更不影响历史订单）
func buildOrderItems(cart *models.Cart, defaultWeightKg float64) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for i := range cart.Items {
		line := &cart.Items[i]
		item := models.OrderItem{
			ItemType:  line.ItemType,
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			AlbumID:   line.AlbumID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			TotalPrice: models.NewMoneyFromDecimal(
				LineSubtotal(line.UnitPrice.Decimal, line.Quantity)),
		}

		switch line.ItemType {
		case constants.CartItemTypeAlbum:
			if line.Album != nil {
				item.Name = line.Album.Title
				item.WeightKg = AlbumUnitWeightKg(line.Album, defaultWeightKg)
				members := make([]interface{}, 0, len(line.Album.Products))
				for j := range line.Album.Products {
					member := line.Album.Products[j]
					entry := map[string]interface{}{
						"product_id": member.ProductID,
						"quantity":   member.Quantity,
					}
					if member.Product != nil {
						entry["name"] = member.Product.Name
						entry["sku"] = member.Product.SKU
					}
					if member.VariantID != nil {
						entry["variant_id"] = *member.VariantID
					}
					members = append(members, entry)
				}
				item.MetaJSON = models.JSON{"album_members": members}
			}
		default:
			if line.Product != nil {
				item.Name = line.Product.Name
				item.SKU = line.Product.SKU
				item.WeightKg = ProductUnitWeightKg(line.Product, defaultWeightKg)
			}
			if line.Variant != nil {
				item.VariantName = line.Variant.Name
				item.SKU = line.Variant.SKU
				if line.Variant.WeightKg > 0 {
					item.WeightKg = line.Variant.WeightKg
				}
				options := make([]interface{}, 0, len(line.Variant.Options))
				for j := range line.Variant.Options {
					option := line.Variant.Options[j]
					options = append(options, map[string]interface{}{
						"variation_type_id": option.VariationTypeID,
						"option_id":         option.ID,
						"value":             option.Value,
					})
				}
				item.MetaJSON = models.JSON{"variant_options": options}
			}
		}

		items = append(items, item)
	}
	return items
}

// generateOrderNumber 生成订单编号：前缀-日期-6位随机数字，带唯一性重试
func (s *OrderService) generateOrderNumber() (string, error) {
	prefix := s.settingSvc.OrderNumberPrefix()
	for attempt := 0; attempt < constants.OrderNumberMaxAttempts; attempt++ {
		number := fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), randNumeric(6))
		exists, err := s.orderRepo.ExistsByOrderNumber(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", ErrOrderCreateFailed
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
