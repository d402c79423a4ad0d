package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"

	"github.com/shopspring/decimal"
)

func testShippingInput() PlaceOrderInput {
	return PlaceOrderInput{
		ShippingName:    "Nimal Perera",
		ShippingPhone:   "+94771234567",
		ShippingAddress: "12 Galle Road",
		ShippingCity:    "Colombo",
		PaymentMethod:   constants.PaymentMethodBankTransfer,
	}
}

// placeTestOrder 建车并下单，返回订单与商品库存位
func placeTestOrder(t *testing.T, env *serviceTestEnv, user *models.User, quantity int) (*models.Order, *models.Inventory) {
	t.Helper()
	category := createTestCategory(t, env.db, "vinyl")
	product := createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)
	slot := createTestSlot(t, env.db, product.ID, nil, 40)

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, quantity); err != nil {
		t.Fatalf("add product: %v", err)
	}
	order, err := env.order.PlaceOrder(user.ID, testShippingInput())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order, slot
}

func TestPlaceOrderRoundTrip(t *testing.T) {
	env := newServiceTestEnv(t, "order_place")
	user := createTestUser(t, env.db, "buyer@example.com")

	order, slot := placeTestOrder(t, env, user, 2)

	if matched := regexp.MustCompile(`^ORD-\d{8}-\d{6}$`).MatchString(order.OrderNumber); !matched {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending bank transfer order, got %q", order.Status)
	}
	if order.PaymentStatus != constants.OrderPaymentStatusPending {
		t.Fatalf("expected pending payment status, got %q", order.PaymentStatus)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.Quantity != 2 || !item.TotalPrice.Equal(decimal.RequireFromString("13000")) {
		t.Fatalf("unexpected item snapshot: %+v", item)
	}
	// 13000 货款 + 1kg 运费
	if !order.TotalAmount.Equal(decimal.RequireFromString("13500")) {
		t.Fatalf("expected total 13500, got %s", order.TotalAmount)
	}

	payment, err := env.paymentRepo.GetByOrderID(order.ID)
	if err != nil || payment == nil {
		t.Fatalf("expected payment record, got %v %v", payment, err)
	}
	if payment.Method != constants.PaymentMethodBankTransfer || !payment.Amount.Equal(order.TotalAmount.Decimal) {
		t.Fatalf("unexpected payment: %+v", payment)
	}

	updated, err := env.inventoryRepo.GetByID(slot.ID)
	if err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if updated.ReservedQuantity != 2 {
		t.Fatalf("expected 2 reserved, got %d", updated.ReservedQuantity)
	}

	cart, err := env.cartRepo.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("reload cart: %v", err)
	}
	if len(cart.Items) != 0 || !cart.TotalAmount.IsZero() {
		t.Fatalf("expected cart cleared after checkout, got %+v", cart)
	}
}

func TestPlaceOrderCODStartsProcessing(t *testing.T) {
	env := newServiceTestEnv(t, "order_cod")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "merch")
	product := createTestProduct(t, env.db, category.ID, "tee", "3500", 0.25)
	createTestSlot(t, env.db, product.ID, nil, 10)

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 1); err != nil {
		t.Fatalf("add product: %v", err)
	}
	input := testShippingInput()
	input.PaymentMethod = constants.PaymentMethodCOD
	order, err := env.order.PlaceOrder(user.ID, input)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected COD order to start processing, got %q", order.Status)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	env := newServiceTestEnv(t, "order_validation")
	user := createTestUser(t, env.db, "buyer@example.com")

	if _, err := env.order.PlaceOrder(user.ID, testShippingInput()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	category := createTestCategory(t, env.db, "merch")
	product := createTestProduct(t, env.db, category.ID, "tee", "3500", 0.25)
	createTestSlot(t, env.db, product.ID, nil, 10)
	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 1); err != nil {
		t.Fatalf("add product: %v", err)
	}

	input := testShippingInput()
	input.PaymentMethod = constants.PaymentMethodCard // 默认关闭
	if _, err := env.order.PlaceOrder(user.ID, input); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got %v", err)
	}

	input = testShippingInput()
	input.ShippingPhone = "  "
	if _, err := env.order.PlaceOrder(user.ID, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPlaceOrderStockConflictRollsBack(t *testing.T) {
	env := newServiceTestEnv(t, "order_conflict")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	product := createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)
	slot := createTestSlot(t, env.db, product.ID, nil, 10)

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 5); err != nil {
		t.Fatalf("add product: %v", err)
	}

	// 加购与下单之间被其他订单抢占
	if err := env.db.Model(slot).Update("reserved_quantity", 8).Error; err != nil {
		t.Fatalf("simulate concurrent reservation: %v", err)
	}

	if _, err := env.order.PlaceOrder(user.ID, testShippingInput()); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock at precheck, got %v", err)
	}

	updated, err := env.inventoryRepo.GetByID(slot.ID)
	if err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if updated.ReservedQuantity != 8 {
		t.Fatalf("expected reservation untouched, got %d", updated.ReservedQuantity)
	}

	var orderCount int64
	if err := env.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order row, got %d", orderCount)
	}

	cart, err := env.cartRepo.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("reload cart: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected cart preserved after failed checkout, got %+v", cart.Items)
	}
}

func TestPlaceOrderConsumesCoupon(t *testing.T) {
	env := newServiceTestEnv(t, "order_coupon")
	user := createTestUser(t, env.db, "buyer@example.com")
	category := createTestCategory(t, env.db, "vinyl")
	product := createTestProduct(t, env.db, category.ID, "lp", "6500", 0.35)
	createTestSlot(t, env.db, product.ID, nil, 10)

	coupon := createTestCoupon(t, env.db, &models.Coupon{
		Code:     "FLAT500",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromString("500"),
		IsActive: true,
	})

	if _, err := env.cart.AddProduct(user.ID, product.ID, nil, 1); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := env.cart.ApplyCoupon(user.ID, coupon.Code); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}

	order, err := env.order.PlaceOrder(user.ID, testShippingInput())
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.CouponID == nil || order.CouponCode != "FLAT500" {
		t.Fatalf("expected coupon snapshot on order, got %+v", order)
	}
	if !order.DiscountAmount.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("expected discount 500, got %s", order.DiscountAmount)
	}

	reloaded, err := env.couponRepo.GetByID(coupon.ID)
	if err != nil {
		t.Fatalf("reload coupon: %v", err)
	}
	if reloaded.UsedCount != 1 {
		t.Fatalf("expected used_count 1, got %d", reloaded.UsedCount)
	}
}

func TestCancelOrderByCustomer(t *testing.T) {
	env := newServiceTestEnv(t, "order_cancel")
	user := createTestUser(t, env.db, "buyer@example.com")
	order, slot := placeTestOrder(t, env, user, 2)

	cancelled, err := env.order.CancelOrderByCustomer(order.ID, user.ID)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled order: %+v", cancelled)
	}

	// 取消只释放预占，在库量不动
	updated, err := env.inventoryRepo.GetByID(slot.ID)
	if err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if updated.ReservedQuantity != 0 || updated.Quantity != 40 {
		t.Fatalf("expected reservation released, got %+v", updated)
	}
}

func TestCancelOrderByCustomerShippedRejected(t *testing.T) {
	env := newServiceTestEnv(t, "order_cancel_shipped")
	user := createTestUser(t, env.db, "buyer@example.com")
	order, _ := placeTestOrder(t, env, user, 1)

	if _, err := env.order.UpdateOrderStatus(order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("ship order: %v", err)
	}
	if _, err := env.order.CancelOrderByCustomer(order.ID, user.ID); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("expected ErrOrderNotCancellable, got %v", err)
	}

	other := createTestUser(t, env.db, "other@example.com")
	if _, err := env.order.CancelOrderByCustomer(order.ID, other.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
}

func TestUpdateOrderStatusDeliveredDeductsStock(t *testing.T) {
	env := newServiceTestEnv(t, "order_delivered")
	user := createTestUser(t, env.db, "buyer@example.com")
	order, slot := placeTestOrder(t, env, user, 3)

	if _, err := env.order.UpdateOrderStatus(order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("ship order: %v", err)
	}
	delivered, err := env.order.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("deliver order: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered || delivered.DeliveredAt == nil {
		t.Fatalf("unexpected delivered order: %+v", delivered)
	}

	// 签收后预占转为真实出库
	updated, err := env.inventoryRepo.GetByID(slot.ID)
	if err != nil {
		t.Fatalf("reload slot: %v", err)
	}
	if updated.Quantity != 37 || updated.ReservedQuantity != 0 {
		t.Fatalf("expected quantity 37 reserved 0, got %+v", updated)
	}
}

func TestUpdateOrderStatusInvalidTransition(t *testing.T) {
	env := newServiceTestEnv(t, "order_transition")
	user := createTestUser(t, env.db, "buyer@example.com")
	order, _ := placeTestOrder(t, env, user, 1)

	if _, err := env.order.UpdateOrderStatus(order.ID, constants.OrderStatusRefunded); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for pending->refunded, got %v", err)
	}
	if _, err := env.order.UpdateOrderStatus(order.ID, "bogus"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for unknown status, got %v", err)
	}
	if _, err := env.order.UpdateOrderStatus(order.ID+999, constants.OrderStatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateOrderStatusRefundFlow(t *testing.T) {
	env := newServiceTestEnv(t, "order_refund")
	user := createTestUser(t, env.db, "buyer@example.com")
	order, _ := placeTestOrder(t, env, user, 1)

	for _, status := range []string{constants.OrderStatusShipped, constants.OrderStatusDelivered, constants.OrderStatusRefunded} {
		if _, err := env.order.UpdateOrderStatus(order.ID, status); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	refunded, err := env.order.GetOrderForAdmin(order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if refunded.PaymentStatus != constants.OrderPaymentStatusRefunded {
		t.Fatalf("expected refunded payment status, got %q", refunded.PaymentStatus)
	}
	payment, err := env.paymentRepo.GetByOrderID(order.ID)
	if err != nil || payment == nil {
		t.Fatalf("reload payment: %v", err)
	}
	if payment.Status != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded payment, got %q", payment.Status)
	}
}

func TestUpdateTracking(t *testing.T) {
	env := newServiceTestEnv(t, "order_tracking")
	user := createTestUser(t, env.db, "buyer@example.com")
	order, _ := placeTestOrder(t, env, user, 1)

	if _, err := env.order.UpdateTracking(order.ID, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank tracking, got %v", err)
	}

	// 录入物流单号即视为发货
	shipped, err := env.order.UpdateTracking(order.ID, "SLPOST-001")
	if err != nil {
		t.Fatalf("update tracking: %v", err)
	}
	if shipped.Status != constants.OrderStatusShipped || shipped.TrackingNumber != "SLPOST-001" || shipped.ShippedAt == nil {
		t.Fatalf("unexpected shipped order: %+v", shipped)
	}

	// 已发货订单可以更换单号，状态不重复流转
	reshipped, err := env.order.UpdateTracking(order.ID, "SLPOST-002")
	if err != nil {
		t.Fatalf("replace tracking: %v", err)
	}
	if reshipped.Status != constants.OrderStatusShipped || reshipped.TrackingNumber != "SLPOST-002" {
		t.Fatalf("unexpected reshipped order: %+v", reshipped)
	}

	if _, err := env.order.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("deliver order: %v", err)
	}
	if _, err := env.order.UpdateTracking(order.ID, "SLPOST-003"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid after delivery, got %v", err)
	}
}

func TestGetOrderScopedToUser(t *testing.T) {
	env := newServiceTestEnv(t, "order_scope")
	user := createTestUser(t, env.db, "buyer@example.com")
	other := createTestUser(t, env.db, "other@example.com")
	order, _ := placeTestOrder(t, env, user, 1)

	got, err := env.order.GetOrderByUser(order.ID, user.ID)
	if err != nil || got.ID != order.ID {
		t.Fatalf("expected own order, got %v %v", got, err)
	}
	if _, err := env.order.GetOrderByUser(order.ID, other.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign user, got %v", err)
	}

	byNumber, err := env.order.GetOrderByUserOrderNumber(order.OrderNumber, user.ID)
	if err != nil || byNumber.ID != order.ID {
		t.Fatalf("expected lookup by order number, got %v %v", byNumber, err)
	}
}
