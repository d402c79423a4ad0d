package public

import (
	"errors"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be at least 1"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "variant not found"},
	{target: service.ErrAlbumNotFound, code: response.CodeNotFound, msg: "album not found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrOutOfStock, code: response.CodeConflict, msg: "item out of stock"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "shipping details are incomplete"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "payment method is not available"},
	{target: service.ErrOutOfStock, code: response.CodeConflict, msg: "item out of stock"},
	{target: service.ErrStockConflict, code: response.CodeConflict, msg: "insufficient stock"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon is not active"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "coupon is not yet valid"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon has expired"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, msg: "order amount below coupon minimum"},
	{target: service.ErrCouponUsageLimit, code: response.CodeBadRequest, msg: "coupon usage limit reached"},
	{target: service.ErrCouponPerUserLimit, code: response.CodeBadRequest, msg: "coupon per-user limit reached"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderNotCancellable, code: response.CodeConflict, msg: "order cannot be cancelled in current status"},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment not found"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "payment method does not support slips"},
	{target: service.ErrPaymentStateConflict, code: response.CodeConflict, msg: "payment has already been verified"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "slip reference is required"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, msg: "review not found"},
	{target: service.ErrReviewExists, code: response.CodeBadRequest, msg: "product already reviewed"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrWishlistDuplicate, code: response.CodeBadRequest, msg: "product already in wishlist"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "order create failed")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order operation failed")
}

func respondPaymentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "payment operation failed")
}

func respondReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review operation failed")
}

func respondWishlistError(c *gin.Context, err error) {
	respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "wishlist operation failed")
}
