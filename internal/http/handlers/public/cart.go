package public

import (
	"strconv"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ItemType  string `json:"item_type"`
	ProductID uint   `json:"product_id"`
	AlbumID   uint   `json:"album_id"`
	VariantID *uint  `json:"variant_id"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 修改购物车项请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ApplyCouponRequest 应用优惠券请求
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	itemType := req.ItemType
	if itemType == "" {
		itemType = constants.CartItemTypeProduct
	}

	switch itemType {
	case constants.CartItemTypeProduct:
		cart, err := h.CartService.AddProduct(uid, req.ProductID, req.VariantID, req.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.Success(c, cart)
	case constants.CartItemTypeAlbum:
		cart, err := h.CartService.AddAlbum(uid, req.AlbumID, req.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		response.Success(c, cart)
	default:
		respondError(c, response.CodeBadRequest, "invalid item type", nil)
	}
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid item id", err)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	cart, err := h.CartService.UpdateItemQuantity(uid, uint(itemID), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid item id", err)
		return
	}

	cart, err := h.CartService.RemoveItem(uid, uint(itemID))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.Clear(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// ApplyCoupon 应用优惠券
func (h *Handler) ApplyCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	cart, err := h.CartService.ApplyCoupon(uid, req.Code)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// RemoveCoupon 移除优惠券
func (h *Handler) RemoveCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.RemoveCoupon(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}
