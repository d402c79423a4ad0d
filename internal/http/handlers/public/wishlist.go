package public

import (
	"strconv"

	"github.com/shelora/shelora/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddWishlistItemRequest 加入收藏夹请求
type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取收藏列表
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "wishlist fetch failed", err)
		return
	}
	response.Success(c, items)
}

// AddWishlistItem 加入收藏夹
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveWishlistItem 移出收藏夹
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid product id", err)
		return
	}

	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		respondError(c, response.CodeInternal, "wishlist operation failed", err)
		return
	}
	response.Success(c, nil)
}
