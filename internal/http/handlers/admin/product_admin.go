package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	CategoryID  uint     `json:"category_id" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	SKU         string   `json:"sku"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	WeightKg    float64  `json:"weight_kg"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  *bool    `json:"is_featured"`
	SortOrder   int      `json:"sort_order"`
	InitialQty  int      `json:"initial_qty"`
}

func (r ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		CategoryID:  r.CategoryID,
		Slug:        strings.TrimSpace(r.Slug),
		SKU:         strings.TrimSpace(r.SKU),
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		WeightKg:    r.WeightKg,
		Images:      r.Images,
		IsActive:    r.IsActive,
		IsFeatured:  r.IsFeatured,
		SortOrder:   r.SortOrder,
		InitialQty:  r.InitialQty,
	}
	if r.SalePrice != nil {
		sale := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.SalePrice))
		input.SalePrice = &sale
	}
	return input
}

// VariantRequest 创建/更新变体请求
type VariantRequest struct {
	SKU             string  `json:"sku"`
	Name            string  `json:"name" binding:"required"`
	PriceAdjustment float64 `json:"price_adjustment"`
	WeightKg        float64 `json:"weight_kg"`
	Image           string  `json:"image"`
	IsActive        *bool   `json:"is_active"`
	SortOrder       int     `json:"sort_order"`
	OptionIDs       []uint  `json:"option_ids"`
	InitialQty      int     `json:"initial_qty"`
}

func (r VariantRequest) toInput() service.VariantInput {
	return service.VariantInput{
		SKU:             strings.TrimSpace(r.SKU),
		Name:            strings.TrimSpace(r.Name),
		PriceAdjustment: models.NewMoneyFromDecimal(decimal.NewFromFloat(r.PriceAdjustment)),
		WeightKg:        r.WeightKg,
		Image:           r.Image,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
		OptionIDs:       r.OptionIDs,
		InitialQty:      r.InitialQty,
	}
}

// ListProducts 商品列表 (Admin)
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
		WithVariants: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProduct 商品详情 (Admin)
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, nil)
}

// CreateVariant 创建商品变体
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	variant, err := h.ProductService.CreateVariant(productID, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, variant)
}

// UpdateVariant 更新商品变体
func (h *Handler) UpdateVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}

	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	variant, err := h.ProductService.UpdateVariant(variantID, req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, variant)
}

// DeleteVariant 删除商品变体
func (h *Handler) DeleteVariant(c *gin.Context) {
	variantID, ok := parseIDParam(c, "variant_id")
	if !ok {
		return
	}

	if err := h.ProductService.DeleteVariant(variantID); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrVariantNotFound):
		respondError(c, response.CodeNotFound, "variant not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrVariationNotFound):
		respondError(c, response.CodeBadRequest, "variation option not found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "slug already exists", nil)
	case errors.Is(err, service.ErrSKUExists):
		respondError(c, response.CodeBadRequest, "sku already exists", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "product save failed", err)
	}
}
