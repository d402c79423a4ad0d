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

// AlbumRequest 创建/更新专辑请求
type AlbumRequest struct {
	Slug            string                `json:"slug" binding:"required"`
	Title           string                `json:"title" binding:"required"`
	Description     string                `json:"description"`
	CoverImage      string                `json:"cover_image"`
	Price           *float64              `json:"price"`
	DiscountPercent float64               `json:"discount_percent"`
	IsActive        *bool                 `json:"is_active"`
	SortOrder       int                   `json:"sort_order"`
	Products        []AlbumProductRequest `json:"products"`
}

// AlbumProductRequest 专辑成员商品请求
type AlbumProductRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

func (r AlbumRequest) toInput() service.AlbumInput {
	input := service.AlbumInput{
		Slug:            strings.TrimSpace(r.Slug),
		Title:           strings.TrimSpace(r.Title),
		Description:     r.Description,
		CoverImage:      r.CoverImage,
		DiscountPercent: r.DiscountPercent,
		IsActive:        r.IsActive,
		SortOrder:       r.SortOrder,
	}
	if r.Price != nil {
		price := models.NewMoneyFromDecimal(decimal.NewFromFloat(*r.Price))
		input.Price = &price
	}
	for _, p := range r.Products {
		input.Products = append(input.Products, service.AlbumProductInput{
			ProductID: p.ProductID,
			VariantID: p.VariantID,
			Quantity:  p.Quantity,
		})
	}
	return input
}

// ListAlbums 专辑列表 (Admin)
func (h *Handler) ListAlbums(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	albums, total, err := h.AlbumService.List(repository.AlbumListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		WithProducts: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "album fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, albums, pagination)
}

// GetAlbum 专辑详情 (Admin)
func (h *Handler) GetAlbum(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	album, err := h.AlbumService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrAlbumNotFound) {
			respondError(c, response.CodeNotFound, "album not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "album fetch failed", err)
		return
	}
	response.Success(c, album)
}

// CreateAlbum 创建专辑
func (h *Handler) CreateAlbum(c *gin.Context) {
	var req AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	album, err := h.AlbumService.Create(req.toInput())
	if err != nil {
		respondAlbumError(c, err)
		return
	}
	response.Success(c, album)
}

// UpdateAlbum 更新专辑
func (h *Handler) UpdateAlbum(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	album, err := h.AlbumService.Update(id, req.toInput())
	if err != nil {
		respondAlbumError(c, err)
		return
	}
	response.Success(c, album)
}

// DeleteAlbum 删除专辑（软删除）
func (h *Handler) DeleteAlbum(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.AlbumService.Delete(id); err != nil {
		respondAlbumError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondAlbumError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlbumNotFound):
		respondError(c, response.CodeNotFound, "album not found", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeBadRequest, "member product not found", nil)
	case errors.Is(err, service.ErrVariantNotFound):
		respondError(c, response.CodeBadRequest, "member variant not found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "slug already exists", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "album save failed", err)
	}
}
