package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductView 商品公开响应（附带生效售价与库存口径）
type ProductView struct {
	models.Product
	EffectivePrice models.Money      `json:"effective_price"`
	Stock          service.StockInfo `json:"stock"`
	VariantStocks  []VariantStock    `json:"variant_stocks,omitempty"`
}

// VariantStock 变体库存口径
type VariantStock struct {
	VariantID uint              `json:"variant_id"`
	UnitPrice models.Money      `json:"unit_price"`
	Stock     service.StockInfo `json:"stock"`
}

// AlbumView 专辑公开响应（附带成交价）
type AlbumView struct {
	models.Album
	FinalPrice models.Money `json:"final_price"`
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   uint(categoryID),
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   true,
		OnlyFeatured: c.Query("featured") == "1",
		WithCategory: true,
		WithVariants: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		view, err := h.buildProductView(&products[i])
		if err != nil {
			respondError(c, response.CodeInternal, "product fetch failed", err)
			return
		}
		views = append(views, view)
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, views, pagination)
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	if !product.IsActive {
		respondError(c, response.CodeNotFound, "product not found", nil)
		return
	}

	view, err := h.buildProductView(product)
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, view)
}

func (h *Handler) buildProductView(product *models.Product) (ProductView, error) {
	view := ProductView{
		Product:        *product,
		EffectivePrice: product.EffectivePrice(),
	}

	stock, err := h.ProductService.StockFor(product.ID, nil)
	if err != nil {
		return ProductView{}, err
	}
	view.Stock = stock

	for i := range product.Variants {
		variant := &product.Variants[i]
		variantStock, err := h.ProductService.StockFor(product.ID, &variant.ID)
		if err != nil {
			return ProductView{}, err
		}
		view.VariantStocks = append(view.VariantStocks, VariantStock{
			VariantID: variant.ID,
			UnitPrice: models.NewMoneyFromDecimal(service.VariantUnitPrice(product, variant)),
			Stock:     variantStock,
		})
	}
	return view, nil
}

// GetAlbums 获取专辑列表
func (h *Handler) GetAlbums(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	albums, total, err := h.AlbumService.List(repository.AlbumListFilter{
		Page:         page,
		PageSize:     pageSize,
		Search:       strings.TrimSpace(c.Query("search")),
		OnlyActive:   true,
		WithProducts: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "album fetch failed", err)
		return
	}

	views := make([]AlbumView, 0, len(albums))
	for i := range albums {
		views = append(views, AlbumView{
			Album:      albums[i],
			FinalPrice: h.AlbumService.FinalPrice(&albums[i]),
		})
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, views, pagination)
}

// GetAlbumBySlug 根据 slug 获取专辑详情
func (h *Handler) GetAlbumBySlug(c *gin.Context) {
	album, err := h.AlbumService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrAlbumNotFound) {
			respondError(c, response.CodeNotFound, "album not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "album fetch failed", err)
		return
	}
	if !album.IsActive {
		respondError(c, response.CodeNotFound, "album not found", nil)
		return
	}

	response.Success(c, AlbumView{
		Album:      *album,
		FinalPrice: h.AlbumService.FinalPrice(album),
	})
}
