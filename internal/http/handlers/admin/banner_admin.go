package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shelora/shelora/internal/http/response"
	"github.com/shelora/shelora/internal/repository"
	"github.com/shelora/shelora/internal/service"

	"github.com/gin-gonic/gin"
)

// BannerRequest 创建/更新 Banner 请求
type BannerRequest struct {
	Name         string `json:"name" binding:"required"`
	Position     string `json:"position"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Image        string `json:"image" binding:"required"`
	MobileImage  string `json:"mobile_image"`
	LinkType     string `json:"link_type"`
	LinkValue    string `json:"link_value"`
	OpenInNewTab *bool  `json:"open_in_new_tab"`
	IsActive     *bool  `json:"is_active"`
	StartAt      string `json:"start_at"`
	EndAt        string `json:"end_at"`
	SortOrder    int    `json:"sort_order"`
}

func (r BannerRequest) toInput() (service.BannerInput, error) {
	startAt, err := parseTimeNullable(r.StartAt)
	if err != nil {
		return service.BannerInput{}, err
	}
	endAt, err := parseTimeNullable(r.EndAt)
	if err != nil {
		return service.BannerInput{}, err
	}

	return service.BannerInput{
		Name:         strings.TrimSpace(r.Name),
		Position:     r.Position,
		Title:        r.Title,
		Subtitle:     r.Subtitle,
		Image:        strings.TrimSpace(r.Image),
		MobileImage:  r.MobileImage,
		LinkType:     r.LinkType,
		LinkValue:    r.LinkValue,
		OpenInNewTab: r.OpenInNewTab,
		IsActive:     r.IsActive,
		StartAt:      startAt,
		EndAt:        endAt,
		SortOrder:    r.SortOrder,
	}, nil
}

// ListBanners Banner 列表 (Admin)
func (h *Handler) ListBanners(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	banners, total, err := h.BannerService.List(repository.BannerListFilter{
		Page:     page,
		PageSize: pageSize,
		Position: strings.TrimSpace(c.Query("position")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "banner fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, banners, pagination)
}

// GetBanner Banner 详情 (Admin)
func (h *Handler) GetBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	banner, err := h.BannerService.GetByID(id)
	if err != nil {
		respondBannerError(c, err)
		return
	}
	response.Success(c, banner)
}

// CreateBanner 创建 Banner
func (h *Handler) CreateBanner(c *gin.Context) {
	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}

	banner, err := h.BannerService.Create(input)
	if err != nil {
		respondBannerError(c, err)
		return
	}
	response.Success(c, banner)
}

// UpdateBanner 更新 Banner
func (h *Handler) UpdateBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid time format", err)
		return
	}

	banner, err := h.BannerService.Update(id, input)
	if err != nil {
		respondBannerError(c, err)
		return
	}
	response.Success(c, banner)
}

// DeleteBanner 删除 Banner（软删除）
func (h *Handler) DeleteBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.BannerService.Delete(id); err != nil {
		respondBannerError(c, err)
		return
	}
	response.Success(c, nil)
}

func respondBannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBannerNotFound):
		respondError(c, response.CodeNotFound, "banner not found", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "invalid request", nil)
	default:
		respondError(c, response.CodeInternal, "banner save failed", err)
	}
}
