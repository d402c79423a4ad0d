package service

import (
	"strings"
	"time"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

// BannerService Banner 业务服务
type BannerService struct {
	bannerRepo repository.BannerRepository
}

// NewBannerService 创建 Banner 服务
func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

// BannerInput 创建/更新 Banner 输入
type BannerInput struct {
	Name         string
	Position     string
	Title        string
	Subtitle     string
	Image        string
	MobileImage  string
	LinkType     string
	LinkValue    string
	OpenInNewTab *bool
	IsActive     *bool
	StartAt      *time.Time
	EndAt        *time.Time
	SortOrder    int
}

// List 后台 Banner 列表
func (s *BannerService) List(filter repository.BannerListFilter) ([]models.Banner, int64, error) {
	return s.bannerRepo.List(filter)
}

// ListActive 买家侧投放位有效 Banner
func (s *BannerService) ListActive(position string, limit int) ([]models.Banner, error) {
	if strings.TrimSpace(position) == "" {
		position = constants.BannerPositionHomeHero
	}
	return s.bannerRepo.ListValidByPosition(position, limit, time.Now())
}

// GetByID Banner 详情
func (s *BannerService) GetByID(id uint) (*models.Banner, error) {
	banner, err := s.bannerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}
	return banner, nil
}

// Create 创建 Banner
func (s *BannerService) Create(input BannerInput) (*models.Banner, error) {
	name := strings.TrimSpace(input.Name)
	image := strings.TrimSpace(input.Image)
	if name == "" || image == "" {
		return nil, ErrInvalidInput
	}

	banner := models.Banner{
		Name:        name,
		Position:    positionOrDefault(input.Position),
		Title:       strings.TrimSpace(input.Title),
		Subtitle:    strings.TrimSpace(input.Subtitle),
		Image:       image,
		MobileImage: strings.TrimSpace(input.MobileImage),
		LinkType:    linkTypeOrDefault(input.LinkType),
		LinkValue:   strings.TrimSpace(input.LinkValue),
		IsActive:    true,
		StartAt:     input.StartAt,
		EndAt:       input.EndAt,
		SortOrder:   input.SortOrder,
	}
	if input.OpenInNewTab != nil {
		banner.OpenInNewTab = *input.OpenInNewTab
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if err := s.bannerRepo.Create(&banner); err != nil {
		return nil, err
	}
	return &banner, nil
}

// Update 更新 Banner
func (s *BannerService) Update(id uint, input BannerInput) (*models.Banner, error) {
	banner, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		banner.Name = name
	}
	if image := strings.TrimSpace(input.Image); image != "" {
		banner.Image = image
	}
	banner.Position = positionOrDefault(input.Position)
	banner.Title = strings.TrimSpace(input.Title)
	banner.Subtitle = strings.TrimSpace(input.Subtitle)
	banner.MobileImage = strings.TrimSpace(input.MobileImage)
	banner.LinkType = linkTypeOrDefault(input.LinkType)
	banner.LinkValue = strings.TrimSpace(input.LinkValue)
	banner.StartAt = input.StartAt
	banner.EndAt = input.EndAt
	banner.SortOrder = input.SortOrder
	if input.OpenInNewTab != nil {
		banner.OpenInNewTab = *input.OpenInNewTab
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}

	if err := s.bannerRepo.Update(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

// Delete 删除 Banner
func (s *BannerService) Delete(id uint) error {
	banner, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.bannerRepo.Delete(banner.ID)
}

func positionOrDefault(position string) string {
	position = strings.TrimSpace(position)
	if position == "" {
		return constants.BannerPositionHomeHero
	}
	return position
}

func linkTypeOrDefault(linkType string) string {
	switch strings.TrimSpace(linkType) {
	case constants.BannerLinkTypeInternal:
		return constants.BannerLinkTypeInternal
	case constants.BannerLinkTypeExternal:
		return constants.BannerLinkTypeExternal
	default:
		return constants.BannerLinkTypeNone
	}
}
