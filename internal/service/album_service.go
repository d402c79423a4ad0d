package service

import (
	"fmt"
	"strings"

	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"

	"gorm.io/gorm"
)

// AlbumService 专辑业务服务
type AlbumService struct {
	albumRepo   repository.AlbumRepository
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
	settingSvc  *SettingService
}

// NewAlbumService 创建专辑服务
func NewAlbumService(
	albumRepo repository.AlbumRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.ProductVariantRepository,
	settingSvc *SettingService,
) *AlbumService {
	return &AlbumService{
		albumRepo:   albumRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		settingSvc:  settingSvc,
	}
}

// AlbumInput 创建/更新专辑输入
type AlbumInput struct {
	Slug            string
	Title           string
	Description     string
	CoverImage      string
	Price           *models.Money
	DiscountPercent float64
	IsActive        *bool
	SortOrder       int
	Products        []AlbumProductInput
}

// AlbumProductInput 专辑成员商品输入
type AlbumProductInput struct {
	ProductID uint
	VariantID *uint
	Quantity  int
}

// List 专辑列表
func (s *AlbumService) List(filter repository.AlbumListFilter) ([]models.Album, int64, error) {
	return s.albumRepo.List(filter)
}

// GetBySlug 专辑详情（买家侧）
func (s *AlbumService) GetBySlug(slug string) (*models.Album, error) {
	album, err := s.albumRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

// GetByID 专辑详情
func (s *AlbumService) GetByID(id uint) (*models.Album, error) {
	album, err := s.albumRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

// FinalPrice 专辑成交价（固定价或成员合计，再乘折扣）
func (s *AlbumService) FinalPrice(album *models.Album) models.Money {
	return models.NewMoneyFromDecimal(AlbumUnitPrice(album))
}

// Create 创建专辑
func (s *AlbumService) Create(input AlbumInput) (*models.Album, error) {
	slug := strings.TrimSpace(input.Slug)
	title := strings.TrimSpace(input.Title)
	if slug == "" || title == "" {
		return nil, ErrInvalidInput
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount percentage must be between 0 and 100", ErrInvalidInput)
	}

	existing, err := s.albumRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	rows, err := s.buildMemberRows(input.Products)
	if err != nil {
		return nil, err
	}

	album := models.Album{
		Slug:            slug,
		Title:           title,
		Description:     input.Description,
		CoverImage:      strings.TrimSpace(input.CoverImage),
		Price:           input.Price,
		DiscountPercent: input.DiscountPercent,
		IsActive:        true,
		SortOrder:       input.SortOrder,
	}
	if input.IsActive != nil {
		album.IsActive = *input.IsActive
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		albumRepo := s.albumRepo.WithTx(tx)
		if err := albumRepo.Create(&album); err != nil {
			return err
		}
		return albumRepo.ReplaceProducts(album.ID, rows)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(album.ID)
}

// Update 更新专辑（成员列表整体替换）
func (s *AlbumService) Update(id uint, input AlbumInput) (*models.Album, error) {
	album, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, fmt.Errorf("%w: discount percentage must be between 0 and 100", ErrInvalidInput)
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != album.Slug {
		existing, err := s.albumRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != album.ID {
			return nil, ErrSlugExists
		}
		album.Slug = slug
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		album.Title = title
	}
	album.Description = input.Description
	album.CoverImage = strings.TrimSpace(input.CoverImage)
	album.Price = input.Price
	album.DiscountPercent = input.DiscountPercent
	album.SortOrder = input.SortOrder
	if input.IsActive != nil {
		album.IsActive = *input.IsActive
	}

	rows, err := s.buildMemberRows(input.Products)
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		albumRepo := s.albumRepo.WithTx(tx)
		if err := albumRepo.Update(album); err != nil {
			return err
		}
		return albumRepo.ReplaceProducts(album.ID, rows)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(album.ID)
}

// Delete 删除专辑
func (s *AlbumService) Delete(id uint) error {
	album, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.albumRepo.Delete(album.ID)
}

// buildMemberRows 校验成员商品存在并构造关联行
func (s *AlbumService) buildMemberRows(inputs []AlbumProductInput) ([]models.AlbumProduct, error) {
	rows := make([]models.AlbumProduct, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID == 0 {
			return nil, ErrProductNotFound
		}
		product, err := s.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if in.VariantID != nil {
			variant, err := s.variantRepo.GetByID(*in.VariantID)
			if err != nil {
				return nil, err
			}
			if variant == nil || variant.ProductID != product.ID {
				return nil, ErrVariantNotFound
			}
		}
		quantity := in.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		rows = append(rows, models.AlbumProduct{
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Quantity:  quantity,
		})
	}
	return rows, nil
}
