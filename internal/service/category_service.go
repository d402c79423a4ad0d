package service

import (
	"strings"

	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Slug        string
	Name        string
	Description string
	Image       string
	IsActive    *bool
	SortOrder   int
}

// List 分类列表
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.categoryRepo.List(filter)
}

// GetBySlug 根据唯一标识获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetByID 根据 ID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, ErrInvalidInput
	}
	existing, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	category := models.Category{
		Slug:        slug,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != category.ID {
			return nil, ErrSlugExists
		}
		category.Slug = slug
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Description = strings.TrimSpace(input.Description)
	category.Image = strings.TrimSpace(input.Image)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类（仍挂有商品时拒绝）
func (s *CategoryService) Delete(id uint) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}

	_, total, err := s.productRepo.List(repository.ProductListFilter{CategoryID: category.ID, Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrCategoryInUse
	}
	return s.categoryRepo.Delete(category.ID)
}
