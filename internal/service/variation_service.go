package service

import (
	"strings"

	"github.com/shelora/shelora/internal/constants"
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

// VariationService 规格类型与选项管理服务
type VariationService struct {
	variationRepo repository.VariationRepository
}

// NewVariationService 创建规格服务
func NewVariationService(variationRepo repository.VariationRepository) *VariationService {
	return &VariationService{variationRepo: variationRepo}
}

// VariationTypeInput 创建/更新规格类型输入
type VariationTypeInput struct {
	Slug       string
	Name       string
	InputType  string
	IsRequired *bool
	IsActive   *bool
	SortOrder  int
}

// VariationOptionInput 创建/更新规格选项输入
type VariationOptionInput struct {
	Value     string
	Label     string
	IsActive  *bool
	SortOrder int
}

var validInputTypes = map[string]bool{
	constants.VariationInputSelect:      true,
	constants.VariationInputColorPicker: true,
	constants.VariationInputText:        true,
}

// ListTypes 规格类型列表
func (s *VariationService) ListTypes(onlyActive bool) ([]models.VariationType, error) {
	return s.variationRepo.ListTypes(onlyActive)
}

// GetType 规格类型详情
func (s *VariationService) GetType(id uint) (*models.VariationType, error) {
	item, err := s.variationRepo.GetTypeByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrVariationNotFound
	}
	return item, nil
}

// CreateType 创建规格类型
func (s *VariationService) CreateType(input VariationTypeInput) (*models.VariationType, error) {
	slug := strings.TrimSpace(input.Slug)
	name := strings.TrimSpace(input.Name)
	if slug == "" || name == "" {
		return nil, ErrInvalidInput
	}
	inputType := strings.TrimSpace(input.InputType)
	if inputType == "" {
		inputType = constants.VariationInputSelect
	}
	if !validInputTypes[inputType] {
		return nil, ErrInvalidInput
	}

	existing, err := s.variationRepo.GetTypeBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugExists
	}

	item := models.VariationType{
		Slug:      slug,
		Name:      name,
		InputType: inputType,
		IsActive:  true,
		SortOrder: input.SortOrder,
	}
	if input.IsRequired != nil {
		item.IsRequired = *input.IsRequired
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := s.variationRepo.CreateType(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateType 更新规格类型
func (s *VariationService) UpdateType(id uint, input VariationTypeInput) (*models.VariationType, error) {
	item, err := s.GetType(id)
	if err != nil {
		return nil, err
	}

	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != item.Slug {
		existing, err := s.variationRepo.GetTypeBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != item.ID {
			return nil, ErrSlugExists
		}
		item.Slug = slug
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if inputType := strings.TrimSpace(input.InputType); inputType != "" {
		if !validInputTypes[inputType] {
			return nil, ErrInvalidInput
		}
		item.InputType = inputType
	}
	item.SortOrder = input.SortOrder
	if input.IsRequired != nil {
		item.IsRequired = *input.IsRequired
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.variationRepo.UpdateType(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteType 删除规格类型及其选项
func (s *VariationService) DeleteType(id uint) error {
	item, err := s.GetType(id)
	if err != nil {
		return err
	}
	return s.variationRepo.DeleteType(item.ID)
}

// CreateOption 为规格类型创建选项
func (s *VariationService) CreateOption(typeID uint, input VariationOptionInput) (*models.VariationOption, error) {
	parent, err := s.GetType(typeID)
	if err != nil {
		return nil, err
	}
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return nil, ErrInvalidInput
	}

	item := models.VariationOption{
		VariationTypeID: parent.ID,
		Value:           value,
		Label:           strings.TrimSpace(input.Label),
		IsActive:        true,
		SortOrder:       input.SortOrder,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := s.variationRepo.CreateOption(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateOption 更新规格选项
func (s *VariationService) UpdateOption(id uint, input VariationOptionInput) (*models.VariationOption, error) {
	item, err := s.variationRepo.GetOptionByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrVariationNotFound
	}

	if value := strings.TrimSpace(input.Value); value != "" {
		item.Value = value
	}
	item.Label = strings.TrimSpace(input.Label)
	item.SortOrder = input.SortOrder
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.variationRepo.UpdateOption(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteOption 删除规格选项（连带清理变体关联）
func (s *VariationService) DeleteOption(id uint) error {
	item, err := s.variationRepo.GetOptionByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrVariationNotFound
	}
	return s.variationRepo.DeleteOption(item.ID)
}
