package repository

import (
	"errors"
	"strings"

	"github.com/shelora/shelora/internal/models"

	"gorm.io/gorm"
)

// AlbumRepository 专辑数据访问接口
type AlbumRepository interface {
	List(filter AlbumListFilter) ([]models.Album, int64, error)
	GetByID(id uint) (*models.Album, error)
	GetBySlug(slug string) (*models.Album, error)
	Create(album *models.Album) error
	Update(album *models.Album) error
	Delete(id uint) error
	ReplaceProducts(albumID uint, rows []models.AlbumProduct) error
	WithTx(tx *gorm.DB) AlbumRepository
}

// GormAlbumRepository GORM 实现
type GormAlbumRepository struct {
	db *gorm.DB
}

// NewAlbumRepository 创建专辑仓库
func NewAlbumRepository(db *gorm.DB) *GormAlbumRepository {
	return &GormAlbumRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAlbumRepository) WithTx(tx *gorm.DB) AlbumRepository {
	if tx == nil {
		return r
	}
	return &GormAlbumRepository{db: tx}
}

// List 专辑列表
func (r *GormAlbumRepository) List(filter AlbumListFilter) ([]models.Album, int64, error) {
	query := r.db.Model(&models.Album{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR slug LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithProducts {
		query = query.Preload("Products").Preload("Products.Product").Preload("Products.Variant")
	}

	var albums []models.Album
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("sort_order DESC, id DESC").Find(&albums).Error; err != nil {
		return nil, 0, err
	}
	return albums, total, nil
}

// GetByID 根据 ID 获取专辑（含成员商品）
func (r *GormAlbumRepository) GetByID(id uint) (*models.Album, error) {
	var album models.Album
	if err := r.db.Preload("Products").Preload("Products.Product").Preload("Products.Variant").First(&album, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &album, nil
}

// GetBySlug 根据唯一标识获取专辑（含成员商品）
func (r *GormAlbumRepository) GetBySlug(slug string) (*models.Album, error) {
	var album models.Album
	if err := r.db.Preload("Products").Preload("Products.Product").Preload("Products.Variant").
		Where("slug = ?", slug).First(&album).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &album, nil
}

// Create 创建专辑
func (r *GormAlbumRepository) Create(album *models.Album) error {
	return r.db.Create(album).Error
}

// Update 更新专辑
func (r *GormAlbumRepository) Update(album *models.Album) error {
	return r.db.Save(album).Error
}

// Delete 删除专辑（成员关联一并删除）
func (r *GormAlbumRepository) Delete(id uint) error {
	if err := r.db.Where("album_id = ?", id).Delete(&models.AlbumProduct{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Album{}, id).Error
}

// ReplaceProducts 重建专辑成员商品
func (r *GormAlbumRepository) ReplaceProducts(albumID uint, rows []models.AlbumProduct) error {
	if albumID == 0 {
		return errors.New("invalid album id")
	}
	if err := r.db.Where("album_id = ?", albumID).Delete(&models.AlbumProduct{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].AlbumID = albumID
		if rows[i].Quantity <= 0 {
			rows[i].Quantity = 1
		}
	}
	return r.db.Create(&rows).Error
}
