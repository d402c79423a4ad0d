package service

import (
	"github.com/shelora/shelora/internal/models"
	"github.com/shelora/shelora/internal/repository"
)

// WishlistService 收藏夹服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建收藏夹服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List 用户收藏列表
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(userID)
}

// Add 加入收藏夹。下架商品不可收藏，重复收藏报错。
func (s *WishlistService) Add(userID, productID uint) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return ErrProductNotFound
	}

	exists, err := s.wishlistRepo.Exists(userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return ErrWishlistDuplicate
	}

	return s.wishlistRepo.Create(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

// Remove 移出收藏夹。不在收藏夹时视为已移出。
func (s *WishlistService) Remove(userID, productID uint) error {
	return s.wishlistRepo.Delete(userID, productID)
}
