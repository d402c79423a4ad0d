package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	OnlyActive   bool
	OnlyFeatured bool
	WithCategory bool
	WithVariants bool
}

// AlbumListFilter 查询专辑列表的过滤条件
type AlbumListFilter struct {
	Page         int
	PageSize     int
	Search       string
	OnlyActive   bool
	WithProducts bool
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNumber string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentListFilter 查询支付列表的过滤条件
type PaymentListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	Method      string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// CouponListFilter 查询优惠券列表的过滤条件
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// BannerListFilter 查询 Banner 列表的过滤条件
type BannerListFilter struct {
	Page      int
	PageSize  int
	Position  string
	Search    string
	IsActive  *bool
	OrderBy   string
	OnlyValid bool
}

// InventoryListFilter 查询库存列表的过滤条件
type InventoryListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	LowStock  bool
}
