package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusArchived ProductStatus = "archived"
)

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	ParentID    *int64    `gorm:"index" json:"parent_id"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    int64           `gorm:"not null;index" json:"seller_id"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`

	//在庫
	SKU            string `gorm:"type:varchar(100)" json:"sku"`
	StockQuantity  int64  `gorm:"not null;default:0" json:"stock_quantity"`
	TrackInventory bool   `gorm:"not null;default:true" json:"track_inventory"`

	CategoryID *int64        `gorm:"index" json:"category_id"`
	Tags       string        `gorm:"type:varchar(500)" json:"tags"`
	Status     ProductStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	//AI生成コンテンツ
	AIDescription      string `gorm:"column:ai_description;type:text" json:"ai_description"`
	AIHashtags         string `gorm:"column:ai_hashtags;type:varchar(500)" json:"ai_hashtags"`
	AIContentGenerated bool   `gorm:"column:ai_content_generated;not null;default:false" json:"ai_content_generated"`

	//カウンタ
	ViewCount  int64 `gorm:"not null;default:0" json:"view_count"`
	ClickCount int64 `gorm:"not null;default:0" json:"click_count"`
	ShareCount int64 `gorm:"not null;default:0" json:"share_count"`

	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	PublishedAt *time.Time     `json:"published_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Images []ProductImage `gorm:"foreignKey:ProductID" json:"images"`
}

// 販売可能か
func (p Product) IsPurchasable() bool {
	return p.Status == ProductStatusActive
}

// 代表画像URL（無ければ空）
func (p Product) MainImageURL() string {
	for _, img := range p.Images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	AltText   string    `gorm:"type:varchar(200)" json:"alt_text"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsMain    bool      `gorm:"not null;default:false" json:"is_main"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
