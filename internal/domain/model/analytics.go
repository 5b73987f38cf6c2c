package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 日次の事前集計（user+dateでユニーク）
type DailyAnalytics struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64     `gorm:"not null;index;uniqueIndex:uniq_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uniq_user_date" json:"date"`

	Revenue     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"revenue"`
	OrdersCount int64           `gorm:"not null;default:0" json:"orders_count"`

	PageViews      int64 `gorm:"not null;default:0" json:"page_views"`
	UniqueVisitors int64 `gorm:"not null;default:0" json:"unique_visitors"`
	Clicks         int64 `gorm:"not null;default:0" json:"clicks"`
	Conversions    int64 `gorm:"not null;default:0" json:"conversions"`
}

// 商品×日の集計
type ProductAnalytics struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:uniq_product_date" json:"product_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uniq_product_date" json:"date"`

	Views       int64           `gorm:"not null;default:0" json:"views"`
	Clicks      int64           `gorm:"not null;default:0" json:"clicks"`
	Conversions int64           `gorm:"not null;default:0" json:"conversions"`
	Revenue     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"revenue"`
}

// コンバージョンファネル（段階ごとの件数）
type ConversionFunnel struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64     `gorm:"not null;index;uniqueIndex:uniq_funnel_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uniq_funnel_user_date" json:"date"`

	Impressions  int64 `gorm:"not null;default:0" json:"impressions"`
	Visits       int64 `gorm:"not null;default:0" json:"visits"`
	ProductViews int64 `gorm:"not null;default:0" json:"product_views"`
	AddToCarts   int64 `gorm:"not null;default:0" json:"add_to_carts"`
	Checkouts    int64 `gorm:"not null;default:0" json:"checkouts"`
	Purchases    int64 `gorm:"not null;default:0" json:"purchases"`
}
