package model

import "time"

type Role string

const (
	RoleSeller Role = "SELLER"
	RoleBuyer  Role = "BUYER"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	FullName     string `gorm:"type:varchar(200);not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'BUYER'"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profileは登録時に必ず作成される（1ユーザー1件、存在チェック不要）
type Profile struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	BusinessName string `gorm:"type:varchar(200)" json:"business_name"`
	BusinessType string `gorm:"type:varchar(50)" json:"business_type"`
	Bio          string `gorm:"type:text" json:"bio"`
	PhoneNumber  string `gorm:"type:varchar(30)" json:"phone_number"`
	Country      string `gorm:"type:varchar(100);default:'Ghana'" json:"country"`
	City         string `gorm:"type:varchar(100)" json:"city"`

	//集計キャッシュ
	TotalProducts int64 `gorm:"not null;default:0" json:"total_products"`
	TotalOrders   int64 `gorm:"not null;default:0" json:"total_orders"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ログインや注文などの行動履歴
type UserActivity struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"not null;index" json:"user_id"`
	ActivityType string    `gorm:"type:varchar(50);not null" json:"activity_type"`
	Description  string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

const (
	ActivityLogin          = "login"
	ActivityProductCreated = "product_created"
	ActivityOrderPlaced    = "order_placed"
	ActivityOrderReceived  = "order_received"
	ActivityPostPublished  = "post_published"
)
