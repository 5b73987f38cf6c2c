package model

import (
	"crypto/rand"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// 許可された遷移だけを1箇所で管理する
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusDelivered:  {OrderStatusRefunded},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

// fromからtoへ遷移できるか
func CanTransitionOrder(from OrderStatus, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//人間が読める注文コード（SF + 8桁英数字）
	OrderCode string `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_code"`
	//未認証の追跡リンク用ID
	PublicID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`

	//買い手（退会でNULLになる。注文自体は履歴として残す）
	BuyerID    *int64 `gorm:"index" json:"buyer_id"`
	BuyerEmail string `gorm:"type:varchar(254);not null" json:"buyer_email"`
	BuyerName  string `gorm:"type:varchar(200);not null" json:"buyer_name"`
	SellerID   *int64 `gorm:"index" json:"seller_id"`

	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	//金額は作成時に確定するスナップショット（以後再計算しない）
	Subtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"shipping_cost"`
	Discount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`

	BuyerNote  string `gorm:"type:text" json:"buyer_note"`
	SellerNote string `gorm:"type:text" json:"seller_note"`

	//流入元（facebook / instagram / whatsapp / website）
	Source string `gorm:"type:varchar(50)" json:"source"`

	CreatedAt   time.Time  `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}

const orderCodePrefix = "SF"

const orderCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SF + ランダム8文字の注文コードを生成
func GenerateOrderCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = orderCodeChars[int(b)%len(orderCodeChars)]
	}
	return orderCodePrefix + string(buf)
}

// 注文明細（商品が後で変更・削除されても金額が変わらないようスナップショット）
type OrderItem struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      int64           `gorm:"not null;index" json:"order_id"`
	ProductID    *int64          `gorm:"index" json:"product_id"`
	ProductName  string          `gorm:"type:varchar(200);not null" json:"product_name"`
	ProductImage string          `gorm:"type:varchar(500)" json:"product_image"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity     int64           `gorm:"not null;default:1" json:"quantity"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 注文と1対1の配送先
type ShippingAddress struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;uniqueIndex" json:"order_id"`

	FullName     string `gorm:"type:varchar(200);not null" json:"full_name"`
	Phone        string `gorm:"type:varchar(20);not null" json:"phone"`
	AddressLine1 string `gorm:"type:varchar(255);not null" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2"`
	City         string `gorm:"type:varchar(100);not null" json:"city"`
	State        string `gorm:"type:varchar(100);not null" json:"state"`
	PostalCode   string `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country      string `gorm:"type:varchar(100);not null;default:'Ghana'" json:"country"`

	DeliveryInstructions string `gorm:"type:text" json:"delivery_instructions"`

	//配達完了はdeliver遷移のときだけ立てる
	IsDelivered bool       `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt *time.Time `json:"delivered_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
