package model

import "time"

type NotificationType string

const (
	NotificationOrderPlaced    NotificationType = "order_placed"
	NotificationOrderConfirmed NotificationType = "order_confirmed"
	NotificationOrderShipped   NotificationType = "order_shipped"
	NotificationOrderDelivered NotificationType = "order_delivered"
	NotificationOrderCancelled NotificationType = "order_cancelled"
	NotificationPaymentDone    NotificationType = "payment_received"
	NotificationNewMessage     NotificationType = "new_message"
)

// ユーザーの受信箱に積まれるイベントレコード
type Notification struct {
	ID      int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int64            `gorm:"not null;index" json:"user_id"`
	Type    NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Title   string           `gorm:"type:varchar(200);not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`

	//関連エンティティ（任意）
	OrderID   *int64 `gorm:"index" json:"order_id"`
	ProductID *int64 `json:"product_id"`

	IsRead    bool       `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
