package model

import "time"

type ConversationStatus string

const (
	ConversationStatusOpen     ConversationStatus = "open"
	ConversationStatusClosed   ConversationStatus = "closed"
	ConversationStatusArchived ConversationStatus = "archived"
)

// 売り手と客のチャットスレッド
type Conversation struct {
	ID            int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID      int64              `gorm:"not null;index" json:"seller_id"`
	CustomerEmail string             `gorm:"type:varchar(254);not null" json:"customer_email"`
	CustomerName  string             `gorm:"type:varchar(200)" json:"customer_name"`
	ProductID     *int64             `gorm:"index" json:"product_id"`
	Status        ConversationStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Source        string             `gorm:"type:varchar(50)" json:"source"`

	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
	LastMessageAt time.Time `gorm:"not null" json:"last_message_at"`
}

type MessageSender string

const (
	MessageSenderSeller   MessageSender = "seller"
	MessageSenderCustomer MessageSender = "customer"
)

type Message struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID int64         `gorm:"not null;index" json:"conversation_id"`
	Sender         MessageSender `gorm:"type:varchar(20);not null" json:"sender"`
	Content        string        `gorm:"type:text;not null" json:"content"`

	//AI提案から送った返信か
	IsAIGenerated bool `gorm:"column:is_ai_generated;not null;default:false" json:"is_ai_generated"`

	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
