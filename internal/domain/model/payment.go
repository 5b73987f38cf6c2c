package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodPaypal       PaymentMethod = "paypal"
	PaymentMethodFlutterwave  PaymentMethod = "flutterwave"
	PaymentMethodStripe       PaymentMethod = "stripe"
)

// 受け付ける支払い方法か
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodMobileMoney, PaymentMethodBankTransfer,
		PaymentMethodPaypal, PaymentMethodFlutterwave, PaymentMethodStripe:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

// 注文1件に複数の支払いを許す（分割・リトライ）
type Payment struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`
	UserID *int64 `gorm:"index" json:"user_id"`

	Method   PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Status   PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Provider          string `gorm:"type:varchar(50)" json:"provider"`
	TransactionID     string `gorm:"type:varchar(200)" json:"transaction_id"`
	ProviderReference string `gorm:"type:varchar(200)" json:"provider_reference"`

	//カードは下4桁とブランドだけ保持
	CardLast4 string `gorm:"type:varchar(4)" json:"card_last4"`
	CardBrand string `gorm:"type:varchar(20)" json:"card_brand"`

	FailureReason string `gorm:"type:text" json:"failure_reason"`

	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusApproved  RefundStatus = "approved"
	RefundStatusProcessed RefundStatus = "processed"
	RefundStatusRejected  RefundStatus = "rejected"
)

type Refund struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64  `gorm:"not null;index" json:"order_id"`
	PaymentID *int64 `gorm:"index" json:"payment_id"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason string          `gorm:"type:text;not null" json:"reason"`
	Status RefundStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	RefundedAt *time.Time `json:"refunded_at"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
