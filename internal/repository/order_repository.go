package repository

import (
	"context"
	"time"

	"sellflow/internal/domain/model"
)

type OrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByPublicID(ctx context.Context, publicID string) (model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64, f OrderListFilter) ([]model.Order, int64, error)
	ListBySeller(ctx context.Context, sellerID int64, f OrderListFilter) ([]model.Order, int64, error)

	Create(ctx context.Context, order model.Order) (int64, error)

	//ステータス遷移とタイムスタンプを1回のUPDATEで書く
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, stamps map[string]interface{}) error
}

type OrderItemRepository interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
}

type ShippingAddressRepository interface {
	FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error)
	Create(ctx context.Context, addr model.ShippingAddress) (model.ShippingAddress, error)
	MarkDelivered(ctx context.Context, orderID int64, at time.Time) error
}
