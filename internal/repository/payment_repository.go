package repository

import (
	"context"

	"sellflow/internal/domain/model"
)

type PaymentRepository interface {
	FindByID(ctx context.Context, paymentID int64) (model.Payment, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Payment, error)
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	Update(ctx context.Context, p model.Payment) error
}

type RefundRepository interface {
	FindByID(ctx context.Context, refundID int64) (model.Refund, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.Refund, error)
	Create(ctx context.Context, r model.Refund) (model.Refund, error)
	Update(ctx context.Context, r model.Refund) error
}
