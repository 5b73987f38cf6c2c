package repository

import (
	"context"

	"sellflow/internal/domain/model"
)

type NotificationRepository interface {
	ListByUserID(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	Create(ctx context.Context, n model.Notification) error
	MarkRead(ctx context.Context, userID int64, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}
