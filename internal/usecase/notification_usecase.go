package usecase

import (
	"context"
	"net/http"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"
)

type NotificationUsecase struct {
	notificationRepo repo.NotificationRepository
}

func NewNotificationUsecase(notificationRepo repo.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notificationRepo: notificationRepo}
}

const defaultNotificationLimit = 50

type NotificationListOutput struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unread_count"`
}

func (u *NotificationUsecase) List(ctx context.Context, userID int64, unreadOnly bool, limit int) (NotificationListOutput, error) {
	if userID <= 0 {
		return NotificationListOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}

	notifications, err := u.notificationRepo.ListByUserID(ctx, userID, unreadOnly, limit)
	if err != nil {
		return NotificationListOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}

	unread, err := u.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return NotificationListOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return NotificationListOutput{Notifications: notifications, UnreadCount: unread}, nil
}

func (u *NotificationUsecase) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	count, err := u.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return count, nil
}

// MarkRead は本人の通知だけ既読にできる。他人のIDなら404。
func (u *NotificationUsecase) MarkRead(ctx context.Context, userID int64, notificationID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if notificationID <= 0 {
		return NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	err := u.notificationRepo.MarkRead(ctx, userID, notificationID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return nil
}

func (u *NotificationUsecase) MarkAllRead(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if err := u.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return nil
}
