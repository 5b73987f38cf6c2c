package repository

import (
	"context"

	"sellflow/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Profile, error)
	Create(ctx context.Context, p model.Profile) (model.Profile, error)
	Update(ctx context.Context, p model.Profile) error
	IncrementOrders(ctx context.Context, userID int64) error
	IncrementProducts(ctx context.Context, userID int64) error
}

type ActivityRepository interface {
	Create(ctx context.Context, a model.UserActivity) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]model.UserActivity, error)
}
