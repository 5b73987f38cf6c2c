package repository

import (
	"context"

	"sellflow/internal/domain/model"
)

type SocialAccountRepository interface {
	FindByID(ctx context.Context, id int64) (model.SocialAccount, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.SocialAccount, error)
	Upsert(ctx context.Context, a model.SocialAccount) (model.SocialAccount, error)
	Deactivate(ctx context.Context, userID int64, platform model.SocialPlatform) error
}

type SocialPostRepository interface {
	FindByID(ctx context.Context, id int64) (model.SocialPost, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.SocialPost, error)
	Create(ctx context.Context, p model.SocialPost) (model.SocialPost, error)
	Update(ctx context.Context, p model.SocialPost) error
}
