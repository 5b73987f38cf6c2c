package repository

import (
	"context"
	"errors"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialAccountGormRepository struct {
	db *gorm.DB
}

func NewSocialAccountGormRepository(db *gorm.DB) *SocialAccountGormRepository {
	return &SocialAccountGormRepository{db: db}
}

func (r *SocialAccountGormRepository) FindByID(ctx context.Context, id int64) (model.SocialAccount, error) {
	var a model.SocialAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SocialAccount{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SocialAccount{}, err
	}
	return a, nil
}

func (r *SocialAccountGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.SocialAccount, error) {
	var items []model.SocialAccount
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("platform asc").
		Find(&items).Error; err != nil {
		return []model.SocialAccount{}, err
	}
	return items, nil
}

// user+platformでユニークなので再接続は上書き
func (r *SocialAccountGormRepository) Upsert(ctx context.Context, a model.SocialAccount) (model.SocialAccount, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"platform_user_id", "platform_username",
				"access_token", "refresh_token", "token_expires_at",
				"followers_count", "is_active", "updated_at",
			}),
		}).
		Create(&a).Error
	if err != nil {
		return model.SocialAccount{}, err
	}
	return a, nil
}

func (r *SocialAccountGormRepository) Deactivate(ctx context.Context, userID int64, platform model.SocialPlatform) error {
	res := r.db.WithContext(ctx).Model(&model.SocialAccount{}).
		Where("user_id = ? AND platform = ?", userID, platform).
		Update("is_active", false)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type SocialPostGormRepository struct {
	db *gorm.DB
}

func NewSocialPostGormRepository(db *gorm.DB) *SocialPostGormRepository {
	return &SocialPostGormRepository{db: db}
}

func (r *SocialPostGormRepository) FindByID(ctx context.Context, id int64) (model.SocialPost, error) {
	var p model.SocialPost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SocialPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SocialPost{}, err
	}
	return p, nil
}

func (r *SocialPostGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.SocialPost, error) {
	var items []model.SocialPost
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error; err != nil {
		return []model.SocialPost{}, err
	}
	return items, nil
}

func (r *SocialPostGormRepository) Create(ctx context.Context, p model.SocialPost) (model.SocialPost, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.SocialPost{}, err
	}
	return p, nil
}

func (r *SocialPostGormRepository) Update(ctx context.Context, p model.SocialPost) error {
	res := r.db.WithContext(ctx).Model(&model.SocialPost{}).
		Where("id = ?", p.ID).
		Select("status", "published_at", "external_post_id", "post_url", "platform_error").
		Updates(&p)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
