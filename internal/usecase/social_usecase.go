package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"
	"sellflow/internal/social"
)

type SocialUsecase struct {
	accountRepo  repo.SocialAccountRepository
	postRepo     repo.SocialPostRepository
	productRepo  repo.ProductRepository
	activityRepo repo.ActivityRepository
	publisher    social.SocialPublisher
	log          *slog.Logger
}

func NewSocialUsecase(
	accountRepo repo.SocialAccountRepository,
	postRepo repo.SocialPostRepository,
	productRepo repo.ProductRepository,
	activityRepo repo.ActivityRepository,
	publisher social.SocialPublisher,
	log *slog.Logger,
) *SocialUsecase {
	return &SocialUsecase{
		accountRepo:  accountRepo,
		postRepo:     postRepo,
		productRepo:  productRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		log:          log,
	}
}

type ConnectAccountInput struct {
	Platform         string     `json:"platform" validate:"required,oneof=facebook instagram twitter whatsapp"`
	PlatformUserID   string     `json:"platform_user_id" validate:"required,max=200"`
	PlatformUsername string     `json:"platform_username" validate:"max=100"`
	AccessToken      string     `json:"access_token" validate:"required"`
	RefreshToken     string     `json:"refresh_token"`
	TokenExpiresAt   *time.Time `json:"token_expires_at"`
	FollowersCount   int64      `json:"followers_count" validate:"gte=0"`
}

// ConnectAccount は同じプラットフォームなら上書き接続になる。
func (u *SocialUsecase) ConnectAccount(ctx context.Context, userID int64, in ConnectAccountInput) (model.SocialAccount, error) {
	if userID <= 0 {
		return model.SocialAccount{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	platform := model.SocialPlatform(in.Platform)
	switch platform {
	case model.PlatformFacebook, model.PlatformInstagram, model.PlatformTwitter, model.PlatformWhatsapp:
	default:
		return model.SocialAccount{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}
	if strings.TrimSpace(in.PlatformUserID) == "" || strings.TrimSpace(in.AccessToken) == "" {
		return model.SocialAccount{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	account, err := u.accountRepo.Upsert(ctx, model.SocialAccount{
		UserID:           userID,
		Platform:         platform,
		PlatformUserID:   in.PlatformUserID,
		PlatformUsername: in.PlatformUsername,
		AccessToken:      in.AccessToken,
		RefreshToken:     in.RefreshToken,
		TokenExpiresAt:   in.TokenExpiresAt,
		FollowersCount:   in.FollowersCount,
		IsActive:         true,
	})
	if err != nil {
		return model.SocialAccount{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return account, nil
}

func (u *SocialUsecase) ListAccounts(ctx context.Context, userID int64) ([]model.SocialAccount, error) {
	if userID <= 0 {
		return []model.SocialAccount{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	accounts, err := u.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.SocialAccount{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if accounts == nil {
		accounts = []model.SocialAccount{}
	}
	return accounts, nil
}

func (u *SocialUsecase) DisconnectAccount(ctx context.Context, userID int64, platform string) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	err := u.accountRepo.Deactivate(ctx, userID, model.SocialPlatform(platform))
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return nil
}

type CreatePostInput struct {
	SocialAccountID int64      `json:"social_account_id" validate:"required,gt=0"`
	Content         string     `json:"content" validate:"required,max=5000"`
	Hashtags        string     `json:"hashtags" validate:"max=500"`
	ProductID       *int64     `json:"product_id"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
}

// CreatePost は投稿レコードを作り、予約がなければ即時に配信を試みる。
// 配信失敗は投稿をfailedにして返す（HTTPエラーにはしない）。
func (u *SocialUsecase) CreatePost(ctx context.Context, userID int64, in CreatePostInput) (model.SocialPost, error) {
	if userID <= 0 {
		return model.SocialPost{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if strings.TrimSpace(in.Content) == "" {
		return model.SocialPost{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	account, err := u.accountRepo.FindByID(ctx, in.SocialAccountID)
	if err == repo.ErrNotFound {
		return model.SocialPost{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if account.UserID != userID || !account.IsActive {
		return model.SocialPost{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}

	if in.ProductID != nil {
		p, err := u.productRepo.FindByID(ctx, *in.ProductID)
		if err == repo.ErrNotFound {
			return model.SocialPost{}, NewHTTPError(http.StatusBadRequest, msgValidation)
		}
		if err != nil {
			return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if p.SellerID != userID {
			return model.SocialPost{}, NewHTTPError(http.StatusBadRequest, msgValidation)
		}
	}

	post := model.SocialPost{
		UserID:          userID,
		SocialAccountID: account.ID,
		Platform:        account.Platform,
		Content:         in.Content,
		Hashtags:        in.Hashtags,
		ProductID:       in.ProductID,
		Status:          model.SocialPostDraft,
		ScheduledAt:     in.ScheduledAt,
	}
	if in.ScheduledAt != nil && in.ScheduledAt.After(time.Now()) {
		post.Status = model.SocialPostScheduled
	}

	created, err := u.postRepo.Create(ctx, post)
	if err != nil {
		return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if created.Status == model.SocialPostScheduled {
		return created, nil
	}
	return u.publish(ctx, account, created)
}

// PublishPost はdraft/failed/予約済みの投稿を明示的に配信する。
func (u *SocialUsecase) PublishPost(ctx context.Context, userID int64, postID int64) (model.SocialPost, error) {
	if userID <= 0 {
		return model.SocialPost{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	post, err := u.postRepo.FindByID(ctx, postID)
	if err == repo.ErrNotFound {
		return model.SocialPost{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if post.UserID != userID {
		return model.SocialPost{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if post.Status == model.SocialPostPublished {
		return model.SocialPost{}, NewHTTPError(http.StatusBadRequest, msgAlreadyProcessed)
	}

	account, err := u.accountRepo.FindByID(ctx, post.SocialAccountID)
	if err == repo.ErrNotFound {
		return model.SocialPost{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}
	if err != nil {
		return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return u.publish(ctx, account, post)
}

func (u *SocialUsecase) ListPosts(ctx context.Context, userID int64) ([]model.SocialPost, error) {
	if userID <= 0 {
		return []model.SocialPost{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	posts, err := u.postRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if posts == nil {
		posts = []model.SocialPost{}
	}
	return posts, nil
}

func (u *SocialUsecase) publish(ctx context.Context, account model.SocialAccount, post model.SocialPost) (model.SocialPost, error) {
	now := time.Now()

	if account.IsTokenExpired(now) {
		post.Status = model.SocialPostFailed
		post.PlatformError = "access token expired"
		if err := u.postRepo.Update(ctx, post); err != nil {
			return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		return post, nil
	}

	result, err := u.publisher.Publish(ctx, account, post)
	if err != nil {
		post.Status = model.SocialPostFailed
		post.PlatformError = err.Error()
		if uerr := u.postRepo.Update(ctx, post); uerr != nil {
			return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		return post, nil
	}

	post.Status = model.SocialPostPublished
	post.PublishedAt = &now
	post.ExternalPostID = result.ExternalPostID
	post.PostURL = result.PostURL
	post.PlatformError = ""
	if err := u.postRepo.Update(ctx, post); err != nil {
		return model.SocialPost{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	//シェアカウンタも上げる
	if post.ProductID != nil {
		if err := u.productRepo.IncrementCounter(ctx, *post.ProductID, "share_count"); err != nil {
			u.log.Warn("increment share failed", "product_id", *post.ProductID, "err", err)
		}
	}
	if err := u.activityRepo.Create(ctx, model.UserActivity{
		UserID:       post.UserID,
		ActivityType: model.ActivityPostPublished,
		Description:  "Published post to " + string(post.Platform),
	}); err != nil {
		u.log.Warn("record activity failed", "err", err)
	}

	return post, nil
}
