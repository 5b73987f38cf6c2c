package usecase

import (
	"context"
	"net/http"
	"strings"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"
)

type ProfileUsecase struct {
	userRepo     repo.UserRepository
	profileRepo  repo.ProfileRepository
	activityRepo repo.ActivityRepository
}

func NewProfileUsecase(
	userRepo repo.UserRepository,
	profileRepo repo.ProfileRepository,
	activityRepo repo.ActivityRepository,
) *ProfileUsecase {
	return &ProfileUsecase{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		activityRepo: activityRepo,
	}
}

type MeOutput struct {
	User    UserOutput    `json:"user"`
	Profile model.Profile `json:"profile"`
}

// Me は本人情報とプロフィールを返す。プロフィールは登録時に必ず作られている。
func (u *ProfileUsecase) Me(ctx context.Context, userID int64) (MeOutput, error) {
	if userID <= 0 {
		return MeOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return MeOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if err != nil {
		return MeOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return MeOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return MeOutput{
		User: UserOutput{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
		Profile: profile,
	}, nil
}

type UpdateProfileInput struct {
	BusinessName string `json:"business_name" validate:"max=200"`
	BusinessType string `json:"business_type" validate:"max=50"`
	Bio          string `json:"bio" validate:"max=2000"`
	PhoneNumber  string `json:"phone_number" validate:"max=30"`
	Country      string `json:"country" validate:"max=100"`
	City         string `json:"city" validate:"max=100"`
}

func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Profile{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	profile.BusinessName = strings.TrimSpace(in.BusinessName)
	profile.BusinessType = strings.TrimSpace(in.BusinessType)
	profile.Bio = in.Bio
	profile.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if c := strings.TrimSpace(in.Country); c != "" {
		profile.Country = c
	}
	profile.City = strings.TrimSpace(in.City)

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return model.Profile{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return profile, nil
}

func (u *ProfileUsecase) RecentActivity(ctx context.Context, userID int64, limit int) ([]model.UserActivity, error) {
	if userID <= 0 {
		return []model.UserActivity{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	activities, err := u.activityRepo.ListRecent(ctx, userID, limit)
	if err != nil {
		return []model.UserActivity{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if activities == nil {
		activities = []model.UserActivity{}
	}
	return activities, nil
}
