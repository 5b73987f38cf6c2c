package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sellflow/internal/config"
	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

const bcryptCost = 12

type AuthUsecase struct {
	cfg          config.Config
	tx           repo.TransactionManager
	users        repo.UserRepository
	activityRepo repo.ActivityRepository
}

func NewAuthUsecase(
	cfg config.Config,
	tx repo.TransactionManager,
	users repo.UserRepository,
	activityRepo repo.ActivityRepository,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:          cfg,
		tx:           tx,
		users:        users,
		activityRepo: activityRepo,
	}
}

type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	BusinessName string
	IsSeller     bool
}

type UserOutput struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type AuthOutput struct {
	User        UserOutput `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
}

// 会員登録。Userと同じトランザクションでProfileも必ず作る。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}
	if len(in.Password) < 8 {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}
	if strings.TrimSpace(in.FullName) == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return AuthOutput{}, NewHTTPError(http.StatusConflict, "email already registered")
	} else if err != repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	role := model.RoleBuyer
	if in.IsSeller {
		role = model.RoleSeller
	}

	var created model.User

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err = r.Users().Create(ctx, model.User{
			Email:        email,
			PasswordHash: string(hash),
			FullName:     strings.TrimSpace(in.FullName),
			Role:         role,
			IsActive:     true,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		//Profileは必ず1件作る（以後の存在チェックを不要にする）
		if _, err := r.Profiles().Create(ctx, model.Profile{
			UserID:       created.ID,
			BusinessName: strings.TrimSpace(in.BusinessName),
			Country:      "Ghana",
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		return nil
	})
	if err != nil {
		return AuthOutput{}, err
	}

	return u.issue(created)
}

type LoginInput struct {
	Email    string
	Password string
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return AuthOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if !user.IsActive {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	if err := u.users.UpdateLastLogin(ctx, user.ID); err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	//行動履歴は失敗してもログインは通す
	_ = u.activityRepo.Create(ctx, model.UserActivity{
		UserID:       user.ID,
		ActivityType: model.ActivityLogin,
	})

	return u.issue(user)
}

func (u *AuthUsecase) issue(user model.User) (AuthOutput, error) {
	now := time.Now()
	expiresAt := now.Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(u.cfg.JWTSecret))
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return AuthOutput{
		User: UserOutput{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
		AccessToken: signed,
		ExpiresIn:   int(accessTokenTTL.Seconds()),
	}, nil
}
