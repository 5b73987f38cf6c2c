package usecase

import (
	"context"
	"net/http"
	"testing"

	"sellflow/internal/config"
	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	users := new(userRepoMock)
	profiles := new(profileRepoMock)
	activity := new(activityRepoMock)
	tx := &txManagerMock{Repos: &txReposStub{users: users, profiles: profiles}}

	users.On("FindByEmail", mock.Anything, "ama@example.com").Return(model.User{}, repo.ErrNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "ama@example.com" && u.Role == model.RoleSeller && u.IsActive
	})).Return(model.User{ID: 1, Email: "ama@example.com", FullName: "Ama Mensah", Role: model.RoleSeller}, nil)
	profiles.On("Create", mock.Anything, mock.MatchedBy(func(p model.Profile) bool {
		return p.UserID == 1 && p.BusinessName == "Ama Crafts" && p.Country == "Ghana"
	})).Return(model.Profile{ID: 1, UserID: 1}, nil)

	uc := NewAuthUsecase(authTestConfig(), tx, users, activity)
	out, err := uc.Register(context.Background(), RegisterInput{
		Email:        " Ama@Example.com ",
		Password:     "password123",
		FullName:     "Ama Mensah",
		BusinessName: "Ama Crafts",
		IsSeller:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.User.ID)
	assert.Equal(t, "SELLER", out.User.Role)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, 86400, out.ExpiresIn)

	//発行したトークンの中身を確認
	tok, err := jwt.Parse(out.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["sub"])
	assert.Equal(t, "SELLER", claims["role"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(userRepoMock)
	activity := new(activityRepoMock)
	tx := &txManagerMock{Repos: &txReposStub{users: users}}

	users.On("FindByEmail", mock.Anything, "ama@example.com").Return(model.User{ID: 1}, nil)

	uc := NewAuthUsecase(authTestConfig(), tx, users, activity)
	_, err := uc.Register(context.Background(), RegisterInput{
		Email: "ama@example.com", Password: "password123", FullName: "Ama",
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ShortPassword(t *testing.T) {
	uc := NewAuthUsecase(authTestConfig(), &txManagerMock{}, new(userRepoMock), new(activityRepoMock))

	_, err := uc.Register(context.Background(), RegisterInput{
		Email: "ama@example.com", Password: "short", FullName: "Ama",
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(userRepoMock)
	activity := new(activityRepoMock)
	tx := &txManagerMock{}

	stored := model.User{
		ID: 1, Email: "ama@example.com", PasswordHash: string(hash),
		FullName: "Ama Mensah", Role: model.RoleBuyer, IsActive: true,
	}

	t.Run("success", func(t *testing.T) {
		users.On("FindByEmail", mock.Anything, "ama@example.com").Return(stored, nil)
		users.On("UpdateLastLogin", mock.Anything, int64(1)).Return(nil)
		activity.On("Create", mock.Anything, mock.MatchedBy(func(a model.UserActivity) bool {
			return a.UserID == 1 && a.ActivityType == model.ActivityLogin
		})).Return(nil)

		uc := NewAuthUsecase(authTestConfig(), tx, users, activity)
		out, err := uc.Login(context.Background(), LoginInput{Email: "ama@example.com", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(userRepoMock)
		users.On("FindByEmail", mock.Anything, "ama@example.com").Return(stored, nil)

		uc := NewAuthUsecase(authTestConfig(), tx, users, new(activityRepoMock))
		_, err := uc.Login(context.Background(), LoginInput{Email: "ama@example.com", Password: "wrong"})

		he, ok := AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Status)
	})

	t.Run("deactivated account", func(t *testing.T) {
		users := new(userRepoMock)
		inactive := stored
		inactive.IsActive = false
		users.On("FindByEmail", mock.Anything, "ama@example.com").Return(inactive, nil)

		uc := NewAuthUsecase(authTestConfig(), tx, users, new(activityRepoMock))
		_, err := uc.Login(context.Background(), LoginInput{Email: "ama@example.com", Password: "password123"})

		he, ok := AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Status)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(userRepoMock)
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, repo.ErrNotFound)

		uc := NewAuthUsecase(authTestConfig(), tx, users, new(activityRepoMock))
		_, err := uc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "password123"})

		he, ok := AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Status)
	})
}
