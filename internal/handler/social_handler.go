package handler

import (
	"net/http"
	"time"

	"sellflow/internal/config"
	"sellflow/internal/middleware"
	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /social のHTTP（売り手のみ）
type SocialHandler struct {
	uc *usecase.SocialUsecase
}

// DI
func NewSocialHandler(uc *usecase.SocialUsecase) *SocialHandler {
	return &SocialHandler{uc: uc}
}

type ConnectAccountRequest struct {
	Platform         string     `json:"platform" validate:"required,oneof=facebook instagram twitter whatsapp"`
	PlatformUserID   string     `json:"platform_user_id" validate:"required,max=200"`
	PlatformUsername string     `json:"platform_username" validate:"max=100"`
	AccessToken      string     `json:"access_token" validate:"required"`
	RefreshToken     string     `json:"refresh_token"`
	TokenExpiresAt   *time.Time `json:"token_expires_at"`
	FollowersCount   int64      `json:"followers_count" validate:"gte=0"`
}

type CreatePostRequest struct {
	SocialAccountID int64      `json:"social_account_id" validate:"required,gt=0"`
	Content         string     `json:"content" validate:"required,max=5000"`
	Hashtags        string     `json:"hashtags" validate:"max=500"`
	ProductID       *int64     `json:"product_id"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
}

func (h *SocialHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/social")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.SellerRoleGuard())

	g.GET("/accounts", h.listAccounts)
	g.POST("/accounts", h.connect)
	g.DELETE("/accounts/:platform", h.disconnect)

	g.GET("/posts", h.listPosts)
	g.POST("/posts", h.createPost)
	g.POST("/posts/:id/publish", h.publishPost)
}

func (h *SocialHandler) listAccounts(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListAccounts(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SocialHandler) connect(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ConnectAccountRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.ConnectAccount(c.Request().Context(), userID, usecase.ConnectAccountInput{
		Platform:         req.Platform,
		PlatformUserID:   req.PlatformUserID,
		PlatformUsername: req.PlatformUsername,
		AccessToken:      req.AccessToken,
		RefreshToken:     req.RefreshToken,
		TokenExpiresAt:   req.TokenExpiresAt,
		FollowersCount:   req.FollowersCount,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *SocialHandler) disconnect(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.DisconnectAccount(c.Request().Context(), userID, c.Param("platform")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "account disconnected"})
}

func (h *SocialHandler) listPosts(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListPosts(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SocialHandler) createPost(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreatePostRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.CreatePost(c.Request().Context(), userID, usecase.CreatePostInput{
		SocialAccountID: req.SocialAccountID,
		Content:         req.Content,
		Hashtags:        req.Hashtags,
		ProductID:       req.ProductID,
		ScheduledAt:     req.ScheduledAt,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *SocialHandler) publishPost(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	postID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.PublishPost(c.Request().Context(), userID, postID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
