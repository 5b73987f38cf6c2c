package handler

import (
	"net/http"

	"sellflow/internal/config"
	"sellflow/internal/middleware"
	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チャットのHTTP。起票は客側（認証なし）、スレッド操作は売り手。
type ChatHandler struct {
	uc *usecase.ChatUsecase
}

// DI
func NewChatHandler(uc *usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

type StartConversationRequest struct {
	CustomerEmail string `json:"customer_email" validate:"required,email,max=254"`
	CustomerName  string `json:"customer_name" validate:"max=200"`
	ProductID     *int64 `json:"product_id"`
	Source        string `json:"source" validate:"max=50"`
	Message       string `json:"message" validate:"required,max=5000"`
}

type SendMessageRequest struct {
	Content       string `json:"content" validate:"required,max=5000"`
	IsAIGenerated bool   `json:"is_ai_generated"`
}

type UpdateConversationRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed archived"`
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//客側の起点
	e.POST("/sellers/:id/conversations", h.start)

	g := e.Group("/conversations")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.GET("/:id/messages", h.messages)
	g.POST("/:id/messages", h.send)
	g.PATCH("/:id", h.updateStatus)
	g.GET("/:id/suggest-reply", h.suggestReply)
}

func (h *ChatHandler) start(c echo.Context) error {
	sellerID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req StartConversationRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.StartConversation(c.Request().Context(), sellerID, usecase.StartConversationInput{
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		ProductID:     req.ProductID,
		Source:        req.Source,
		Message:       req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ChatHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListConversations(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ChatHandler) messages(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListMessages(c.Request().Context(), userID, conversationID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ChatHandler) send(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SendMessageRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.SendMessage(c.Request().Context(), userID, conversationID, usecase.SendMessageInput{
		Content:       req.Content,
		IsAIGenerated: req.IsAIGenerated,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ChatHandler) updateStatus(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateConversationRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), userID, conversationID, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ChatHandler) suggestReply(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	conversationID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.SuggestReply(c.Request().Context(), userID, conversationID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
