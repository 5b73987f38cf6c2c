package handler

import (
	"context"
	"net/http"

	"sellflow/internal/config"
	"sellflow/internal/domain/model"
	"sellflow/internal/middleware"
	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 返金のHTTP。起票は買い手、審査は売り手。
type RefundHandler struct {
	uc *usecase.RefundUsecase
}

// DI
func NewRefundHandler(uc *usecase.RefundUsecase) *RefundHandler {
	return &RefundHandler{uc: uc}
}

type RequestRefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" validate:"required,max=1000"`
}

func (h *RefundHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders/:id/refunds")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("", h.request)
	g.GET("", h.list)

	s := e.Group("/seller/refunds")
	s.Use(middleware.AuthJWT(cfg))
	s.Use(middleware.SellerRoleGuard())
	s.POST("/:id/approve", h.approve)
	s.POST("/:id/reject", h.reject)
	s.POST("/:id/process", h.process)
}

func (h *RefundHandler) request(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req RequestRefundRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.RequestRefund(c.Request().Context(), userID, orderID, usecase.RequestRefundInput{
		Amount: req.Amount,
		Reason: req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *RefundHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListByOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *RefundHandler) approve(c echo.Context) error {
	return h.review(c, h.uc.Approve)
}

func (h *RefundHandler) reject(c echo.Context) error {
	return h.review(c, h.uc.Reject)
}

func (h *RefundHandler) process(c echo.Context) error {
	return h.review(c, h.uc.Process)
}

func (h *RefundHandler) review(
	c echo.Context,
	fn func(ctx context.Context, sellerID int64, refundID int64) (model.Refund, error),
) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	refundID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := fn(c.Request().Context(), userID, refundID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
