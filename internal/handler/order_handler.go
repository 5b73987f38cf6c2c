package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"sellflow/internal/config"
	"sellflow/internal/middleware"
	repo "sellflow/internal/repository"
	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders と /seller/orders のHTTP
type OrderHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	orderUC    *usecase.OrderUsecase
}

// DI
func NewOrderHandler(checkoutUC *usecase.CheckoutUsecase, orderUC *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{checkoutUC: checkoutUC, orderUC: orderUC}
}

type CheckoutRequest struct {
	ItemIDs []int64 `json:"item_ids"`

	FullName             string `json:"full_name" validate:"required,max=255"`
	Phone                string `json:"phone" validate:"required,max=20"`
	AddressLine1         string `json:"address_line1" validate:"required,max=255"`
	AddressLine2         string `json:"address_line2" validate:"max=255"`
	City                 string `json:"city" validate:"required,max=100"`
	State                string `json:"state" validate:"required,max=100"`
	PostalCode           string `json:"postal_code" validate:"required,max=20"`
	Country              string `json:"country" validate:"max=100"`
	DeliveryInstructions string `json:"delivery_instructions" validate:"max=500"`

	PaymentMethod string `json:"payment_method" validate:"required,oneof=card mobile_money bank_transfer paypal flutterwave stripe"`
	BuyerNote     string `json:"buyer_note" validate:"max=500"`
	Source        string `json:"source" validate:"max=50"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/checkout", h.checkout)
	g.GET("", h.listMine)
	g.GET("/:id", h.detail)
	g.POST("/:id/cancel", h.cancel)

	s := e.Group("/seller/orders")
	s.Use(middleware.AuthJWT(cfg))
	s.Use(middleware.SellerRoleGuard())

	s.GET("", h.listSeller)
	s.POST("/:id/confirm", h.confirm)
	s.POST("/:id/ship", h.ship)
	s.POST("/:id/deliver", h.deliver)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.checkoutUC.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		ItemIDs:              req.ItemIDs,
		FullName:             req.FullName,
		Phone:                req.Phone,
		AddressLine1:         req.AddressLine1,
		AddressLine2:         req.AddressLine2,
		City:                 req.City,
		State:                req.State,
		PostalCode:           req.PostalCode,
		Country:              req.Country,
		DeliveryInstructions: req.DeliveryInstructions,
		PaymentMethod:        req.PaymentMethod,
		BuyerNote:            req.BuyerNote,
		Source:               req.Source,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	f, err := parseOrderFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.orderUC.ListMyOrders(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) listSeller(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	f, err := parseOrderFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.orderUC.ListSellerOrders(c.Request().Context(), userID, f)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUC.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.orderUC.Cancel(c.Request().Context(), userID, orderID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) confirm(c echo.Context) error {
	return h.sellerTransition(c, h.orderUC.Confirm)
}

func (h *OrderHandler) ship(c echo.Context) error {
	return h.sellerTransition(c, h.orderUC.Ship)
}

func (h *OrderHandler) deliver(c echo.Context) error {
	return h.sellerTransition(c, h.orderUC.Deliver)
}

func (h *OrderHandler) sellerTransition(
	c echo.Context,
	fn func(ctx context.Context, sellerID int64, orderID int64) (usecase.OrderOutput, error),
) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := fn(c.Request().Context(), userID, orderID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// page/limit/status/from/to を読む
func parseOrderFilter(c echo.Context) (repo.OrderListFilter, error) {
	f := repo.OrderListFilter{Status: c.QueryParam("status")}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return repo.OrderListFilter{}, err
		}
		f.Page = p
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return repo.OrderListFilter{}, err
		}
		f.Limit = l
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return repo.OrderListFilter{}, err
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return repo.OrderListFilter{}, err
		}
		f.To = &t
	}

	return f, nil
}
