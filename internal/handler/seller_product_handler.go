package handler

import (
	"net/http"

	"sellflow/internal/config"
	"sellflow/internal/middleware"
	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /seller/products のHTTP（売り手のみ）
type SellerProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewSellerProductHandler(uc *usecase.ProductUsecase) *SellerProductHandler {
	return &SellerProductHandler{uc: uc}
}

type ProductRequest struct {
	Name           string                      `json:"name" validate:"required,max=200"`
	Description    string                      `json:"description"`
	Price          decimal.Decimal             `json:"price"`
	SKU            string                      `json:"sku" validate:"max=100"`
	StockQuantity  int64                       `json:"stock_quantity" validate:"gte=0"`
	TrackInventory *bool                       `json:"track_inventory"`
	CategoryID     *int64                      `json:"category_id"`
	Tags           string                      `json:"tags" validate:"max=500"`
	Status         string                      `json:"status" validate:"omitempty,oneof=draft active inactive archived"`
	Images         []usecase.ProductImageInput `json:"images" validate:"dive"`
}

type GenerateContentRequest struct {
	Tone     string `json:"tone" validate:"max=50"`
	Platform string `json:"platform" validate:"omitempty,oneof=instagram facebook twitter whatsapp"`
}

func (h *SellerProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/seller/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.SellerRoleGuard())

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/generate-content", h.generateContent)
}

func (h *SellerProductHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	q, err := parseListQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	q.Status = c.QueryParam("status")

	out, err := h.uc.ListMine(c.Request().Context(), userID, q)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerProductHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ProductRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), userID, toProductInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *SellerProductHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetMine(c.Request().Context(), userID, productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerProductHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ProductRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.UpdateProduct(c.Request().Context(), userID, productID, toProductInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *SellerProductHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), userID, productID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "product deleted"})
}

func (h *SellerProductHandler) generateContent(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req GenerateContentRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	out, err := h.uc.GenerateContent(c.Request().Context(), userID, productID, usecase.GenerateContentInput{
		Tone:     req.Tone,
		Platform: req.Platform,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func toProductInput(req ProductRequest) usecase.ProductInput {
	return usecase.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		SKU:            req.SKU,
		StockQuantity:  req.StockQuantity,
		TrackInventory: req.TrackInventory,
		CategoryID:     req.CategoryID,
		Tags:           req.Tags,
		Status:         req.Status,
		Images:         req.Images,
	}
}
