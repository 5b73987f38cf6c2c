package handler

import (
	"net/http"
	"strconv"
	"time"

	"sellflow/internal/config"
	"sellflow/internal/middleware"
	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /analytics のHTTP（売り手のみ）
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUsecase
}

// DI
func NewAnalyticsHandler(uc *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/analytics")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.SellerRoleGuard())

	g.GET("/dashboard", h.dashboard)
	g.GET("/products/:id", h.productStats)
	g.GET("/funnel", h.funnel)
}

func (h *AnalyticsHandler) dashboard(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	days, err := parseDays(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid days"})
	}

	out, err := h.uc.Dashboard(c.Request().Context(), userID, days)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) productStats(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	days, err := parseDays(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid days"})
	}

	out, err := h.uc.ProductStats(c.Request().Context(), productID, days)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsHandler) funnel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var day time.Time
	if v := c.QueryParam("date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
		}
		day = t
	}

	out, err := h.uc.Funnel(c.Request().Context(), userID, day)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func parseDays(c echo.Context) (int, error) {
	v := c.QueryParam("days")
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
