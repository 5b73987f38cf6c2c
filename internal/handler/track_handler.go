package handler

import (
	"net/http"

	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 認証なしの注文追跡API
type TrackHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewTrackHandler(uc *usecase.OrderUsecase) *TrackHandler {
	return &TrackHandler{uc: uc}
}

func (h *TrackHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/track/:public_id", h.track)
}

func (h *TrackHandler) track(c echo.Context) error {
	out, err := h.uc.TrackByPublicID(c.Request().Context(), c.Param("public_id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
