package handler

import (
	"net/http"
	"strconv"

	repo "sellflow/internal/repository"
	"sellflow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)
	e.POST("/products/:id/track", h.track)
	e.GET("/categories", h.categories)
}

func (h *ProductHandler) list(c echo.Context) error {
	q, err := parseListQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}

	out, err := h.uc.ListPublic(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetPublic(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type TrackRequest struct {
	Event string `json:"event" validate:"required,oneof=click share"`
}

// クリック・シェアの計測。認証不要。
func (h *ProductHandler) track(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req TrackRequest
	if res := bindAndValidate(c, &req); res != nil {
		return res
	}

	if err := h.uc.Track(c.Request().Context(), productID, req.Event); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "tracked"})
}

func (h *ProductHandler) categories(c echo.Context) error {
	out, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// page/limit/q/category_id を読む
func parseListQuery(c echo.Context) (repo.ProductListQuery, error) {
	q := repo.ProductListQuery{Q: c.QueryParam("q")}

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return repo.ProductListQuery{}, err
		}
		q.Page = p
	}

	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return repo.ProductListQuery{}, err
		}
		q.Limit = l
	}

	if v := c.QueryParam("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return repo.ProductListQuery{}, err
		}
		q.CategoryID = &id
	}

	return q, nil
}
