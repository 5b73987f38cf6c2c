package usecase

import (
	"context"
	"net/http"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。
// 合計・点数は保存せず、毎回明細から導出する。
type CartUsecase struct {
	cartRepo      repo.CartRepository
	cartItemRepo  repo.CartItemRepository
	productRepo   repo.ProductRepository
	analyticsRepo repo.AnalyticsRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	analyticsRepo repo.AnalyticsRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:      cartRepo,
		cartItemRepo:  cartItemRepo,
		productRepo:   productRepo,
		analyticsRepo: analyticsRepo,
	}
}

type CartItemResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	ItemCount int64              `json:"item_count"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddItem はカートに追加（同一商品は数量加算、在庫上限で黙ってクランプ）。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if in.ProductID <= 0 || in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	//商品チェック（activeのみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if !p.IsPurchasable() {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}

	//新規追加分の在庫チェック
	if p.TrackInventory && p.StockQuantity < in.Quantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, msgInsufficientStock)
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	existing, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	switch err {
	case nil:
		//既存明細は加算。追跡商品は在庫までに黙ってクランプ（エラーにしない）。
		newQty := existing.Quantity + in.Quantity
		if p.TrackInventory && newQty > p.StockQuantity {
			newQty = p.StockQuantity
		}
		if err := u.cartItemRepo.UpdateQuantity(ctx, existing.ID, newQty); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
	case repo.ErrNotFound:
		if _, err := u.cartItemRepo.Create(ctx, model.CartItem{
			CartID:    cart.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		}); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
	default:
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	//ファネル集計は失敗しても操作は通す
	_ = u.analyticsRepo.IncrementFunnelStage(ctx, p.SellerID, time.Now(), "add_to_carts")

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更。0以下は削除扱い（エラーではない）。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if in.Quantity <= 0 {
		if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil && err != repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		return u.buildCartResponse(ctx, cart.ID)
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	//在庫チェック
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if p.TrackInventory && in.Quantity > p.StockQuantity {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, msgInsufficientStock)
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除（他人の明細はnot found扱い）
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// 全明細削除。常に成功する。
func (u *CartUsecase) Clear(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 明細から合計と点数を導出してレスポンスを作る。
// 価格はカート追加時ではなく現在の商品価格を使う。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	respItems := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero
	var count int64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil {
			continue
		}
		if !p.IsPurchasable() {
			continue
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Image:     p.MainImageURL(),
			Price:     p.Price,
			Quantity:  it.Quantity,
			Total:     lineTotal,
		})

		total = total.Add(lineTotal)
		count += it.Quantity
	}

	return CartResponse{Items: respItems, Total: total, ItemCount: count}, nil
}
