package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderOutput struct {
	ID        int64  `json:"id"`
	OrderCode string `json:"order_code"`
	PublicID  string `json:"public_id"`

	BuyerEmail string `json:"buyer_email"`
	BuyerName  string `json:"buyer_name"`

	Status string `json:"status"`

	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Discount     decimal.Decimal `json:"discount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Currency     string          `json:"currency"`

	BuyerNote  string `json:"buyer_note"`
	SellerNote string `json:"seller_note"`
	Source     string `json:"source"`

	CreatedAt   time.Time  `json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Items           []model.OrderItem      `json:"items"`
	ShippingAddress *model.ShippingAddress `json:"shipping_address"`
	Payments        []model.Payment        `json:"payments"`
}

func toOrderOutput(o model.Order, items []model.OrderItem, addr *model.ShippingAddress, payments []model.Payment) OrderOutput {
	return OrderOutput{
		ID:              o.ID,
		OrderCode:       o.OrderCode,
		PublicID:        o.PublicID,
		BuyerEmail:      o.BuyerEmail,
		BuyerName:       o.BuyerName,
		Status:          string(o.Status),
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		ShippingCost:    o.ShippingCost,
		Discount:        o.Discount,
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		BuyerNote:       o.BuyerNote,
		SellerNote:      o.SellerNote,
		Source:          o.Source,
		CreatedAt:       o.CreatedAt,
		ConfirmedAt:     o.ConfirmedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelledAt:     o.CancelledAt,
		Items:           items,
		ShippingAddress: addr,
		Payments:        payments,
	}
}

// 注文の関連レコードをまとめて読む（tx内で使う）
func loadOrderOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	var addr *model.ShippingAddress
	if a, err := r.ShippingAddresses().FindByOrderID(ctx, o.ID); err == nil {
		addr = &a
	} else if err != repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	payments, err := r.Payments().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return toOrderOutput(o, items, addr, payments), nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, f repo.OrderListFilter) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	return u.list(ctx, func(r repo.TxRepos) ([]model.Order, int64, error) {
		return r.Orders().ListByBuyer(ctx, userID, f)
	})
}

// 売り手側の受注一覧
func (u *OrderUsecase) ListSellerOrders(ctx context.Context, sellerID int64, f repo.OrderListFilter) ([]OrderOutput, error) {
	if sellerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	return u.list(ctx, func(r repo.TxRepos) ([]model.Order, int64, error) {
		return r.Orders().ListBySeller(ctx, sellerID, f)
	})
}

func (u *OrderUsecase) list(ctx context.Context, fetch func(r repo.TxRepos) ([]model.Order, int64, error)) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := fetch(r)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := loadOrderOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		//他人の注文は「存在しない扱い」にする
		if !orderBelongsTo(o, userID) {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		out, err = loadOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func orderBelongsTo(o model.Order, userID int64) bool {
	if o.BuyerID != nil && *o.BuyerID == userID {
		return true
	}
	if o.SellerID != nil && *o.SellerID == userID {
		return true
	}
	return false
}

// Confirm は pending → confirmed（売り手操作）。
func (u *OrderUsecase) Confirm(ctx context.Context, sellerID int64, orderID int64) (OrderOutput, error) {
	now := time.Now()
	return u.transition(ctx, sellerID, orderID, model.OrderStatusConfirmed,
		map[string]interface{}{"confirmed_at": now},
		model.NotificationOrderConfirmed, "Your order has been confirmed.")
}

// Ship は confirmed/processing → shipped。
func (u *OrderUsecase) Ship(ctx context.Context, sellerID int64, orderID int64) (OrderOutput, error) {
	now := time.Now()
	return u.transition(ctx, sellerID, orderID, model.OrderStatusShipped,
		map[string]interface{}{"shipped_at": now},
		model.NotificationOrderShipped, "Your order has been shipped.")
}

// Deliver は shipped → delivered。配送先のdeliveredフラグも同じ時刻で立てる。
func (u *OrderUsecase) Deliver(ctx context.Context, sellerID int64, orderID int64) (OrderOutput, error) {
	if sellerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	now := time.Now()
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if o.SellerID == nil || *o.SellerID != sellerID {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		if !model.CanTransitionOrder(o.Status, model.OrderStatusDelivered) {
			return NewHTTPError(http.StatusBadRequest, msgInvalidTransition)
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusDelivered,
			map[string]interface{}{"delivered_at": now}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		//配送先は存在すれば同じタイムスタンプで更新する
		if err := r.ShippingAddresses().MarkDelivered(ctx, orderID, now); err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		if err := notifyBuyer(ctx, r, o, model.NotificationOrderDelivered, "Your order has been delivered."); err != nil {
			return err
		}

		o.Status = model.OrderStatusDelivered
		o.DeliveredAt = &now
		out, err = loadOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Cancel は delivered/cancelled/refunded 以外から実行できる。
// 買い手・売り手どちらでも可。理由はseller_noteに残す。
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64, reason string) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	now := time.Now()
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if !orderBelongsTo(o, userID) {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		if !model.CanTransitionOrder(o.Status, model.OrderStatusCancelled) {
			return NewHTTPError(http.StatusBadRequest, msgInvalidTransition)
		}

		stamps := map[string]interface{}{"cancelled_at": now}
		reason = strings.TrimSpace(reason)
		if reason != "" {
			stamps["seller_note"] = reason
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled, stamps); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		//キャンセルで引き当て済み在庫を戻す
		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		for _, it := range items {
			if it.ProductID == nil {
				continue
			}
			if err := r.Inventory().IncreaseStock(ctx, *it.ProductID, it.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
		}

		if err := notifyBuyer(ctx, r, o, model.NotificationOrderCancelled, "Your order has been cancelled."); err != nil {
			return err
		}

		o.Status = model.OrderStatusCancelled
		o.CancelledAt = &now
		if reason != "" {
			o.SellerNote = reason
		}
		out, err = loadOrderOutput(ctx, r, o)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// confirm/shipの共通部分
func (u *OrderUsecase) transition(
	ctx context.Context,
	sellerID int64,
	orderID int64,
	to model.OrderStatus,
	stamps map[string]interface{},
	notifType model.NotificationType,
	notifMessage string,
) (OrderOutput, error) {
	if sellerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if o.SellerID == nil || *o.SellerID != sellerID {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		if !model.CanTransitionOrder(o.Status, to) {
			return NewHTTPError(http.StatusBadRequest, msgInvalidTransition)
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, to, stamps); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		if err := notifyBuyer(ctx, r, o, notifType, notifMessage); err != nil {
			return err
		}

		refreshed, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		out, err = loadOrderOutput(ctx, r, refreshed)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 買い手が残っていれば受信箱に積む（退会済みならスキップ）
func notifyBuyer(ctx context.Context, r repo.TxRepos, o model.Order, t model.NotificationType, message string) error {
	if o.BuyerID == nil {
		return nil
	}
	if err := r.Notifications().Create(ctx, model.Notification{
		UserID:  *o.BuyerID,
		Type:    t,
		Title:   "Order " + o.OrderCode,
		Message: message,
		OrderID: &o.ID,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return nil
}

// 公開追跡用の絞ったレスポンス（買い手のPIIは配送先以外返さない）
type PublicOrderOutput struct {
	OrderCode       string                 `json:"order_code"`
	Status          string                 `json:"status"`
	Items           []model.OrderItem      `json:"items"`
	ShippingAddress *model.ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time              `json:"created_at"`
	DeliveredAt     *time.Time             `json:"delivered_at"`
}

// 認証なしのUUID追跡リンク
func (u *OrderUsecase) TrackByPublicID(ctx context.Context, publicID string) (PublicOrderOutput, error) {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return PublicOrderOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	var out PublicOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByPublicID(ctx, publicID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		var addr *model.ShippingAddress
		if a, err := r.ShippingAddresses().FindByOrderID(ctx, o.ID); err == nil {
			addr = &a
		} else if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		out = PublicOrderOutput{
			OrderCode:       o.OrderCode,
			Status:          string(o.Status),
			Items:           items,
			ShippingAddress: addr,
			CreatedAt:       o.CreatedAt,
			DeliveredAt:     o.DeliveredAt,
		}
		return nil
	})

	if err != nil {
		return PublicOrderOutput{}, err
	}
	return out, nil
}
