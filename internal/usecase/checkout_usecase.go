package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 税率10%、小計50.00以上で送料無料
var (
	taxRate           = decimal.NewFromFloat(0.10)
	freeShippingFloor = decimal.NewFromInt(50)
	flatShippingCost  = decimal.NewFromInt(5)
)

type CheckoutUsecase struct {
	tx       repo.TransactionManager
	activity repo.ActivityRepository
	log      *slog.Logger
}

func NewCheckoutUsecase(tx repo.TransactionManager, activity repo.ActivityRepository, log *slog.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, activity: activity, log: log}
}

type CheckoutInput struct {
	// 空なら全アイテムを対象にする
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

// Checkout はカートの選択アイテムを1トランザクションで注文に変換する。
// 在庫の引き当てに失敗したら全体をロールバックする。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if !model.PaymentMethod(in.PaymentMethod).Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = "Ghana"
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "website"
	}

	now := time.Now()
	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		buyer, err := r.Users().FindByID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, msgEmptyCart)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		allItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if len(allItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, msgEmptyCart)
		}

		items := allItems
		if len(in.ItemIDs) > 0 {
			items, err = r.CartItems().ListByIDs(ctx, cart.ID, in.ItemIDs)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, msgNoItemsSelected)
		}

		//スナップショットを組み立てつつ在庫を引き当てる
		subtotal := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(items))
		var sellerID *int64
		productIDs := make([]int64, 0, len(items))

		for _, it := range items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, msgValidation)
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
			if !p.IsPurchasable() {
				return NewHTTPError(http.StatusBadRequest, msgValidation)
			}

			if p.TrackInventory {
				ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, it.Quantity)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, msgDBError)
				}
				if !ok {
					return NewHTTPError(http.StatusBadRequest, msgInsufficientStock)
				}
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(it.Quantity))
			subtotal = subtotal.Add(lineTotal)

			pid := p.ID
			orderItems = append(orderItems, model.OrderItem{
				ProductID:    &pid,
				ProductName:  p.Name,
				ProductImage: p.MainImageURL(),
				Price:        p.Price,
				Quantity:     it.Quantity,
				Total:        lineTotal,
			})
			productIDs = append(productIDs, p.ID)

			//注文は1売り手に紐づくため、混在した選択は受け付けない
			if sellerID == nil {
				sid := p.SellerID
				sellerID = &sid
			} else if *sellerID != p.SellerID {
				return NewHTTPError(http.StatusBadRequest, msgMixedSellers)
			}
		}

		tax := subtotal.Mul(taxRate).Round(2)
		shipping := flatShippingCost
		if subtotal.GreaterThanOrEqual(freeShippingFloor) {
			shipping = decimal.Zero
		}
		discount := decimal.Zero
		total := subtotal.Add(tax).Add(shipping).Sub(discount)

		buyerID := buyer.ID
		order := model.Order{
			OrderCode:    model.GenerateOrderCode(),
			PublicID:     uuid.NewString(),
			BuyerID:      &buyerID,
			SellerID:     sellerID,
			BuyerEmail:   buyer.Email,
			BuyerName:    in.FullName,
			Status:       model.OrderStatusPending,
			Subtotal:     subtotal,
			Tax:          tax,
			ShippingCost: shipping,
			Discount:     discount,
			TotalAmount:  total,
			Currency:     "USD",
			BuyerNote:    in.BuyerNote,
			Source:       source,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		addr := model.ShippingAddress{
			OrderID:              orderID,
			FullName:             in.FullName,
			Phone:                in.Phone,
			AddressLine1:         in.AddressLine1,
			AddressLine2:         in.AddressLine2,
			City:                 in.City,
			State:                in.State,
			PostalCode:           in.PostalCode,
			Country:              country,
			DeliveryInstructions: in.DeliveryInstructions,
		}
		if _, err := r.ShippingAddresses().Create(ctx, addr); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		//支払いはpendingで作成し、後続のprocessで確定する
		if _, err := r.Payments().Create(ctx, model.Payment{
			OrderID: orderID,
			UserID:  &buyerID,
			Method:  model.PaymentMethod(in.PaymentMethod),
			Status:  model.PaymentStatusPending,
			Amount:  total,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		//注文になったアイテムだけカートから消す
		itemIDs := make([]int64, 0, len(items))
		for _, it := range items {
			itemIDs = append(itemIDs, it.ID)
		}
		if err := r.CartItems().DeleteByIDs(ctx, cart.ID, itemIDs); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		if sellerID != nil {
			if err := r.Notifications().Create(ctx, model.Notification{
				UserID:  *sellerID,
				Type:    model.NotificationOrderPlaced,
				Title:   "Order " + order.OrderCode,
				Message: "You have received a new order from " + in.FullName + ".",
				OrderID: &orderID,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}

			if err := r.Analytics().RecordOrder(ctx, *sellerID, now, total); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
			if err := r.Analytics().IncrementFunnelStage(ctx, *sellerID, now, "checkouts"); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
			if err := r.Analytics().IncrementFunnelStage(ctx, *sellerID, now, "purchases"); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
			if err := r.Profiles().IncrementOrders(ctx, *sellerID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
		}
		for i, pid := range productIDs {
			if err := r.Analytics().RecordProductEvent(ctx, pid, now, "conversion", orderItems[i].Total); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
		}

		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		out, err = loadOrderOutput(ctx, r, created)
		return err
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//行動履歴はベストエフォート
	if aerr := u.activity.Create(ctx, model.UserActivity{
		UserID:       userID,
		ActivityType: model.ActivityOrderPlaced,
		Description:  "Placed order " + out.OrderCode,
	}); aerr != nil {
		u.log.Warn("record activity failed", "err", aerr)
	}

	return out, nil
}
