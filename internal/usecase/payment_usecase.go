package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/lithammer/shortuuid/v4"
)

type PaymentUsecase struct {
	tx          repo.TransactionManager
	paymentRepo repo.PaymentRepository
}

func NewPaymentUsecase(tx repo.TransactionManager, paymentRepo repo.PaymentRepository) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, paymentRepo: paymentRepo}
}

type ProcessPaymentInput struct {
	//カードの場合だけ使う
	CardLast4 string `json:"card_last4" validate:"omitempty,len=4,numeric"`
	CardBrand string `json:"card_brand" validate:"max=20"`
}

// Process は保留中の支払いを確定し、注文を pending → confirmed に進める。
// 決済ゲートウェイは持たないため、検証を通れば常に成功する。
func (u *PaymentUsecase) Process(ctx context.Context, userID int64, paymentID int64, in ProcessPaymentInput) (model.Payment, error) {
	if userID <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if paymentID <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	now := time.Now()
	var result model.Payment

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		o, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if !orderBelongsTo(o, userID) {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		//確定済みの支払いを二重処理しない
		if p.Status != model.PaymentStatusPending {
			return NewHTTPError(http.StatusBadRequest, msgAlreadyProcessed)
		}

		p.Status = model.PaymentStatusCompleted
		p.TransactionID = "TXN-" + shortuuid.New()
		p.Provider = "mock"
		p.CardLast4 = in.CardLast4
		p.CardBrand = strings.TrimSpace(in.CardBrand)
		p.CompletedAt = &now

		if err := r.Payments().Update(ctx, p); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		//まだpendingの注文はこのタイミングで確定する
		if o.Status == model.OrderStatusPending {
			if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusConfirmed,
				map[string]interface{}{"confirmed_at": now}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}

			if o.SellerID != nil {
				if err := r.Notifications().Create(ctx, model.Notification{
					UserID:  *o.SellerID,
					Type:    model.NotificationPaymentDone,
					Title:   "Order " + o.OrderCode,
					Message: "Payment of " + p.Amount.StringFixed(2) + " " + p.Currency + " received.",
					OrderID: &o.ID,
				}); err != nil {
					return NewHTTPError(http.StatusInternalServerError, msgDBError)
				}
			}
		}

		result = p
		return nil
	})

	if err != nil {
		return model.Payment{}, err
	}
	return result, nil
}

// MarkFailed は保留中の支払いを失敗として記録する。注文は触らない。
func (u *PaymentUsecase) MarkFailed(ctx context.Context, userID int64, paymentID int64, reason string) (model.Payment, error) {
	if userID <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if paymentID <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	var result model.Payment

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		o, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if !orderBelongsTo(o, userID) {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		if p.Status != model.PaymentStatusPending {
			return NewHTTPError(http.StatusBadRequest, msgAlreadyProcessed)
		}

		p.Status = model.PaymentStatusFailed
		p.FailureReason = strings.TrimSpace(reason)
		if err := r.Payments().Update(ctx, p); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		result = p
		return nil
	})

	if err != nil {
		return model.Payment{}, err
	}
	return result, nil
}

func (u *PaymentUsecase) ListMyPayments(ctx context.Context, userID int64) ([]model.Payment, error) {
	if userID <= 0 {
		return []model.Payment{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	payments, err := u.paymentRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Payment{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	return payments, nil
}

func (u *PaymentUsecase) GetPayment(ctx context.Context, userID int64, paymentID int64) (model.Payment, error) {
	if userID <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	var result model.Payment
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		o, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if !orderBelongsTo(o, userID) {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		result = p
		return nil
	})

	if err != nil {
		return model.Payment{}, err
	}
	return result, nil
}
