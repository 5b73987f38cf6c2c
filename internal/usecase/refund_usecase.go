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

type RefundUsecase struct {
	tx repo.TransactionManager
}

func NewRefundUsecase(tx repo.TransactionManager) *RefundUsecase {
	return &RefundUsecase{tx: tx}
}

type RequestRefundInput struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" validate:"required,max=1000"`
}

// RequestRefund は買い手が自分の注文に対して起票する。金額未指定なら全額。
func (u *RefundUsecase) RequestRefund(ctx context.Context, userID int64, orderID int64, in RequestRefundInput) (model.Refund, error) {
	if userID <= 0 {
		return model.Refund{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if orderID <= 0 || strings.TrimSpace(in.Reason) == "" {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	var result model.Refund

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		if o.BuyerID == nil || *o.BuyerID != userID {
			return NewHTTPError(http.StatusNotFound, msgNotFound)
		}

		//refund済み・キャンセル済みの注文には起票できない
		if !model.CanTransitionOrder(o.Status, model.OrderStatusRefunded) {
			return NewHTTPError(http.StatusBadRequest, msgInvalidTransition)
		}

		amount := in.Amount
		if amount.IsZero() {
			amount = o.TotalAmount
		}
		if amount.IsNegative() || amount.GreaterThan(o.TotalAmount) {
			return NewHTTPError(http.StatusBadRequest, msgValidation)
		}

		//完了済みの支払いがあれば紐付ける
		var paymentID *int64
		payments, err := r.Payments().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		for _, p := range payments {
			if p.Status == model.PaymentStatusCompleted {
				pid := p.ID
				paymentID = &pid
				break
			}
		}

		result, err = r.Refunds().Create(ctx, model.Refund{
			OrderID:   orderID,
			PaymentID: paymentID,
			Amount:    amount,
			Reason:    strings.TrimSpace(in.Reason),
			Status:    model.RefundStatusPending,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		return nil
	})

	if err != nil {
		return model.Refund{}, err
	}
	return result, nil
}

// Approve は売り手操作。pending → approved。
func (u *RefundUsecase) Approve(ctx context.Context, sellerID int64, refundID int64) (model.Refund, error) {
	return u.review(ctx, sellerID, refundID, model.RefundStatusApproved)
}

// Reject は売り手操作。pending → rejected。
func (u *RefundUsecase) Reject(ctx context.Context, sellerID int64, refundID int64) (model.Refund, error) {
	return u.review(ctx, sellerID, refundID, model.RefundStatusRejected)
}

func (u *RefundUsecase) review(ctx context.Context, sellerID int64, refundID int64, to model.RefundStatus) (model.Refund, error) {
	if sellerID <= 0 {
		return model.Refund{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if refundID <= 0 {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	var result model.Refund

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ref, _, err := u.findForSeller(ctx, r, sellerID, refundID)
		if err != nil {
			return err
		}

		if ref.Status != model.RefundStatusPending {
			return NewHTTPError(http.StatusBadRequest, msgAlreadyProcessed)
		}

		ref.Status = to
		if err := r.Refunds().Update(ctx, ref); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		result = ref
		return nil
	})

	if err != nil {
		return model.Refund{}, err
	}
	return result, nil
}

// Process は approved → processed。同じトランザクションで
// 支払いと注文も refunded に落とす。
func (u *RefundUsecase) Process(ctx context.Context, sellerID int64, refundID int64) (model.Refund, error) {
	if sellerID <= 0 {
		return model.Refund{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if refundID <= 0 {
		return model.Refund{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	now := time.Now()
	var result model.Refund

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ref, o, err := u.findForSeller(ctx, r, sellerID, refundID)
		if err != nil {
			return err
		}

		if ref.Status != model.RefundStatusApproved {
			return NewHTTPError(http.StatusBadRequest, msgInvalidTransition)
		}
		if !model.CanTransitionOrder(o.Status, model.OrderStatusRefunded) {
			return NewHTTPError(http.StatusBadRequest, msgInvalidTransition)
		}

		ref.Status = model.RefundStatusProcessed
		ref.RefundedAt = &now
		if err := r.Refunds().Update(ctx, ref); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		if ref.PaymentID != nil {
			p, err := r.Payments().FindByID(ctx, *ref.PaymentID)
			if err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, msgDBError)
			}
			if err == nil {
				p.Status = model.PaymentStatusRefunded
				if err := r.Payments().Update(ctx, p); err != nil {
					return NewHTTPError(http.StatusInternalServerError, msgDBError)
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusRefunded, nil); err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}

		result = ref
		return nil
	})

	if err != nil {
		return model.Refund{}, err
	}
	return result, nil
}

func (u *RefundUsecase) ListByOrder(ctx context.Context, userID int64, orderID int64) ([]model.Refund, error) {
	if userID <= 0 {
		return []model.Refund{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}

	var refunds []model.Refund

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

		refunds, err = r.Refunds().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
		return nil
	})

	if err != nil {
		return []model.Refund{}, err
	}
	if refunds == nil {
		refunds = []model.Refund{}
	}
	return refunds, nil
}

func (u *RefundUsecase) findForSeller(ctx context.Context, r repo.TxRepos, sellerID int64, refundID int64) (model.Refund, model.Order, error) {
	ref, err := r.Refunds().FindByID(ctx, refundID)
	if err == repo.ErrNotFound {
		return model.Refund{}, model.Order{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return model.Refund{}, model.Order{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	o, err := r.Orders().FindByID(ctx, ref.OrderID)
	if err != nil {
		return model.Refund{}, model.Order{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if o.SellerID == nil || *o.SellerID != sellerID {
		return model.Refund{}, model.Order{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	return ref, o, nil
}
