package usecase

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"sellflow/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func paymentTestRepos() (*paymentRepoMock, *orderRepoMock, *notificationRepoMock, *txManagerMock) {
	payments := new(paymentRepoMock)
	orders := new(orderRepoMock)
	notifications := new(notificationRepoMock)

	tx := &txManagerMock{Repos: &txReposStub{
		payments: payments, orders: orders, notifications: notifications,
	}}
	return payments, orders, notifications, tx
}

func TestProcessPayment_ConfirmsPendingOrder(t *testing.T) {
	payments, orders, notifications, tx := paymentTestRepos()

	pendingPayment := model.Payment{
		ID: 100, OrderID: 1, Status: model.PaymentStatusPending,
		Amount: decimal.RequireFromString("66.00"), Currency: "USD",
		Method: "card",
	}
	order := model.Order{
		ID: 1, OrderCode: "SFTEST0010", Status: model.OrderStatusPending,
		BuyerID: ptrInt64(10), SellerID: ptrInt64(20),
	}

	payments.On("FindByID", mock.Anything, int64(100)).Return(pendingPayment, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(order, nil)

	var updated model.Payment
	payments.On("Update", mock.Anything, mock.AnythingOfType("model.Payment")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(model.Payment) }).
		Return(nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed, mock.Anything).Return(nil)
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n model.Notification) bool {
		return n.UserID == 20 &&
			n.Type == model.NotificationPaymentDone &&
			strings.Contains(n.Message, "66.00 USD")
	})).Return(nil)

	uc := NewPaymentUsecase(tx, payments)
	got, err := uc.Process(context.Background(), 10, 100, ProcessPaymentInput{CardLast4: "4242", CardBrand: "visa"})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusCompleted, got.Status)
	assert.True(t, strings.HasPrefix(got.TransactionID, "TXN-"))
	assert.Equal(t, "mock", got.Provider)
	assert.Equal(t, "4242", updated.CardLast4)
	require.NotNil(t, updated.CompletedAt)
	orders.AssertCalled(t, "UpdateStatus", mock.Anything, int64(1), model.OrderStatusConfirmed, mock.Anything)
}

// 注文が既にconfirmed以降なら支払いだけ確定し、注文には触らない
func TestProcessPayment_OrderAlreadyConfirmed(t *testing.T) {
	payments, orders, notifications, tx := paymentTestRepos()

	payments.On("FindByID", mock.Anything, int64(100)).Return(model.Payment{
		ID: 100, OrderID: 1, Status: model.PaymentStatusPending,
		Amount: decimal.RequireFromString("10.00"), Currency: "USD",
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusConfirmed, BuyerID: ptrInt64(10), SellerID: ptrInt64(20),
	}, nil)
	payments.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := NewPaymentUsecase(tx, payments)
	_, err := uc.Process(context.Background(), 10, 100, ProcessPaymentInput{})
	require.NoError(t, err)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessPayment_AlreadyCompleted(t *testing.T) {
	payments, orders, _, tx := paymentTestRepos()

	payments.On("FindByID", mock.Anything, int64(100)).Return(model.Payment{
		ID: 100, OrderID: 1, Status: model.PaymentStatusCompleted,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, BuyerID: ptrInt64(10),
	}, nil)

	uc := NewPaymentUsecase(tx, payments)
	_, err := uc.Process(context.Background(), 10, 100, ProcessPaymentInput{})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "already processed", he.Message)
	payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProcessPayment_OtherUsersPaymentIsNotFound(t *testing.T) {
	payments, orders, _, tx := paymentTestRepos()

	payments.On("FindByID", mock.Anything, int64(100)).Return(model.Payment{
		ID: 100, OrderID: 1, Status: model.PaymentStatusPending,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, BuyerID: ptrInt64(10), SellerID: ptrInt64(20),
	}, nil)

	uc := NewPaymentUsecase(tx, payments)
	_, err := uc.Process(context.Background(), 99, 100, ProcessPaymentInput{})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestMarkPaymentFailed(t *testing.T) {
	payments, orders, _, tx := paymentTestRepos()

	payments.On("FindByID", mock.Anything, int64(100)).Return(model.Payment{
		ID: 100, OrderID: 1, Status: model.PaymentStatusPending,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, BuyerID: ptrInt64(10),
	}, nil)

	var updated model.Payment
	payments.On("Update", mock.Anything, mock.AnythingOfType("model.Payment")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(model.Payment) }).
		Return(nil)

	uc := NewPaymentUsecase(tx, payments)
	got, err := uc.MarkFailed(context.Background(), 10, 100, "  card declined ")
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusFailed, got.Status)
	assert.Equal(t, "card declined", updated.FailureReason)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
