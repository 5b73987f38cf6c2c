package usecase

import (
	"context"
	"net/http"
	"testing"

	"sellflow/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func refundTestRepos() (*refundRepoMock, *orderRepoMock, *paymentRepoMock, *txManagerMock) {
	refunds := new(refundRepoMock)
	orders := new(orderRepoMock)
	payments := new(paymentRepoMock)

	tx := &txManagerMock{Repos: &txReposStub{
		refunds: refunds, orders: orders, payments: payments,
	}}
	return refunds, orders, payments, tx
}

func TestRequestRefund_DefaultsToFullAmount(t *testing.T) {
	refunds, orders, payments, tx := refundTestRepos()

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivered, BuyerID: ptrInt64(10), SellerID: ptrInt64(20),
		TotalAmount: decimal.RequireFromString("66.00"),
	}, nil)
	payments.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.Payment{
		{ID: 100, OrderID: 1, Status: model.PaymentStatusCompleted},
	}, nil)

	var created model.Refund
	refunds.On("Create", mock.Anything, mock.AnythingOfType("model.Refund")).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.Refund) }).
		Return(model.Refund{ID: 5}, nil)

	uc := NewRefundUsecase(tx)
	_, err := uc.RequestRefund(context.Background(), 10, 1, RequestRefundInput{Reason: "damaged on arrival"})
	require.NoError(t, err)

	assert.True(t, created.Amount.Equal(decimal.RequireFromString("66.00")))
	require.NotNil(t, created.PaymentID)
	assert.Equal(t, int64(100), *created.PaymentID)
	assert.Equal(t, model.RefundStatusPending, created.Status)
}

func TestRequestRefund_AmountAboveTotalRejected(t *testing.T) {
	refunds, orders, payments, tx := refundTestRepos()
	_ = payments

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivered, BuyerID: ptrInt64(10),
		TotalAmount: decimal.RequireFromString("66.00"),
	}, nil)

	uc := NewRefundUsecase(tx)
	_, err := uc.RequestRefund(context.Background(), 10, 1, RequestRefundInput{
		Amount: decimal.RequireFromString("100.00"),
		Reason: "damaged",
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	refunds.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestRefund_CancelledOrderRejected(t *testing.T) {
	refunds, orders, _, tx := refundTestRepos()

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusCancelled, BuyerID: ptrInt64(10),
	}, nil)

	uc := NewRefundUsecase(tx)
	_, err := uc.RequestRefund(context.Background(), 10, 1, RequestRefundInput{Reason: "late"})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid transition", he.Message)
	refunds.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 売り手からしか起票できない操作への買い手側の保護
func TestRequestRefund_SellerCannotRequest(t *testing.T) {
	_, orders, _, tx := refundTestRepos()

	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivered, BuyerID: ptrInt64(10), SellerID: ptrInt64(20),
	}, nil)

	uc := NewRefundUsecase(tx)
	_, err := uc.RequestRefund(context.Background(), 20, 1, RequestRefundInput{Reason: "x"})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestApproveRefund_NonPendingRejected(t *testing.T) {
	refunds, orders, _, tx := refundTestRepos()

	refunds.On("FindByID", mock.Anything, int64(5)).Return(model.Refund{
		ID: 5, OrderID: 1, Status: model.RefundStatusApproved,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, SellerID: ptrInt64(20),
	}, nil)

	uc := NewRefundUsecase(tx)
	_, err := uc.Approve(context.Background(), 20, 5)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "already processed", he.Message)
	refunds.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProcessRefund_SettlesPaymentAndOrder(t *testing.T) {
	refunds, orders, payments, tx := refundTestRepos()

	refunds.On("FindByID", mock.Anything, int64(5)).Return(model.Refund{
		ID: 5, OrderID: 1, PaymentID: ptrInt64(100), Status: model.RefundStatusApproved,
		Amount: decimal.RequireFromString("66.00"),
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivered, SellerID: ptrInt64(20),
	}, nil)

	var savedRefund model.Refund
	refunds.On("Update", mock.Anything, mock.AnythingOfType("model.Refund")).
		Run(func(args mock.Arguments) { savedRefund = args.Get(1).(model.Refund) }).
		Return(nil)

	payments.On("FindByID", mock.Anything, int64(100)).Return(model.Payment{
		ID: 100, OrderID: 1, Status: model.PaymentStatusCompleted,
	}, nil)
	var savedPayment model.Payment
	payments.On("Update", mock.Anything, mock.AnythingOfType("model.Payment")).
		Run(func(args mock.Arguments) { savedPayment = args.Get(1).(model.Payment) }).
		Return(nil)
	orders.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusRefunded, mock.Anything).Return(nil)

	uc := NewRefundUsecase(tx)
	got, err := uc.Process(context.Background(), 20, 5)
	require.NoError(t, err)

	assert.Equal(t, model.RefundStatusProcessed, got.Status)
	require.NotNil(t, savedRefund.RefundedAt)
	assert.Equal(t, model.PaymentStatusRefunded, savedPayment.Status)
	orders.AssertCalled(t, "UpdateStatus", mock.Anything, int64(1), model.OrderStatusRefunded, mock.Anything)
}

func TestProcessRefund_PendingRefundRejected(t *testing.T) {
	refunds, orders, _, tx := refundTestRepos()

	refunds.On("FindByID", mock.Anything, int64(5)).Return(model.Refund{
		ID: 5, OrderID: 1, Status: model.RefundStatusPending,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, Status: model.OrderStatusDelivered, SellerID: ptrInt64(20),
	}, nil)

	uc := NewRefundUsecase(tx)
	_, err := uc.Process(context.Background(), 20, 5)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid transition", he.Message)
	refunds.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProcessRefund_WrongSellerIsNotFound(t *testing.T) {
	refunds, orders, _, tx := refundTestRepos()

	refunds.On("FindByID", mock.Anything, int64(5)).Return(model.Refund{
		ID: 5, OrderID: 1, Status: model.RefundStatusApproved,
	}, nil)
	orders.On("FindByID", mock.Anything, int64(1)).Return(model.Order{
		ID: 1, SellerID: ptrInt64(20),
	}, nil)

	uc := NewRefundUsecase(tx)
	_, err := uc.Process(context.Background(), 99, 5)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
