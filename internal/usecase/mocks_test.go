package usecase

import (
	"context"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// txManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type txManagerMock struct {
	Repos repo.TxRepos
}

func (m *txManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

type txReposStub struct {
	orders            repo.OrderRepository
	orderItems        repo.OrderItemRepository
	shippingAddresses repo.ShippingAddressRepository
	payments          repo.PaymentRepository
	refunds           repo.RefundRepository
	carts             repo.CartRepository
	cartItems         repo.CartItemRepository
	products          repo.ProductRepository
	inventory         repo.InventoryRepository
	notifications     repo.NotificationRepository
	analytics         repo.AnalyticsRepository
	users             repo.UserRepository
	profiles          repo.ProfileRepository
}

func (r *txReposStub) Orders() repo.OrderRepository                       { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository               { return r.orderItems }
func (r *txReposStub) ShippingAddresses() repo.ShippingAddressRepository  { return r.shippingAddresses }
func (r *txReposStub) Payments() repo.PaymentRepository                   { return r.payments }
func (r *txReposStub) Refunds() repo.RefundRepository                     { return r.refunds }
func (r *txReposStub) Carts() repo.CartRepository                         { return r.carts }
func (r *txReposStub) CartItems() repo.CartItemRepository                 { return r.cartItems }
func (r *txReposStub) Products() repo.ProductRepository                   { return r.products }
func (r *txReposStub) Inventory() repo.InventoryRepository                { return r.inventory }
func (r *txReposStub) Notifications() repo.NotificationRepository         { return r.notifications }
func (r *txReposStub) Analytics() repo.AnalyticsRepository                { return r.analytics }
func (r *txReposStub) Users() repo.UserRepository                         { return r.users }
func (r *txReposStub) Profiles() repo.ProfileRepository                   { return r.profiles }

// =====================
// Repository mocks
// =====================

type orderRepoMock struct{ mock.Mock }

func (m *orderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) FindByPublicID(ctx context.Context, publicID string) (model.Order, error) {
	args := m.Called(ctx, publicID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *orderRepoMock) ListByBuyer(ctx context.Context, buyerID int64, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, buyerID, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) ListBySeller(ctx context.Context, sellerID int64, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, sellerID, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *orderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, stamps map[string]interface{}) error {
	args := m.Called(ctx, orderID, status, stamps)
	return args.Error(0)
}

type orderItemRepoMock struct{ mock.Mock }

func (m *orderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *orderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

type shippingAddressRepoMock struct{ mock.Mock }

func (m *shippingAddressRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(model.ShippingAddress)
	return a, args.Error(1)
}

func (m *shippingAddressRepoMock) Create(ctx context.Context, addr model.ShippingAddress) (model.ShippingAddress, error) {
	args := m.Called(ctx, addr)
	a, _ := args.Get(0).(model.ShippingAddress)
	return a, args.Error(1)
}

func (m *shippingAddressRepoMock) MarkDelivered(ctx context.Context, orderID int64, at time.Time) error {
	args := m.Called(ctx, orderID, at)
	return args.Error(0)
}

type paymentRepoMock struct{ mock.Mock }

func (m *paymentRepoMock) FindByID(ctx context.Context, paymentID int64) (model.Payment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *paymentRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error) {
	args := m.Called(ctx, orderID)
	payments, _ := args.Get(0).([]model.Payment)
	return payments, args.Error(1)
}

func (m *paymentRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	payments, _ := args.Get(0).([]model.Payment)
	return payments, args.Error(1)
}

func (m *paymentRepoMock) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Payment)
	return created, args.Error(1)
}

func (m *paymentRepoMock) Update(ctx context.Context, p model.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type refundRepoMock struct{ mock.Mock }

func (m *refundRepoMock) FindByID(ctx context.Context, refundID int64) (model.Refund, error) {
	args := m.Called(ctx, refundID)
	r, _ := args.Get(0).(model.Refund)
	return r, args.Error(1)
}

func (m *refundRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.Refund, error) {
	args := m.Called(ctx, orderID)
	refunds, _ := args.Get(0).([]model.Refund)
	return refunds, args.Error(1)
}

func (m *refundRepoMock) Create(ctx context.Context, r model.Refund) (model.Refund, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(model.Refund)
	return created, args.Error(1)
}

func (m *refundRepoMock) Update(ctx context.Context, r model.Refund) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type cartRepoMock struct{ mock.Mock }

func (m *cartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *cartRepoMock) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type cartItemRepoMock struct{ mock.Mock }

func (m *cartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *cartItemRepoMock) ListByIDs(ctx context.Context, cartID int64, ids []int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID, ids)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *cartItemRepoMock) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *cartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *cartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *cartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.CartItem)
	return created, args.Error(1)
}

func (m *cartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *cartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *cartItemRepoMock) DeleteByIDs(ctx context.Context, cartID int64, ids []int64) error {
	args := m.Called(ctx, cartID, ids)
	return args.Error(0)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *productRepoMock) ListBySeller(ctx context.Context, sellerID int64, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, sellerID, q)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *productRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *productRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *productRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *productRepoMock) IncrementCounter(ctx context.Context, id int64, counter string) error {
	args := m.Called(ctx, id, counter)
	return args.Error(0)
}

func (m *productRepoMock) ReplaceImages(ctx context.Context, productID int64, images []model.ProductImage) error {
	args := m.Called(ctx, productID, images)
	return args.Error(0)
}

type inventoryRepoMock struct{ mock.Mock }

func (m *inventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *inventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type notificationRepoMock struct{ mock.Mock }

func (m *notificationRepoMock) ListByUserID(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]model.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	notifications, _ := args.Get(0).([]model.Notification)
	return notifications, args.Error(1)
}

func (m *notificationRepoMock) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *notificationRepoMock) Create(ctx context.Context, n model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *notificationRepoMock) MarkRead(ctx context.Context, userID int64, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *notificationRepoMock) MarkAllRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type analyticsRepoMock struct{ mock.Mock }

func (m *analyticsRepoMock) RecordOrder(ctx context.Context, sellerID int64, day time.Time, revenue decimal.Decimal) error {
	args := m.Called(ctx, sellerID, day, revenue)
	return args.Error(0)
}

func (m *analyticsRepoMock) RecordProductEvent(ctx context.Context, productID int64, day time.Time, event string, revenue decimal.Decimal) error {
	args := m.Called(ctx, productID, day, event, revenue)
	return args.Error(0)
}

func (m *analyticsRepoMock) IncrementFunnelStage(ctx context.Context, userID int64, day time.Time, stage string) error {
	args := m.Called(ctx, userID, day, stage)
	return args.Error(0)
}

func (m *analyticsRepoMock) ListDaily(ctx context.Context, userID int64, from time.Time, to time.Time) ([]model.DailyAnalytics, error) {
	args := m.Called(ctx, userID, from, to)
	daily, _ := args.Get(0).([]model.DailyAnalytics)
	return daily, args.Error(1)
}

func (m *analyticsRepoMock) ListProductDaily(ctx context.Context, productID int64, from time.Time, to time.Time) ([]model.ProductAnalytics, error) {
	args := m.Called(ctx, productID, from, to)
	daily, _ := args.Get(0).([]model.ProductAnalytics)
	return daily, args.Error(1)
}

func (m *analyticsRepoMock) FindFunnel(ctx context.Context, userID int64, day time.Time) (model.ConversionFunnel, error) {
	args := m.Called(ctx, userID, day)
	f, _ := args.Get(0).(model.ConversionFunnel)
	return f, args.Error(1)
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *userRepoMock) UpdateLastLogin(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type profileRepoMock struct{ mock.Mock }

func (m *profileRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(model.Profile)
	return p, args.Error(1)
}

func (m *profileRepoMock) Create(ctx context.Context, p model.Profile) (model.Profile, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Profile)
	return created, args.Error(1)
}

func (m *profileRepoMock) Update(ctx context.Context, p model.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *profileRepoMock) IncrementOrders(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *profileRepoMock) IncrementProducts(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type activityRepoMock struct{ mock.Mock }

func (m *activityRepoMock) Create(ctx context.Context, a model.UserActivity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *activityRepoMock) ListRecent(ctx context.Context, userID int64, limit int) ([]model.UserActivity, error) {
	args := m.Called(ctx, userID, limit)
	activities, _ := args.Get(0).([]model.UserActivity)
	return activities, args.Error(1)
}
