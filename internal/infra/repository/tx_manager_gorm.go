package repository

import (
	"context"

	repo "sellflow/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	shipping      repo.ShippingAddressRepository
	payments      repo.PaymentRepository
	refunds       repo.RefundRepository
	carts         repo.CartRepository
	cartItems     repo.CartItemRepository
	products      repo.ProductRepository
	inventory     repo.InventoryRepository
	notifications repo.NotificationRepository
	analytics     repo.AnalyticsRepository
	users         repo.UserRepository
	profiles      repo.ProfileRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                     { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository             { return r.orderItems }
func (r *txReposGorm) ShippingAddresses() repo.ShippingAddressRepository { return r.shipping }
func (r *txReposGorm) Payments() repo.PaymentRepository                 { return r.payments }
func (r *txReposGorm) Refunds() repo.RefundRepository                   { return r.refunds }
func (r *txReposGorm) Carts() repo.CartRepository                       { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository               { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository                 { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository              { return r.inventory }
func (r *txReposGorm) Notifications() repo.NotificationRepository       { return r.notifications }
func (r *txReposGorm) Analytics() repo.AnalyticsRepository              { return r.analytics }
func (r *txReposGorm) Users() repo.UserRepository                       { return r.users }
func (r *txReposGorm) Profiles() repo.ProfileRepository                 { return r.profiles }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			orderItems:    NewOrderItemGormRepository(tx),
			shipping:      NewShippingAddressGormRepository(tx),
			payments:      NewPaymentGormRepository(tx),
			refunds:       NewRefundGormRepository(tx),
			carts:         NewCartGormRepository(tx),
			cartItems:     NewCartItemGormRepository(tx),
			products:      NewProductGormRepository(tx),
			inventory:     NewInventoryGormRepository(tx),
			notifications: NewNotificationGormRepository(tx),
			analytics:     NewAnalyticsGormRepository(tx),
			users:         NewUserGormRepository(tx),
			profiles:      NewProfileGormRepository(tx),
		}
		return fn(r)
	})
}
