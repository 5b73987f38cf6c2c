package repository

import (
	"context"
	"errors"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"gorm.io/gorm"
)

type ShippingAddressGormRepository struct {
	db *gorm.DB
}

func NewShippingAddressGormRepository(db *gorm.DB) *ShippingAddressGormRepository {
	return &ShippingAddressGormRepository{db: db}
}

func (r *ShippingAddressGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.ShippingAddress, error) {
	var a model.ShippingAddress
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ShippingAddress{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ShippingAddress{}, err
	}
	return a, nil
}

func (r *ShippingAddressGormRepository) Create(ctx context.Context, addr model.ShippingAddress) (model.ShippingAddress, error) {
	if err := r.db.WithContext(ctx).Create(&addr).Error; err != nil {
		return model.ShippingAddress{}, err
	}
	return addr, nil
}

// deliver遷移のときだけ呼ばれる
func (r *ShippingAddressGormRepository) MarkDelivered(ctx context.Context, orderID int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.ShippingAddress{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"is_delivered": true,
			"delivered_at": at,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
