package repository

import (
	"context"
	"errors"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

// 日付はUTCの0時に丸めてキーにする
func dayOf(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}

func (r *AnalyticsGormRepository) RecordOrder(ctx context.Context, sellerID int64, day time.Time, revenue decimal.Decimal) error {
	row := model.DailyAnalytics{
		UserID:      sellerID,
		Date:        dayOf(day),
		Revenue:     revenue,
		OrdersCount: 1,
		Conversions: 1,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"revenue":      gorm.Expr("daily_analytics.revenue + ?", revenue),
				"orders_count": gorm.Expr("daily_analytics.orders_count + 1"),
				"conversions":  gorm.Expr("daily_analytics.conversions + 1"),
			}),
		}).
		Create(&row).Error
}

func (r *AnalyticsGormRepository) RecordProductEvent(ctx context.Context, productID int64, day time.Time, event string, revenue decimal.Decimal) error {
	row := model.ProductAnalytics{
		ProductID: productID,
		Date:      dayOf(day),
		Revenue:   revenue,
	}

	var expr map[string]interface{}
	switch event {
	case "view":
		row.Views = 1
		expr = map[string]interface{}{"views": gorm.Expr("product_analytics.views + 1")}
	case "click":
		row.Clicks = 1
		expr = map[string]interface{}{"clicks": gorm.Expr("product_analytics.clicks + 1")}
	case "conversion":
		row.Conversions = 1
		expr = map[string]interface{}{
			"conversions": gorm.Expr("product_analytics.conversions + 1"),
			"revenue":     gorm.Expr("product_analytics.revenue + ?", revenue),
		}
	default:
		return errors.New("invalid event")
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(expr),
		}).
		Create(&row).Error
}

func (r *AnalyticsGormRepository) IncrementFunnelStage(ctx context.Context, userID int64, day time.Time, stage string) error {
	row := model.ConversionFunnel{
		UserID: userID,
		Date:   dayOf(day),
	}

	// 新規行は該当ステージを1で入れる
	switch stage {
	case "impressions":
		row.Impressions = 1
	case "visits":
		row.Visits = 1
	case "product_views":
		row.ProductViews = 1
	case "add_to_carts":
		row.AddToCarts = 1
	case "checkouts":
		row.Checkouts = 1
	case "purchases":
		row.Purchases = 1
	default:
		return errors.New("invalid stage")
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				stage: gorm.Expr("conversion_funnels." + stage + " + 1"),
			}),
		}).
		Create(&row).Error
}

func (r *AnalyticsGormRepository) ListDaily(ctx context.Context, userID int64, from time.Time, to time.Time) ([]model.DailyAnalytics, error) {
	var items []model.DailyAnalytics
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, dayOf(from), dayOf(to)).
		Order("date asc").
		Find(&items).Error
	if err != nil {
		return []model.DailyAnalytics{}, err
	}
	return items, nil
}

func (r *AnalyticsGormRepository) ListProductDaily(ctx context.Context, productID int64, from time.Time, to time.Time) ([]model.ProductAnalytics, error) {
	var items []model.ProductAnalytics
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND date >= ? AND date <= ?", productID, dayOf(from), dayOf(to)).
		Order("date asc").
		Find(&items).Error
	if err != nil {
		return []model.ProductAnalytics{}, err
	}
	return items, nil
}

func (r *AnalyticsGormRepository) FindFunnel(ctx context.Context, userID int64, day time.Time) (model.ConversionFunnel, error) {
	var f model.ConversionFunnel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, dayOf(day)).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ConversionFunnel{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ConversionFunnel{}, err
	}
	return f, nil
}
