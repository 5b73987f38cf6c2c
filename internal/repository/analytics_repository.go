package repository

import (
	"context"
	"time"

	"sellflow/internal/domain/model"

	"github.com/shopspring/decimal"
)

type AnalyticsRepository interface {
	//日次レコードに売上と注文数を加算（無ければ作成）
	RecordOrder(ctx context.Context, sellerID int64, day time.Time, revenue decimal.Decimal) error
	//商品×日の集計に加算
	RecordProductEvent(ctx context.Context, productID int64, day time.Time, event string, revenue decimal.Decimal) error
	//ファネルの段階を+1
	IncrementFunnelStage(ctx context.Context, userID int64, day time.Time, stage string) error

	ListDaily(ctx context.Context, userID int64, from time.Time, to time.Time) ([]model.DailyAnalytics, error)
	ListProductDaily(ctx context.Context, productID int64, from time.Time, to time.Time) ([]model.ProductAnalytics, error)
	FindFunnel(ctx context.Context, userID int64, day time.Time) (model.ConversionFunnel, error)
}
