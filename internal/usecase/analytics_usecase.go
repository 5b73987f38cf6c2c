package usecase

import (
	"context"
	"net/http"
	"time"

	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/shopspring/decimal"
)

type AnalyticsUsecase struct {
	analyticsRepo repo.AnalyticsRepository
}

func NewAnalyticsUsecase(analyticsRepo repo.AnalyticsRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{analyticsRepo: analyticsRepo}
}

const defaultDashboardDays = 30

type DashboardOutput struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int64           `json:"total_orders"`
	TotalPageViews    int64           `json:"total_page_views"`
	TotalClicks       int64           `json:"total_clicks"`
	TotalConversions  int64           `json:"total_conversions"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`

	Daily []model.DailyAnalytics `json:"daily"`
}

// Dashboard は期間の日次集計とサマリを返す。daysは1〜365。
func (u *AnalyticsUsecase) Dashboard(ctx context.Context, userID int64, days int) (DashboardOutput, error) {
	if userID <= 0 {
		return DashboardOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if days <= 0 || days > 365 {
		days = defaultDashboardDays
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -(days - 1))

	daily, err := u.analyticsRepo.ListDaily(ctx, userID, from, to)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if daily == nil {
		daily = []model.DailyAnalytics{}
	}

	out := DashboardOutput{
		From:              from,
		To:                to,
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		Daily:             daily,
	}
	for _, d := range daily {
		out.TotalRevenue = out.TotalRevenue.Add(d.Revenue)
		out.TotalOrders += d.OrdersCount
		out.TotalPageViews += d.PageViews
		out.TotalClicks += d.Clicks
		out.TotalConversions += d.Conversions
	}
	if out.TotalOrders > 0 {
		out.AverageOrderValue = out.TotalRevenue.Div(decimal.NewFromInt(out.TotalOrders)).Round(2)
	}

	return out, nil
}

type ProductAnalyticsOutput struct {
	ProductID int64                    `json:"product_id"`
	From      time.Time                `json:"from"`
	To        time.Time                `json:"to"`
	Daily     []model.ProductAnalytics `json:"daily"`
}

func (u *AnalyticsUsecase) ProductStats(ctx context.Context, productID int64, days int) (ProductAnalyticsOutput, error) {
	if productID <= 0 {
		return ProductAnalyticsOutput{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}
	if days <= 0 || days > 365 {
		days = defaultDashboardDays
	}

	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -(days - 1))

	daily, err := u.analyticsRepo.ListProductDaily(ctx, productID, from, to)
	if err != nil {
		return ProductAnalyticsOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if daily == nil {
		daily = []model.ProductAnalytics{}
	}

	return ProductAnalyticsOutput{ProductID: productID, From: from, To: to, Daily: daily}, nil
}

type FunnelOutput struct {
	Date time.Time `json:"date"`

	Impressions  int64 `json:"impressions"`
	Visits       int64 `json:"visits"`
	ProductViews int64 `json:"product_views"`
	AddToCarts   int64 `json:"add_to_carts"`
	Checkouts    int64 `json:"checkouts"`
	Purchases    int64 `json:"purchases"`

	//分母ゼロは0%として返す
	VisitRate    float64 `json:"visit_rate"`
	ViewRate     float64 `json:"view_rate"`
	CartRate     float64 `json:"cart_rate"`
	CheckoutRate float64 `json:"checkout_rate"`
	PurchaseRate float64 `json:"purchase_rate"`
}

// Funnel は当日のファネルと段階間の転換率を返す。レコードが無ければ全部ゼロ。
func (u *AnalyticsUsecase) Funnel(ctx context.Context, userID int64, day time.Time) (FunnelOutput, error) {
	if userID <= 0 {
		return FunnelOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if day.IsZero() {
		day = time.Now()
	}
	day = day.UTC().Truncate(24 * time.Hour)

	f, err := u.analyticsRepo.FindFunnel(ctx, userID, day)
	if err == repo.ErrNotFound {
		return FunnelOutput{Date: day}, nil
	}
	if err != nil {
		return FunnelOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return FunnelOutput{
		Date:         day,
		Impressions:  f.Impressions,
		Visits:       f.Visits,
		ProductViews: f.ProductViews,
		AddToCarts:   f.AddToCarts,
		Checkouts:    f.Checkouts,
		Purchases:    f.Purchases,
		VisitRate:    rate(f.Visits, f.Impressions),
		ViewRate:     rate(f.ProductViews, f.Visits),
		CartRate:     rate(f.AddToCarts, f.ProductViews),
		CheckoutRate: rate(f.Checkouts, f.AddToCarts),
		PurchaseRate: rate(f.Purchases, f.Checkouts),
	}, nil
}

func rate(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
