package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"sellflow/internal/ai"
	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	profileRepo   repo.ProfileRepository
	activityRepo  repo.ActivityRepository
	analyticsRepo repo.AnalyticsRepository
	generator     ai.ContentGenerator
	log           *slog.Logger
}

func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	profileRepo repo.ProfileRepository,
	activityRepo repo.ActivityRepository,
	analyticsRepo repo.AnalyticsRepository,
	generator ai.ContentGenerator,
	log *slog.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		profileRepo:   profileRepo,
		activityRepo:  activityRepo,
		analyticsRepo: analyticsRepo,
		generator:     generator,
		log:           log,
	}
}

type ProductListOutput struct {
	Products []model.Product `json:"products"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func normalizePage(q *repo.ProductListQuery) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
}

// 公開カタログ。activeのみ。
func (u *ProductUsecase) ListPublic(ctx context.Context, q repo.ProductListQuery) (ProductListOutput, error) {
	normalizePage(&q)
	q.Status = string(model.ProductStatusActive)

	products, total, err := u.productRepo.ListPublic(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if products == nil {
		products = []model.Product{}
	}
	return ProductListOutput{Products: products, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// 公開詳細。閲覧カウンタと分析は失敗しても応答は返す。
func (u *ProductUsecase) GetPublic(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if p.Status != model.ProductStatusActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}

	now := time.Now()
	if err := u.productRepo.IncrementCounter(ctx, p.ID, "view_count"); err != nil {
		u.log.Warn("increment view failed", "product_id", p.ID, "err", err)
	}
	if err := u.analyticsRepo.RecordProductEvent(ctx, p.ID, now, "view", decimal.Zero); err != nil {
		u.log.Warn("record product view failed", "product_id", p.ID, "err", err)
	}
	if err := u.analyticsRepo.IncrementFunnelStage(ctx, p.SellerID, now, "product_views"); err != nil {
		u.log.Warn("record funnel stage failed", "seller_id", p.SellerID, "err", err)
	}

	p.ViewCount++
	return p, nil
}

// Track はクリック・シェアの計測エンドポイント。認証不要。
func (u *ProductUsecase) Track(ctx context.Context, productID int64, event string) error {
	var counter, analyticsEvent string
	switch event {
	case "click":
		counter, analyticsEvent = "click_count", "click"
	case "share":
		counter, analyticsEvent = "share_count", ""
	default:
		return NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if err := u.productRepo.IncrementCounter(ctx, p.ID, counter); err != nil {
		return NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if analyticsEvent != "" {
		if err := u.analyticsRepo.RecordProductEvent(ctx, p.ID, time.Now(), analyticsEvent, decimal.Zero); err != nil {
			u.log.Warn("record product event failed", "product_id", p.ID, "err", err)
		}
	}
	return nil
}

type ProductImageInput struct {
	URL     string `json:"url" validate:"required,url,max=500"`
	AltText string `json:"alt_text" validate:"max=200"`
	IsMain  bool   `json:"is_main"`
}

type ProductInput struct {
	Name           string              `json:"name" validate:"required,max=200"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `json:"price"`
	SKU            string              `json:"sku" validate:"max=100"`
	StockQuantity  int64               `json:"stock_quantity" validate:"gte=0"`
	TrackInventory *bool               `json:"track_inventory"`
	CategoryID     *int64              `json:"category_id"`
	Tags           string              `json:"tags" validate:"max=500"`
	Status         string              `json:"status" validate:"omitempty,oneof=draft active inactive archived"`
	Images         []ProductImageInput `json:"images" validate:"dive"`
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, sellerID int64, in ProductInput) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	if strings.TrimSpace(in.Name) == "" || in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	status := model.ProductStatusDraft
	if in.Status != "" {
		status = model.ProductStatus(in.Status)
	}

	trackInventory := true
	if in.TrackInventory != nil {
		trackInventory = *in.TrackInventory
	}

	p := model.Product{
		SellerID:       sellerID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Price:          in.Price,
		Currency:       "USD",
		SKU:            in.SKU,
		StockQuantity:  in.StockQuantity,
		TrackInventory: trackInventory,
		CategoryID:     in.CategoryID,
		Tags:           in.Tags,
		Status:         status,
	}
	if status == model.ProductStatusActive {
		now := time.Now()
		p.PublishedAt = &now
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if len(in.Images) > 0 {
		if err := u.productRepo.ReplaceImages(ctx, created.ID, toProductImages(created.ID, in.Images)); err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
	}

	if err := u.profileRepo.IncrementProducts(ctx, sellerID); err != nil {
		u.log.Warn("increment product count failed", "seller_id", sellerID, "err", err)
	}
	if err := u.activityRepo.Create(ctx, model.UserActivity{
		UserID:       sellerID,
		ActivityType: model.ActivityProductCreated,
		Description:  "Created product " + created.Name,
	}); err != nil {
		u.log.Warn("record activity failed", "err", err)
	}

	return u.reload(ctx, created.ID)
}

func (u *ProductUsecase) ListMine(ctx context.Context, sellerID int64, q repo.ProductListQuery) (ProductListOutput, error) {
	if sellerID <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	normalizePage(&q)

	products, total, err := u.productRepo.ListBySeller(ctx, sellerID, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if products == nil {
		products = []model.Product{}
	}
	return ProductListOutput{Products: products, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *ProductUsecase) GetMine(ctx context.Context, sellerID int64, productID int64) (model.Product, error) {
	return u.findOwned(ctx, sellerID, productID)
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, sellerID int64, productID int64, in ProductInput) (model.Product, error) {
	p, err := u.findOwned(ctx, sellerID, productID)
	if err != nil {
		return model.Product{}, err
	}
	if strings.TrimSpace(in.Name) == "" || in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, msgValidation)
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.SKU = in.SKU
	p.StockQuantity = in.StockQuantity
	if in.TrackInventory != nil {
		p.TrackInventory = *in.TrackInventory
	}
	p.CategoryID = in.CategoryID
	p.Tags = in.Tags

	if in.Status != "" {
		next := model.ProductStatus(in.Status)
		if next == model.ProductStatusActive && p.PublishedAt == nil {
			now := time.Now()
			p.PublishedAt = &now
		}
		p.Status = next
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	if in.Images != nil {
		if err := u.productRepo.ReplaceImages(ctx, p.ID, toProductImages(p.ID, in.Images)); err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
		}
	}

	return u.reload(ctx, p.ID)
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, sellerID int64, productID int64) error {
	if _, err := u.findOwned(ctx, sellerID, productID); err != nil {
		return err
	}
	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.ListActive(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

type GenerateContentInput struct {
	Tone     string `json:"tone" validate:"max=50"`
	Platform string `json:"platform" validate:"omitempty,oneof=instagram facebook twitter whatsapp"`
}

// GenerateContent は説明文とハッシュタグをAIで生成して商品に保存する。
// 生成側はフォールバックを持つのでここでは失敗を致命扱いしない。
func (u *ProductUsecase) GenerateContent(ctx context.Context, sellerID int64, productID int64, in GenerateContentInput) (model.Product, error) {
	p, err := u.findOwned(ctx, sellerID, productID)
	if err != nil {
		return model.Product{}, err
	}

	info := ai.ProductInfo{
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Tags,
		Description: p.Description,
	}

	desc, err := u.generator.GenerateDescription(ctx, info, in.Tone)
	if err != nil {
		u.log.Warn("generate description failed", "product_id", p.ID, "err", err)
	}
	hashtags, err := u.generator.GenerateHashtags(ctx, info, in.Platform)
	if err != nil {
		u.log.Warn("generate hashtags failed", "product_id", p.ID, "err", err)
	}

	if desc != "" {
		p.AIDescription = desc
	}
	if hashtags != "" {
		p.AIHashtags = hashtags
	}
	p.AIContentGenerated = p.AIDescription != "" || p.AIHashtags != ""

	if err := u.productRepo.Update(ctx, p); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}

	return u.reload(ctx, p.ID)
}

func (u *ProductUsecase) findOwned(ctx context.Context, sellerID int64, productID int64) (model.Product, error) {
	if sellerID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, msgUnauthorized)
	}
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	if p.SellerID != sellerID {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgNotFound)
	}
	return p, nil
}

func (u *ProductUsecase) reload(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, msgDBError)
	}
	return p, nil
}

func toProductImages(productID int64, in []ProductImageInput) []model.ProductImage {
	images := make([]model.ProductImage, 0, len(in))
	for i, img := range in {
		images = append(images, model.ProductImage{
			ProductID: productID,
			URL:       img.URL,
			AltText:   img.AltText,
			Position:  i,
			IsMain:    img.IsMain,
		})
	}
	return images
}
