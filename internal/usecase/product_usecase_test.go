package usecase

import (
	"context"
	"net/http"
	"testing"

	"sellflow/internal/ai"
	"sellflow/internal/domain/model"
	repo "sellflow/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type categoryRepoMock struct{ mock.Mock }

func (m *categoryRepoMock) ListActive(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

func (m *categoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *categoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func productTestUsecase() (*productRepoMock, *profileRepoMock, *activityRepoMock, *analyticsRepoMock, *ProductUsecase) {
	products := new(productRepoMock)
	categories := new(categoryRepoMock)
	profiles := new(profileRepoMock)
	activity := new(activityRepoMock)
	analytics := new(analyticsRepoMock)
	uc := NewProductUsecase(products, categories, profiles, activity, analytics, ai.NewFallbackGenerator(), testLogger())
	return products, profiles, activity, analytics, uc
}

func TestGetPublic_CountsView(t *testing.T) {
	products, _, _, analytics, uc := productTestUsecase()

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, SellerID: 20, Status: model.ProductStatusActive, ViewCount: 4,
	}, nil)
	products.On("IncrementCounter", mock.Anything, int64(7), "view_count").Return(nil)
	analytics.On("RecordProductEvent", mock.Anything, int64(7), mock.Anything, "view", mock.Anything).Return(nil)
	analytics.On("IncrementFunnelStage", mock.Anything, int64(20), mock.Anything, "product_views").Return(nil)

	p, err := uc.GetPublic(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ViewCount)
}

// 非公開商品は公開側からは存在しない扱い
func TestGetPublic_DraftIsNotFound(t *testing.T) {
	products, _, _, _, uc := productTestUsecase()

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, Status: model.ProductStatusDraft,
	}, nil)

	_, err := uc.GetPublic(context.Background(), 7)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	products.AssertNotCalled(t, "IncrementCounter", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrack_UnknownEventRejected(t *testing.T) {
	products, _, _, _, uc := productTestUsecase()

	err := uc.Track(context.Background(), 7, "hover")

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// shareはカウンタのみでプロダクト分析には記録しない
func TestTrack_ShareSkipsAnalyticsEvent(t *testing.T) {
	products, _, _, analytics, uc := productTestUsecase()

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, SellerID: 20}, nil)
	products.On("IncrementCounter", mock.Anything, int64(7), "share_count").Return(nil)

	err := uc.Track(context.Background(), 7, "share")
	require.NoError(t, err)
	analytics.AssertNotCalled(t, "RecordProductEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProduct_DefaultsToDraft(t *testing.T) {
	products, profiles, activity, _, uc := productTestUsecase()

	var created model.Product
	products.On("Create", mock.Anything, mock.AnythingOfType("model.Product")).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.Product) }).
		Return(model.Product{ID: 7, SellerID: 20, Name: "Kente Scarf"}, nil)
	profiles.On("IncrementProducts", mock.Anything, int64(20)).Return(nil)
	activity.On("Create", mock.Anything, mock.MatchedBy(func(a model.UserActivity) bool {
		return a.ActivityType == model.ActivityProductCreated
	})).Return(nil)
	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, SellerID: 20}, nil)

	_, err := uc.CreateProduct(context.Background(), 20, ProductInput{
		Name:  "Kente Scarf",
		Price: decimal.RequireFromString("20.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.ProductStatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
	assert.True(t, created.TrackInventory)
	assert.Equal(t, "USD", created.Currency)
}

func TestCreateProduct_ActiveSetsPublishedAt(t *testing.T) {
	products, profiles, activity, _, uc := productTestUsecase()

	var created model.Product
	products.On("Create", mock.Anything, mock.AnythingOfType("model.Product")).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.Product) }).
		Return(model.Product{ID: 7, SellerID: 20}, nil)
	products.On("ReplaceImages", mock.Anything, int64(7), mock.MatchedBy(func(images []model.ProductImage) bool {
		return len(images) == 2 && images[0].Position == 0 && images[1].Position == 1
	})).Return(nil)
	profiles.On("IncrementProducts", mock.Anything, int64(20)).Return(nil)
	activity.On("Create", mock.Anything, mock.Anything).Return(nil)
	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, SellerID: 20}, nil)

	_, err := uc.CreateProduct(context.Background(), 20, ProductInput{
		Name:   "Kente Scarf",
		Price:  decimal.RequireFromString("20.00"),
		Status: "active",
		Images: []ProductImageInput{
			{URL: "https://cdn.example.com/a.jpg", IsMain: true},
			{URL: "https://cdn.example.com/b.jpg"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created.PublishedAt)
}

func TestUpdateProduct_OtherSellersProductIsNotFound(t *testing.T) {
	products, _, _, _, uc := productTestUsecase()

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, SellerID: 20,
	}, nil)

	_, err := uc.UpdateProduct(context.Background(), 99, 7, ProductInput{
		Name: "X", Price: decimal.RequireFromString("1.00"),
	})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGenerateContent_PersistsFallbackCopy(t *testing.T) {
	products, _, _, _, uc := productTestUsecase()

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{
		ID: 7, SellerID: 20, Name: "Kente Scarf",
	}, nil)

	var saved model.Product
	products.On("Update", mock.Anything, mock.AnythingOfType("model.Product")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(model.Product) }).
		Return(nil)

	_, err := uc.GenerateContent(context.Background(), 20, 7, GenerateContentInput{Platform: "instagram"})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.AIDescription)
	assert.NotEmpty(t, saved.AIHashtags)
	assert.True(t, saved.AIContentGenerated)
}

func TestDeleteProduct(t *testing.T) {
	products, _, _, _, uc := productTestUsecase()

	products.On("FindByID", mock.Anything, int64(7)).Return(model.Product{ID: 7, SellerID: 20}, nil)
	products.On("SoftDelete", mock.Anything, int64(7)).Return(nil)

	err := uc.DeleteProduct(context.Background(), 20, 7)
	require.NoError(t, err)
	products.AssertCalled(t, "SoftDelete", mock.Anything, int64(7))
}

func TestListPublic_ForcesActiveStatus(t *testing.T) {
	products, _, _, _, uc := productTestUsecase()

	products.On("ListPublic", mock.Anything, mock.MatchedBy(func(q repo.ProductListQuery) bool {
		return q.Status == "active" && q.Page == 1 && q.Limit == 20
	})).Return([]model.Product{}, int64(0), nil)

	out, err := uc.ListPublic(context.Background(), repo.ProductListQuery{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
}
