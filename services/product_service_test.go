package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/models"
	"storefront/repositories/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newProductService(t *testing.T) (*ProductService, *mocks.MockProductStore, *mocks.MockReviewStore, *memoryCache) {
	ctrl := gomock.NewController(t)
	products := mocks.NewMockProductStore(ctrl)
	reviews := mocks.NewMockReviewStore(ctrl)
	cache := newMemoryCache()
	return NewProductService(products, reviews, cache, prefixResolver("https://cdn.test/")), products, reviews, cache
}

func TestListProductsPassesValidatedFilter(t *testing.T) {
	svc, products, _, _ := newProductService(t)

	products.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
			require.NotNil(t, f.PriceFrom)
			assert.Equal(t, "10", f.PriceFrom.String())
			assert.Nil(t, f.PriceTo)
			assert.Equal(t, models.SortRatingDesc, f.SortBy)
			return []models.Product{{ID: 1, Name: "Lamp", Price: decimal.NewFromInt(12), Images: []string{"lamp.jpg"}}}, nil
		})

	got, err := svc.ListProducts(context.Background(), models.ShopQuery{PriceFrom: "10", SortBy: "rating_desc"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"https://cdn.test/lamp.jpg"}, got[0].Images)
}

func TestListProductsRejectsInvertedRange(t *testing.T) {
	svc, _, _, _ := newProductService(t)

	_, err := svc.ListProducts(context.Background(), models.ShopQuery{PriceFrom: "50", PriceTo: "5"})

	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListProductsServesSecondCallFromCache(t *testing.T) {
	svc, products, _, _ := newProductService(t)
	products.EXPECT().List(gomock.Any(), gomock.Any()).
		Return([]models.Product{{ID: 2, Name: "Chair", Price: decimal.RequireFromString("49.90")}}, nil).
		Times(1)

	first, err := svc.ListProducts(context.Background(), models.ShopQuery{SortBy: "name-asc"})
	require.NoError(t, err)
	second, err := svc.ListProducts(context.Background(), models.ShopQuery{SortBy: "name_asc"})
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, second[0].Price.Equal(decimal.RequireFromString("49.90")))
}

func TestListProductsIgnoresCacheFailure(t *testing.T) {
	svc, products, _, cache := newProductService(t)
	cache.failReads = true
	products.EXPECT().List(gomock.Any(), gomock.Any()).Return([]models.Product{}, nil)

	got, err := svc.ListProducts(context.Background(), models.ShopQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListProductsWrapsStoreFailure(t *testing.T) {
	svc, products, _, _ := newProductService(t)
	products.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := svc.ListProducts(context.Background(), models.ShopQuery{})

	var serr *models.StorageError
	assert.ErrorAs(t, err, &serr)
}

func TestGetProductNotFound(t *testing.T) {
	svc, products, _, _ := newProductService(t)
	products.EXPECT().FindByID(gomock.Any(), 9).Return(nil, models.ErrNotFound)

	_, err := svc.GetProduct(context.Background(), 9)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetProductDetail(t *testing.T) {
	svc, products, reviews, _ := newProductService(t)
	avg := 4.5
	created := time.Date(2024, 5, 17, 22, 30, 0, 0, time.UTC)

	products.EXPECT().FindByID(gomock.Any(), 3).
		Return(&models.Product{ID: 3, Name: "Desk", AverageRating: &avg, ReviewCount: 2}, nil)
	reviews.EXPECT().ListByProduct(gomock.Any(), 3).
		Return([]models.Review{{ID: 1, ProductID: 3, Rating: 4, CreatedAt: created}, {ID: 2, ProductID: 3, Rating: 5, CreatedAt: created}}, nil)
	reviews.EXPECT().Summary(gomock.Any(), 3).
		Return(models.ReviewSummary{AverageRating: &avg, TotalCount: 2}, nil)

	detail, err := svc.GetProductDetail(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Desk", detail.Product.Name)
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, "2024-05-17", detail.Reviews[0].Date)
	assert.Equal(t, 2, detail.Summary.TotalCount)
}

func TestGetProductDetailUnknownProduct(t *testing.T) {
	svc, products, reviews, _ := newProductService(t)
	products.EXPECT().FindByID(gomock.Any(), 404).Return(nil, models.ErrNotFound)
	reviews.EXPECT().ListByProduct(gomock.Any(), 404).Return([]models.Review{}, nil).AnyTimes()
	reviews.EXPECT().Summary(gomock.Any(), 404).Return(models.ReviewSummary{}, nil).AnyTimes()

	_, err := svc.GetProductDetail(context.Background(), 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
