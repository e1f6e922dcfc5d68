package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/cache"
	"github.com/Victor-armando18/storefront-engine/internal/logger/sl"
	"github.com/Victor-armando18/storefront-engine/internal/metrics"
	"github.com/Victor-armando18/storefront-engine/internal/presentation"
	"github.com/Victor-armando18/storefront-engine/internal/usecase/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pageNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func phone() domain.Product {
	price := int64(79900)
	return domain.Product{
		ID:         "phone-1",
		Title:      "Pixel",
		Price:      &price,
		Brand:      "Acme",
		Attributes: map[string]any{"processor": "Tensor G3", "camera": "50MP"},
		Categories: []domain.Category{{Slug: "phones"}},
		UpdatedAt:  pageNow.Add(-time.Hour),
	}
}

type storefrontMocks struct {
	products *mocks.ProductRepository
	reviews  *mocks.ReviewRepository
	cache    *mocks.ViewModelCache
}

func setupStorefront(t *testing.T) (storefrontMocks, *metrics.Registry, *StorefrontService) {
	m := storefrontMocks{
		products: mocks.NewProductRepository(t),
		reviews:  mocks.NewReviewRepository(t),
		cache:    mocks.NewViewModelCache(t),
	}
	reg := metrics.NewRegistry()
	engine := presentation.NewEngine(catalog.MustDefault(), presentation.WithClock(func() time.Time { return pageNow }))
	svc := NewStorefrontService(m.products, m.reviews, m.cache, engine, time.Hour, reg, sl.Discard())
	return m, reg, svc
}

func TestStorefrontService_ProductPage_MissThenStore(t *testing.T) {
	m, reg, svc := setupStorefront(t)
	product := phone()
	reviews := []domain.Review{{ID: "r1", ProductID: product.ID, Rating: 4, CreatedAt: pageNow}}
	key := cache.Key(product, product.Categories, reviews, pageNow)

	m.products.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
	m.reviews.On("ListReviews", mock.Anything, product.ID).Return(reviews, nil)
	m.cache.On("Get", mock.Anything, key).Return(nil, false, nil)
	m.cache.On("Set", mock.Anything, key, mock.AnythingOfType("*domain.PresentationViewModel"), time.Hour).Return(nil)

	vm, err := svc.ProductPage(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "phone-1", vm.ProductID)
	assert.Equal(t, "Tensor G3 Processor for Lightning-Fast Performance", vm.Highlights[0])
	assert.Equal(t, 1, vm.ReviewCount)
	assert.Equal(t, "Today", vm.Reviews[0].RelativeDate)

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.Derivations.WithLabelValues("ok")))
}

func TestStorefrontService_ProductPage_KeyFollowsCalendarDay(t *testing.T) {
	m := storefrontMocks{
		products: mocks.NewProductRepository(t),
		reviews:  mocks.NewReviewRepository(t),
		cache:    mocks.NewViewModelCache(t),
	}
	now := time.Date(2024, time.June, 15, 23, 59, 0, 0, time.UTC)
	engine := presentation.NewEngine(catalog.MustDefault(), presentation.WithClock(func() time.Time { return now }))
	svc := NewStorefrontService(m.products, m.reviews, m.cache, engine, time.Hour, nil, sl.Discard())

	product := phone()
	reviews := []domain.Review{{ID: "r1", ProductID: product.ID, Rating: 5, CreatedAt: now.Add(-time.Minute)}}
	today := cache.Key(product, product.Categories, reviews, now)
	tomorrow := cache.Key(product, product.Categories, reviews, now.Add(2*time.Minute))
	require.NotEqual(t, today, tomorrow)

	m.products.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
	m.reviews.On("ListReviews", mock.Anything, product.ID).Return(reviews, nil)
	m.cache.On("Get", mock.Anything, today).Return(nil, false, nil).Once()
	m.cache.On("Set", mock.Anything, today, mock.Anything, time.Hour).Return(nil).Once()
	m.cache.On("Get", mock.Anything, tomorrow).Return(nil, false, nil).Once()
	m.cache.On("Set", mock.Anything, tomorrow, mock.Anything, time.Hour).Return(nil).Once()

	vm, err := svc.ProductPage(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Today", vm.Reviews[0].RelativeDate)

	now = now.Add(2 * time.Minute)
	vm, err = svc.ProductPage(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yesterday", vm.Reviews[0].RelativeDate)
}

func TestStorefrontService_ProductPage_Hit(t *testing.T) {
	m, reg, svc := setupStorefront(t)
	product := phone()
	cached := &domain.PresentationViewModel{ProductID: product.ID, Title: "cached"}

	m.products.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
	m.reviews.On("ListReviews", mock.Anything, product.ID).Return([]domain.Review{}, nil)
	m.cache.On("Get", mock.Anything, mock.Anything).Return(cached, true, nil)

	vm, err := svc.ProductPage(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Same(t, cached, vm)
	m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CacheLookups.WithLabelValues("hit")))
}

func TestStorefrontService_ProductPage_CacheFailuresDegrade(t *testing.T) {
	m, reg, svc := setupStorefront(t)
	product := phone()

	m.products.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
	m.reviews.On("ListReviews", mock.Anything, product.ID).Return(nil, nil)
	m.cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, errors.New("redis down"))
	m.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	vm, err := svc.ProductPage(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, vm.ProductID)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CacheLookups.WithLabelValues("error")))
}

func TestStorefrontService_ProductPage_ReviewsUnavailable(t *testing.T) {
	m, _, svc := setupStorefront(t)
	product := phone()
	rating := 4.6
	product.Rating = &rating

	m.products.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
	m.reviews.On("ListReviews", mock.Anything, product.ID).Return(nil, errors.New("timeout"))

	vm, err := svc.ProductPage(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.6, vm.Rating)
	assert.Empty(t, vm.Reviews)
	m.cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStorefrontService_ProductPage_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		m, _, svc := setupStorefront(t)
		m.products.On("GetProduct", mock.Anything, "nope").Return(domain.Product{}, domain.ErrProductNotFound)

		_, err := svc.ProductPage(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		m.reviews.AssertNotCalled(t, "ListReviews", mock.Anything, mock.Anything)
	})

	t.Run("missing price", func(t *testing.T) {
		m, reg, svc := setupStorefront(t)
		product := phone()
		product.Price = nil

		m.products.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
		m.reviews.On("ListReviews", mock.Anything, product.ID).Return(nil, nil)
		m.cache.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil)

		_, err := svc.ProductPage(context.Background(), product.ID)
		require.ErrorIs(t, err, domain.ErrMissingCoreField)
		var mf *domain.MissingFieldError
		require.ErrorAs(t, err, &mf)
		assert.Equal(t, "price", mf.Field)
		assert.Equal(t, 1.0, testutil.ToFloat64(reg.Derivations.WithLabelValues("missing_field")))
		m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStorefrontService_NilCache(t *testing.T) {
	products := mocks.NewProductRepository(t)
	reviews := mocks.NewReviewRepository(t)
	engine := presentation.NewEngine(catalog.MustDefault())
	svc := NewStorefrontService(products, reviews, nil, engine, time.Hour, nil, sl.Discard())

	product := phone()
	products.On("GetProduct", mock.Anything, product.ID).Return(product, nil)
	reviews.On("ListReviews", mock.Anything, product.ID).Return(nil, nil)

	vm, err := svc.ProductPage(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, vm.ProductID)
}

func TestStorefrontService_DeriveProduct(t *testing.T) {
	_, _, svc := setupStorefront(t)

	vm, err := svc.DeriveProduct(context.Background(), phone(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4.3, vm.Rating)

	_, err = svc.DeriveProduct(context.Background(), domain.Product{}, nil)
	assert.ErrorIs(t, err, domain.ErrMissingCoreField)
}

func TestNewStorefront(t *testing.T) {
	_, _, pages := setupStorefront(t)
	_, _, checkout := setupCheckout(t)
	facade := NewStorefront(pages, checkout)

	vm, err := facade.DeriveProduct(context.Background(), phone(), nil)
	require.NoError(t, err)
	assert.Equal(t, "phone-1", vm.ProductID)
}
