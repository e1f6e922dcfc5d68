package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/cache"
	"github.com/Victor-armando18/storefront-engine/internal/interfaces"
	"github.com/Victor-armando18/storefront-engine/internal/logger/sl"
	"github.com/Victor-armando18/storefront-engine/internal/metrics"
	"github.com/Victor-armando18/storefront-engine/internal/presentation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// StorefrontService serves product pages: repositories in, cached view models out.
type StorefrontService struct {
	products interfaces.ProductRepository
	reviews  interfaces.ReviewRepository
	cache    interfaces.ViewModelCache
	engine   *presentation.Engine
	cacheTTL time.Duration
	metrics  *metrics.Registry
	log      *slog.Logger
}

// NewStorefrontService accepts a nil cache; pages are then derived on every call.
func NewStorefrontService(
	products interfaces.ProductRepository,
	reviews interfaces.ReviewRepository,
	viewCache interfaces.ViewModelCache,
	engine *presentation.Engine,
	cacheTTL time.Duration,
	reg *metrics.Registry,
	log *slog.Logger,
) *StorefrontService {
	return &StorefrontService{
		products: products,
		reviews:  reviews,
		cache:    viewCache,
		engine:   engine,
		cacheTTL: cacheTTL,
		metrics:  reg,
		log:      log,
	}
}

func (s *StorefrontService) ProductPage(ctx context.Context, productID string) (*domain.PresentationViewModel, error) {
	tr := otel.Tracer("storefrontService")
	ctx, span := tr.Start(ctx, "ProductPage")
	defer span.End()
	span.SetAttributes(attribute.String("product_id", productID))

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	cacheable := s.cache != nil
	reviews, err := s.reviews.ListReviews(ctx, productID)
	if err != nil {
		// the page still renders, with the stored rating and no review list
		s.log.WarnContext(ctx, "reviews unavailable", slog.String("product_id", productID), sl.Err(err), sl.Traced(ctx))
		reviews = nil
		cacheable = false
	}

	key := cache.Key(product, product.Categories, reviews, s.engine.Now())
	if cacheable {
		vm, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.observeCache("error")
			s.log.WarnContext(ctx, "cache get failed", slog.String("key", key), sl.Err(err))
		case ok:
			s.observeCache("hit")
			return vm, nil
		default:
			s.observeCache("miss")
		}
	}

	vm, err := s.derive(ctx, product, reviews)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, vm, s.cacheTTL); err != nil {
			s.log.WarnContext(ctx, "cache set failed", slog.String("key", key), sl.Err(err))
		}
	}
	return vm, nil
}

// DeriveProduct derives a page for a product supplied by the caller, bypassing storage and cache.
func (s *StorefrontService) DeriveProduct(ctx context.Context, product domain.Product, reviews []domain.Review) (*domain.PresentationViewModel, error) {
	tr := otel.Tracer("storefrontService")
	ctx, span := tr.Start(ctx, "DeriveProduct")
	defer span.End()
	return s.derive(ctx, product, reviews)
}

func (s *StorefrontService) derive(ctx context.Context, product domain.Product, reviews []domain.Review) (*domain.PresentationViewModel, error) {
	vm, err := s.engine.Derive(product, nil, reviews)
	switch {
	case errors.Is(err, domain.ErrMissingCoreField):
		s.observeDerivation("missing_field")
		s.log.WarnContext(ctx, "product cannot be presented", slog.String("product_id", product.ID), sl.Err(err))
		return nil, err
	case err != nil:
		s.observeDerivation("error")
		return nil, err
	}
	s.observeDerivation("ok")
	return vm, nil
}

func (s *StorefrontService) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

func (s *StorefrontService) observeDerivation(result string) {
	if s.metrics != nil {
		s.metrics.Derivations.WithLabelValues(result).Inc()
	}
}
