package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/filestore"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/yaml"
	"github.com/Victor-armando18/storefront-engine/internal/presentation"
	"github.com/Victor-armando18/storefront-engine/internal/pricing"
	"github.com/Victor-armando18/storefront-engine/internal/usecase"
)

type (
	PresentationEngine = presentation.Engine
	PricingEngine      = pricing.Engine
	CategoryTable      = catalog.Table
)

// DefaultCategoryTable is the category rule table compiled into the module.
func DefaultCategoryTable() (*CategoryTable, error) { return catalog.Default() }

// LoadCategoryTable reads a YAML category table; an empty path returns the default.
func LoadCategoryTable(path string) (*CategoryTable, error) { return yaml.LoadCategoryTable(path) }

func NewPresentationEngine(table *CategoryTable, opts ...presentation.Option) *PresentationEngine {
	return presentation.NewEngine(table, opts...)
}

func NewPricingEngine(opts ...pricing.Option) *PricingEngine {
	return pricing.NewEngine(opts...)
}

// NewFileRuleLoader reads guard packs from dir, or the embedded packs when dir is empty.
func NewFileRuleLoader(dir string) RulePackLoader {
	return &infrastructure.FileRuleLoader{BaseDir: dir}
}

type Option func(*settings)

type settings struct {
	now          func() time.Time
	table        *CategoryTable
	rulesVersion string
	log          *slog.Logger
}

func WithClock(now func() time.Time) Option { return func(s *settings) { s.now = now } }

func WithCategoryTable(t *CategoryTable) Option { return func(s *settings) { s.table = t } }

func WithRulesVersion(v string) Option { return func(s *settings) { s.rulesVersion = v } }

func WithLogger(l *slog.Logger) Option { return func(s *settings) { s.log = l } }

// EngineService bundles both engines for applications that bring their own storage.
type EngineService struct {
	pages    *usecase.StorefrontService
	checkout *usecase.CheckoutService
}

func NewEngineService(loader RulePackLoader, shippingOptions []ShippingOption, opts ...Option) (*EngineService, error) {
	s := settings{now: time.Now, rulesVersion: "v1", log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}
	if s.table == nil {
		t, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		s.table = t
	}

	shipping := filestore.New(nil, nil, shippingOptions)
	return &EngineService{
		pages: usecase.NewStorefrontService(shipping, shipping, nil,
			presentation.NewEngine(s.table, presentation.WithClock(s.now)), 0, nil, s.log),
		checkout: usecase.NewCheckoutService(shipping, loader, infrastructure.NewGuardExecutor(),
			pricing.NewEngine(pricing.WithClock(s.now)), s.rulesVersion, nil, s.log),
	}, nil
}

func (e *EngineService) DeriveProduct(ctx context.Context, product Product, reviews []Review) (*PresentationViewModel, error) {
	return e.pages.DeriveProduct(ctx, product, reviews)
}

func (e *EngineService) Quote(ctx context.Context, req CheckoutRequest) (*CheckoutQuote, error) {
	return e.checkout.Quote(ctx, req)
}

func (e *EngineService) ShippingOptions(ctx context.Context) ([]ShippingOption, error) {
	return e.checkout.ShippingOptions(ctx)
}
