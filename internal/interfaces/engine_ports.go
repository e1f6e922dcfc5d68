package interfaces

import (
	"context"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

var ErrRuleExecutionFailed = domain.ErrRuleExecutionFailed

//go:generate mockery --name=ProductRepository|ReviewRepository|ShippingOptionProvider|ViewModelCache|GuardRulePackLoader --output=../usecase/mocks --case=underscore

// ProductRepository returns domain.ErrProductNotFound for unknown IDs.
type ProductRepository interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ReviewRepository interface {
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
}

// ShippingOptionProvider returns domain.ErrShippingOptionNotFound for unknown IDs.
type ShippingOptionProvider interface {
	GetShippingOption(ctx context.Context, id string) (domain.ShippingOption, error)
	ListShippingOptions(ctx context.Context) ([]domain.ShippingOption, error)
}

// ViewModelCache stores derived product pages. A miss is (nil, false, nil).
type ViewModelCache interface {
	Get(ctx context.Context, key string) (*domain.PresentationViewModel, bool, error)
	Set(ctx context.Context, key string, vm *domain.PresentationViewModel, ttl time.Duration) error
}

// GuardRulePackLoader loads checkout guard packs (from disk, the binary, etc.).
type GuardRulePackLoader interface {
	Load(ctx context.Context, version string) (*domain.RulePackDefinition, error)
}

// GuardExecutor evaluates one JsonLogic rule with custom operators.
type GuardExecutor interface {
	Execute(ctx context.Context, ruleData map[string]interface{}, contextVars map[string]interface{}) (interface{}, error)
	RegisterCustomOperator(name string, logic func(args ...interface{}) interface{})
}

// StorefrontFacade is what the transport layer talks to.
type StorefrontFacade interface {
	ProductPage(ctx context.Context, productID string) (*domain.PresentationViewModel, error)
	DeriveProduct(ctx context.Context, product domain.Product, reviews []domain.Review) (*domain.PresentationViewModel, error)
	Quote(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutQuote, error)
	QuotePatched(ctx context.Context, req domain.CheckoutRequest, patch []byte) (*domain.CheckoutQuote, error)
	ShippingOptions(ctx context.Context) ([]domain.ShippingOption, error)
}
