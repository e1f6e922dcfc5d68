package engine

import (
	"context"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

type (
	Product               = domain.Product
	Category              = domain.Category
	Review                = domain.Review
	PresentationViewModel = domain.PresentationViewModel
	Badge                 = domain.Badge
	FeatureBlock          = domain.FeatureBlock
	Specifications        = domain.Specifications
	OrderLineItem         = domain.OrderLineItem
	ShippingOption        = domain.ShippingOption
	OrderTotals           = domain.OrderTotals
	OrderStatus           = domain.OrderStatus
	CheckoutRequest       = domain.CheckoutRequest
	CheckoutQuote         = domain.CheckoutQuote
	RulePack              = domain.RulePackDefinition
	RuleConfig            = domain.RuleConfig
	ExecutionStep         = domain.ExecutionStep
	GuardViolation        = domain.GuardViolation
	MissingFieldError     = domain.MissingFieldError
)

var (
	ErrMissingCoreField       = domain.ErrMissingCoreField
	ErrInvalidLineItem        = domain.ErrInvalidLineItem
	ErrInvalidRequest         = domain.ErrInvalidRequest
	ErrShippingOptionNotFound = domain.ErrShippingOptionNotFound
	ErrRuleExecutionFailed    = domain.ErrRuleExecutionFailed
)

// RulePackLoader loads checkout guard packs by version.
type RulePackLoader interface {
	Load(ctx context.Context, version string) (*RulePack, error)
}
