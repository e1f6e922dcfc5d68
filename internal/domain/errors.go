package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRuleExecutionFailed    = fmt.Errorf("rule execution failed")
	ErrMissingCoreField       = errors.New("missing core product field")
	ErrInvalidLineItem        = errors.New("invalid order line item")
	ErrProductNotFound        = errors.New("product not found")
	ErrShippingOptionNotFound = errors.New("shipping option not found")
	ErrInvalidTransition      = errors.New("invalid order status transition")
	ErrInvalidRequest         = errors.New("invalid request")
)

// MissingFieldError reports a product that cannot be presented at all.
type MissingFieldError struct {
	ProductID string
	Field     string
}

func (e *MissingFieldError) Error() string {
	if e.ProductID == "" {
		return fmt.Sprintf("%v: %s", ErrMissingCoreField, e.Field)
	}
	return fmt.Sprintf("%v: %s (product %s)", ErrMissingCoreField, e.Field, e.ProductID)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingCoreField }
