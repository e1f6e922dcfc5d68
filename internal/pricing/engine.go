// Package pricing computes order totals in integer minor units.
package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/money"
	"github.com/shopspring/decimal"
)

type Engine struct {
	taxRate decimal.Decimal
	now     func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTaxRate overrides the flat tax placeholder.
func WithTaxRate(rate decimal.Decimal) Option {
	return func(e *Engine) {
		if !rate.IsNegative() {
			e.taxRate = rate
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{taxRate: DefaultTaxRate, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ComputeTotals prices the items. A nil shipping option means no shipping charge and the
// default delivery estimate. Unknown payment methods are charged no fee.
func (e *Engine) ComputeTotals(items []domain.OrderLineItem, shipping *domain.ShippingOption, paymentMethod string) (domain.OrderTotals, error) {
	totals, _, err := e.ComputeWithLog(items, shipping, paymentMethod)
	return totals, err
}

// ComputeWithLog is ComputeTotals plus one execution step per pricing phase.
func (e *Engine) ComputeWithLog(items []domain.OrderLineItem, shipping *domain.ShippingOption, paymentMethod string) (domain.OrderTotals, []domain.ExecutionStep, error) {
	var log []domain.ExecutionStep
	step := func(phase Phase, id, format string, args ...any) {
		log = append(log, domain.ExecutionStep{
			Phase:   string(phase),
			RuleID:  id,
			Action:  "compute",
			Message: fmt.Sprintf(format, args...),
		})
	}

	subtotal, err := Subtotal(items)
	if err != nil {
		return domain.OrderTotals{}, nil, err
	}
	step(PhaseBaseline, "subtotal", "subtotal of %d line(s) = %d", len(items), subtotal)

	var shippingPrice int64
	days := DefaultBusinessDays
	if shipping != nil {
		if shipping.Price < 0 {
			return domain.OrderTotals{}, nil, fmt.Errorf("shipping option %s has a negative price", shipping.ID)
		}
		shippingPrice = shipping.Price
		days = BusinessDays(shipping.EstimatedDays)
	}
	step(PhaseShipping, "shipping", "shipping = %d", shippingPrice)

	tax := money.Apply(subtotal, e.taxRate)
	step(PhaseTaxes, "flat_tax", "tax at %s = %d", e.taxRate.String(), tax)

	rate := FeeRate(paymentMethod)
	fee := money.Apply(subtotal, rate)
	step(PhaseFees, "payment_fee", "fee for %q at %s = %d", paymentMethod, rate.String(), fee)

	total, ok := sumMinor(subtotal, shippingPrice, tax, fee)
	if !ok {
		return domain.OrderTotals{}, nil, fmt.Errorf("%w: order total exceeds the representable amount", domain.ErrInvalidLineItem)
	}
	step(PhaseTotals, "total", "total = %d", total)

	delivery := AddBusinessDays(e.now(), days)
	step(PhaseDelivery, "delivery_estimate", "%d business day(s) -> %s", days, delivery.Format("2006-01-02"))

	return domain.OrderTotals{
		Subtotal:              subtotal,
		Shipping:              shippingPrice,
		Tax:                   tax,
		PaymentFee:            fee,
		Total:                 total,
		EstimatedDeliveryDate: delivery,
		PaymentStatus:         domain.StatusPending,
	}, log, nil
}

// Subtotal sums unit price times quantity.
func Subtotal(items []domain.OrderLineItem) (int64, error) {
	var subtotal int64
	for i, it := range items {
		if it.Quantity <= 0 {
			return 0, fmt.Errorf("%w: line %d (%s) has quantity %d", domain.ErrInvalidLineItem, i, it.ProductID, it.Quantity)
		}
		if it.UnitPrice < 0 {
			return 0, fmt.Errorf("%w: line %d (%s) has a negative unit price", domain.ErrInvalidLineItem, i, it.ProductID)
		}
		if it.UnitPrice > (math.MaxInt64-subtotal)/int64(it.Quantity) {
			return 0, fmt.Errorf("%w: line %d (%s) overflows the subtotal", domain.ErrInvalidLineItem, i, it.ProductID)
		}
		subtotal += it.UnitPrice * int64(it.Quantity)
	}
	return subtotal, nil
}

// sumMinor adds non-negative amounts, reporting false on int64 overflow.
func sumMinor(amounts ...int64) (int64, bool) {
	var sum int64
	for _, a := range amounts {
		if a < 0 || a > math.MaxInt64-sum {
			return 0, false
		}
		sum += a
	}
	return sum, true
}
