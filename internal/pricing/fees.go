package pricing

import (
	"strings"

	"github.com/Victor-armando18/storefront-engine/internal/money"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MobileMoney    PaymentMethod = "mobile_money"
	BankTransfer   PaymentMethod = "bank_transfer"
	CashOnDelivery PaymentMethod = "cash_on_delivery"
	Crypto         PaymentMethod = "crypto"
	Installments   PaymentMethod = "installments"
)

// DefaultTaxRate is a flat placeholder; there is no jurisdiction logic.
var DefaultTaxRate = money.Rate("0.05")

// FeeRates is the payment fee table. Methods not listed carry no fee.
var FeeRates = map[PaymentMethod]decimal.Decimal{
	MobileMoney:    money.Rate("0.02"),
	BankTransfer:   money.Rate("0.01"),
	CashOnDelivery: money.Rate("0.05"),
	Crypto:         money.Rate("0.005"),
	Installments:   money.Rate("0.03"),
}

// ParsePaymentMethod canonicalises an identifier: lower case, with '-' and spaces as '_'.
func ParsePaymentMethod(s string) PaymentMethod {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return PaymentMethod(s)
}

// Known reports whether the method has an entry in the fee table.
func (m PaymentMethod) Known() bool {
	_, ok := FeeRates[m]
	return ok
}

// FeeRate returns the method's rate, zero for unrecognised methods.
func FeeRate(method string) decimal.Decimal {
	if rate, ok := FeeRates[ParsePaymentMethod(method)]; ok {
		return rate
	}
	return decimal.Zero
}
