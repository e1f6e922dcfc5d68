// Package presentation derives the product-page view model from a raw product record, its
// categories and its reviews.
package presentation

import (
	"math"
	"strings"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/attributes"
	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/money"
)

const (
	DefaultLowStockThreshold = 10
	DefaultRating            = 4.3
)

var mrpMarkup = money.Rate("1.4")

type Engine struct {
	table             *catalog.Table
	now               func() time.Time
	lowStockThreshold int
}

type Option func(*Engine)

// WithClock sets the clock used for relative review dates.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLowStockThreshold sets the threshold used when a product does not carry its own.
func WithLowStockThreshold(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.lowStockThreshold = n
		}
	}
}

func NewEngine(table *catalog.Table, opts ...Option) *Engine {
	e := &Engine{
		table:             table,
		now:               time.Now,
		lowStockThreshold: DefaultLowStockThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now reports the clock relative review dates are computed against.
func (e *Engine) Now() time.Time { return e.now() }

// Derive builds the view model. categories overrides product.Categories when non-nil.
// Only a missing identifier or price is reported; any other malformed field degrades to
// its empty default.
func (e *Engine) Derive(product domain.Product, categories []domain.Category, reviews []domain.Review) (*domain.PresentationViewModel, error) {
	if strings.TrimSpace(product.ID) == "" {
		return nil, &domain.MissingFieldError{Field: "id"}
	}
	if product.Price == nil || *product.Price < 0 {
		return nil, &domain.MissingFieldError{ProductID: product.ID, Field: "price"}
	}
	if categories == nil {
		categories = product.Categories
	}

	src := attributeSource{
		attrs: attributes.Normalize(product.Attributes),
		specs: attributes.Normalize(product.Specifications),
	}
	rules := e.resolveRules(categories)
	summary := AggregateReviews(reviews, e.now())

	price := *product.Price
	mrp := computeMRP(price, product.CompareAtPrice)

	return &domain.PresentationViewModel{
		ProductID:        product.ID,
		Title:            product.Title,
		Description:      product.Description,
		ShortDescription: product.ShortDescription,
		Price:            price,
		MRP:              mrp,
		DiscountPercent:  discountPercent(price, mrp),
		Highlights:       deriveHighlights(product, rules, src),
		Specifications:   buildSpecifications(product, src),
		Badges:           deriveBadges(product, src),
		Features:         deriveFeatures(rules, src),
		Rating:           resolveRating(product.Rating, summary),
		ReviewCount:      resolveReviewCount(product.ReviewCount, len(reviews)),
		LowStock:         e.lowStock(product),
		Reviews:          summary.Reviews,
		Tags:             nonNil(attributes.StringList(product.Tags)),
	}, nil
}

func (e *Engine) resolveRules(categories []domain.Category) []catalog.CategoryRule {
	if e.table == nil {
		return nil
	}
	slugs := make([]string, 0, len(categories))
	for _, c := range categories {
		slugs = append(slugs, c.Slug)
	}
	return e.table.Resolve(slugs)
}

func (e *Engine) lowStock(p domain.Product) bool {
	if !p.TrackInventory {
		return false
	}
	threshold := e.lowStockThreshold
	if p.LowStockThreshold != nil {
		threshold = *p.LowStockThreshold
	}
	return p.Stock <= threshold
}

func computeMRP(price int64, compareAt *int64) int64 {
	if compareAt != nil && *compareAt > price {
		return *compareAt
	}
	return money.Apply(price, mrpMarkup)
}

func discountPercent(price, mrp int64) int {
	if mrp <= price {
		return 0
	}
	pct := money.PercentOf(mrp-price, mrp)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}

func resolveRating(stored *float64, summary ReviewSummary) float64 {
	if stored != nil && *stored != 0 && !math.IsNaN(*stored) && !math.IsInf(*stored, 0) {
		return clampRating(money.RoundTo(clampRating(*stored), 1))
	}
	if summary.Count > 0 {
		return summary.Average
	}
	return DefaultRating
}

func resolveReviewCount(stored *int, fetched int) int {
	if stored != nil && *stored >= 0 {
		return *stored
	}
	return fetched
}

func clampRating(r float64) float64 {
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 5:
		return 5
	}
	return r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// attributeSource looks a key up in the attributes bag first, then in the raw
// specifications bag.
type attributeSource struct {
	attrs attributes.Normalized
	specs attributes.Normalized
}

// text reads an attribute for highlight and feature templates. The specifications bag only
// feeds the specifications table.
func (s attributeSource) text(key string) (string, bool) {
	if v, ok := s.attrs.Lookup(key); ok {
		if t := v.Text(); t != "" {
			return t, true
		}
	}
	return "", false
}

func (s attributeSource) truthy(keys ...string) bool {
	for _, key := range keys {
		for _, n := range []attributes.Normalized{s.attrs, s.specs} {
			if v, ok := n.Lookup(key); ok && v.Truthy() {
				return true
			}
		}
	}
	return false
}
