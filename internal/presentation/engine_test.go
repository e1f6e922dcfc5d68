package presentation

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(catalog.MustDefault(), WithClock(func() time.Time { return fixedNow }))
}

func baseProduct() domain.Product {
	return domain.Product{
		ID:    "prod-1",
		Title: "Test Product",
		Price: ptr(int64(1000)),
	}
}

func TestDerive_PhoneHighlightsBeforeFallback(t *testing.T) {
	p := baseProduct()
	p.Attributes = map[string]any{"processor": "A17", "battery": "20h"}
	p.Categories = []domain.Category{{Slug: "phones"}}

	vm, err := newTestEngine(t).Derive(p, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"A17 Processor for Lightning-Fast Performance",
		"20h Battery Life",
		"Premium Quality Guaranteed",
		"Fast & Secure Delivery",
	}, vm.Highlights)

	require.Len(t, vm.Features, 2)
	assert.Equal(t, "High Performance", vm.Features[0].Title)
	assert.Contains(t, vm.Features[0].Description, "A17")
	assert.Equal(t, "Long Battery Life", vm.Features[1].Title)
}

func TestDerive_SpecificationsDoNotFeedHighlights(t *testing.T) {
	p := baseProduct()
	p.Specifications = map[string]any{"processor": "A17", "battery": "20h"}
	p.Categories = []domain.Category{{Slug: "phones"}}

	vm, err := newTestEngine(t).Derive(p, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Premium Quality Guaranteed", "Fast & Secure Delivery"}, vm.Highlights)
	assert.Empty(t, vm.Features)
	v, ok := vm.Specifications.Get("Processor")
	require.True(t, ok)
	assert.Equal(t, "A17", v)
}

func TestDerive_HighlightQuota(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("stops at five across categories", func(t *testing.T) {
		p := baseProduct()
		p.Brand = "Acme"
		p.Attributes = `{"processor":"M3","ram":"16GB","storage":"512GB","display":"14-inch","battery":"18 hours","graphics":"10-core","author":"Nobody"}`
		p.Categories = []domain.Category{{Slug: "laptops"}, {Slug: "books"}}

		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"M3 Processor",
			"16GB RAM",
			"512GB Storage",
			"14-inch Display",
			"Up to 18 hours Battery Life",
		}, vm.Highlights)
	})

	t.Run("three derived skip the fallback", func(t *testing.T) {
		p := baseProduct()
		p.Brand = "Acme"
		p.Attributes = map[string]any{"author": "Ada", "pages": 320, "publisher": "Lovelace Press"}
		p.Categories = []domain.Category{{Slug: "books"}}

		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Written by Ada", "320 Pages", "Published by Lovelace Press"}, vm.Highlights)
	})

	t.Run("categories argument overrides product categories", func(t *testing.T) {
		p := baseProduct()
		p.Attributes = map[string]any{"author": "Ada", "processor": "M3"}
		p.Categories = []domain.Category{{Slug: "laptops"}}

		vm, err := engine.Derive(p, []domain.Category{{Slug: "books"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Written by Ada", vm.Highlights[0])
	})
}

func TestDerive_GenericFallback(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("all conditions met", func(t *testing.T) {
		p := baseProduct()
		p.Brand = "Acme"
		p.Warranty = "1 Year Warranty"
		p.FreeShipping = true
		p.Categories = []domain.Category{{Slug: "garden-tools"}}

		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Authentic Acme Product",
			"1 Year Warranty",
			"Free Shipping Available",
			"Premium Quality Guaranteed",
			"Fast & Secure Delivery",
		}, vm.Highlights)
	})

	t.Run("nothing to go on", func(t *testing.T) {
		p := baseProduct()
		p.Attributes = "{{not json"

		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Premium Quality Guaranteed", "Fast & Secure Delivery"}, vm.Highlights)
		assert.Empty(t, vm.Features)
	})

	t.Run("one derived plus fallback is capped at five", func(t *testing.T) {
		p := baseProduct()
		p.Brand = "Acme"
		p.Warranty = "2 Years"
		p.FreeShipping = true
		p.Attributes = map[string]any{"movement": "Automatic"}
		p.Categories = []domain.Category{{Slug: "watches"}}

		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Automatic Movement",
			"Authentic Acme Product",
			"2 Years",
			"Free Shipping Available",
			"Premium Quality Guaranteed",
		}, vm.Highlights)
	})
}

func TestDerive_ExplicitHighlightsWin(t *testing.T) {
	p := baseProduct()
	p.Attributes = map[string]any{"processor": "A17"}
	p.Categories = []domain.Category{{Slug: "phones"}}
	p.Highlights = `["One","Two","Three","Four","Five","Six"]`

	vm, err := newTestEngine(t).Derive(p, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two", "Three", "Four", "Five"}, vm.Highlights)
}

func TestDerive_Pricing(t *testing.T) {
	cases := []struct {
		name      string
		price     int64
		compareAt *int64
		mrp       int64
		discount  int
	}{
		{"synthetic mrp", 1000, nil, 1400, 29},
		{"synthetic mrp rounds half up", 999, nil, 1399, 29},
		{"compare-at wins", 1000, ptr(int64(2000)), 2000, 50},
		{"compare-at below price ignored", 1000, ptr(int64(800)), 1400, 29},
		{"free product", 0, nil, 0, 0},
		{"free product with compare-at", 0, ptr(int64(500)), 500, 100},
	}
	engine := newTestEngine(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baseProduct()
			p.Price = ptr(tc.price)
			p.CompareAtPrice = tc.compareAt

			vm, err := engine.Derive(p, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.mrp, vm.MRP)
			assert.Equal(t, tc.discount, vm.DiscountPercent)
			assert.GreaterOrEqual(t, vm.DiscountPercent, 0)
			assert.LessOrEqual(t, vm.DiscountPercent, 100)
		})
	}
}

func TestDerive_SpecificationPrecedence(t *testing.T) {
	p := baseProduct()
	p.Attributes = map[string]any{"color": "red", "batteryLife": "20h", "nested": map[string]any{"x": 1}, "ports": []any{"USB-C"}}
	p.Specifications = `{"Color":"blue","Weight":"180g","Blank":""}`
	p.Color = "green"

	vm, err := newTestEngine(t).Derive(p, nil, nil)
	require.NoError(t, err)

	color, ok := vm.Specifications.Get("Color")
	require.True(t, ok)
	assert.Equal(t, "green", color)
	assert.Equal(t, []string{"Battery Life", "Color", "Weight"}, vm.Specifications.Keys())

	_, ok = vm.Specifications.Get("Blank")
	assert.False(t, ok)
}

func TestDerive_ProductFieldsInSpecifications(t *testing.T) {
	p := baseProduct()
	p.Brand = "Acme"
	p.SKU = "ACM-1"
	p.ReturnPolicy = "30-Day Returns"
	p.Attributes = map[string]any{"brand": "Generic"}

	vm, err := newTestEngine(t).Derive(p, nil, nil)
	require.NoError(t, err)

	brand, _ := vm.Specifications.Get("Brand")
	assert.Equal(t, "Acme", brand)
	sku, _ := vm.Specifications.Get("SKU")
	assert.Equal(t, "ACM-1", sku)
	rp, _ := vm.Specifications.Get("Return Policy")
	assert.Equal(t, "30-Day Returns", rp)
}

func TestDerive_Badges(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("all seven conditions yield the first four", func(t *testing.T) {
		p := baseProduct()
		p.FreeShipping = true
		p.ReturnPolicy = "30-Day Returns"
		p.Warranty = "1 Year Warranty"
		p.Attributes = map[string]any{"crueltyFree": true, "vegan": "yes", "natural": true}

		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err)
		require.Len(t, vm.Badges, 4)
		assert.Equal(t, []string{"Free Shipping", "30-Day Returns", "1 Year Warranty", "Secure Payment"}, badgeTexts(vm.Badges))
	})

	t.Run("flags fill the remaining slots", func(t *testing.T) {
		p := baseProduct()
		p.Attributes = map[string]any{"cruelty_free": "true", "vegan": true, "natural": true}

		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Secure Payment", "Cruelty Free", "Vegan", "100% Natural"}, badgeTexts(vm.Badges))
	})

	t.Run("secure payment is always present", func(t *testing.T) {
		vm, err := engine.Derive(baseProduct(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Secure Payment"}, badgeTexts(vm.Badges))
	})
}

func badgeTexts(badges []domain.Badge) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.Text)
	}
	return out
}

func TestDerive_Rating(t *testing.T) {
	engine := newTestEngine(t)
	reviews := func(ratings ...float64) []domain.Review {
		out := make([]domain.Review, 0, len(ratings))
		for i, r := range ratings {
			out = append(out, domain.Review{ID: string(rune('a' + i)), Rating: r, CreatedAt: fixedNow})
		}
		return out
	}

	cases := []struct {
		name    string
		stored  *float64
		reviews []domain.Review
		want    float64
	}{
		{"default without reviews", nil, nil, 4.3},
		{"stored zero falls through to default", ptr(0.0), nil, 4.3},
		{"mean of reviews", nil, reviews(5, 4), 4.5},
		{"mean rounded to one decimal", nil, reviews(5, 4, 4), 4.3},
		{"stored rating wins", ptr(4.76), reviews(1, 1), 4.8},
		{"stored zero uses reviews", ptr(0.0), reviews(3), 3},
		{"out of range ratings are clamped", nil, reviews(9), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baseProduct()
			p.Rating = tc.stored
			vm, err := engine.Derive(p, nil, tc.reviews)
			require.NoError(t, err)
			assert.Equal(t, tc.want, vm.Rating)
		})
	}
}

func TestDerive_ReviewCount(t *testing.T) {
	engine := newTestEngine(t)
	reviews := []domain.Review{{ID: "r1", Rating: 5}, {ID: "r2", Rating: 4}}

	p := baseProduct()
	vm, err := engine.Derive(p, nil, reviews)
	require.NoError(t, err)
	assert.Equal(t, 2, vm.ReviewCount)

	p.ReviewCount = ptr(42)
	vm, err = engine.Derive(p, nil, reviews)
	require.NoError(t, err)
	assert.Equal(t, 42, vm.ReviewCount)
}

func TestDerive_LowStock(t *testing.T) {
	cases := []struct {
		name      string
		track     bool
		stock     int
		threshold *int
		want      bool
	}{
		{"at default threshold", true, 10, nil, true},
		{"above default threshold", true, 11, nil, false},
		{"untracked", false, 1, nil, false},
		{"custom threshold", true, 5, ptr(3), false},
		{"custom threshold hit", true, 3, ptr(3), true},
	}
	engine := newTestEngine(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := baseProduct()
			p.TrackInventory = tc.track
			p.Stock = tc.stock
			p.LowStockThreshold = tc.threshold
			vm, err := engine.Derive(p, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, vm.LowStock)
		})
	}
}

func TestDerive_MissingCoreField(t *testing.T) {
	engine := newTestEngine(t)

	p := baseProduct()
	p.ID = " "
	_, err := engine.Derive(p, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingCoreField))
	var mfe *domain.MissingFieldError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, "id", mfe.Field)

	p = baseProduct()
	p.Price = nil
	_, err = engine.Derive(p, nil, nil)
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, "price", mfe.Field)
	assert.Equal(t, "prod-1", mfe.ProductID)
}

func TestDerive_Idempotent(t *testing.T) {
	p := baseProduct()
	p.Brand = "Acme"
	p.Attributes = `{"processor":"A17","battery":"20h","camera":"48MP","vegan":false,"ram":8}`
	p.Specifications = map[string]any{"Display": "6.1-inch", "Weight": "171g"}
	p.Tags = []any{"new", "5g"}
	p.Categories = []domain.Category{{Slug: "phones"}, {Slug: "laptops"}}
	reviews := []domain.Review{
		{ID: "r1", UserName: "Ana", Rating: 5, CreatedAt: fixedNow.Add(-48 * time.Hour)},
		{ID: "r2", UserEmail: "bo@example.com", Rating: 4, CreatedAt: fixedNow.Add(-2 * time.Hour)},
	}

	engine := newTestEngine(t)
	first, err := engine.Derive(p, nil, reviews)
	require.NoError(t, err)
	second, err := engine.Derive(p, nil, reviews)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, []string{"new", "5g"}, first.Tags)
}

func TestDerive_WithoutTable(t *testing.T) {
	p := baseProduct()
	p.Attributes = map[string]any{"processor": "A17"}
	p.Categories = []domain.Category{{Slug: "phones"}}

	vm, err := NewEngine(nil).Derive(p, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Premium Quality Guaranteed", "Fast & Secure Delivery"}, vm.Highlights)
}

func TestHumanizeKey(t *testing.T) {
	cases := map[string]string{
		"batteryLife":     "Battery Life",
		"battery_life":    "Battery Life",
		"USBPorts":        "USB Ports",
		"ram":             "Ram",
		"Color":           "Color",
		"waterResistance": "Water Resistance",
		"screen size":     "Screen Size",
	}
	for in, want := range cases {
		assert.Equal(t, want, humanizeKey(in), in)
	}
}
