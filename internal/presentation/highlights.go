package presentation

import (
	"fmt"
	"strings"

	"github.com/Victor-armando18/storefront-engine/internal/attributes"
	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

const (
	maxHighlights = 5
	// Below this many category-derived highlights the generic fallback is appended.
	minDerivedHighlights = 3
)

var genericHighlights = []string{
	"Premium Quality Guaranteed",
	"Fast & Secure Delivery",
}

func deriveHighlights(p domain.Product, rules []catalog.CategoryRule, src attributeSource) []string {
	if explicit := attributes.StringList(p.Highlights); len(explicit) > 0 {
		if len(explicit) > maxHighlights {
			explicit = explicit[:maxHighlights]
		}
		return explicit
	}

	out := make([]string, 0, maxHighlights)
	seen := make(map[string]bool)
	add := func(h string) {
		key := strings.ToLower(h)
		if h == "" || seen[key] || len(out) >= maxHighlights {
			return
		}
		seen[key] = true
		out = append(out, h)
	}

collect:
	for _, rule := range rules {
		for _, hr := range rule.Highlights {
			if len(out) >= maxHighlights {
				break collect
			}
			if v, ok := src.text(hr.Key); ok {
				add(catalog.Render(hr.Template, v))
			}
		}
	}

	if len(out) < minDerivedHighlights {
		for _, h := range fallbackHighlights(p) {
			add(h)
		}
	}
	return out
}

func fallbackHighlights(p domain.Product) []string {
	var out []string
	if brand := strings.TrimSpace(p.Brand); brand != "" {
		out = append(out, fmt.Sprintf("Authentic %s Product", brand))
	}
	if w := strings.TrimSpace(p.Warranty); w != "" {
		out = append(out, w)
	}
	if p.FreeShipping {
		out = append(out, "Free Shipping Available")
	}
	return append(out, genericHighlights...)
}
