package presentation

import (
	"strings"
	"unicode"

	"github.com/Victor-armando18/storefront-engine/internal/attributes"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

// buildSpecifications layers attributes, then raw specifications, then the product's own
// fields. Later layers win by key.
func buildSpecifications(p domain.Product, src attributeSource) domain.Specifications {
	specs := domain.NewSpecifications()
	addScalars(&specs, src.attrs)
	addScalars(&specs, src.specs)

	for _, f := range []struct{ key, value string }{
		{"Brand", p.Brand},
		{"SKU", p.SKU},
		{"Weight", p.Weight},
		{"Color", p.Color},
		{"Size", p.Size},
		{"Material", p.Material},
		{"Manufacturer", p.Manufacturer},
		{"Warranty", p.Warranty},
		{"Return Policy", p.ReturnPolicy},
	} {
		specs.Set(f.key, strings.TrimSpace(f.value))
	}
	return specs
}

func addScalars(specs *domain.Specifications, n attributes.Normalized) {
	for _, k := range n.Keys() {
		v := n[k]
		if !v.IsScalar() {
			continue
		}
		specs.Set(humanizeKey(k), v.Text())
	}
}

// humanizeKey turns "batteryLife", "battery_life" or "USBPorts" into "Battery Life",
// "Battery Life" and "USB Ports".
func humanizeKey(key string) string {
	runes := []rune(strings.TrimSpace(key))
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
