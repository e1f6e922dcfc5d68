package presentation

import (
	"strings"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

const maxBadges = 4

var (
	badgeFreeShipping  = domain.Badge{Icon: "truck", Text: "Free Shipping", Color: "green"}
	badgeSecurePayment = domain.Badge{Icon: "lock", Text: "Secure Payment", Color: "purple"}
	badgeCrueltyFree   = domain.Badge{Icon: "heart", Text: "Cruelty Free", Color: "pink"}
	badgeVegan         = domain.Badge{Icon: "leaf", Text: "Vegan", Color: "green"}
	badgeNatural       = domain.Badge{Icon: "sprout", Text: "100% Natural", Color: "emerald"}
)

// deriveBadges walks the badge list in priority order and stops at four. Secure payment is
// unconditional, so the flag badges only appear when earlier slots are empty.
func deriveBadges(p domain.Product, src attributeSource) []domain.Badge {
	returnPolicy := strings.TrimSpace(p.ReturnPolicy)
	warranty := strings.TrimSpace(p.Warranty)

	candidates := []struct {
		ok    bool
		badge domain.Badge
	}{
		{p.FreeShipping, badgeFreeShipping},
		{returnPolicy != "", domain.Badge{Icon: "rotate-ccw", Text: returnPolicy, Color: "blue"}},
		{warranty != "", domain.Badge{Icon: "shield-check", Text: warranty, Color: "indigo"}},
		{true, badgeSecurePayment},
		{src.truthy("crueltyFree", "cruelty_free", "cruelty-free"), badgeCrueltyFree},
		{src.truthy("vegan"), badgeVegan},
		{src.truthy("natural"), badgeNatural},
	}

	out := make([]domain.Badge, 0, maxBadges)
	for _, c := range candidates {
		if len(out) == maxBadges {
			break
		}
		if c.ok {
			out = append(out, c.badge)
		}
	}
	return out
}
