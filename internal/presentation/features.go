package presentation

import (
	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

func deriveFeatures(rules []catalog.CategoryRule, src attributeSource) []domain.FeatureBlock {
	out := []domain.FeatureBlock{}
	seen := make(map[string]bool)
	for _, rule := range rules {
		for _, fr := range rule.Features {
			v, ok := src.text(fr.Key)
			if !ok || seen[fr.Title] {
				continue
			}
			seen[fr.Title] = true
			out = append(out, domain.FeatureBlock{
				Title:       fr.Title,
				Description: catalog.Render(fr.Description, v),
			})
		}
	}
	return out
}
