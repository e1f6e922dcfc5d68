package usecase

import "github.com/Victor-armando18/storefront-engine/internal/interfaces"

// Storefront joins the page and checkout services behind one facade.
type Storefront struct {
	*StorefrontService
	*CheckoutService
}

func NewStorefront(pages *StorefrontService, checkout *CheckoutService) interfaces.StorefrontFacade {
	return &Storefront{StorefrontService: pages, CheckoutService: checkout}
}
