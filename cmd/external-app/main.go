package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Victor-armando18/storefront-engine/pkg/engine"
)

func main() {
	productPath := flag.String("product", "data/db/sample_product.json", "product JSON file")
	rulesDir := flag.String("rules", "", "guard rule pack directory (empty: embedded packs)")
	method := flag.String("payment", "mobile_money", "payment method for the sample quote")
	flag.Parse()

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("   STOREFRONT ENGINE CLI - DIAGNOSTIC TOOL")
	fmt.Println(strings.Repeat("=", 60))

	product, err := loadProduct(*productPath)
	if err != nil {
		fmt.Printf("\nERROR: %v\n", err)
		os.Exit(1)
	}

	service, err := engine.NewEngineService(engine.NewFileRuleLoader(*rulesDir), []engine.ShippingOption{
		{ID: "standard", Name: "Standard", Price: 500, EstimatedDays: "3-5"},
		{ID: "express", Name: "Express", Price: 1500, EstimatedDays: "1-2"},
	})
	if err != nil {
		fmt.Printf("\nERROR: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	vm, err := service.DeriveProduct(ctx, product, nil)
	if err != nil {
		fmt.Printf("\nERROR: product %s cannot be presented: %v\n", product.ID, err)
		os.Exit(1)
	}
	displayPage(vm)

	var price int64
	if product.Price != nil {
		price = *product.Price
	}
	quote, err := service.Quote(ctx, engine.CheckoutRequest{
		Items:            []engine.OrderLineItem{{ProductID: product.ID, Title: product.Title, UnitPrice: price, Quantity: 1}},
		ShippingOptionID: "standard",
		PaymentMethod:    *method,
	})
	if err != nil {
		fmt.Printf("\nERROR: quote failed: %v\n", err)
		os.Exit(1)
	}
	displayQuote(quote)
}

func loadProduct(path string) (engine.Product, error) {
	var p engine.Product
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("product file not found [%s]: %w", path, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse product JSON: %w", err)
	}
	return p, nil
}

func displayPage(vm *engine.PresentationViewModel) {
	fmt.Printf("\n[1. PRODUCT] %s\n", vm.Title)
	fmt.Printf("   Price: %s   MRP: %s   Discount: %d%%   Rating: %.1f (%d)\n",
		formatMoney(vm.Price), formatMoney(vm.MRP), vm.DiscountPercent, vm.Rating, vm.ReviewCount)
	if vm.LowStock {
		fmt.Println("   Low stock")
	}

	fmt.Println("\n[2. HIGHLIGHTS]")
	for _, h := range vm.Highlights {
		fmt.Printf("   - %s\n", h)
	}

	fmt.Println("\n[3. SPECIFICATIONS]")
	for _, s := range vm.Specifications.Entries() {
		fmt.Printf("   %-20s %s\n", s.Key, s.Value)
	}

	fmt.Println("\n[4. BADGES]")
	for _, b := range vm.Badges {
		fmt.Printf("   [%-12s] %s (%s)\n", b.Icon, b.Text, b.Color)
	}

	if len(vm.Features) > 0 {
		fmt.Println("\n[5. FEATURES]")
		for _, f := range vm.Features {
			fmt.Printf("   %s: %s\n", f.Title, f.Description)
		}
	}
}

func displayQuote(q *engine.CheckoutQuote) {
	fmt.Println("\n[6. SAMPLE QUOTE]")
	fmt.Printf("   Subtotal:    %s\n", formatMoney(q.Totals.Subtotal))
	fmt.Printf("   Shipping:    %s\n", formatMoney(q.Totals.Shipping))
	fmt.Printf("   Tax:         %s\n", formatMoney(q.Totals.Tax))
	fmt.Printf("   Payment fee: %s (%s)\n", formatMoney(q.Totals.PaymentFee), q.PaymentMethod)
	fmt.Printf("   Total:       %s\n", formatMoney(q.Totals.Total))
	fmt.Printf("   Delivery:    %s\n", q.Totals.EstimatedDeliveryDate.Format("Mon Jan 2, 2006"))

	fmt.Println("\n[7. GUARDS]")
	if len(q.GuardsHit) == 0 {
		fmt.Println("   No violations.")
	}
	for _, g := range q.GuardsHit {
		fmt.Printf("   WARNING [%s]: %s\n", g.RuleID, g.Context)
	}

	fmt.Println("\n[8. EXECUTION LOG]")
	for _, step := range q.ExecutionLog {
		fmt.Printf("   [%-8s] Rule: %-30s -> %s\n", strings.ToUpper(step.Phase), step.RuleID, step.Message)
	}
	fmt.Println(strings.Repeat("=", 60))
}

func formatMoney(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
