package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/filestore"
	"github.com/brianvoe/gofakeit/v6"
)

func main() {
	var (
		count  int
		seed   int64
		outDir string
	)
	flag.IntVar(&count, "count", 50, "number of products to generate")
	flag.Int64Var(&seed, "seed", 42, "random seed; the same seed yields the same catalogue")
	flag.StringVar(&outDir, "output", "data/db", "output directory")
	flag.Parse()

	products, reviews := generate(gofakeit.New(seed), catalog.MustDefault(), count, time.Now().UTC())
	if err := filestore.Write(outDir, products, reviews, shippingOptions()); err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	log.Printf("generated %d products and %d reviews to %s", len(products), len(reviews), outDir)
}

func generate(f *gofakeit.Faker, table *catalog.Table, count int, now time.Time) ([]domain.Product, []domain.Review) {
	rows := table.Definition().Categories
	products := make([]domain.Product, 0, count)
	var reviews []domain.Review

	for i := 0; i < count; i++ {
		row := rows[i%len(rows)]
		slug := row.Slugs[f.Number(0, len(row.Slugs)-1)]

		attrs := map[string]any{}
		for _, h := range row.Highlights {
			if f.Number(0, 9) < 8 {
				attrs[h.Key] = attributeValue(f, h.Key)
			}
		}
		if f.Bool() {
			attrs["vegan"] = f.Bool()
		}

		price := int64(f.Number(199, 250_000))
		p := domain.Product{
			ID:               fmt.Sprintf("prod-%04d", i+1),
			Title:            f.ProductName(),
			Description:      f.Paragraph(1, 3, 12, " "),
			ShortDescription: f.Sentence(8),
			Price:            &price,
			Stock:            f.Number(0, 200),
			TrackInventory:   f.Number(0, 9) < 7,
			Brand:            f.Company(),
			SKU:              "SKU-" + f.Numerify("######"),
			Color:            f.Color(),
			FreeShipping:     f.Bool(),
			Attributes:       attrs,
			Tags:             []string{f.Word(), f.Word()},
			Categories:       []domain.Category{{ID: fmt.Sprintf("cat-%d", i%len(rows)+1), Slug: slug, Name: titleCase(slug)}},
			UpdatedAt:        now.Add(-time.Duration(f.Number(0, 720)) * time.Hour),
		}
		if f.Bool() {
			compare := price + int64(f.Number(1, int(price/2)+1))
			p.CompareAtPrice = &compare
		}
		if f.Bool() {
			p.Warranty = fmt.Sprintf("%d Year Warranty", f.Number(1, 3))
		}
		if f.Bool() {
			p.ReturnPolicy = fmt.Sprintf("%d-Day Returns", f.RandomInt([]int{7, 14, 30}))
		}
		products = append(products, p)

		for j, n := 0, f.Number(0, 6); j < n; j++ {
			reviews = append(reviews, domain.Review{
				ID:        fmt.Sprintf("rev-%04d-%d", i+1, j+1),
				ProductID: p.ID,
				UserName:  f.Name(),
				UserEmail: f.Email(),
				Rating:    float64(f.Number(1, 5)),
				Comment:   f.Sentence(12),
				Verified:  f.Bool(),
				CreatedAt: f.DateRange(now.AddDate(-2, 0, 0), now),
			})
		}
	}
	return products, reviews
}

func attributeValue(f *gofakeit.Faker, key string) any {
	switch key {
	case "ram", "storage":
		return fmt.Sprintf("%dGB", f.RandomInt([]int{4, 8, 16, 32, 64, 128, 256, 512}))
	case "battery":
		return fmt.Sprintf("%d hours", f.Number(8, 40))
	case "pages":
		return f.Number(80, 900)
	case "author":
		return f.Name()
	case "publisher":
		return f.Company()
	case "language":
		return f.Language()
	case "display":
		return fmt.Sprintf("%.1f-inch", f.Float64Range(5, 17))
	}
	return titleCase(f.Word())
}

func titleCase(slug string) string {
	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func shippingOptions() []domain.ShippingOption {
	return []domain.ShippingOption{
		{ID: "standard", Name: "Standard Delivery", Price: 500, EstimatedDays: "3-5"},
		{ID: "express", Name: "Express Delivery", Price: 1500, EstimatedDays: "1-2"},
		{ID: "economy", Name: "Economy", Price: 0, EstimatedDays: "5-8"},
	}
}
