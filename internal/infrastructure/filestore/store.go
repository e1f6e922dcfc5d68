// Package filestore serves products, reviews and shipping options from JSON files, the way
// the demo binaries keep their data under data/db.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
)

const (
	ProductsFile        = "products.json"
	ReviewsFile         = "reviews.json"
	ShippingOptionsFile = "shipping_options.json"
)

type Store struct {
	mu        sync.RWMutex
	products  map[string]domain.Product
	order     []string
	reviews   map[string][]domain.Review
	shipping  []domain.ShippingOption
	shippingI map[string]int
}

// Open loads every file in dir. A missing file is an empty collection.
func Open(dir string) (*Store, error) {
	var (
		products []domain.Product
		reviews  []domain.Review
		options  []domain.ShippingOption
	)
	if err := readJSON(filepath.Join(dir, ProductsFile), &products); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ReviewsFile), &reviews); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, ShippingOptionsFile), &options); err != nil {
		return nil, err
	}
	return New(products, reviews, options), nil
}

func New(products []domain.Product, reviews []domain.Review, options []domain.ShippingOption) *Store {
	s := &Store{
		products:  make(map[string]domain.Product, len(products)),
		reviews:   make(map[string][]domain.Review),
		shippingI: make(map[string]int, len(options)),
	}
	for _, p := range products {
		if _, dup := s.products[p.ID]; !dup {
			s.order = append(s.order, p.ID)
		}
		s.products[p.ID] = p
	}
	for _, r := range reviews {
		s.reviews[r.ProductID] = append(s.reviews[r.ProductID], r)
	}
	for _, o := range options {
		if i, dup := s.shippingI[o.ID]; dup {
			s.shipping[i] = o
			continue
		}
		s.shippingI[o.ID] = len(s.shipping)
		s.shipping = append(s.shipping, o)
	}
	return s
}

func (s *Store) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out, nil
}

// PutProduct inserts or replaces a product.
func (s *Store) PutProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.products[p.ID] = p
}

func (s *Store) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.reviews[productID]
	out := make([]domain.Review, len(src))
	copy(out, src)
	return out, nil
}

func (s *Store) AddReview(r domain.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[r.ProductID] = append(s.reviews[r.ProductID], r)
}

func (s *Store) GetShippingOption(ctx context.Context, id string) (domain.ShippingOption, error) {
	if err := ctx.Err(); err != nil {
		return domain.ShippingOption{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.shippingI[id]
	if !ok {
		return domain.ShippingOption{}, fmt.Errorf("%w: %s", domain.ErrShippingOptionNotFound, id)
	}
	return s.shipping[i], nil
}

// ListShippingOptions returns the options cheapest first.
func (s *Store) ListShippingOptions(ctx context.Context) ([]domain.ShippingOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]domain.ShippingOption, len(s.shipping))
	copy(out, s.shipping)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out, nil
}

// Write replaces the data files in dir. Nil collections are written as empty arrays.
func Write(dir string, products []domain.Product, reviews []domain.Review, options []domain.ShippingOption) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	if options == nil {
		options = []domain.ShippingOption{}
	}
	files := map[string]any{
		ProductsFile:        products,
		ReviewsFile:         reviews,
		ShippingOptionsFile: options,
	}
	for name, v := range files {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}
