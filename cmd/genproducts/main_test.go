package main

import (
	"testing"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/catalog"
	"github.com/Victor-armando18/storefront-engine/internal/presentation"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DeterministicAndDerivable(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	table := catalog.MustDefault()

	a, ra := generate(gofakeit.New(7), table, 20, now)
	b, rb := generate(gofakeit.New(7), table, 20, now)
	require.Len(t, a, 20)
	assert.Equal(t, a, b)
	assert.Equal(t, ra, rb)

	engine := presentation.NewEngine(table, presentation.WithClock(func() time.Time { return now }))
	for _, p := range a {
		vm, err := engine.Derive(p, nil, nil)
		require.NoError(t, err, p.ID)
		assert.LessOrEqual(t, len(vm.Highlights), 5)
		assert.GreaterOrEqual(t, vm.MRP, vm.Price)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Beauty Personal Care", titleCase("beauty-personal-care"))
	assert.Equal(t, "Books", titleCase("books"))
}
