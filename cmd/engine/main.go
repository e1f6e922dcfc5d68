package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/config"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/cache"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/filestore"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure/yaml"
	"github.com/Victor-armando18/storefront-engine/internal/interfaces"
	"github.com/Victor-armando18/storefront-engine/internal/logger/sl"
	"github.com/Victor-armando18/storefront-engine/internal/metrics"
	"github.com/Victor-armando18/storefront-engine/internal/presentation"
	"github.com/Victor-armando18/storefront-engine/internal/pricing"
	"github.com/Victor-armando18/storefront-engine/internal/usecase"
	"github.com/shopspring/decimal"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config", sl.Err(err))
		os.Exit(1)
	}
	log := sl.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("engine stopped", sl.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	reg := metrics.NewRegistry()

	table, err := yaml.LoadCategoryTable(cfg.Rules.CategoryTable)
	if err != nil {
		return err
	}
	taxRate, err := decimal.NewFromString(cfg.Engine.TaxRate)
	if err != nil {
		return err
	}
	store, err := filestore.Open(cfg.Data.Dir)
	if err != nil {
		return err
	}

	viewCache, closeCache, err := openCache(ctx, cfg.Cache, reg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	pages := usecase.NewStorefrontService(
		store, store, viewCache,
		presentation.NewEngine(table, presentation.WithLowStockThreshold(cfg.Engine.LowStockThreshold)),
		cfg.Cache.TTL, reg, log,
	)
	checkout := usecase.NewCheckoutService(
		store,
		infrastructure.NewFileRuleLoader(cfg.Rules.GuardsDir),
		infrastructure.NewGuardExecutor(),
		pricing.NewEngine(pricing.WithTaxRate(taxRate)),
		cfg.Rules.GuardsVersion,
		reg, log,
	)

	e := newServer(usecase.NewStorefront(pages, checkout), reg, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", cfg.HTTP.Addr), slog.String("category_rules", table.Version()))
		if err := e.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openCache returns nil for the "none" driver; the storefront service then derives every page.
func openCache(ctx context.Context, cfg config.CacheConfig, reg *metrics.Registry, log *slog.Logger) (interfaces.ViewModelCache, func(), error) {
	switch cfg.Driver {
	case "redis":
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		c := cache.NewRedisCache(client, cfg.RedisPrefix, cfg.TTL)
		return c, func() { _ = c.Close() }, nil
	case "memory":
		c := cache.NewMemoryCache(cfg.TTL, cfg.CleanupInterval, reg, log)
		go func() { _ = c.GC(ctx) }()
		return c, func() {}, nil
	}
	return nil, func() {}, nil
}
