package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/interfaces"
	"github.com/Victor-armando18/storefront-engine/internal/logger/sl"
	"github.com/Victor-armando18/storefront-engine/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type DeriveRequest struct {
	Product domain.Product  `json:"product"`
	Reviews []domain.Review `json:"reviews"`
}

type PatchRequest struct {
	Request domain.CheckoutRequest `json:"request"`
	Patch   json.RawMessage        `json:"patch"`
}

func newServer(svc interfaces.StorefrontFacade, reg *metrics.Registry, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodPost, http.MethodPatch, http.MethodOptions, http.MethodGet},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(observe(reg))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(reg.Handler()))
	e.GET("/products/:id/page", handleProductPage(svc, log))
	e.POST("/products/derive", handleDerive(svc, log))
	e.POST("/checkout/quote", handleQuote(svc, log))
	e.PATCH("/checkout/quote", handlePatch(svc, log))
	e.GET("/shipping-options", handleShippingOptions(svc, log))
	return e
}

func observe(reg *metrics.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
			reg.ObserveRequest(time.Since(start), status)
			return err
		}
	}
}

func handleProductPage(svc interfaces.StorefrontFacade, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		vm, err := svc.ProductPage(c.Request().Context(), c.Param("id"))
		if err != nil {
			return writeError(c, log, err)
		}
		return c.JSON(http.StatusOK, vm)
	}
}

func handleDerive(svc interfaces.StorefrontFacade, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req DeriveRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		vm, err := svc.DeriveProduct(c.Request().Context(), req.Product, req.Reviews)
		if err != nil {
			return writeError(c, log, err)
		}
		return c.JSON(http.StatusOK, vm)
	}
}

func handleQuote(svc interfaces.StorefrontFacade, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.CheckoutRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		quote, err := svc.Quote(c.Request().Context(), req)
		if err != nil {
			return writeError(c, log, err)
		}
		return c.JSON(http.StatusOK, quote)
	}
}

func handlePatch(svc interfaces.StorefrontFacade, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid patch request"})
		}
		var req PatchRequest
		if err := json.Unmarshal(body, &req); err != nil || len(req.Patch) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid patch request"})
		}
		quote, err := svc.QuotePatched(c.Request().Context(), req.Request, req.Patch)
		if err != nil {
			return writeError(c, log, err)
		}
		return c.JSON(http.StatusOK, quote)
	}
}

func handleShippingOptions(svc interfaces.StorefrontFacade, log *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		opts, err := svc.ShippingOptions(c.Request().Context())
		if err != nil {
			return writeError(c, log, err)
		}
		return c.JSON(http.StatusOK, opts)
	}
}

func writeError(c echo.Context, log *slog.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.ErrorContext(c.Request().Context(), "request failed",
			slog.String("path", c.Path()), sl.Err(err), sl.Traced(c.Request().Context()))
	}
	body := map[string]interface{}{"error": err.Error()}
	var mf *domain.MissingFieldError
	if errors.As(err, &mf) {
		body["field"] = mf.Field
	}
	return c.JSON(status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrShippingOptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMissingCoreField), errors.Is(err, domain.ErrInvalidLineItem):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
