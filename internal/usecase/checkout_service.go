package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Victor-armando18/storefront-engine/internal/domain"
	"github.com/Victor-armando18/storefront-engine/internal/infrastructure"
	"github.com/Victor-armando18/storefront-engine/internal/interfaces"
	"github.com/Victor-armando18/storefront-engine/internal/logger/sl"
	"github.com/Victor-armando18/storefront-engine/internal/metrics"
	"github.com/Victor-armando18/storefront-engine/internal/pricing"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const guardPhase = "guards"

// CheckoutService quotes orders: totals from the pricing engine, then the guard rule pack,
// then the delta against what the client displayed.
type CheckoutService struct {
	shipping     interfaces.ShippingOptionProvider
	loader       interfaces.GuardRulePackLoader
	executor     interfaces.GuardExecutor
	pricing      *pricing.Engine
	rulesVersion string
	validate     *validator.Validate
	metrics      *metrics.Registry
	log          *slog.Logger
	newID        func() string
}

func NewCheckoutService(
	shipping interfaces.ShippingOptionProvider,
	loader interfaces.GuardRulePackLoader,
	executor interfaces.GuardExecutor,
	engine *pricing.Engine,
	rulesVersion string,
	reg *metrics.Registry,
	log *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		shipping:     shipping,
		loader:       loader,
		executor:     executor,
		pricing:      engine,
		rulesVersion: infrastructure.NormalizeVersion(rulesVersion),
		validate:     validator.New(),
		metrics:      reg,
		log:          log,
		newID:        uuid.NewString,
	}
}

func (s *CheckoutService) Quote(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutQuote, error) {
	tr := otel.Tracer("checkoutService")
	ctx, span := tr.Start(ctx, "Quote")
	defer span.End()
	start := time.Now()

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	method := pricing.ParsePaymentMethod(req.PaymentMethod)
	span.SetAttributes(
		attribute.String("payment_method", string(method)),
		attribute.Int("line_count", len(req.Items)),
	)
	if !method.Known() {
		s.log.WarnContext(ctx, "unrecognized payment method, no fee applied",
			slog.String("payment_method", req.PaymentMethod), sl.Traced(ctx))
	}

	var option *domain.ShippingOption
	if req.ShippingOptionID != "" {
		opt, err := s.shipping.GetShippingOption(ctx, req.ShippingOptionID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		option = &opt
	}

	totals, log, err := s.pricing.ComputeWithLog(req.Items, option, string(method))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pricing failed")
		return nil, err
	}

	guardsHit, guardLog, err := s.runGuards(ctx, req, totals, method)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	log = append(log, guardLog...)

	delta, changed, err := infrastructure.TotalsDelta(req.ClaimedTotals, totals)
	if err != nil {
		return nil, err
	}

	quote := &domain.CheckoutQuote{
		QuoteID:        s.newID(),
		RulesVersion:   s.rulesVersion,
		Totals:         totals,
		ShippingOption: option,
		PaymentMethod:  string(method),
		GuardsHit:      guardsHit,
		ExecutionLog:   log,
		ServerDelta:    changed,
		Delta:          delta,
	}

	if s.metrics != nil {
		label := string(method)
		if !method.Known() {
			label = "other"
		}
		s.metrics.Quotes.WithLabelValues(label).Inc()
		s.metrics.QuoteLatency.Observe(time.Since(start).Seconds())
	}
	s.log.InfoContext(ctx, "quote computed",
		slog.String("quote_id", quote.QuoteID),
		slog.Int64("total", totals.Total),
		slog.Int("guards_hit", len(guardsHit)),
		slog.Bool("server_delta", changed),
		sl.Traced(ctx))
	return quote, nil
}

// QuotePatched applies an RFC 6902 patch to req and quotes the result.
func (s *CheckoutService) QuotePatched(ctx context.Context, req domain.CheckoutRequest, patch []byte) (*domain.CheckoutQuote, error) {
	updated, err := infrastructure.ApplyCheckoutPatch(req, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return s.Quote(ctx, updated)
}

func (s *CheckoutService) ShippingOptions(ctx context.Context) ([]domain.ShippingOption, error) {
	return s.shipping.ListShippingOptions(ctx)
}

// runGuards evaluates the guard pack. Guards never block a quote; a rule that fails to
// evaluate is logged and skipped.
func (s *CheckoutService) runGuards(ctx context.Context, req domain.CheckoutRequest, totals domain.OrderTotals, method pricing.PaymentMethod) ([]domain.GuardViolation, []domain.ExecutionStep, error) {
	guardsHit := []domain.GuardViolation{}
	if s.loader == nil || s.executor == nil {
		return guardsHit, nil, nil
	}

	rulePack, err := s.loader.Load(ctx, s.rulesVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("load guard rules %s: %w", s.rulesVersion, err)
	}

	units := 0
	for _, it := range req.Items {
		units += it.Quantity
	}
	data := map[string]interface{}{"order": map[string]interface{}{
		"subtotal":         totals.Subtotal,
		"shipping":         totals.Shipping,
		"tax":              totals.Tax,
		"paymentFee":       totals.PaymentFee,
		"total":            totals.Total,
		"totalItems":       units,
		"lineCount":        len(req.Items),
		"paymentMethod":    string(method),
		"shippingOptionId": req.ShippingOptionID,
	}}

	var steps []domain.ExecutionStep
	for _, rule := range getRules(rulePack.Rules, guardPhase) {
		out, err := s.executor.Execute(ctx, rule.Logic, data)
		if err != nil {
			s.log.WarnContext(ctx, "guard rule failed", slog.String("rule_id", rule.ID), sl.Err(err))
			steps = append(steps, domain.ExecutionStep{Phase: guardPhase, RuleID: rule.ID, Action: "error", Message: err.Error()})
			continue
		}
		hit, _ := out.(bool)
		steps = append(steps, domain.ExecutionStep{
			Phase:   guardPhase,
			RuleID:  rule.ID,
			Action:  "evaluate",
			Message: fmt.Sprintf("violation=%t", hit),
		})
		if !hit {
			continue
		}

		msg := rule.ErrorMessage
		if msg == "" {
			msg = "Guard condition met"
		}
		guardsHit = append(guardsHit, domain.GuardViolation{
			RuleID:  rule.ID,
			Reason:  "Violation Detected",
			Context: msg,
		})
		if s.metrics != nil {
			s.metrics.GuardHits.WithLabelValues(rule.ID).Inc()
		}
	}
	return guardsHit, steps, nil
}

// getRules keeps rules of the given phase; rules without a phase belong to every phase.
func getRules(rules []domain.RuleConfig, phase string) []domain.RuleConfig {
	var f []domain.RuleConfig
	for _, r := range rules {
		if r.Phase == phase || r.Phase == "" {
			f = append(f, r)
		}
	}
	return f
}
