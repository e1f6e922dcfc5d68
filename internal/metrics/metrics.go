package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns a private prometheus registry so tests and embedded engines do not collide
// with the global one.
type Registry struct {
	reg          *prometheus.Registry
	Derivations  *prometheus.CounterVec
	Quotes       *prometheus.CounterVec
	GuardHits    *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
	CacheSize    prometheus.Gauge
	QuoteLatency prometheus.Histogram
	Requests     *prometheus.SummaryVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	derivations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "presentation",
		Name:      "derivations_total",
		Help:      "Product page derivations by result",
	}, []string{"result"}) // ok / missing_field / error
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "quotes_total",
		Help:      "Checkout quotes by payment method",
	}, []string{"payment_method"})
	guardHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "guard_hits_total",
		Help:      "Checkout guard violations by rule",
	}, []string{"rule_id"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "View model cache lookups",
	}, []string{"result"}) // hit / miss / error
	cacheSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Subsystem: "cache",
		Name:      "items_count",
		Help:      "View models held by the in-memory cache",
	})
	quoteLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "quote_duration_seconds",
		Help:      "Time to compute a quote including guards",
		Buckets:   prometheus.DefBuckets,
	})
	requests := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "storefront",
		Subsystem:  "http",
		Name:       "request",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"status"})

	r.MustRegister(derivations, quotes, guardHits, cacheLookups, cacheSize, quoteLatency, requests)
	return &Registry{
		reg:          r,
		Derivations:  derivations,
		Quotes:       quotes,
		GuardHits:    guardHits,
		CacheLookups: cacheLookups,
		CacheSize:    cacheSize,
		QuoteLatency: quoteLatency,
		Requests:     requests,
	}
}

func (r *Registry) ObserveRequest(t time.Duration, status int) {
	r.Requests.WithLabelValues(strconv.Itoa(status)).Observe(t.Seconds())
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
