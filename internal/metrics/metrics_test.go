package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_CountersAndHandler(t *testing.T) {
	r := NewRegistry()
	r.Quotes.WithLabelValues("bank_transfer").Inc()
	r.Quotes.WithLabelValues("bank_transfer").Inc()
	r.CacheLookups.WithLabelValues("hit").Inc()
	r.ObserveRequest(20*time.Millisecond, http.StatusOK)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Quotes.WithLabelValues("bank_transfer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.CacheLookups.WithLabelValues("hit")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_checkout_quotes_total{payment_method="bank_transfer"} 2`)
}

func TestRegistry_Independent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.GuardHits.WithLabelValues("x").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.GuardHits.WithLabelValues("x")))
}
