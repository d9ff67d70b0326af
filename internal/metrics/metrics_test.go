package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPathPattern(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "/api/v1/products", expected: "/api/v1/products"},
		{path: "/api/v1/products/featured", expected: "/api/v1/products/featured"},
		{path: "/api/v1/products/6f1c1c9e-8a8e-4c55-9d0e-1b2f3c4d5e6f", expected: "/api/v1/products/{id}"},
		{path: "/admin/messages/6f1c1c9e-8a8e-4c55-9d0e-1b2f3c4d5e6f/read", expected: "/admin/messages/{id}/read"},
		{path: "/api/v1/products/not-an-id", expected: "/api/v1/products/not-an-id"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, PathPattern(tc.path), "path %s", tc.path)
	}
}

func TestMiddleware(t *testing.T) {
	// Arrange
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("418", http.MethodGet, "/api/v1/products/{id}"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/6f1c1c9e-8a8e-4c55-9d0e-1b2f3c4d5e6f", nil)
	rr := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusTeapot, rr.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("418", http.MethodGet, "/api/v1/products/{id}"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(cacheRequestsTotal.WithLabelValues("product", "hit"))
	misses := testutil.ToFloat64(cacheRequestsTotal.WithLabelValues("product", "miss"))

	CacheHit("product")
	CacheMiss("product")
	CacheMiss("product")

	assert.Equal(t, hits+1, testutil.ToFloat64(cacheRequestsTotal.WithLabelValues("product", "hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(cacheRequestsTotal.WithLabelValues("product", "miss")))
}

func TestMessageReceived(t *testing.T) {
	before := testutil.ToFloat64(inboxMessagesTotal.WithLabelValues("estimate"))

	MessageReceived("estimate")

	assert.Equal(t, before+1, testutil.ToFloat64(inboxMessagesTotal.WithLabelValues("estimate")))
}
