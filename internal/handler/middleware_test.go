package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/msomdec/blogging/internal/handler"
	"github.com/msomdec/blogging/internal/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.SecurityHeaders(okHandler()).ServeHTTP(w, req)

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if w.Header().Get(h) == "" {
			t.Fatalf("expected %s header to be set", h)
		}
	}
}

func TestRateLimit_RejectsWhenBucketEmpty(t *testing.T) {
	limiter := newTestLimiter(t, 0, 2)
	h := handler.RateLimit(limiter, okHandler())
	before := testutil.ToFloat64(metrics.RateLimitRejected)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	req.RemoteAddr = "10.0.0.1:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
	if got := testutil.ToFloat64(metrics.RateLimitRejected); got != before+1 {
		t.Fatalf("expected rejected counter to grow by 1, got %v -> %v", before, got)
	}

	// A different client has its own bucket.
	req = httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other client: expected 200, got %d", w.Code)
	}
}

func TestInstrument_RecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle("GET /things/{id}", okHandler())
	h := handler.Instrument(mux)

	counter := metrics.HTTPRequests.WithLabelValues("GET /things/{id}", "200")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/things/1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("expected counter to grow by 1, got %v -> %v", before, got)
	}
}
