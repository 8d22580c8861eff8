package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codr1/streetball/internal/ratelimit"
)

func TestRequestIDReachesHandlerAndResponse(t *testing.T) {
	var seen string
	handler := ChainMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIDFromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		}),
		WithLogging,
		WithRecovery,
		WithRequestID,
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected handler status, got %d", rec.Code)
	}
	if seen == "" {
		t.Fatalf("expected a request id in the context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("response header %q does not match context id %q", got, seen)
	}
}

func TestRequestIDKeepsCallerValue(t *testing.T) {
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc-123" {
		t.Fatalf("expected caller request id, got %q", seen)
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	handler := ChainMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
		WithRecovery,
		WithRequestID,
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestWriteLimitOnlyAppliesToWrites(t *testing.T) {
	limiter := ratelimit.New(&ratelimit.Config{MaxPerWindow: 1, Window: time.Minute})
	defer limiter.Close()

	handler := WithWriteLimit(limiter, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/v1/teams", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(http.MethodPost); rec.Code != http.StatusNoContent {
		t.Fatalf("first write should pass, got %d", rec.Code)
	}
	rec := send(http.MethodPut)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second write should be limited, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected a Retry-After header")
	}
	for i := 0; i < 3; i++ {
		if rec := send(http.MethodGet); rec.Code != http.StatusNoContent {
			t.Fatalf("reads should not be limited, got %d", rec.Code)
		}
	}
}
