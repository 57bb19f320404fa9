package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_KeepsCallerValue(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")

	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, req)

	if seen != "req-123" {
		t.Fatalf("expected request id req-123 in context, got %q", seen)
	}
	if got := rr.Header().Get(RequestIDHeader); got != "req-123" {
		t.Fatalf("expected response header req-123, got %q", got)
	}
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated uuid, got %q: %v", seen, err)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatal("expected response header to echo generated request id")
	}
}
