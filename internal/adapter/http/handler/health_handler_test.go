package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	ok := PingerFunc(func(context.Context) error { return nil })
	down := PingerFunc(func(context.Context) error { return errors.New("down") })

	tests := []struct {
		name     string
		postgres Pinger
		redis    Pinger
		status   int
	}{
		{name: "all up", postgres: ok, redis: ok, status: http.StatusOK},
		{name: "no redis configured", postgres: ok, redis: nil, status: http.StatusOK},
		{name: "postgres down", postgres: down, redis: ok, status: http.StatusServiceUnavailable},
		{name: "redis down", postgres: ok, redis: down, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.postgres, tt.redis).Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}

	rec := httptest.NewRecorder()
	NewHealthHandler(down, down).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness should not depend on backends, got %d", rec.Code)
	}
}
