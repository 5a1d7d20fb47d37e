package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ecotracker/ecotracker-backend/internal/api/middleware"
	"github.com/ecotracker/ecotracker-backend/internal/metrics"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mw := middleware.Logger(zap.New(core))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tips", nil)
	req.URL.Path = "/api/tips\r\nforged"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("status field = %v", fields["status"])
	}
	if path, _ := fields["path"].(string); path != "/api/tipsforged" {
		t.Errorf("path field = %q, want CR/LF stripped", path)
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("level = %s, want warn for 4xx", entries[0].Level)
	}
}

// TestInstrument tests that requests are labelled by route pattern.
//
// WHY: Labelling by raw path would create one series per transaction ID.
func TestInstrument(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(middleware.Instrument(m))
	r.Get("/api/transactions/{uuid}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/transactions/"+id, nil))
	}

	got, err := testutil.GatherAndCount(m.Registry(), "ecotracker_http_requests_total")
	if err != nil {
		t.Fatalf("GatherAndCount() returned unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("series count = %d, want 1", got)
	}
}
