package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/api/middleware"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
)

func newSessions(t *testing.T) *auth.SessionManager {
	t.Helper()
	key, err := auth.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() returned unexpected error: %v", err)
	}
	m, err := auth.NewSessionManager(key, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager() returned unexpected error: %v", err)
	}
	return m
}

// TestRequireSession tests session extraction from header and cookie.
//
// WHY: Every finance endpoint is scoped to the user ID this middleware puts in
// the context. A request without a valid session must never reach a handler.
func TestRequireSession(t *testing.T) {
	sessions := newSessions(t)
	userID := uuid.New().String()
	token, err := sessions.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() returned unexpected error: %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = middleware.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	mw := middleware.RequireSession(sessions)(next)

	t.Run("accepts bearer token", func(t *testing.T) {
		gotUserID = ""
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		mw.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if gotUserID != userID {
			t.Errorf("user ID = %q, want %q", gotUserID, userID)
		}
	})

	t.Run("accepts session cookie", func(t *testing.T) {
		gotUserID = ""
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
		w := httptest.NewRecorder()

		mw.ServeHTTP(w, req)

		if w.Code != http.StatusOK || gotUserID != userID {
			t.Errorf("Expected 200 with user, got %d %q", w.Code, gotUserID)
		}
	})

	t.Run("rejects missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects token from another server", func(t *testing.T) {
		foreign, _ := newSessions(t).Issue(userID)
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		req.Header.Set("Authorization", "Bearer "+foreign)
		w := httptest.NewRecorder()

		mw.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := middleware.UserIDFromContext(req.Context()); ok {
		t.Error("Expected no user in empty context")
	}
}
