package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecotracker/ecotracker-backend/internal/api/response"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/testutil"
)

func setupAuthHandler(t *testing.T) (*AuthHandler, *auth.SessionManager, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sessions := testutil.NewTestSessionManager(t)
	as := testutil.NewTestAuthService(t, db, sessions)
	return NewAuthHandler(as, sessions, false), sessions, db
}

// TestAuthHandler_Register tests POST /api/auth/register.
//
// WHY: Registration is the only way into the system. Duplicate accounts must be
// refused with a readable message rather than a constraint error.
func TestAuthHandler_Register(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		handler, _, db := setupAuthHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"secret123"}`)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.MessageResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.Message != "Registration successful" || resp.ID == "" {
			t.Errorf("Unexpected response: %+v", resp)
		}
		testutil.AssertRowCount(t, db, "users", 1)
	})

	t.Run("rejects a taken username", func(t *testing.T) {
		handler, _, db := setupAuthHandler(t)
		testutil.NewUser().WithUsername("alice").Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"other@example.com","password":"secret123"}`)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var resp response.ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.Error != "Username already exists" {
			t.Errorf("Expected 'Username already exists', got %q", resp.Error)
		}
	})

	t.Run("rejects a short password", func(t *testing.T) {
		handler, _, db := setupAuthHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/register",
			`{"username":"alice","email":"alice@example.com","password":"123"}`)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "users", 0)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		handler, _, _ := setupAuthHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/register", `not json`)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

// TestAuthHandler_Login tests POST /api/auth/login.
//
// WHY: The token handed out here is what every protected route verifies, so it
// must round-trip through the session manager and reach the browser as a cookie.
func TestAuthHandler_Login(t *testing.T) {
	t.Run("issues a session token and cookie", func(t *testing.T) {
		handler, sessions, db := setupAuthHandler(t)
		user := testutil.NewUser().WithUsername("alice").Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/login",
			`{"username":"alice","password":"`+testutil.DefaultPassword+`"}`)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp LoginResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		gotID, err := sessions.Verify(resp.Token)
		if err != nil {
			t.Fatalf("token did not verify: %v", err)
		}
		if gotID != user.ID {
			t.Errorf("token user = %s, want %s", gotID, user.ID)
		}

		cookies := w.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != auth.SessionCookie {
			t.Fatalf("Expected session cookie, got %v", cookies)
		}
		if !cookies[0].HttpOnly {
			t.Error("session cookie should be HttpOnly")
		}
		if cookies[0].Value != resp.Token {
			t.Error("cookie value should match the returned token")
		}
	})

	t.Run("returns 401 for a wrong password", func(t *testing.T) {
		handler, _, db := setupAuthHandler(t)
		testutil.NewUser().WithUsername("alice").Build(t, db)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong-pass"}`)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 401 for an unknown user", func(t *testing.T) {
		handler, _, _ := setupAuthHandler(t)

		req := testutil.NewJSONRequest(http.MethodPost, "/api/auth/login", `{"username":"ghost","password":"whatever"}`)
		w := httptest.NewRecorder()

		handler.Login(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	handler, _, _ := setupAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("Expected an expired session cookie, got %v", cookies)
	}
}
