package handlers

import (
	"errors"
	"net/http"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/api/response"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/service"
	"github.com/ecotracker/ecotracker-backend/internal/validation"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	authService   *service.AuthService
	sessions      *auth.SessionManager
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler. secureCookies marks the session
// cookie Secure and should be set whenever the API is served over TLS.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register handles POST requests to create an account.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (username, email, password)
// Response: 201 Created with {"message": "Registration successful", "id": ...}
// Error: 400 Bad Request if validation fails or the username or email is taken
// Error: 500 Internal Server Error if creation fails
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) || errors.Is(err, apperrors.ErrEmailTaken) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to register", err.Error())
		return
	}

	response.RespondMessage(w, http.StatusCreated, "Registration successful", user.ID)
}

// Login handles POST requests to start a session. The token is returned in the
// body for API clients and set as an HttpOnly cookie for browsers.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if the body is malformed
// Error: 401 Unauthorized if the credentials are wrong
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	_, token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	response.RespondJSON(w, http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
}

// Logout clears the session cookie.
//
// Endpoint: POST /api/auth/logout
// Response: 200 OK with {"message": "Logged out"}
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	response.RespondMessage(w, http.StatusOK, "Logged out", "")
}
