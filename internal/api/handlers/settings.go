package handlers

import (
	"errors"
	"net/http"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/api/response"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/service"
	"github.com/ecotracker/ecotracker-backend/internal/validation"
)

// SettingsHandler handles profile settings requests.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings returns the authenticated user's profile.
//
// Endpoint: GET /api/settings
// Response: 200 OK with UserSettings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to load settings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies a partial settings update. An out of range
// month_start_day is ignored rather than rejected.
//
// Endpoint: POST /api/settings
// Request Body: UpdateSettingsRequest (all fields optional)
// Response: 200 OK with {"message": "Settings updated"}
// Error: 400 Bad Request on validation failure, a taken username or email, or mismatched passwords
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateSettingsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateSettings(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	if _, err := h.settingsService.UpdateSettings(r.Context(), userID(r), req); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUsernameTaken),
			errors.Is(err, apperrors.ErrEmailTaken),
			errors.Is(err, apperrors.ErrPasswordMismatch):
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, apperrors.ErrUserNotFound):
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update settings", err.Error())
		}
		return
	}

	response.RespondMessage(w, http.StatusOK, "Settings updated", "")
}
