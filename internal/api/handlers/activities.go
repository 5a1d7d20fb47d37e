package handlers

import (
	"errors"
	"net/http"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/api/response"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/service"
	"github.com/ecotracker/ecotracker-backend/internal/validation"
)

// ActivityHandler handles carbon activity requests.
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// ActivityLoggedResponse is returned after logging an activity.
type ActivityLoggedResponse struct {
	Message        string   `json:"message"`
	ID             string   `json:"id"`
	CarbonEmission float64  `json:"carbon_emission"`
	StreakDays     int      `json:"streak_days"`
	BadgesAwarded  []string `json:"badges_awarded"`
}

// Activities returns the user's 50 most recent activities.
//
// Endpoint: GET /api/activities
// Response: 200 OK with array of ActivityResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *ActivityHandler) Activities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.ListActivities(r.Context(), userID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveActivities.Error(), err.Error())
		return
	}

	resp := make([]model.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, model.NewActivityResponse(a))
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// LogActivity records an activity and reports its emission and any badges earned.
//
// Endpoint: POST /api/activities
// Request Body: CreateActivityRequest (activity_type, category, value, unit?, description?)
// Response: 201 Created with ActivityLoggedResponse
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if logging fails
func (h *ActivityHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateActivityRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateActivity(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	result, err := h.activityService.LogActivity(r.Context(), userID(r), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log activity", err.Error())
		return
	}

	awarded := make([]string, 0, len(result.Awarded))
	for _, b := range result.Awarded {
		awarded = append(awarded, b.Name)
	}

	response.RespondJSON(w, http.StatusCreated, ActivityLoggedResponse{
		Message:        "Activity logged successfully",
		ID:             result.Activity.ID,
		CarbonEmission: result.Activity.CarbonEmission,
		StreakDays:     result.User.StreakDays,
		BadgesAwarded:  awarded,
	})
}
