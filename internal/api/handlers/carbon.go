package handlers

import (
	"errors"
	"net/http"

	"github.com/ecotracker/ecotracker-backend/internal/api/response"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/service"
)

// CarbonHandler serves badges, the leaderboard, offset estimates and tips.
type CarbonHandler struct {
	badgeService  *service.BadgeService
	carbonService *service.CarbonService
	tipService    *service.TipService
}

// NewCarbonHandler creates a new CarbonHandler.
func NewCarbonHandler(
	badgeService *service.BadgeService,
	carbonService *service.CarbonService,
	tipService *service.TipService,
) *CarbonHandler {
	return &CarbonHandler{
		badgeService:  badgeService,
		carbonService: carbonService,
		tipService:    tipService,
	}
}

// Badges returns the badges the user has earned.
//
// Endpoint: GET /api/badges
// Response: 200 OK with array of EarnedBadgeResponse
func (h *CarbonHandler) Badges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.badgeService.ListEarned(r.Context(), userID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveBadges.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, badges)
}

// Leaderboard returns the users with the lowest total footprint.
//
// Endpoint: GET /api/leaderboard
// Response: 200 OK with array of LeaderboardEntry
func (h *CarbonHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.carbonService.Leaderboard(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to load leaderboard", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}

// OffsetCalculator estimates the trees and carbon credits needed to offset the
// user's footprint.
//
// Endpoint: GET /api/offset-calculator
// Response: 200 OK with OffsetEstimate
func (h *CarbonHandler) OffsetCalculator(w http.ResponseWriter, r *http.Request) {
	estimate, err := h.carbonService.OffsetEstimate(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to estimate offset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, estimate)
}

// Tips returns reduction tips, highest impact first.
//
// Endpoint: GET /api/tips?category=electricity
// Response: 200 OK with array of Tip
func (h *CarbonHandler) Tips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.tipService.ListTips(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTips.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, tips)
}
