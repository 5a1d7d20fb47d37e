package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/api/response"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/service"
)

// DashboardHandler serves the aggregated finance views.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	exportService    *service.ExportService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService, exportService *service.ExportService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// DashboardData returns the current custom month's KPIs, the expense breakdown
// and the daily expense series.
//
// Endpoint: GET /api/dashboard-data
// Response: 200 OK with DashboardResponse
// Error: 500 Internal Server Error if the snapshot cannot be loaded
func (h *DashboardHandler) DashboardData(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}

// Recommendations returns up to three month-over-month insights.
//
// Endpoint: GET /api/recommendations
// Response: 200 OK with array of Insight
// Error: 500 Internal Server Error if the snapshot cannot be loaded
func (h *DashboardHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	insights, err := h.dashboardService.GetRecommendations(r.Context(), userID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildDashboard.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, insights)
}

// ExportCSV streams the user's transactions as a CSV attachment. The export is
// buffered so a failure can still be reported with a proper status.
//
// Endpoint: GET /api/export.csv?start=YYYY-MM-DD&end=YYYY-MM-DD
// Response: 200 OK with text/csv body
// Error: 500 Internal Server Error if the export fails
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	start, end := request.ParseDateRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))

	var buf bytes.Buffer
	if err := h.exportService.ExportCSV(r.Context(), userID(r), start, end, &buf); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=transactions.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
