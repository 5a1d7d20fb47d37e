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

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Categories returns the user's own categories and the global defaults.
//
// Endpoint: GET /api/categories
// Response: 200 OK with array of Category
// Error: 500 Internal Server Error if retrieval fails
func (h *CategoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.ListCategories(r.Context(), userID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCategories.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, categories)
}

// CreateCategory stores a custom category for the user.
//
// Endpoint: POST /api/categories
// Request Body: CreateCategoryRequest (name, type)
// Response: 201 Created with Category
// Error: 400 Bad Request "Invalid category" for a blank name, bad type or malformed body
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCategoryRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		return
	}

	if err := validation.ValidateCreateCategory(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), validationDetails(err))
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), userID(r), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCategory), errors.Is(err, apperrors.ErrDuplicateEntry):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create category", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, category)
}
