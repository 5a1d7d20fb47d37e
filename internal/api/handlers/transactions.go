package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/api/response"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/service"
	"github.com/ecotracker/ecotracker-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions handles GET requests to list the user's transactions, newest first.
// Optional query parameters start, end (YYYY-MM-DD) and type narrow the result;
// malformed values are ignored.
//
// Endpoint: GET /api/transactions
// Response: 200 OK with array of TransactionResponse (at most 100)
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := request.ParseTransactionFilter(q.Get("start"), q.Get("end"), q.Get("type"))

	transactions, err := h.transactionService.ListTransactions(r.Context(), userID(r), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	resp := make([]model.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		resp = append(resp, model.NewTransactionResponse(t))
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transactions/{uuid}
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if the transaction does not exist or belongs to another user
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(r.Context(), userID(r), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, model.NewTransactionResponse(transaction))
}

// CreateTransaction handles POST requests to record a transaction.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest (type, amount, category_id?, date?, description?)
// Response: 201 Created with {"message": "Transaction added", "id": ...}
// Error: 400 Bad Request if validation fails or the category may not be used
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), userID(r), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCategory) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondMessage(w, http.StatusCreated, "Transaction added", transaction.ID)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
// Only the provided fields change.
//
// Endpoint: PUT /api/transactions/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated TransactionResponse
// Error: 400 Bad Request if validation fails or the category may not be used
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), userID(r), transactionID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTransactionNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrInvalidCategory):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidCategory.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, model.NewTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transactions/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	err := h.transactionService.DeleteTransaction(r.Context(), userID(r), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), "")
			return
		}

		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
