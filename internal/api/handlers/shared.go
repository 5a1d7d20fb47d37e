package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ecotracker/ecotracker-backend/internal/api/middleware"
	"github.com/ecotracker/ecotracker-backend/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is empty")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("decode request body: %w", err)
	}
	return req, nil
}

// userID returns the authenticated user set by the session middleware.
// Every handler in this package is mounted behind it.
func userID(r *http.Request) string {
	id, _ := middleware.UserIDFromContext(r.Context())
	return id
}

// validationDetails returns the field map of a validation error, or its text.
func validationDetails(err error) interface{} {
	var valErr *validation.Error
	if errors.As(err, &valErr) {
		return valErr.Fields
	}
	return err.Error()
}
