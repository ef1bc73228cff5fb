package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/teranos/sketchflow/errors"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeFailure maps err onto a status code and writes it with any hints.
func writeFailure(w http.ResponseWriter, err error) int {
	status := statusFor(err)
	writeJSON(w, status, failureBody(err))
	return status
}

func failureBody(err error) errorResponse {
	return errorResponse{
		Error: err.Error(),
		Hint:  strings.TrimSpace(errors.FlattenHints(err)),
	}
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsInvalidRequestError(err),
		errors.IsValidationError(err),
		errors.IsUnsupportedSourceError(err):
		return http.StatusBadRequest
	case errors.IsUnknownAdapterError(err),
		errors.IsUnknownLayoutEngineError(err),
		errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case errors.IsAdapterGenerationError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// readJSON decodes a JSON request body, rejecting unknown fields.
func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.NewInvalidRequestError("invalid request body: %v", err)
	}
	return nil
}
