package httpapi

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/validation"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.UseNumber()
	return dec.Decode(v)
}

// writeError maps service errors onto status codes for JSON endpoints.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		_ = writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, common.ErrValidation):
		_ = writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required fields"})
	case errors.Is(err, common.ErrorNotFound):
		_ = writeJSON(w, http.StatusNotFound, errorResponse{Error: "Location not found"})
	default:
		s.logger.Error(r.Context(), "request failed",
			"request_id", RequestIDFrom(r.Context()),
			"error", err,
		)
		_ = writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}
