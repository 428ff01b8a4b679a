package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"plant-kart/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// domainStatus maps a domain error to its HTTP status code. Unknown errors
// map to 500 so infrastructure details never leak to the client.
func domainStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorised):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrAttemptNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrIllegalStatusChange),
		errors.Is(err, model.ErrAttemptFinished):
		return http.StatusConflict
	case errors.Is(err, model.ErrNotServiceable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrEmptyCart),
		errors.Is(err, model.ErrInvalidAddress),
		errors.Is(err, model.ErrInvalidPhone),
		errors.Is(err, model.ErrInvalidPincode),
		errors.Is(err, model.ErrInvalidCoupon),
		errors.Is(err, model.ErrInvalidQuantity),
		errors.Is(err, model.ErrUnknownStatus),
		errors.Is(err, model.ErrInvalidSignature):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps err onto an HTTP response. Domain errors carry their
// own message and code; anything else becomes an opaque 500 with fallback.
func writeDomainError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	status := domainStatus(err)

	// Domain error messages are curated, so they are safe to expose even
	// at 500 (e.g. a captured payment whose order could not be recorded).
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		logger.Warn().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
		writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
		return
	}

	logger.Error().Err(err).Int("status", status).Msg(fallback)
	writeJSON(w, status, ErrorResponse{Error: fallback})
}
