package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"voucher-api/internal/model"
	"voucher-api/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeServiceError maps a service error onto a response. Domain errors keep
// their message; NOT_FOUND becomes 404 and every other kind 400. Anything else
// is a store failure and is reported as 500 with fallback and the cause.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	if de, ok := model.AsDomainError(err); ok {
		status := http.StatusBadRequest
		if de.Code == model.ErrCodeNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, de.Message, logger)
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   fallback,
		Details: err.Error(),
	})
}

// decodeAndValidate reads the JSON body into dst and checks it against its
// validation tags. It writes the 400 response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, v *validation.Validator, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", logger)
		return false
	}

	if err := v.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			logger.Debug().Err(err).Msg("request validation failed")
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
				Error:   "Validation failed",
				Details: verr.Fields,
			})
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", logger)
		return false
	}

	return true
}

// parseID extracts the {id} URL parameter. It writes the 400 response and
// returns false when the parameter is not a UUID.
func parseID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format", logger)
		return uuid.Nil, false
	}
	return id, true
}
