package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smartware/smartware-api/internal/common"
	"github.com/smartware/smartware-api/internal/logging"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps service errors onto HTTP statuses. Anything unexpected
// becomes an opaque 500 so internals never leak into responses; the real
// error goes to the log instead.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername),
		errors.Is(err, common.ErrDuplicateEmail),
		errors.Is(err, common.ErrDuplicateSlug),
		errors.Is(err, common.ErrEmptyQuery):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrAccountDeactivated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrInvalidRefreshToken),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	default:
		log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON rejects malformed bodies with a 400 and reports whether
// decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
