package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mediavault/mediavault-backend/internal/common"
)

// writeJSON encodes v with the right content type.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Expected-outcome failures keep their message; anything else is an
// opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrProfileNotFound):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, common.ErrUserNotFound), errors.Is(err, common.ErrMediaNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, common.ErrEmailExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, common.ErrUnsupportedOTPType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
