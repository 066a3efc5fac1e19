package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/inkmatch/inkmatch-server/pkg/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeAppError maps the typed error hierarchy onto HTTP responses; unknown
// errors become opaque 500s.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}
	writeError(w, http.StatusInternalServerError, "internal server error")
}
