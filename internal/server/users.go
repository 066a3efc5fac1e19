package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/inkmatch/inkmatch-server/internal/util"
	apperrors "github.com/inkmatch/inkmatch-server/pkg/errors"
	"go.uber.org/zap"
)

type createUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeAppError(w, apperrors.NewValidationError("a valid email is required", "email", req.Email))
		return
	}
	if req.Role == "" {
		req.Role = "client"
	}
	if !util.Contains([]string{"client", "artist"}, req.Role) {
		writeAppError(w, apperrors.NewValidationError("role must be client or artist", "role", req.Role))
		return
	}

	user, err := s.users.Create(r.Context(), req.Email, strings.TrimSpace(req.DisplayName), req.Role)
	if err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := s.users.FindByID(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to load user", zap.Error(err), zap.String("user_id", id))
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
