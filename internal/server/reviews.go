package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"go.uber.org/zap"
)

type createReviewRequest struct {
	AuthorID string `json:"authorId"`
	Rating   int    `json:"rating"`
	Body     string `json:"body"`
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	artistID := mux.Vars(r)["id"]

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.AuthorID == "" {
		writeError(w, http.StatusBadRequest, "authorId is required")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	artist, err := s.artists.FindByID(r.Context(), artistID)
	if err != nil {
		s.logger.Error("Failed to load artist for review", zap.Error(err), zap.String("artist_id", artistID))
		writeError(w, http.StatusInternalServerError, "failed to create review")
		return
	}
	if artist == nil {
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}

	review := &domain.Review{
		ArtistID: artistID,
		AuthorID: req.AuthorID,
		Rating:   req.Rating,
		Body:     strings.TrimSpace(req.Body),
	}
	if err := s.reviews.Create(r.Context(), review); err != nil {
		s.logger.Error("Failed to create review", zap.Error(err), zap.String("artist_id", artistID))
		writeError(w, http.StatusInternalServerError, "failed to create review")
		return
	}

	writeJSON(w, http.StatusCreated, review)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	artistID := mux.Vars(r)["id"]

	reviews, err := s.reviews.ListByArtist(r.Context(), artistID, 50)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err), zap.String("artist_id", artistID))
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	average, err := s.reviews.AverageRating(r.Context(), artistID)
	if err != nil {
		s.logger.Warn("Failed to compute average rating", zap.Error(err), zap.String("artist_id", artistID))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":       reviews,
		"averageRating": average,
	})
}
