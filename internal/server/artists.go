package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/inkmatch/inkmatch-server/internal/domain"
	"github.com/inkmatch/inkmatch-server/internal/service/geocode"
	"github.com/inkmatch/inkmatch-server/internal/util"
	"go.uber.org/zap"
)

type artistStylePayload struct {
	Style          string `json:"style"`
	ExpertiseLevel int    `json:"expertiseLevel"`
}

type artistPayload struct {
	UserID     string               `json:"userId"`
	StudioName string               `json:"studioName"`
	Bio        string               `json:"bio"`
	Address    string               `json:"address"`
	Latitude   *float64             `json:"latitude"`
	Longitude  *float64             `json:"longitude"`
	AvatarURL  string               `json:"avatarUrl"`
	Styles     []artistStylePayload `json:"styles"`
}

func (p *artistPayload) toDomain() (*domain.Artist, error) {
	styles := make([]domain.ArtistStyle, 0, len(p.Styles))
	for _, s := range p.Styles {
		key := domain.StyleKey(util.Normalize(s.Style))
		if !key.IsValid() {
			return nil, &unknownStyleError{key: s.Style}
		}
		level := s.ExpertiseLevel
		if level < 1 {
			level = 1
		}
		if level > 5 {
			level = 5
		}
		styles = append(styles, domain.ArtistStyle{Style: key, ExpertiseLevel: level})
	}

	return &domain.Artist{
		UserID:     p.UserID,
		StudioName: strings.TrimSpace(p.StudioName),
		Bio:        p.Bio,
		Address:    strings.TrimSpace(p.Address),
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		AvatarURL:  p.AvatarURL,
		Styles:     styles,
	}, nil
}

type unknownStyleError struct {
	key string
}

func (e *unknownStyleError) Error() string {
	return "unknown style key: " + e.key
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	var payload artistPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if payload.UserID == "" || payload.StudioName == "" {
		writeError(w, http.StatusBadRequest, "userId and studioName are required")
		return
	}

	artist, err := payload.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.resolveLocation(r.Context(), artist)

	if err := s.artists.Create(r.Context(), artist); err != nil {
		s.logger.Error("Failed to create artist", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create artist")
		return
	}

	writeJSON(w, http.StatusCreated, artist)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if cached, ok := s.cache.GetArtist(r.Context(), id); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	artist, err := s.artists.FindByID(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to load artist", zap.Error(err), zap.String("artist_id", id))
		writeError(w, http.StatusInternalServerError, "failed to load artist")
		return
	}
	if artist == nil {
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}

	s.cache.SetArtist(r.Context(), artist, s.cfg.Classifier.CacheTTL)
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	styleParam := r.URL.Query().Get("style")
	if styleParam == "" {
		writeError(w, http.StatusBadRequest, "style query parameter is required")
		return
	}
	style := domain.StyleKey(styleParam)
	if !style.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown style key: "+styleParam)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = parsed
	}

	artists, err := s.artists.ListByStyle(r.Context(), style, limit)
	if err != nil {
		s.logger.Error("Failed to list artists", zap.Error(err), zap.String("style", styleParam))
		writeError(w, http.StatusInternalServerError, "failed to list artists")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"artists": artists})
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := s.artists.FindByID(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to load artist", zap.Error(err), zap.String("artist_id", id))
		writeError(w, http.StatusInternalServerError, "failed to load artist")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}

	var payload artistPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	updated, err := payload.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	if updated.StudioName == "" {
		updated.StudioName = existing.StudioName
	}

	s.resolveLocation(r.Context(), updated)

	if err := s.artists.Update(r.Context(), updated); err != nil {
		s.logger.Error("Failed to update artist", zap.Error(err), zap.String("artist_id", id))
		writeError(w, http.StatusInternalServerError, "failed to update artist")
		return
	}
	if err := s.artists.ReplaceStyles(r.Context(), updated.ID, updated.Styles); err != nil {
		s.logger.Error("Failed to update artist styles", zap.Error(err), zap.String("artist_id", id))
		writeError(w, http.StatusInternalServerError, "failed to update artist styles")
		return
	}

	s.cache.InvalidateArtist(r.Context(), updated.ID)
	writeJSON(w, http.StatusOK, updated)
}

type replaceStylesRequest struct {
	Styles []artistStylePayload `json:"styles"`
}

func (s *Server) handleReplaceArtistStyles(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	existing, err := s.artists.FindByID(r.Context(), id)
	if err != nil {
		s.logger.Error("Failed to load artist", zap.Error(err), zap.String("artist_id", id))
		writeError(w, http.StatusInternalServerError, "failed to load artist")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "artist not found")
		return
	}

	var req replaceStylesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	payload := artistPayload{Styles: req.Styles}
	parsed, err := payload.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.artists.ReplaceStyles(r.Context(), id, parsed.Styles); err != nil {
		s.logger.Error("Failed to replace artist styles", zap.Error(err), zap.String("artist_id", id))
		writeError(w, http.StatusInternalServerError, "failed to replace artist styles")
		return
	}

	s.cache.InvalidateArtist(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]any{"styles": parsed.Styles})
}

// resolveLocation fills whichever of address and coordinates is missing.
// Geocoding is best effort; a failed lookup leaves the profile usable with a
// coordinate-string address or no coordinates at all.
func (s *Server) resolveLocation(ctx context.Context, artist *domain.Artist) {
	switch {
	case artist.Latitude == nil && artist.Address != "":
		location, err := s.geocoder.Forward(ctx, artist.Address)
		if err != nil || location == nil {
			return
		}
		artist.Latitude = &location.Latitude
		artist.Longitude = &location.Longitude

	case artist.Latitude != nil && artist.Longitude != nil && artist.Address == "":
		address, err := s.geocoder.Reverse(ctx, *artist.Latitude, *artist.Longitude)
		if err != nil || address == "" {
			artist.Address = geocode.FallbackAddress(*artist.Latitude, *artist.Longitude)
			return
		}
		artist.Address = address
	}
}
