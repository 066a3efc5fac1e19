package server

import (
	"net/http"
	"strconv"

	"github.com/inkmatch/inkmatch-server/internal/service/geocode"
	"go.uber.org/zap"
)

func (s *Server) handleGeocodeForward(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "address query parameter is required")
		return
	}

	location, err := s.geocoder.Forward(r.Context(), address)
	if err != nil {
		s.logger.Warn("Forward geocode request failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "geocoding service unavailable")
		return
	}
	if location == nil {
		writeError(w, http.StatusNotFound, "no match for address")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"latitude":    location.Latitude,
		"longitude":   location.Longitude,
		"displayName": location.DisplayName,
	})
}

func (s *Server) handleGeocodeReverse(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lon query parameters are required")
		return
	}

	address, err := s.geocoder.Reverse(r.Context(), lat, lon)
	if err != nil {
		s.logger.Warn("Reverse geocode request failed, falling back to coordinates", zap.Error(err))
		address = ""
	}
	if address == "" {
		address = geocode.FallbackAddress(lat, lon)
	}

	writeJSON(w, http.StatusOK, map[string]string{"address": address})
}
