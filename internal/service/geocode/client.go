package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/inkmatch/inkmatch-server/pkg/errors"
	"go.uber.org/zap"
)

// Client talks to a Nominatim-compatible geocoding endpoint. The service is
// strictly best-effort; callers degrade to coordinate strings when it fails.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Location is one forward-geocoding candidate.
type Location struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

func NewClient(baseURL, userAgent string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Forward resolves a free-form address to coordinates; (nil, nil) when the
// service finds no match.
func (c *Client) Forward(ctx context.Context, address string) (*Location, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	var results []searchResult
	if err := c.doRequest(ctx, "/search?"+query.Encode(), &results); err != nil {
		c.logger.Warn("Forward geocoding failed", zap.Error(err), zap.String("address", address))
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errors.NewServiceError("malformed latitude in geocode response", "geocode", "forward", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errors.NewServiceError("malformed longitude in geocode response", "geocode", "forward", err)
	}

	return &Location{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: results[0].DisplayName,
	}, nil
}

// Reverse resolves coordinates to a display address; empty string when the
// service has nothing.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	query.Set("format", "json")

	var result reverseResult
	if err := c.doRequest(ctx, "/reverse?"+query.Encode(), &result); err != nil {
		c.logger.Warn("Reverse geocoding failed", zap.Error(err),
			zap.Float64("lat", lat), zap.Float64("lon", lon))
		return "", err
	}

	return result.DisplayName, nil
}

// FallbackAddress renders coordinates as a plain string for when geocoding
// is unavailable.
func FallbackAddress(lat, lon float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lon)
}

func (c *Client) doRequest(ctx context.Context, pathAndQuery string, out any) error {
	fullURL := c.baseURL + pathAndQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return errors.NewServiceError("failed to create geocode request", "geocode", "request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewDownstreamError("geocode request failed", "geocode", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return errors.NewDownstreamError(
			fmt.Sprintf("geocode service returned %s", resp.Status),
			"geocode", resp.StatusCode, fmt.Errorf("%s", string(bodyBytes)),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewServiceError("failed to decode geocode response", "geocode", "decode", err)
	}

	return nil
}
