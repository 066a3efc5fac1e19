package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestForward(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		if r.URL.Path != "/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "123 Ink Street" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"52.52","lon":"13.405","display_name":"Berlin, Germany"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-agent/1.0", zap.NewNop())

	location, err := client.Forward(context.Background(), "123 Ink Street")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location == nil {
		t.Fatal("expected a location")
	}
	if location.Latitude != 52.52 || location.Longitude != 13.405 {
		t.Errorf("coordinates = (%f, %f)", location.Latitude, location.Longitude)
	}
	if location.DisplayName != "Berlin, Germany" {
		t.Errorf("display name = %q", location.DisplayName)
	}
	if gotUserAgent != "test-agent/1.0" {
		t.Errorf("user agent = %q", gotUserAgent)
	}
}

func TestForwardNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-agent/1.0", zap.NewNop())

	location, err := client.Forward(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location != nil {
		t.Errorf("expected nil location, got %+v", location)
	}
}

func TestForwardServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-agent/1.0", zap.NewNop())

	if _, err := client.Forward(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"display_name":"10 Downing Street, London"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-agent/1.0", zap.NewNop())

	address, err := client.Reverse(context.Background(), 51.5034, -0.1276)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if address != "10 Downing Street, London" {
		t.Errorf("address = %q", address)
	}
}

func TestFallbackAddress(t *testing.T) {
	if got := FallbackAddress(51.5034, -0.1276); got != "51.50340, -0.12760" {
		t.Errorf("FallbackAddress = %q", got)
	}
}
