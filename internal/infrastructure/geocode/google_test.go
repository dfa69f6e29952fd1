package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*GoogleClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewGoogleClient("test-key")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c, srv
}

func TestGeocodeParsesCoordinates(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("address"); got != "20 W 34th St, New York" {
			t.Errorf("address = %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": 40.7484474, "lng": -73.9871516}}}
			]
		}`))
	})
	defer srv.Close()

	coords, err := c.Geocode(context.Background(), "20 W 34th St, New York")
	if err != nil {
		t.Fatalf("Geocode() err = %v", err)
	}
	if coords.Lat != 40.7484474 || coords.Lng != -73.9871516 {
		t.Fatalf("coords = %+v", coords)
	}
}

func TestGeocodeZeroResults(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer srv.Close()

	_, err := c.Geocode(context.Background(), "xyzzy nowhere")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("err = %v, want ErrNoResults", err)
	}
}

func TestGeocodeUpstreamError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	})
	defer srv.Close()

	_, err := c.Geocode(context.Background(), "anywhere")
	if err == nil || errors.Is(err, ErrNoResults) {
		t.Fatalf("err = %v, want non-client failure", err)
	}
}

func TestGeocodeNon200(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	if _, err := c.Geocode(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on 502")
	}
}
