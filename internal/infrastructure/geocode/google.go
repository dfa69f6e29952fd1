package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/placeshare/backend/internal/domain/entity"
)

// ErrNoResults means the service resolved the address to nothing. It is
// client-attributable: the address is wrong, not the service.
var ErrNoResults = errors.New("no results for the provided address")

// Geocoder maps a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (entity.Coordinates, error)
}

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleClient calls the Google Maps Geocoding JSON API. No timeout beyond
// the http.Client default is applied; a hung geocode hangs the request.
type GoogleClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGoogleClient(apiKey string) *GoogleClient {
	return &GoogleClient{APIKey: apiKey, BaseURL: defaultBaseURL, HTTPClient: http.DefaultClient}
}

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location entity.Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) (entity.Coordinates, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return entity.Coordinates{}, err
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return entity.Coordinates{}, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return entity.Coordinates{}, fmt.Errorf("geocode request failed: status %d", res.StatusCode)
	}

	var parsed googleResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return entity.Coordinates{}, err
	}

	if parsed.Status == "ZERO_RESULTS" {
		return entity.Coordinates{}, ErrNoResults
	}
	if parsed.Status != "OK" {
		return entity.Coordinates{}, fmt.Errorf("geocode request failed: %s", parsed.Status)
	}
	if len(parsed.Results) == 0 {
		return entity.Coordinates{}, ErrNoResults
	}

	return parsed.Results[0].Geometry.Location, nil
}

var _ Geocoder = (*GoogleClient)(nil)
