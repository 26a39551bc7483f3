// Package geocoder implements reverse geocoding against the Google
// Maps Geocoding API.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catsofasia/domain/services"
)

// GoogleConfig configures the geocoding client. BaseURL is overridable
// for tests.
type GoogleConfig struct {
	APIKey  string
	BaseURL string
}

// GoogleClient calls the Google Maps Geocoding API, restricted to
// country plus locality-granularity result types.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGoogleClient(cfg GoogleConfig) *GoogleClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}

	return &GoogleClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeResponse struct {
	Results []struct {
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
	Status string `json:"status"`
}

// ReverseGeocode returns the flattened address components for the given
// point. Any transport, HTTP or decoding failure is fatal for the
// caller; there is no retry.
func (c *GoogleClient) ReverseGeocode(ctx context.Context, latitude, longitude float64) ([]services.AddressComponent, error) {
	query := url.Values{}
	query.Set("language", "en")
	query.Set("latlng", fmt.Sprintf("%s,%s",
		strconv.FormatFloat(latitude, 'f', -1, 64),
		strconv.FormatFloat(longitude, 'f', -1, 64)))
	query.Set("key", c.apiKey)
	query.Set("result_type", "country|"+strings.Join(services.CityCandidateTypes, "|"))

	reqURL := c.baseURL + "/maps/api/geocode/json?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoding API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result geocodeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	var components []services.AddressComponent
	for _, r := range result.Results {
		for _, ac := range r.AddressComponents {
			components = append(components, services.AddressComponent{
				LongName: ac.LongName,
				Types:    ac.Types,
			})
		}
	}

	return components, nil
}
