package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocode(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"language":    q.Get("language"),
			"latlng":      q.Get("latlng"),
			"key":         q.Get("key"),
			"result_type": q.Get("result_type"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"address_components": [
						{"long_name": "Singapore", "types": ["locality", "political"]},
						{"long_name": "Singapore", "types": ["country", "political"]}
					]
				},
				{
					"address_components": [
						{"long_name": "Central", "types": ["administrative_area_level_1", "political"]}
					]
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewGoogleClient(GoogleConfig{APIKey: "test-key", BaseURL: server.URL})

	components, err := client.ReverseGeocode(context.Background(), 1.3521, 103.8198)
	require.NoError(t, err)

	assert.Equal(t, "en", gotQuery["language"])
	assert.Equal(t, "1.3521,103.8198", gotQuery["latlng"])
	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "country|locality|colloquial_area|administrative_area_level_1|administrative_area_level_2|administrative_area_level_3|administrative_area_level_4|administrative_area_level_5", gotQuery["result_type"])

	require.Len(t, components, 3)
	assert.Equal(t, "Singapore", components[0].LongName)
	assert.Contains(t, components[0].Types, "locality")
	assert.Contains(t, components[1].Types, "country")
	assert.Equal(t, "Central", components[2].LongName)
}

func TestReverseGeocodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"status":"REQUEST_DENIED"}`))
	}))
	defer server.Close()

	client := NewGoogleClient(GoogleConfig{APIKey: "bad-key", BaseURL: server.URL})

	_, err := client.ReverseGeocode(context.Background(), 1.3521, 103.8198)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestReverseGeocodeMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewGoogleClient(GoogleConfig{APIKey: "k", BaseURL: server.URL})

	_, err := client.ReverseGeocode(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}
