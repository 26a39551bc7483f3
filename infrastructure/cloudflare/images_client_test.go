package cloudflare

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryURLs(t *testing.T) {
	client := NewImagesClient(ImagesConfig{
		Domain:      "photos.example.com",
		AccountHash: "abc123hash",
	})

	id := uuid.MustParse("b9a0e1a2-4f3d-4c5b-9a8e-7d6c5b4a3f2e")

	assert.Equal(t,
		"https://photos.example.com/cdn-cgi/imagedelivery/abc123hash/b9a0e1a2-4f3d-4c5b-9a8e-7d6c5b4a3f2e/desktop",
		client.DeliveryURL(id, "desktop"))

	urls := client.DeliveryURLs(id)
	require.Len(t, urls, 5)
	for _, variant := range []string{"desktop", "mobile", "popup", "favorite", "smol"} {
		assert.Contains(t, urls, variant)
		assert.Contains(t, urls[variant], "/"+variant)
	}
}

func TestCreateUploadURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/client/v4/accounts/acct-1/images/v2/direct_upload", r.URL.Path)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"result": {
				"id": "b9a0e1a2-4f3d-4c5b-9a8e-7d6c5b4a3f2e",
				"uploadURL": "https://upload.imagedelivery.net/xyz"
			},
			"success": true,
			"errors": []
		}`))
	}))
	defer server.Close()

	client := NewImagesClient(ImagesConfig{
		AccountID:  "acct-1",
		APIKey:     "secret-key",
		APIBaseURL: server.URL,
	})

	ticket, err := client.CreateUploadURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b9a0e1a2-4f3d-4c5b-9a8e-7d6c5b4a3f2e", ticket.ID.String())
	assert.Equal(t, "https://upload.imagedelivery.net/xyz", ticket.UploadURL)
}

func TestCreateUploadURLRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":null,"success":false,"errors":[{"code":10000,"message":"Authentication error"}]}`))
	}))
	defer server.Close()

	client := NewImagesClient(ImagesConfig{AccountID: "acct-1", APIBaseURL: server.URL})

	_, err := client.CreateUploadURL(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication error")
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	defer server.Close()

	client := NewImagesClient(ImagesConfig{})

	data, contentType, err := client.Download(context.Background(), server.URL+"/some/image")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, data)
}
