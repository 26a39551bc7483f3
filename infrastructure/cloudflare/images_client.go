// Package cloudflare wraps the Cloudflare Images API: direct-upload URL
// issuance and delivery URL construction for the serving variants.
package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Variants are the named serving variants every photo is available in.
var Variants = []string{"desktop", "mobile", "popup", "favorite", "smol"}

// ImagesConfig configures the Cloudflare Images client. APIBaseURL is
// overridable for tests.
type ImagesConfig struct {
	Domain      string
	AccountHash string
	AccountID   string
	APIKey      string
	APIBaseURL  string
}

// ImagesClient issues direct-upload URLs and builds delivery URLs for
// stored photos.
type ImagesClient struct {
	domain      string
	accountHash string
	accountID   string
	apiKey      string
	apiBaseURL  string
	httpClient  *http.Client
}

func NewImagesClient(cfg ImagesConfig) *ImagesClient {
	apiBaseURL := cfg.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = "https://api.cloudflare.com"
	}

	return &ImagesClient{
		domain:      cfg.Domain,
		accountHash: cfg.AccountHash,
		accountID:   cfg.AccountID,
		apiKey:      cfg.APIKey,
		apiBaseURL:  apiBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DeliveryURL builds the public delivery URL for one photo variant.
func (c *ImagesClient) DeliveryURL(photoID uuid.UUID, variant string) string {
	return fmt.Sprintf("https://%s/cdn-cgi/imagedelivery/%s/%s/%s",
		c.domain, c.accountHash, photoID, variant)
}

// DeliveryURLs builds the delivery URLs for all serving variants of one
// photo, keyed by variant name.
func (c *ImagesClient) DeliveryURLs(photoID uuid.UUID) map[string]string {
	urls := make(map[string]string, len(Variants))
	for _, variant := range Variants {
		urls[variant] = c.DeliveryURL(photoID, variant)
	}
	return urls
}

// UploadTicket is a one-time direct-upload grant: the client PUTs the
// image bytes to URL, and Cloudflare stores it under ID.
type UploadTicket struct {
	ID        uuid.UUID `json:"id"`
	UploadURL string    `json:"uploadURL"`
}

type directUploadResponse struct {
	Result struct {
		ID        string `json:"id"`
		UploadURL string `json:"uploadURL"`
	} `json:"result"`
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// CreateUploadURL requests a direct-upload grant from the Cloudflare
// Images API. The returned ID becomes the photo's identifier.
func (c *ImagesClient) CreateUploadURL(ctx context.Context) (*UploadTicket, error) {
	reqURL := fmt.Sprintf("%s/client/v4/accounts/%s/images/v2/direct_upload", c.apiBaseURL, c.accountID)

	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call images API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("images API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result directUploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !result.Success {
		if len(result.Errors) > 0 {
			return nil, fmt.Errorf("images API rejected request: %s", result.Errors[0].Message)
		}
		return nil, fmt.Errorf("images API rejected request")
	}

	id, err := uuid.Parse(result.Result.ID)
	if err != nil {
		return nil, fmt.Errorf("images API returned invalid image id %q: %w", result.Result.ID, err)
	}

	return &UploadTicket{ID: id, UploadURL: result.Result.UploadURL}, nil
}

// Download fetches an image from a delivery URL. Cloudflare serves
// image delivery to browsers, so a browser User-Agent is sent.
func (c *ImagesClient) Download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image download error (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
