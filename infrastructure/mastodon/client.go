// Package mastodon implements the small slice of the Mastodon API the
// posting pipeline needs: media upload and status creation.
package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Config configures the Mastodon client for one account on one
// instance.
type Config struct {
	BaseURL     string
	AccessToken string
}

// Client posts statuses with media attachments on behalf of a single
// Mastodon account.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Media is an uploaded attachment, referenced by ID when creating a
// status.
type Media struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UploadMedia uploads image bytes as a media attachment. The server may
// answer 202 while it processes the file asynchronously; the returned
// ID is usable either way.
func (c *Client) UploadMedia(ctx context.Context, filename string, data []byte, description string) (*Media, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			return nil, fmt.Errorf("failed to write description field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v2/media", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("media upload error (status %d): %s", resp.StatusCode, string(body))
	}

	var media Media
	if err := json.Unmarshal(body, &media); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &media, nil
}

// Status is a published post.
type Status struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type createStatusRequest struct {
	Status   string   `json:"status"`
	MediaIDs []string `json:"media_ids"`
}

// CreateStatus publishes a status with the given media attached.
func (c *Client) CreateStatus(ctx context.Context, text string, mediaIDs []string) (*Status, error) {
	payload, err := json.Marshal(createStatusRequest{Status: text, MediaIDs: mediaIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/statuses", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status creation error (status %d): %s", resp.StatusCode, string(body))
	}

	var status Status
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &status, nil
}
