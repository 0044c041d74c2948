// Package fal talks to the fal.ai generation service that performs the
// actual try-on compositing.
package fal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// TryOnInput mirrors the input schema of the kolors virtual try-on model.
type TryOnInput struct {
	ModelImage    string `json:"model_image"`
	GarmentImage  string `json:"garment_image"`
	GenerateVideo bool   `json:"generate_video"`
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// TryOn runs the try-on model synchronously and returns the normalized
// result. A non-nil error means the provider could not be reached or
// answered with a failure status; a nil error with an empty ImageURL means
// the provider responded 2xx but with no usable image reference.
func (c *Client) TryOn(ctx context.Context, input TryOnInput) (*Result, error) {
	jsonData, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/" + strings.Trim(c.model, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		if c.log != nil {
			c.log.Error("fal request failed", "status", resp.StatusCode, "model", c.model, "body", truncateBody(body))
		}
		return nil, fmt.Errorf("fal error: status %d, body: %s", resp.StatusCode, truncateBody(body))
	}

	result := Normalize(body)

	if c.log != nil {
		c.log.Info("fal request completed", "model", c.model, "has_image", result.ImageURL != "", "has_video", result.VideoURL != "")
	}

	return result, nil
}

// Download fetches result bytes from a provider-hosted URL, e.g. for
// mirroring into our own storage bucket.
func (c *Client) Download(ctx context.Context, downloadURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to download file: status %d, body: %s", resp.StatusCode, truncateBody(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func truncateBody(body []byte) string {
	const limit = 512
	s := strings.TrimSpace(string(body))
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
