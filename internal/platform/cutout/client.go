// Package cutout provides a client for an external background-removal
// service. It is an infrastructure adapter: raw image bytes go in, processed
// image bytes come out, and every failure is returned to the caller so it
// can fall back to the unprocessed image.
package cutout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/pixgen-api/internal/config"
)

// ErrNotConfigured is returned when no service endpoint is configured.
// Callers treat this like any other removal failure and keep the original
// image.
var ErrNotConfigured = errors.New("background removal endpoint not configured")

// maxResponseBytes bounds how much of an error body is read for messages.
const maxResponseBytes = 4 << 10

// Client calls the background-removal service over HTTP.
type Client struct {
	endpoint     string
	assetBaseURL string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewClient creates a background-removal client from configuration.
// A nil HTTP client may be passed; one with a sensible timeout is created.
func NewClient(cfg config.CutoutConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		assetBaseURL: cfg.AssetBaseURL,
		httpClient:   httpClient,
		logger:       logger,
	}
}

// Remove sends the raw image bytes to the removal service and returns the
// processed bytes. The configured asset base path is forwarded so the
// service can locate its segmentation model data.
func (c *Client) Remove(ctx context.Context, data []byte, mimeType string) ([]byte, error) {
	if c.endpoint == "" {
		return nil, ErrNotConfigured
	}
	if len(data) == 0 {
		return nil, errors.New("image data cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create removal request: %w", err)
	}
	if mimeType == "" {
		mimeType = "image/png"
	}
	req.Header.Set("Content-Type", mimeType)
	if c.assetBaseURL != "" {
		req.Header.Set("X-Asset-Base-URL", c.assetBaseURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke background removal: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close removal response body", "error", cerr)
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if len(body) > 0 {
			return nil, fmt.Errorf("background removal status %d: %s",
				resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("background removal status %d", resp.StatusCode)
	}

	processed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read removal response: %w", err)
	}
	if len(processed) == 0 {
		return nil, errors.New("background removal returned empty image")
	}

	c.logger.Debug("background removal succeeded",
		"input_bytes", len(data),
		"output_bytes", len(processed))

	return processed, nil
}
