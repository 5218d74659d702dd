package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

var (
	// ErrNotRecognized means the provider answered but matched nobody.
	ErrNotRecognized = errors.New("face payload did not match a registered worker")

	// ErrProviderUnavailable means the provider could not be reached in
	// time, including after the single retry.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Client calls the external face-recognition service. Every call is
// bounded by the configured timeout; transport failures are retried
// once with a short backoff before surfacing ErrProviderUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	backoff    time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		backoff:    500 * time.Millisecond,
	}
}

type resolveRequest struct {
	Payload string `json:"payload"`
}

type resolveResponse struct {
	WorkerID   string  `json:"worker_id"`
	Confidence float64 `json:"confidence"`
}

// Resolve maps a face payload to a worker ID.
func (c *Client) Resolve(ctx context.Context, payload string) (string, error) {
	body, err := json.Marshal(resolveRequest{Payload: payload})
	if err != nil {
		return "", fmt.Errorf("failed to encode resolve request: %w", err)
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		slog.Warn("Identity provider request failed, retrying once", "error", err)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, ctx.Err())
		case <-time.After(c.backoff):
		}
		resp, err = c.post(ctx, body)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", ErrNotRecognized
	default:
		return "", fmt.Errorf("%w: unexpected status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var result resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: invalid response body: %v", ErrProviderUnavailable, err)
	}
	if result.WorkerID == "" {
		return "", ErrNotRecognized
	}

	return result.WorkerID, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/recognize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
