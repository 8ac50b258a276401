package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MaxResponseSize bounds how much of a response body is read
const MaxResponseSize = 1 << 20

// Client handles communication with the Workspace Africa backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	debug      *log.Logger
}

// Debug enables per-request logging for troubleshooting
func (c *Client) Debug(l *log.Logger) {
	c.debug = l
}

// HealthResponse represents the backend health check response
type HealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	MinClientVersion string `json:"min_client_version,omitempty"`
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Health checks if the backend is reachable and healthy
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := c.do(req, &health); err != nil {
		return nil, fmt.Errorf("failed to check server health: %w", err)
	}
	return &health, nil
}

// newRequest builds a JSON request against the configured base URL.
// Every request carries a unique X-Request-ID so failures can be
// correlated with backend logs.
func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	var data []byte
	if payload != nil {
		var err error
		data, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}
	return req, nil
}

// do executes a request and decodes a 2xx JSON response into out.
// Non-2xx responses become an *APIError carrying the backend message.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.debug != nil {
		c.debug.Printf("%s %s -> %d request_id=%s",
			req.Method, req.URL.Path, resp.StatusCode, req.Header.Get("X-Request-ID"))
	}

	body, err := readLimitedResponse(resp.Body, MaxResponseSize)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return parseAPIError(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// readLimitedResponse reads at most limit bytes from a response body
func readLimitedResponse(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
