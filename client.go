package starfield

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the address the regeneration client targets by default.
const DefaultEndpoint = "http://127.0.0.1:8080/"

// Client posts regeneration requests to a running field.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

// NewClient returns a client for endpoint. An empty endpoint means
// DefaultEndpoint.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Response is the server's answer to a regeneration request.
type Response struct {
	StatusCode int
	Body       string
}

// Regenerate asks the server to rebuild star systemID with seed. A non-2xx
// status is not an error; callers inspect Response.StatusCode.
func (c *Client) Regenerate(ctx context.Context, systemID int, seed int32) (Response, error) {
	payload, err := json.Marshal(regenerateBody{SystemID: systemID, Seed: seed})
	if err != nil {
		return Response{}, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("post %s: %w", c.Endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRequestBody))
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("read response: %w", err)
	}
	return Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
