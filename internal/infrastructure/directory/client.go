package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client wraps the remote user directory's RPC surface. The directory owns
// the "does a purchaser account exist" fact; nothing is cached locally and
// every call is a fresh round trip.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: http.DefaultClient,
	}
}

// Exists invokes the check_user_exists_by_email stored procedure and decodes
// its bare boolean response. Transport failures, non-2xx statuses and
// undecodable bodies are returned as errors — never as a false result.
func (c *Client) Exists(ctx context.Context, email string) (bool, error) {
	payload, err := json.Marshal(map[string]string{"p_email": email})
	if err != nil {
		return false, fmt.Errorf("directory rpc: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rest/v1/rpc/check_user_exists_by_email", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("directory rpc: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("directory rpc: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return false, fmt.Errorf("directory rpc: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var exists bool
	if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
		return false, fmt.Errorf("directory rpc: decode response: %w", err)
	}
	return exists, nil
}
