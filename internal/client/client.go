// Package client provides an HTTP client for talking to the ban check server.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds each request when the caller does not set one.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for the ban check server API.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// New creates a new API client for the given server.
func New(serverURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Envelope is the response wrapper used by every API endpoint.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HealthInfo is the health check payload.
type HealthInfo struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	APISource string `json:"api_source"`
}

// VersionInfo is the build information payload.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// CheckBan looks up the ban status for a player UID.
func (c *Client) CheckBan(uid, lang string) (*Envelope, error) {
	path := "/api/check-ban/" + url.PathEscape(uid)
	if lang != "" {
		query := url.Values{}
		query.Set("lang", lang)
		path += "?" + query.Encode()
	}

	var envelope Envelope
	if err := c.get(path, &envelope); err != nil {
		return nil, fmt.Errorf("check ban: %w", err)
	}
	return &envelope, nil
}

// Health retrieves the server health payload.
func (c *Client) Health() (*HealthInfo, error) {
	var info HealthInfo
	if err := c.get("/", &info); err != nil {
		return nil, fmt.Errorf("get health: %w", err)
	}
	return &info, nil
}

// Version retrieves the server build information.
func (c *Client) Version() (*VersionInfo, error) {
	var envelope Envelope
	if err := c.get("/api/version", &envelope); err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	var info VersionInfo
	if err := json.Unmarshal(envelope.Data, &info); err != nil {
		return nil, fmt.Errorf("decode version payload: %w", err)
	}
	return &info, nil
}

func (c *Client) get(path string, result any) error {
	req, err := http.NewRequest("GET", c.serverURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, result)
}
