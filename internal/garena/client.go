// Package garena queries the official Garena Free Fire anti-hack API for
// account ban status.
package garena

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultAPIURL is the official Garena ban-status endpoint.
	DefaultAPIURL = "https://ff.garena.com/api/antihack/check_banned"
	// DefaultTimeout bounds a single upstream call, connect through body read.
	DefaultTimeout = 15 * time.Second
	// DefaultLang is used when the caller does not specify a language.
	DefaultLang = "en"
)

// ResponseMode selects how upstream payloads are shaped before being
// returned to callers.
type ResponseMode string

const (
	// ModeRaw passes the upstream JSON object through unmodified.
	ModeRaw ResponseMode = "raw"
	// ModeNormalized reduces the payload to the fixed ban-status fields.
	ModeNormalized ResponseMode = "normalized"
)

// Upstream call outcomes as recorded in metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeUnreachable = "unreachable"
)

// ErrUnreachable is returned when no usable answer came back from Garena:
// connection failure, timeout, or a 200 response whose body did not decode.
var ErrUnreachable = errors.New("garena API unreachable")

// APIError is returned when Garena answered with a non-200 status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Recorder receives upstream call outcomes for instrumentation.
type Recorder interface {
	RecordUpstreamRequest(outcome string, seconds float64)
}

// nopRecorder discards all observations.
type nopRecorder struct{}

func (nopRecorder) RecordUpstreamRequest(string, float64) {}

// browserHeaders is the exact header set sent with every upstream request.
// Garena serves the endpoint to its own support page, so the request has to
// look like it came from a desktop Chrome session on that page.
var browserHeaders = map[string]string{
	"Accept":             "application/json, text/plain, */*",
	"Accept-Encoding":    "gzip, deflate, br, zstd",
	"Accept-Language":    "en-US,en;q=0.9",
	"Referer":            "https://ff.garena.com/en/support/",
	"Sec-Ch-Ua":          `"Chromium";v="140", "Not=A?Brand";v="24", "Google Chrome";v="140"`,
	"Sec-Ch-Ua-Mobile":   "?0",
	"Sec-Ch-Ua-Platform": `"Windows"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "same-origin",
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
	"X-Requested-With":   "B6FksShzIgjfrYImLpTsadjS86sddhFH",
}

// Config holds configuration for the ban-status client.
type Config struct {
	// APIURL is the upstream endpoint (default: DefaultAPIURL).
	APIURL string
	// Timeout bounds each upstream call (default: DefaultTimeout).
	Timeout time.Duration
	// Mode selects raw passthrough or normalized field extraction (default: ModeRaw).
	Mode ResponseMode
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
		Mode:    ModeRaw,
	}
}

// Client checks Free Fire account ban status against the Garena API.
type Client struct {
	config     Config
	httpClient *http.Client
	recorder   Recorder
	logger     zerolog.Logger
}

// New creates a ban-status client. A nil httpClient falls back to a plain
// client with the configured timeout; a nil recorder discards metrics.
func New(config Config, httpClient *http.Client, recorder Recorder, logger zerolog.Logger) *Client {
	if config.APIURL == "" {
		config.APIURL = DefaultAPIURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Mode == "" {
		config.Mode = ModeRaw
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		recorder:   recorder,
		logger:     logger.With().Str("component", "garena").Logger(),
	}
}

// CheckBan queries ban status for the given uid. The uid must already be
// validated; it is sent to Garena as-is. An empty lang defaults to "en".
//
// The returned map is the upstream payload in ModeRaw, or the fixed
// ban-status fields in ModeNormalized. A nil map with a nil error means the
// upstream answered but carried no ban information (normalized mode only).
func (c *Client) CheckBan(ctx context.Context, uid, lang string) (map[string]any, error) {
	if lang == "" {
		lang = DefaultLang
	}

	payload, err := c.fetch(ctx, uid, lang)
	if err != nil {
		return nil, err
	}

	if c.config.Mode == ModeNormalized {
		return normalize(payload), nil
	}
	return payload, nil
}

// fetch performs the HTTP round trip and decodes the response body.
func (c *Client) fetch(ctx context.Context, uid, lang string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	query := url.Values{}
	query.Set("lang", lang)
	query.Set("uid", uid)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	for name, value := range browserHeaders {
		req.Header.Set(name, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.RecordUpstreamRequest(OutcomeUnreachable, time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("uid", uid).Msg("upstream request failed")
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.recorder.RecordUpstreamRequest(OutcomeRejected, time.Since(start).Seconds())
		c.logger.Warn().Int("status", resp.StatusCode).Str("uid", uid).Msg("upstream rejected request")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API returned status %d", resp.StatusCode),
		}
	}

	body, err := decodeBody(resp)
	if err != nil {
		c.recorder.RecordUpstreamRequest(OutcomeUnreachable, time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("uid", uid).Msg("decode upstream body")
		return nil, ErrUnreachable
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		c.recorder.RecordUpstreamRequest(OutcomeUnreachable, time.Since(start).Seconds())
		c.logger.Error().Err(err).Str("uid", uid).Msg("parse upstream JSON")
		return nil, ErrUnreachable
	}
	if payload == nil {
		c.recorder.RecordUpstreamRequest(OutcomeUnreachable, time.Since(start).Seconds())
		c.logger.Error().Str("uid", uid).Msg("null upstream payload")
		return nil, ErrUnreachable
	}

	c.recorder.RecordUpstreamRequest(OutcomeSuccess, time.Since(start).Seconds())
	return payload, nil
}

// normalize reduces the upstream {status, data} convention to the fixed
// ban-status fields. A missing data object or a non-200 embedded status
// means no ban information is available, which is not an error.
func normalize(payload map[string]any) map[string]any {
	status, ok := payload["status"].(float64)
	if !ok || int(status) != 200 {
		return nil
	}
	data, ok := payload["data"].(map[string]any)
	if !ok {
		return nil
	}

	normalized := map[string]any{
		"is_banned": 0,
		"nickname":  "",
		"period":    0,
		"region":    "Unknown",
	}
	if v, ok := data["is_banned"].(float64); ok {
		normalized["is_banned"] = int(v)
	}
	if v, ok := data["nickname"].(string); ok {
		normalized["nickname"] = v
	}
	if v, ok := data["period"].(float64); ok {
		normalized["period"] = int(v)
	}
	if v, ok := data["region"].(string); ok {
		normalized["region"] = v
	}
	return normalized
}
