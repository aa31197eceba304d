// Package httpclient builds the HTTP clients used for outbound requests,
// with optional SOCKS5 and HTTP proxy support.
package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/flamexhub/bancheck/internal/config"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Options configures the HTTP client.
type Options struct {
	// Timeout for HTTP requests (default: 30s)
	Timeout time.Duration
	// ProxyConfig contains proxy settings for upstream calls
	ProxyConfig *config.ProxyConfig
}

// New creates a new HTTP client with optional proxy support.
func New(opts Options) (*http.Client, error) {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if opts.ProxyConfig.HasProxy() {
		if err := configureProxy(transport, opts.ProxyConfig); err != nil {
			return nil, fmt.Errorf("configure proxy: %w", err)
		}
	}

	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
	}, nil
}

// NewSimple creates a simple HTTP client with timeout and no proxy.
func NewSimple(timeout time.Duration) *http.Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// configureProxy sets up proxy configuration on the transport.
// A SOCKS5 proxy takes precedence over HTTP proxies.
func configureProxy(transport *http.Transport, cfg *config.ProxyConfig) error {
	if cfg.SOCKS5Proxy != "" {
		return configureSocks5(transport, cfg.SOCKS5Proxy)
	}

	transport.Proxy = func(req *http.Request) (*url.URL, error) {
		return selectProxy(req, cfg)
	}

	return nil
}

// configureSocks5 replaces the transport dialer with a SOCKS5 dialer.
func configureSocks5(transport *http.Transport, socks5URL string) error {
	proxyURL, err := url.Parse(socks5URL)
	if err != nil {
		return fmt.Errorf("parse SOCKS5 proxy URL: %w", err)
	}

	var auth *proxy.Auth
	if proxyURL.User != nil {
		password, _ := proxyURL.User.Password()
		auth = &proxy.Auth{
			User:     proxyURL.User.Username(),
			Password: password,
		}
	}

	dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, proxy.Direct)
	if err != nil {
		return fmt.Errorf("create SOCKS5 dialer: %w", err)
	}

	// The x/net dialer predates DialContext, so wrap it
	transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(network, addr)
	}

	return nil
}

// selectProxy returns the proxy URL to use for the given request, honoring
// the NO_PROXY bypass list and the request scheme.
func selectProxy(req *http.Request, cfg *config.ProxyConfig) (*url.URL, error) {
	if shouldBypassProxy(req.URL.Host, cfg.NoProxy) {
		return nil, nil
	}

	var proxyURLStr string
	if req.URL.Scheme == "https" && cfg.HTTPSProxy != "" {
		proxyURLStr = cfg.HTTPSProxy
	} else if cfg.HTTPProxy != "" {
		proxyURLStr = cfg.HTTPProxy
	}

	if proxyURLStr == "" {
		return nil, nil
	}

	return url.Parse(proxyURLStr)
}

// shouldBypassProxy checks if a host should bypass the proxy.
func shouldBypassProxy(host string, noProxy string) bool {
	if noProxy == "" {
		return false
	}

	hostOnly, _, err := net.SplitHostPort(host)
	if err != nil {
		hostOnly = host
	}

	for _, pattern := range strings.Split(noProxy, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		// Wildcard match
		if pattern == "*" {
			return true
		}

		// Exact match
		if strings.EqualFold(hostOnly, pattern) {
			return true
		}

		// Domain suffix match (e.g., .example.com)
		if strings.HasPrefix(pattern, ".") {
			if strings.HasSuffix(strings.ToLower(hostOnly), strings.ToLower(pattern)) {
				return true
			}
		}

		// Subdomain match (e.g., example.com matches foo.example.com)
		if strings.HasSuffix(strings.ToLower(hostOnly), "."+strings.ToLower(pattern)) {
			return true
		}
	}

	return false
}

// ProxyInfo returns a description of the configured proxy for startup logs.
func ProxyInfo(cfg *config.ProxyConfig) string {
	if !cfg.HasProxy() {
		return "No proxy configured"
	}

	var parts []string
	if cfg.SOCKS5Proxy != "" {
		parts = append(parts, fmt.Sprintf("SOCKS5: %s", maskProxyURL(cfg.SOCKS5Proxy)))
	}
	if cfg.HTTPProxy != "" {
		parts = append(parts, fmt.Sprintf("HTTP: %s", maskProxyURL(cfg.HTTPProxy)))
	}
	if cfg.HTTPSProxy != "" {
		parts = append(parts, fmt.Sprintf("HTTPS: %s", maskProxyURL(cfg.HTTPSProxy)))
	}
	if cfg.NoProxy != "" {
		parts = append(parts, fmt.Sprintf("NoProxy: %s", cfg.NoProxy))
	}

	return strings.Join(parts, ", ")
}

// maskProxyURL masks credentials in a proxy URL for display.
func maskProxyURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if u.User != nil {
		username := u.User.Username()
		if _, hasPass := u.User.Password(); hasPass {
			u.User = url.UserPassword(username, "****")
		}
	}

	return u.String()
}
