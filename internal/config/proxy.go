package config

import "os"

// ProxyConfig holds outbound proxy settings for upstream requests.
type ProxyConfig struct {
	SOCKS5Proxy string // SOCKS5 proxy URL, takes precedence over HTTP proxies
	HTTPProxy   string // proxy URL for plain HTTP requests
	HTTPSProxy  string // proxy URL for HTTPS requests
	NoProxy     string // comma-separated hosts that bypass the proxy
}

// HasProxy reports whether any proxy is configured.
func (p *ProxyConfig) HasProxy() bool {
	if p == nil {
		return false
	}
	return p.SOCKS5Proxy != "" || p.HTTPProxy != "" || p.HTTPSProxy != ""
}

// LoadProxyConfig reads proxy settings from environment variables.
func LoadProxyConfig() ProxyConfig {
	return ProxyConfig{
		SOCKS5Proxy: os.Getenv("SOCKS5_PROXY"),
		HTTPProxy:   os.Getenv("HTTP_PROXY"),
		HTTPSProxy:  os.Getenv("HTTPS_PROXY"),
		NoProxy:     os.Getenv("NO_PROXY"),
	}
}
