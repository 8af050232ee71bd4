package graphfs

import (
	"net/http"
	"time"
)

// ClientOption represents an option for configuring the graphfs client
type ClientOption func(*ClientConfig)

// ClientConfig holds the configuration for the graphfs client
type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	Scopes         []string
	DefaultHeaders map[string]string
	HTTPClient     *http.Client
	UserAgent      string
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "https://graph.microsoft.com/v1.0",
		Timeout: 30 * time.Second,
		Scopes:  []string{"https://graph.microsoft.com/.default"},
		DefaultHeaders: map[string]string{
			"Accept": "application/json",
		},
		UserAgent: "dossier-graphfs/1.0",
	}
}

// WithBaseURL sets the base URL for the file-store API
func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithScopes sets the token scopes requested from the credential
func WithScopes(scopes ...string) ClientOption {
	return func(c *ClientConfig) {
		c.Scopes = scopes
	}
}

// WithHeader adds a default header to all requests
func WithHeader(key, value string) ClientOption {
	return func(c *ClientConfig) {
		if c.DefaultHeaders == nil {
			c.DefaultHeaders = make(map[string]string)
		}
		c.DefaultHeaders[key] = value
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = httpClient
	}
}

// WithUserAgent sets a custom user agent
func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}
