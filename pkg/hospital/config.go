package hospital

import (
	"time"

	internalTypes "github.com/eshaffer321/hospitalnav-go/internal/types"
)

const (
	// DefaultBaseURL is the default backend base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DefaultTimeout is the default per-request timeout
	DefaultTimeout = internalTypes.DefaultTimeout

	// DefaultTokenKey is the storage key of the session token
	DefaultTokenKey = internalTypes.DefaultTokenKey

	// MockModeKey is the storage key of the mock mode flag
	MockModeKey = internalTypes.MockModeKey

	// UserAgent is the user agent string
	UserAgent = internalTypes.UserAgent
)

// RequestConfig is the active request configuration of a client
type RequestConfig = internalTypes.RequestConfig

// DefaultRequestConfig returns the configuration a new client starts from
func DefaultRequestConfig() RequestConfig {
	return internalTypes.DefaultRequestConfig()
}

// ConfigPatch changes selected fields of a RequestConfig; nil fields are left alone.
// A non-nil Headers replaces the header map as a whole.
type ConfigPatch struct {
	BaseURL    *string
	Timeout    *time.Duration
	Headers    map[string]string
	TokenKey   *string
	LoginRoute *string
	HomeRoute  *string
}

// IsEmpty reports whether the patch changes nothing
func (p ConfigPatch) IsEmpty() bool {
	return p.BaseURL == nil && p.Timeout == nil && p.Headers == nil &&
		p.TokenKey == nil && p.LoginRoute == nil && p.HomeRoute == nil
}

// Apply returns cfg with the patch merged over it
func (p ConfigPatch) Apply(cfg RequestConfig) RequestConfig {
	out := cfg.Clone()
	if p.BaseURL != nil {
		out.BaseURL = *p.BaseURL
	}
	if p.Timeout != nil {
		out.Timeout = *p.Timeout
	}
	if p.Headers != nil {
		out.Headers = make(map[string]string, len(p.Headers))
		for k, v := range p.Headers {
			out.Headers[k] = v
		}
	}
	if p.TokenKey != nil {
		out.TokenKey = *p.TokenKey
	}
	if p.LoginRoute != nil {
		out.LoginRoute = *p.LoginRoute
	}
	if p.HomeRoute != nil {
		out.HomeRoute = *p.HomeRoute
	}
	return out
}

// String returns a pointer to s, for ConfigPatch literals
func String(s string) *string {
	return &s
}

// Duration returns a pointer to d, for ConfigPatch literals
func Duration(d time.Duration) *time.Duration {
	return &d
}

// Bool returns a pointer to b, for ClientOptions.MockMode
func Bool(b bool) *bool {
	return &b
}

// Configure merges patch into the client's request configuration. Requests
// already building keep the snapshot they took.
func (c *Client) Configure(patch ConfigPatch) {
	if patch.IsEmpty() {
		return
	}

	c.configMu.Lock()
	c.config = patch.Apply(c.config)
	c.configMu.Unlock()

	if c.logger != nil {
		c.logger.Debug("Request config updated", "baseURL", c.Config().BaseURL)
	}
}

// Config returns a snapshot of the request configuration
func (c *Client) Config() RequestConfig {
	c.configMu.RLock()
	defer c.configMu.RUnlock()
	return c.config.Clone()
}

func (c *Client) tokenKey() string {
	c.configMu.RLock()
	defer c.configMu.RUnlock()
	return c.config.TokenKey
}
