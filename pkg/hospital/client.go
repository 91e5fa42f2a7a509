package hospital

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/eshaffer321/hospitalnav-go/internal/session"
	"github.com/eshaffer321/hospitalnav-go/internal/transport"
	internalTypes "github.com/eshaffer321/hospitalnav-go/internal/types"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// Client is the main hospital navigation client
type Client struct {
	// Service interfaces
	Hospitals HospitalService
	Favorites FavoriteService
	Ratings   RatingService
	Auth      AuthService
	Assistant AssistantService

	// Internal fields
	configMu  sync.RWMutex
	config    RequestConfig
	options   *ClientOptions
	storage   Storage
	gate      *session.Gate
	backend   Backend
	transport *transport.RESTTransport
	replayer  *Replayer
	logger    Logger
	mock      bool
	deviceID  string
}

// ClientOptions configures the client
type ClientOptions struct {
	// Config is merged over the default request configuration
	Config *ConfigPatch

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Storage holds the session token and the mock flag; defaults to memory
	Storage Storage

	// MockMode overrides the USE_MOCK flag in Storage when set
	MockMode *bool

	// MockLatency delays every fixture call; zero answers immediately
	MockLatency time.Duration

	// Backend replaces both built-in backends
	Backend Backend

	// Navigator receives the login redirect after a 401
	Navigator Navigator

	// RedirectDelay postpones the login redirect after a 401
	RedirectDelay time.Duration

	// DeviceID is sent as Device-UUID; a random one is generated when empty
	DeviceID string

	// Rules overrides the assistant keyword rules of the fixture backend
	Rules *RuleTable

	// Replayer paces streamed replies; defaults to NewReplayer()
	Replayer *Replayer

	// Logger for debug logging
	Logger Logger

	// RetryConfig enables retries; without it every call is one attempt
	RetryConfig *RetryConfig

	// Hooks for observability
	Hooks *Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string

	// SentryOptions allows custom Sentry configuration
	SentryOptions *sentry.ClientOptions
}

// Logger interface for logging
type Logger = internalTypes.Logger

// Navigator is the UI surface a 401 redirects through
type Navigator = internalTypes.Navigator

// RetryConfig configures retry behavior
type RetryConfig = internalTypes.RetryConfig

// Hooks provides lifecycle hooks for requests
type Hooks = internalTypes.Hooks

// NewClient creates a new client. The backend is chosen here, once: an explicit
// Backend, else fixtures when mock mode is on, else the REST API.
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	// Initialize Sentry if DSN is provided
	if opts.SentryDSN != "" || opts.SentryOptions != nil {
		sentryOpts := sentry.ClientOptions{}

		if opts.SentryOptions != nil {
			sentryOpts = *opts.SentryOptions
		}

		if opts.SentryDSN != "" {
			sentryOpts.Dsn = opts.SentryDSN
		}

		if sentryOpts.Environment == "" {
			sentryOpts.Environment = "production"
		}

		if err := sentry.Init(sentryOpts); err != nil {
			// Log error but don't fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	// Set defaults
	if opts.Storage == nil {
		opts.Storage = NewMemoryStorage()
	}

	if opts.DeviceID == "" {
		opts.DeviceID = uuid.NewString()
	}

	config := DefaultRequestConfig()
	if opts.Config != nil {
		config = opts.Config.Apply(config)
	}

	c := &Client{
		config:   config,
		options:  opts,
		storage:  opts.Storage,
		logger:   opts.Logger,
		deviceID: opts.DeviceID,
		replayer: opts.Replayer,
	}
	if c.replayer == nil {
		c.replayer = NewReplayer()
	}

	c.gate = session.NewGate(opts.Storage, c.tokenKey, opts.Logger)

	switch {
	case opts.Backend != nil:
		c.backend = opts.Backend
	case c.mockModeRequested():
		c.mock = true
		c.backend = NewFixtureBackend(&FixtureOptions{
			Latency: opts.MockLatency,
			Rules:   opts.Rules,
			Logger:  opts.Logger,
		})
	default:
		c.transport = transport.NewRESTTransport(&transport.Options{
			HTTPClient:    opts.HTTPClient,
			Config:        c.Config,
			Session:       c.gate,
			Navigator:     opts.Navigator,
			RedirectDelay: opts.RedirectDelay,
			DeviceID:      opts.DeviceID,
			RetryConfig:   opts.RetryConfig,
			Logger:        opts.Logger,
			Hooks:         opts.Hooks,
		})
		c.backend = newNetworkBackend(c.transport, c.captureError)
	}

	// Initialize services
	c.initServices()

	if c.logger != nil {
		c.logger.Debug("Client created", "mock", c.mock, "baseURL", config.BaseURL)
	}

	return c, nil
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Hospitals = &hospitalService{client: c}
	c.Favorites = &favoriteService{client: c}
	c.Ratings = &ratingService{client: c}
	c.Auth = &authService{client: c}
	c.Assistant = newAssistantService(c)
}

func (c *Client) mockModeRequested() bool {
	if c.options.MockMode != nil {
		return *c.options.MockMode
	}
	enabled, err := MockModeEnabled(c.storage)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Failed to read mock mode, using live backend", "error", err)
		}
		return false
	}
	return enabled
}

// MockMode reports whether the client serves fixtures
func (c *Client) MockMode() bool {
	return c.mock
}

// Storage returns the client's key/value storage
func (c *Client) Storage() Storage {
	return c.storage
}

// DeviceID returns the Device-UUID header value
func (c *Client) DeviceID() string {
	return c.deviceID
}

// Backend returns the backend the services delegate to
func (c *Client) Backend() Backend {
	return c.backend
}

// captureError reports a failed backend call to Sentry
func (c *Client) captureError(ctx context.Context, method, path string, duration time.Duration, err error) {
	report := func(scope *sentry.Scope, send func(error) *sentry.EventID) {
		scope.SetTag("http.method", method)
		scope.SetTag("http.path", path)
		if reqErr, ok := AsRequestError(err); ok {
			scope.SetTag("error.kind", string(reqErr.Kind))
		}
		scope.SetContext("request", map[string]interface{}{
			"method":   method,
			"path":     path,
			"duration": duration.String(),
		})
		send(err)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			report(scope, hub.CaptureException)
		})
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		report(scope, sentry.CaptureException)
	})
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	sentry.Flush(2 * time.Second)
}
