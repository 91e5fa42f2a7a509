package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eshaffer321/hospitalnav-go/internal/types"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const (
	authHeaderKey = "Authorization"
	contentType   = "application/json"
)

// SessionGate is the part of the session the transport needs
type SessionGate interface {
	Token() string
	Clear() error
}

// RESTTransport turns RequestOptions into backend calls and enforces the
// envelope, auth and error contract on every response
type RESTTransport struct {
	httpClient    *http.Client
	retryClient   *retryablehttp.Client
	config        func() types.RequestConfig
	session       SessionGate
	navigator     types.Navigator
	redirectDelay time.Duration
	headers       map[string]string
	logger        types.Logger
	hooks         *types.Hooks
}

// Options for the REST transport
type Options struct {
	HTTPClient *http.Client

	// Config returns the config snapshot a request is built from
	Config func() types.RequestConfig

	Session   SessionGate
	Navigator types.Navigator

	// RedirectDelay postpones the login navigation after a 401 so the notice
	// stays visible; zero navigates before the error is returned
	RedirectDelay time.Duration

	DeviceID    string
	RetryConfig *types.RetryConfig
	Logger      types.Logger
	Hooks       *types.Hooks
}

// NewRESTTransport creates a new REST transport
func NewRESTTransport(opts *Options) *RESTTransport {
	if opts == nil {
		opts = &Options{}
	}

	// Set defaults
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	if opts.Config == nil {
		defaults := types.DefaultRequestConfig()
		opts.Config = func() types.RequestConfig { return defaults }
	}

	// Retries only happen when the caller asks for them
	var retryClient *retryablehttp.Client
	if opts.RetryConfig != nil {
		retryClient = retryablehttp.NewClient()
		retryClient.HTTPClient = opts.HTTPClient
		retryClient.RetryMax = opts.RetryConfig.MaxRetries
		retryClient.RetryWaitMin = opts.RetryConfig.RetryWait
		retryClient.RetryWaitMax = opts.RetryConfig.MaxWait
		retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

		if opts.Logger != nil {
			retryClient.Logger = &retryLogger{logger: opts.Logger}
		} else {
			retryClient.Logger = nil
		}
	}

	headers := map[string]string{
		"Accept":       contentType,
		"Content-Type": contentType,
		"User-Agent":   types.UserAgent,
	}
	if opts.DeviceID != "" {
		headers["Device-UUID"] = opts.DeviceID
	}

	return &RESTTransport{
		httpClient:    opts.HTTPClient,
		retryClient:   retryClient,
		config:        opts.Config,
		session:       opts.Session,
		navigator:     opts.Navigator,
		redirectDelay: opts.RedirectDelay,
		headers:       headers,
		logger:        opts.Logger,
		hooks:         opts.Hooks,
	}
}

// Do performs one backend call and decodes the envelope data into result
func (t *RESTTransport) Do(ctx context.Context, opts *types.RequestOptions, result interface{}) error {
	if opts == nil || opts.Path == "" {
		return errors.New("request path is required")
	}

	cfg := t.config()

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	finalURL := BuildURL(cfg.BaseURL, opts.Path, opts.Query)

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		body = bytes.NewReader(data)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, finalURL, body)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	for k, v := range t.requestHeaders(cfg, opts.Headers) {
		httpReq.Header.Set(k, v)
	}

	if t.hooks != nil && t.hooks.OnRequest != nil {
		t.hooks.OnRequest(ctx, httpReq)
	}

	if t.logger != nil {
		t.logger.Debug("HTTP request", "method", method, "url", finalURL)
	}

	start := time.Now()
	resp, err := t.doRequest(httpReq)
	duration := time.Since(start)

	if err != nil {
		reqErr := &types.RequestError{
			Kind:    types.KindTransport,
			Code:    http.StatusInternalServerError,
			Message: transportMessage(err),
			Err:     err,
		}
		t.reportError(ctx, reqErr)
		return reqErr
	}
	defer resp.Body.Close()

	if t.hooks != nil && t.hooks.OnResponse != nil {
		t.hooks.OnResponse(ctx, resp, duration)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		reqErr := &types.RequestError{
			Kind:    types.KindTransport,
			Code:    http.StatusInternalServerError,
			Message: "failed to read response",
			Err:     err,
		}
		t.reportError(ctx, reqErr)
		return reqErr
	}

	if t.logger != nil {
		t.logger.Debug("HTTP response", "status", resp.StatusCode, "duration", duration, "size", len(respBody))
	}

	if err := t.checkResponse(cfg, resp.StatusCode, respBody, result); err != nil {
		t.reportError(ctx, err)
		return err
	}

	return nil
}

// checkResponse applies the failure taxonomy in order and decodes data on success
func (t *RESTTransport) checkResponse(cfg types.RequestConfig, statusCode int, body []byte, result interface{}) error {
	switch statusCode {
	case http.StatusUnauthorized:
		t.handleUnauthorized(cfg)
		return types.NewRequestError(types.KindUnauthorized, statusCode, "Unauthorized access", body)
	case http.StatusForbidden:
		return types.NewRequestError(types.KindForbidden, statusCode, "Access forbidden", body)
	case http.StatusNotFound:
		return types.NewRequestError(types.KindNotFound, statusCode, "Resource not found", body)
	case http.StatusInternalServerError:
		return types.NewRequestError(types.KindServerError, statusCode, "Server error", body)
	}

	if statusCode < 200 || statusCode > 299 {
		return t.handleHTTPError(statusCode, body)
	}

	var env types.Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return &types.RequestError{
			Kind:    types.KindTransport,
			Code:    http.StatusInternalServerError,
			Message: "failed to parse response",
			Data:    body,
			Err:     err,
		}
	}

	if !env.Succeeded() {
		msg := env.Message
		if msg == "" {
			msg = "Business logic error"
		}
		return types.NewRequestError(types.KindBusiness, env.Code, msg, body)
	}

	if result != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return &types.RequestError{
				Kind:    types.KindTransport,
				Code:    http.StatusInternalServerError,
				Message: "failed to unmarshal result",
				Data:    body,
				Err:     err,
			}
		}
	}

	return nil
}

// handleUnauthorized clears the session and sends the user to the login page
func (t *RESTTransport) handleUnauthorized(cfg types.RequestConfig) {
	if t.session != nil {
		if err := t.session.Clear(); err != nil && t.logger != nil {
			t.logger.Error("Failed to clear session after 401", "error", err)
		}
	}

	if t.navigator == nil {
		return
	}

	current := t.navigator.CurrentRoute()
	if current == "" || onRoute(current, cfg.LoginRoute) {
		return
	}

	t.navigator.ShowNotice(types.UnauthorizedNotice)

	redirect := func() {
		err := t.navigator.NavigateTo(cfg.LoginRoute)
		if err == nil {
			return
		}
		if t.logger != nil {
			t.logger.Warn("Navigation to login failed", "route", cfg.LoginRoute, "error", err)
		}
		if err := t.navigator.SwitchTab(cfg.HomeRoute); err != nil && t.logger != nil {
			t.logger.Error("Fallback navigation failed", "route", cfg.HomeRoute, "error", err)
		}
	}

	if t.redirectDelay > 0 {
		time.AfterFunc(t.redirectDelay, redirect)
		return
	}
	redirect()
}

// requestHeaders merges defaults, the auth header, config headers and call headers, later wins
func (t *RESTTransport) requestHeaders(cfg types.RequestConfig, callHeaders map[string]string) map[string]string {
	headers := make(map[string]string, len(t.headers)+len(cfg.Headers)+len(callHeaders)+1)
	for k, v := range t.headers {
		headers[k] = v
	}

	if t.session != nil {
		if token := t.session.Token(); token != "" {
			headers[authHeaderKey] = "Bearer " + token
		}
	}

	for k, v := range cfg.Headers {
		headers[k] = v
	}
	for k, v := range callHeaders {
		headers[k] = v
	}

	return headers
}

// doRequest executes the HTTP request with retry if configured
func (t *RESTTransport) doRequest(req *http.Request) (*http.Response, error) {
	if t.retryClient != nil {
		retryReq, err := retryablehttp.FromRequest(req)
		if err != nil {
			return nil, err
		}
		return t.retryClient.Do(retryReq)
	}
	return t.httpClient.Do(req)
}

func (t *RESTTransport) reportError(ctx context.Context, err error) {
	if t.hooks != nil && t.hooks.OnError != nil {
		t.hooks.OnError(ctx, err)
	}
}

// handleHTTPError maps status codes outside the explicit taxonomy
func (t *RESTTransport) handleHTTPError(statusCode int, body []byte) error {
	var errResp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &errResp)

	msg := errResp.Message
	if msg == "" {
		msg = errResp.Error
	}

	kind := types.KindHTTP
	baseMsg := fmt.Sprintf("HTTP error: %d", statusCode)
	if statusCode >= 500 {
		kind = types.KindServerError
		baseMsg = fmt.Sprintf("server error: %d", statusCode)
	}
	if desc := httpStatusDescription(statusCode); desc != "" {
		baseMsg = fmt.Sprintf("%s (%s)", baseMsg, desc)
	}
	if msg != "" {
		baseMsg = fmt.Sprintf("%s: %s", baseMsg, msg)
	}

	return types.NewRequestError(kind, statusCode, baseMsg, body)
}

// BuildURL joins base and path and appends the encoded query, if any
func BuildURL(base, path string, query map[string]string) string {
	u := base + path
	if len(query) == 0 {
		return u
	}

	values := make(url.Values, len(query))
	for k, v := range query {
		values.Set(k, v)
	}
	return u + "?" + values.Encode()
}

func onRoute(current, route string) bool {
	r := strings.Trim(route, "/")
	return r != "" && strings.Contains(strings.Trim(current, "/"), r)
}

func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "request timeout"
		}
		if urlErr.Err != nil {
			return urlErr.Err.Error()
		}
	}
	return err.Error()
}

// httpStatusDescription returns a human-readable description for common HTTP status codes.
func httpStatusDescription(statusCode int) string {
	descriptions := map[int]string{
		400: "Bad Request",
		405: "Method Not Allowed",
		409: "Conflict",
		429: "Too Many Requests",
		501: "Not Implemented",
		502: "Bad Gateway",
		503: "Service Unavailable",
		504: "Gateway Timeout",
		520: "Web Server Error",
		521: "Web Server Is Down",
		522: "Connection Timed Out",
		523: "Origin Is Unreachable",
		524: "A Timeout Occurred",
		525: "SSL Handshake Failed",
		526: "Invalid SSL Certificate",
	}
	return descriptions[statusCode]
}

// retryLogger adapts our logger to retryablehttp
type retryLogger struct {
	logger types.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
