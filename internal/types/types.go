package types

import (
	"context"
	"net/http"
	"time"
)

// RequestConfig is the active request configuration of a client
type RequestConfig struct {
	BaseURL    string            `json:"baseUrl"`
	Timeout    time.Duration     `json:"timeout"`
	Headers    map[string]string `json:"headers,omitempty"`
	TokenKey   string            `json:"tokenKey"`
	LoginRoute string            `json:"loginRoute"`
	HomeRoute  string            `json:"homeRoute"`
}

// DefaultRequestConfig returns the configuration a new client starts from
func DefaultRequestConfig() RequestConfig {
	return RequestConfig{
		BaseURL:    DefaultBaseURL,
		Timeout:    DefaultTimeout,
		TokenKey:   DefaultTokenKey,
		LoginRoute: DefaultLoginRoute,
		HomeRoute:  DefaultHomeRoute,
	}
}

// Clone returns a copy that shares no maps with c
func (c RequestConfig) Clone() RequestConfig {
	out := c
	if c.Headers != nil {
		out.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			out.Headers[k] = v
		}
	}
	return out
}

// RequestOptions describes a single backend call
type RequestOptions struct {
	Path    string
	Method  string
	Body    interface{}
	Query   map[string]string
	Headers map[string]string
	Timeout time.Duration
}

// Logger interface for logging
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RetryConfig configures retry behavior
type RetryConfig struct {
	MaxRetries int           `json:"maxRetries"`
	RetryWait  time.Duration `json:"retryWait"`
	MaxWait    time.Duration `json:"maxWait"`
}

// Hooks provides lifecycle hooks for requests
type Hooks struct {
	OnRequest  func(ctx context.Context, req *http.Request)
	OnResponse func(ctx context.Context, resp *http.Response, duration time.Duration)
	OnError    func(ctx context.Context, err error)
}

// Navigator is the UI surface the client talks to when a session is rejected
type Navigator interface {
	// CurrentRoute returns the route of the active page, or "" when there is none
	CurrentRoute() string

	// ShowNotice displays a transient message
	ShowNotice(message string)

	// NavigateTo pushes a page
	NavigateTo(route string) error

	// SwitchTab jumps to a tab page
	SwitchTab(route string) error
}

// Envelope codes that mean success
const (
	CodeOK      = 0
	CodeSuccess = 200
)

// Envelope is the {code, message, data} wrapper every backend response uses
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Succeeded reports whether the envelope code is a success code
func (e *Envelope[T]) Succeeded() bool {
	return e.Code == CodeOK || e.Code == CodeSuccess
}
