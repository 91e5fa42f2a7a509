package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/eshaffer321/hospitalnav-go/internal/types"
)

// RequestOption adjusts a single call
type RequestOption func(*types.RequestOptions)

// WithHeader sets a header on one call, overriding defaults
func WithHeader(key, value string) RequestOption {
	return func(o *types.RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[key] = value
	}
}

// WithTimeout overrides the configured timeout for one call
func WithTimeout(d time.Duration) RequestOption {
	return func(o *types.RequestOptions) {
		o.Timeout = d
	}
}

// Request performs a call and returns the envelope data as T
func Request[T any](ctx context.Context, t *RESTTransport, opts *types.RequestOptions) (T, error) {
	var out T
	if err := t.Do(ctx, opts, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Get is Request with method GET
func Get[T any](ctx context.Context, t *RESTTransport, path string, query map[string]string, opts ...RequestOption) (T, error) {
	return Request[T](ctx, t, build(http.MethodGet, path, nil, query, opts))
}

// Post is Request with method POST
func Post[T any](ctx context.Context, t *RESTTransport, path string, body interface{}, opts ...RequestOption) (T, error) {
	return Request[T](ctx, t, build(http.MethodPost, path, body, nil, opts))
}

// Put is Request with method PUT
func Put[T any](ctx context.Context, t *RESTTransport, path string, body interface{}, opts ...RequestOption) (T, error) {
	return Request[T](ctx, t, build(http.MethodPut, path, body, nil, opts))
}

// Delete is Request with method DELETE
func Delete[T any](ctx context.Context, t *RESTTransport, path string, opts ...RequestOption) (T, error) {
	return Request[T](ctx, t, build(http.MethodDelete, path, nil, nil, opts))
}

func build(method, path string, body interface{}, query map[string]string, opts []RequestOption) *types.RequestOptions {
	o := &types.RequestOptions{
		Path:   path,
		Method: method,
		Body:   body,
		Query:  query,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
