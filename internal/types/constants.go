package types

import (
	"time"
)

const (
	// DefaultBaseURL is the default backend address
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default per-request timeout
	DefaultTimeout = 30 * time.Second

	// DefaultTokenKey is the storage key holding the session token
	DefaultTokenKey = "auth_token"

	// DefaultLoginRoute is where a 401 sends the user
	DefaultLoginRoute = "/pages/auth/login"

	// DefaultHomeRoute is the fallback when the login navigation fails
	DefaultHomeRoute = "/pages/index/index"

	// MockModeKey is the storage key holding the mock mode flag
	MockModeKey = "USE_MOCK"

	// APIPrefix is the version segment in front of every backend path
	APIPrefix = "/api/v1"

	// UserAgent is the user agent string
	UserAgent = "hospitalnav-go/1.0.0"

	// UnauthorizedNotice is shown to the user before the login redirect
	UnauthorizedNotice = "请先登录"
)
