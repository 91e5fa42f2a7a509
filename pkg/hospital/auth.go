package hospital

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// authService implements the AuthService interface
type authService struct {
	client *Client
}

// Login exchanges a login code for a token and stores it
func (a *authService) Login(ctx context.Context, params *LoginParams) (*LoginResponse, error) {
	if params == nil || strings.TrimSpace(params.Code) == "" {
		return nil, &ValidationError{Field: "code", Message: "is required"}
	}

	resp, err := a.client.backend.Login(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to login")
	}
	if resp == nil || resp.Token == "" {
		return nil, errors.New("login response carried no token")
	}

	if err := a.client.gate.SetToken(resp.Token); err != nil {
		return nil, err
	}

	if a.client.logger != nil {
		a.client.logger.Info("Logged in", "mock", a.client.mock)
	}
	return resp, nil
}

// Profile retrieves the signed-in user
func (a *authService) Profile(ctx context.Context) (*User, error) {
	if !a.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	user, err := a.client.backend.Profile(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}
	return user, nil
}

// Logout removes the stored token
func (a *authService) Logout() error {
	return a.client.gate.Clear()
}

// IsAuthenticated reports whether a token is stored
func (a *authService) IsAuthenticated() bool {
	return a.client.gate.IsAuthenticated()
}

// Token returns the stored token, or ""
func (a *authService) Token() string {
	return a.client.gate.Token()
}
