package session

import (
	"github.com/eshaffer321/hospitalnav-go/internal/types"
	"github.com/pkg/errors"
)

// Gate keeps the stored token and the authenticated signal in one place.
// IsAuthenticated is derived from the token, never stored on its own.
type Gate struct {
	store  Store
	key    func() string
	logger types.Logger
}

// NewGate creates a gate over store; key is read on every access so a
// changed token key moves the transport and the auth service together
func NewGate(store Store, key func() string, logger types.Logger) *Gate {
	return &Gate{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// Token returns the stored token, or "" when there is none or the store failed
func (g *Gate) Token() string {
	token, err := g.store.Get(g.key())
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("Failed to read session token", "error", err)
		}
		return ""
	}
	return token
}

// SetToken stores a token after a successful login
func (g *Gate) SetToken(token string) error {
	if token == "" {
		return errors.New("empty session token")
	}
	if err := g.store.Set(g.key(), token); err != nil {
		return errors.Wrap(err, "failed to store session token")
	}
	if g.logger != nil {
		g.logger.Debug("Session token stored")
	}
	return nil
}

// Clear removes the stored token
func (g *Gate) Clear() error {
	if err := g.store.Remove(g.key()); err != nil {
		return errors.Wrap(err, "failed to clear session token")
	}
	if g.logger != nil {
		g.logger.Debug("Session token cleared")
	}
	return nil
}

// IsAuthenticated reports whether a token is stored
func (g *Gate) IsAuthenticated() bool {
	return g.Token() != ""
}
