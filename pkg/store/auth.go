package store

import (
	"context"
	"sync"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
)

// AuthState is a snapshot of an AuthStore
type AuthState struct {
	User    *hospital.User
	Loading bool
	Error   string
}

// AuthStore tracks the signed-in user. Whether the user is authenticated is
// read from the session token, never kept here.
type AuthStore struct {
	auth hospital.AuthService

	mu    sync.RWMutex
	state AuthState
}

// NewAuthStore creates a store over the client's auth service
func NewAuthStore(client *hospital.Client) *AuthStore {
	return &AuthStore{auth: client.Auth}
}

// State returns a snapshot
func (s *AuthStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a session token is stored
func (s *AuthStore) IsAuthenticated() bool {
	return s.auth.IsAuthenticated()
}

// CurrentUser returns the loaded user, or nil
func (s *AuthStore) CurrentUser() *hospital.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}

func (s *AuthStore) update(fn func(st *AuthState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Login signs in with a platform code
func (s *AuthStore) Login(ctx context.Context, params *hospital.LoginParams) (*hospital.LoginResponse, error) {
	s.update(func(st *AuthState) {
		st.Loading = true
		st.Error = ""
	})
	defer s.update(func(st *AuthState) { st.Loading = false })

	resp, err := s.auth.Login(ctx, params)
	if err != nil {
		s.update(func(st *AuthState) { st.Error = err.Error() })
		return nil, err
	}

	s.update(func(st *AuthState) { st.User = resp.User })
	return resp, nil
}

// LoadUser fetches the profile when a token is stored. A failed fetch signs
// the user out.
func (s *AuthStore) LoadUser(ctx context.Context) error {
	if !s.auth.IsAuthenticated() {
		return nil
	}

	s.update(func(st *AuthState) { st.Loading = true })
	defer s.update(func(st *AuthState) { st.Loading = false })

	user, err := s.auth.Profile(ctx)
	if err != nil {
		_ = s.Logout()
		return err
	}

	s.update(func(st *AuthState) { st.User = user })
	return nil
}

// Logout removes the token and forgets the user
func (s *AuthStore) Logout() error {
	s.update(func(st *AuthState) {
		st.User = nil
		st.Error = ""
	})
	return s.auth.Logout()
}
