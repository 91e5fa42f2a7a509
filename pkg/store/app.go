package store

import (
	"sync"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
)

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// SystemInfo describes the device the client runs on
type SystemInfo struct {
	Platform     string `json:"platform"`
	Model        string `json:"model,omitempty"`
	Version      string `json:"version,omitempty"`
	ScreenWidth  int    `json:"screenWidth,omitempty"`
	ScreenHeight int    `json:"screenHeight,omitempty"`
}

// AppState is a snapshot of an AppStore
type AppState struct {
	Location    *hospital.Location
	SystemInfo  *SystemInfo
	NetworkType string
	Theme       string
}

// AppStore holds device-level state
type AppStore struct {
	mu    sync.RWMutex
	state AppState
}

// NewAppStore creates a store with the light theme
func NewAppStore() *AppStore {
	return &AppStore{state: AppState{Theme: ThemeLight}}
}

// State returns a snapshot
func (s *AppStore) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// UpdateLocation records the user's position
func (s *AppStore) UpdateLocation(loc *hospital.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc == nil {
		s.state.Location = nil
		return
	}
	cp := *loc
	s.state.Location = &cp
}

// UpdateSystemInfo records device details
func (s *AppStore) UpdateSystemInfo(info *SystemInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info == nil {
		s.state.SystemInfo = nil
		return
	}
	cp := *info
	s.state.SystemInfo = &cp
}

// SetNetworkType records the connection type, e.g. "wifi" or "4g"
func (s *AppStore) SetNetworkType(networkType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.NetworkType = networkType
}

// SetTheme switches between ThemeLight and ThemeDark; anything else is ignored
func (s *AppStore) SetTheme(theme string) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
}

// NearbyParams builds a nearby query around the recorded location, or nil
// when no location is known
func (s *AppStore) NearbyParams(radiusKm float64) *hospital.NearbyParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Location == nil {
		return nil
	}
	loc := *s.state.Location
	return &hospital.NearbyParams{Location: &loc, Radius: radiusKm}
}
