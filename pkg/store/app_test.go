package store

import (
	"testing"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/stretchr/testify/assert"
)

func TestAppStore(t *testing.T) {
	s := NewAppStore()
	assert.Equal(t, ThemeLight, s.State().Theme)

	loc := &hospital.Location{Latitude: 39.9, Longitude: 116.4}
	s.UpdateLocation(loc)
	loc.Latitude = 0
	assert.Equal(t, 39.9, s.State().Location.Latitude)

	s.UpdateSystemInfo(&SystemInfo{Platform: "ios", ScreenWidth: 390})
	assert.Equal(t, "ios", s.State().SystemInfo.Platform)

	s.SetNetworkType("wifi")
	assert.Equal(t, "wifi", s.State().NetworkType)

	s.SetTheme(ThemeDark)
	assert.Equal(t, ThemeDark, s.State().Theme)
	s.SetTheme("sepia")
	assert.Equal(t, ThemeDark, s.State().Theme)

	params := s.NearbyParams(5)
	assert.Equal(t, 5.0, params.Radius)
	assert.Equal(t, 39.9, params.Location.Latitude)

	s.UpdateLocation(nil)
	assert.Nil(t, s.NearbyParams(5))
}
